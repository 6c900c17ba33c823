// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package renderer draws the rotating triangle scene with [threed]
// from inside a host paint callback.
package renderer

import (
	"image/color"
	"log/slog"

	"cogentcore.org/core/math32"

	"cogentcore.org/custom3d/base/threadlocal"
	"cogentcore.org/custom3d/paintcb"
	"cogentcore.org/custom3d/threed"
)

// Camera parameters of the scene.
var (
	Eye    = math32.Vec3(0, 0, 2)
	Target = math32.Vec3(0, 0, 0)
	Up     = math32.Vec3(0, 1, 0)
)

const (
	// FOV is the vertical field of view in degrees.
	FOV = 45

	Near = 0.1
	Far  = 10
)

// Renderer renders the scene with a [threed.Context] wrapping the
// host's GPU. A Renderer is bound to the thread that made it; use
// [With] to get the one for the calling thread.
type Renderer struct {
	Context *threed.Context
}

// New returns a new [Renderer] over the GPU of the given painter.
// A painter without a GPU gives a renderer with a headless context,
// which can only draw into the painter's intermediate target.
// Errors are of type [*threed.InitError].
func New(p paintcb.Painter) (*Renderer, error) {
	if p.GPU() == nil && p.Device() == nil {
		return &Renderer{Context: threed.NewHeadlessContext()}, nil
	}
	cx, err := threed.NewContext(p.GPU(), p.Device())
	if err != nil {
		return nil, err
	}
	return &Renderer{Context: cx}, nil
}

var renderers threadlocal.Map[*Renderer]

// With calls fn with the [Renderer] of the calling thread, making it
// from p first if this thread does not have one yet. If making it
// fails, fn is not called, the error is returned, and the next call
// tries again.
func With(p paintcb.Painter, fn func(r *Renderer)) error {
	r, err := renderers.GetOrCreate(func() (*Renderer, error) {
		slog.Info("renderer: creating renderer for thread")
		return New(p)
	})
	if err != nil {
		return err
	}
	fn(r)
	return nil
}

// Triangle returns the mesh of the scene: one triangle with
// a red, a green and a blue corner.
func Triangle() *threed.CPUMesh {
	return &threed.CPUMesh{
		Positions: []math32.Vector3{
			math32.Vec3(0.5, -0.5, 0),
			math32.Vec3(-0.5, -0.5, 0),
			math32.Vec3(0, 0.5, 0),
		},
		Colors: []color.RGBA{
			{R: 255, A: 255},
			{G: 255, A: 255},
			{B: 255, A: 255},
		},
	}
}

// Model returns a new model of the [Triangle] rotated by angle
// radians about the Y axis.
func (r *Renderer) Model(angle float32) (*threed.Model, error) {
	md, err := threed.NewModel(r.Context, Triangle(), threed.ColorMaterial{})
	if err != nil {
		return nil, err
	}
	return md.SetTransform(threed.RotationY(angle)), nil
}

// CustomPaint is the body of the paint callback: it renders the scene
// rotated by angle into the region described by info, on the target
// the painter provides or else the screen. On a GPU the screen is an
// offscreen texture (see [threed.Screen]), so a painter that shows its
// output must provide a target.
func (r *Renderer) CustomPaint(info paintcb.Info, p paintcb.Painter, angle float32) error {
	// the host does its own sRGB conversion
	r.Context.DisableSRGB()

	target := p.IntermediateTarget()
	if target == nil {
		sz := info.ScreenSize
		sc, err := threed.Screen(r.Context, sz.X, sz.Y)
		if err != nil {
			return err
		}
		target = sc
	}
	defer target.Release()

	vp := info.ViewportInPixels().Viewport()
	sb := info.ClipRectInPixels().ScissorBox()
	return r.Render(target, vp, sb, angle)
}

// Render renders the scene rotated by angle about the Y axis,
// projected onto vp, touching only pixels inside sb. It clears only
// depth first, so whatever the host drew behind the scene stays.
func (r *Renderer) Render(target threed.Target, vp threed.Viewport, sb threed.ScissorBox, angle float32) error {
	cam := threed.NewPerspectiveCamera(vp, Eye, Target, Up, FOV, Near, Far)
	md, err := r.Model(angle)
	if err != nil {
		return err
	}
	if err := target.ClearPartially(sb, threed.ClearDepth(1)); err != nil {
		return err
	}
	return target.RenderPartially(sb, cam, md)
}

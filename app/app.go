// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package app is the custom 3D painting demo: a window with a canvas
// showing a triangle drawn with the GPU, which rotates as the user
// drags over it.
package app

import (
	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/core"
	"cogentcore.org/core/events"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/styles"
	"cogentcore.org/core/styles/units"

	"cogentcore.org/custom3d/canvas3d"
	"cogentcore.org/custom3d/paintcb"
	"cogentcore.org/custom3d/renderer"
)

const (
	// InitialAngle is the starting rotation in radians.
	InitialAngle = 0.2

	// DragSensitivity is the rotation in radians per pixel dragged.
	DragSensitivity = 0.01
)

// App is the state of the demo.
type App struct {

	// Angle is the rotation of the triangle about the Y axis, in radians.
	// It grows without bound.
	Angle float32
}

// New returns a new [App] at the [InitialAngle].
func New() *App {
	return &App{Angle: InitialAngle}
}

// Drag rotates by the horizontal component of delta.
func (a *App) Drag(delta math32.Vector2) {
	a.Angle += delta.X * DragSensitivity
}

// Paint renders the triangle at the given angle, with the renderer
// of the calling thread.
func Paint(info paintcb.Info, p paintcb.Painter, angle float32) error {
	var err error
	werr := renderer.With(p, func(r *renderer.Renderer) {
		err = r.CustomPaint(info, p, angle)
	})
	if werr != nil {
		return werr
	}
	return err
}

// PaintCallback returns the paint callback for the given region,
// which renders the triangle at the current angle. Errors are logged.
func (a *App) PaintCallback(rect math32.Box2) paintcb.Callback {
	angle := a.Angle
	return paintcb.Callback{Rect: rect, Func: func(info paintcb.Info, p paintcb.Painter) {
		errors.Log(Paint(info, p, angle))
	}}
}

// Update adds the paint callback for the canvas for this frame.
func (a *App) Update(cv *canvas3d.Canvas) {
	cv.Callbacks.Add(a.PaintCallback(cv.Rect()))
}

// MakeBody adds the demo content to the given body,
// returning the canvas.
func (a *App) MakeBody(b *core.Body, cfg *Config) *canvas3d.Canvas {
	b.Styler(func(s *styles.Style) {
		s.Min.Set(units.Dp(float32(cfg.Width)), units.Dp(float32(cfg.Height)))
	})

	bar := core.NewFrame(b)
	core.NewButton(bar).SetText("Dark").OnClick(func(e events.Event) {
		setTheme(b, core.ThemeDark)
	})
	core.NewButton(bar).SetText("Light").OnClick(func(e events.Event) {
		setTheme(b, core.ThemeLight)
	})

	core.NewText(b).SetText(`This is a custom 3D painting demo. The triangle is drawn with the GPU by the <a href="https://pkg.go.dev/cogentcore.org/custom3d/threed">threed</a> package, inside the paint pass of the GUI.`)

	fr := core.NewFrame(b)
	fr.Styler(func(s *styles.Style) {
		s.Overflow.Set(styles.OverflowAuto)
		s.Grow.Set(1, 1)
	})
	sz := float32(cfg.CanvasSize)
	cv := canvas3d.NewCanvas(fr).SetSize(math32.Vec2(sz, sz)).
		SetMultiSample(cfg.MultiSample).SetDepthBits(cfg.DepthBits)
	cv.OnDrag(a.Drag)
	cv.OnPaint(a.Update)

	core.NewText(b).SetText("Drag to rotate!")
	return cv
}

func setTheme(ctx core.Widget, th core.Themes) {
	core.AppearanceSettings.Theme = th
	core.UpdateSettings(ctx, core.AppearanceSettings)
}

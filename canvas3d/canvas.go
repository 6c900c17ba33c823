// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package canvas3d provides a [core.Widget] that reserves a region of
// the window for custom GPU painting through [paintcb] callbacks.
package canvas3d

//go:generate core generate

import (
	"image"
	"log/slog"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/core"
	"cogentcore.org/core/cursors"
	"cogentcore.org/core/events"
	"cogentcore.org/core/gpu"
	"cogentcore.org/core/gpu/gpudraw"
	"cogentcore.org/core/math32"
	"cogentcore.org/core/styles"
	"cogentcore.org/core/styles/abilities"
	"cogentcore.org/core/styles/states"
	"cogentcore.org/core/styles/units"
	"cogentcore.org/core/system"
	"cogentcore.org/core/system/composer"
	"golang.org/x/image/draw"

	"cogentcore.org/custom3d/base/threadlocal"
	"cogentcore.org/custom3d/paintcb"
	"cogentcore.org/custom3d/threed"
)

// Canvas is a widget of a fixed size whose content is drawn by paint
// callbacks on the render thread, directly onto the window surface.
// Dragging over it reports drag deltas to [Canvas.OnDrag] handlers.
type Canvas struct {
	core.WidgetBase

	// Size is the size of the canvas in dp. It defaults to 512 x 512.
	Size math32.Vector2

	// MultiSample is the number of multisamples of the render target.
	MultiSample int

	// DepthBits is the size of the depth buffer values of the
	// render target: 24 or 32.
	DepthBits int

	// Callbacks are the paint callbacks for the next frame.
	Callbacks paintcb.List `set:"-" display:"-" json:"-" xml:"-"`

	onDrag  []func(delta math32.Vector2)
	onPaint []func(cv *Canvas)

	// last are the most recently queued callbacks, which are run
	// again on frames that queue none.
	last []paintcb.Callback

	// target is the GPU target the callbacks draw into,
	// made on the render thread on first use.
	target *threed.GPUTarget
}

func (cv *Canvas) Init() {
	cv.WidgetBase.Init()
	cv.Size = math32.Vec2(512, 512)
	cv.MultiSample = 4
	cv.DepthBits = 32
	cv.Styler(func(s *styles.Style) {
		s.SetAbilities(true, abilities.Slideable, abilities.Activatable)
		s.Min.Set(units.Dp(cv.Size.X), units.Dp(cv.Size.Y))
		s.Max.Set(units.Dp(cv.Size.X), units.Dp(cv.Size.Y))
		if s.Is(states.Active) {
			s.Cursor = cursors.Grabbing
			s.StateLayer = 0
		} else {
			s.Cursor = cursors.Grab
		}
	})

	cv.On(events.SlideMove, func(e events.Event) {
		e.SetHandled()
		del := e.PrevDelta()
		cv.Drag(math32.Vec2(float32(del.X), float32(del.Y)))
	})
}

func (cv *Canvas) OnAdd() {
	cv.WidgetBase.OnAdd()
	cv.Scene.AddDirectRender(cv)
}

func (cv *Canvas) Destroy() {
	cv.Scene.DeleteDirectRender(cv)
	if cv.target != nil {
		tg := cv.target
		cv.target = nil
		system.TheApp.RunOnMain(tg.Release)
	}
	cv.WidgetBase.Destroy()
}

// OnDrag adds a handler called with the pointer movement, in pixels,
// for every move of a drag over the canvas.
func (cv *Canvas) OnDrag(fn func(delta math32.Vector2)) *Canvas {
	cv.onDrag = append(cv.onDrag, fn)
	return cv
}

// OnPaint adds a function called every time the canvas renders,
// which typically adds paint callbacks to [Canvas.Callbacks].
func (cv *Canvas) OnPaint(fn func(cv *Canvas)) *Canvas {
	cv.onPaint = append(cv.onPaint, fn)
	return cv
}

// Drag sends delta to the drag handlers and asks for a new render.
func (cv *Canvas) Drag(delta math32.Vector2) {
	for _, fn := range cv.onDrag {
		fn(delta)
	}
	cv.NeedsRender()
}

// Rect returns the region of the canvas content, in window
// coordinates. It is not clipped to the visible part.
func (cv *Canvas) Rect() math32.Box2 {
	pos := cv.Geom.Pos.Content.Add(math32.FromPoint(cv.Scene.SceneGeom.Pos))
	return math32.Box2{Min: pos, Max: pos.Add(cv.Geom.Size.Actual.Content)}
}

// ClipRect returns the visible part of the canvas content,
// in window coordinates.
func (cv *Canvas) ClipRect() math32.Box2 {
	return math32.B2FromRect(cv.Geom.ContentBBox.Add(cv.Scene.SceneGeom.Pos))
}

func (cv *Canvas) Render() {
	cv.WidgetBase.Render()
	cv.paint()
}

// paint runs the OnPaint functions.
func (cv *Canvas) paint() {
	for _, fn := range cv.onPaint {
		fn(cv)
	}
}

// RenderSource returns the [composer.Source] that runs the queued
// paint callbacks and composites their output.
//
// The window redraws the whole scene under its direct renders on every
// frame, including frames where the canvas did not render, so a source
// is returned whenever there is anything to paint.
func (cv *Canvas) RenderSource(op draw.Op) composer.Source {
	cbs := cv.frameCallbacks()
	if len(cbs) == 0 || !cv.IsVisible() {
		return nil
	}
	win := cv.Scene.Events.RenderWindow()
	if win == nil {
		return nil
	}
	cd, ok := win.SystemWindow.Composer().(*composer.ComposerDrawer)
	if !ok {
		return nil
	}
	surf, ok := cd.Drawer.Renderer().(*gpu.Surface)
	if !ok {
		return nil
	}
	clip := cv.ClipRect()
	return &canvasSource{canvas: cv, surface: surf, callbacks: cbs, clip: clip}
}

// frameCallbacks returns the callbacks to run for this frame:
// the queued ones, or else the last ones queued.
func (cv *Canvas) frameCallbacks() []paintcb.Callback {
	cbs := cv.Callbacks.Drain()
	if len(cbs) == 0 {
		return cv.last
	}
	cv.last = cbs
	return cbs
}

// callbackInfos returns the [paintcb.Info] for each callback, with the
// clip rect limited to clip.
func callbackInfos(cbs []paintcb.Callback, clip math32.Box2, screen image.Point) []paintcb.Info {
	infos := make([]paintcb.Info, len(cbs))
	for i, cb := range cbs {
		infos[i] = paintcb.Info{
			Viewport:       cb.Rect,
			ClipRect:       cb.Rect.Intersect(clip),
			PixelsPerPoint: 1,
			ScreenSize:     screen,
		}
	}
	return infos
}

// gpuTarget returns the target the callbacks draw into, making or
// resizing it to match the surface.
func (cv *Canvas) gpuTarget(surf *gpu.Surface) (*threed.GPUTarget, error) {
	sz := surf.Format.Size
	if cv.target != nil {
		cv.target.SetSize(sz)
		return cv.target, nil
	}
	depth, err := threed.DepthFormat(cv.DepthBits)
	if err != nil {
		return nil, err
	}
	cx, err := threed.NewContext(surf.GPU, surf.Device())
	if err != nil {
		return nil, err
	}
	tg, err := threed.NewGPUTarget(cx, sz, cv.MultiSample, depth)
	if err != nil {
		return nil, err
	}
	cv.target = tg
	return tg, nil
}

// paintThread runs all paint callbacks. The window draws its sources
// on a new goroutine every frame, which is not locked to a thread,
// while callbacks keep per-thread GPU state.
var paintThread threadlocal.Thread

// canvasSource implements [composer.Source] for a [Canvas].
type canvasSource struct {
	canvas    *Canvas
	surface   *gpu.Surface
	callbacks []paintcb.Callback
	clip      math32.Box2
}

func (cs *canvasSource) Draw(c composer.Composer) {
	cd, ok := c.(*composer.ComposerDrawer)
	if !ok {
		return
	}
	agd, ok := cd.Drawer.(gpudraw.AsGPUDrawer)
	if !ok {
		return
	}
	var tg *threed.GPUTarget
	var err error
	paintThread.Run(func() {
		tg, err = cs.canvas.gpuTarget(cs.surface)
		if err != nil {
			return
		}
		sz := tg.Size()
		// the target keeps its content between frames
		errors.Log(tg.ClearPartially(threed.NewScissorBoxAtOrigin(sz.X, sz.Y), threed.ClearColorDepth(0, 0, 0, 0, 1)))
		p := &surfacePainter{surface: cs.surface, target: hostTarget{tg}}
		infos := callbackInfos(cs.callbacks, cs.clip, sz)
		for i, cb := range cs.callbacks {
			cb.Func(infos[i], p)
		}
	})
	if errors.Log(err) != nil {
		return
	}
	tex, err := tg.Texture()
	if errors.Log(err) != nil {
		return
	}
	clip := cs.clip.ToRect()
	if clip.Empty() {
		return
	}
	slog.Debug("canvas3d: compositing", "clip", clip)
	gdrw := agd.AsGPUDrawer()
	gdrw.UseTexture(tex)
	gdrw.CopyUsed(clip.Min, clip, draw.Over, false)
}

// surfacePainter is the [paintcb.Painter] for a window surface.
type surfacePainter struct {
	surface *gpu.Surface
	target  threed.Target
}

func (sp *surfacePainter) GPU() *gpu.GPU                     { return sp.surface.GPU }
func (sp *surfacePainter) Device() *gpu.Device               { return sp.surface.Device() }
func (sp *surfacePainter) IntermediateTarget() threed.Target { return sp.target }

// hostTarget is a target owned by the canvas, which callbacks
// cannot release.
type hostTarget struct {
	threed.Target
}

func (ht hostTarget) Release() {}

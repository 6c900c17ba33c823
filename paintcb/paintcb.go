// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package paintcb defines the contract between a host GUI and custom
// painting code that draws with the GPU into a region of a GUI frame.
//
// During a frame, the GUI side adds [Callback]s to a [List], each tagged
// with the region it covers. Later, on the render thread, the host drains
// the list and calls each callback's [Func] with the [Info] describing
// where it may draw and a [Painter] giving access to the GPU.
package paintcb

import (
	"image"
	"sync"

	"cogentcore.org/core/gpu"
	"cogentcore.org/core/math32"

	"cogentcore.org/custom3d/threed"
)

// Info describes where a paint callback may draw.
type Info struct {

	// Viewport is the full region allocated to the callback,
	// in points, top-left origin.
	Viewport math32.Box2

	// ClipRect is the visible part of the region, in points.
	// Nothing outside of it may be modified.
	ClipRect math32.Box2

	// PixelsPerPoint is the number of physical pixels per point.
	PixelsPerPoint float32

	// ScreenSize is the size of the whole render target in pixels.
	ScreenSize image.Point
}

// PixelRect is a rectangle in physical pixels, with both the top-left
// origin Y of GUI coordinates and the bottom-left origin Y of GPU
// viewports.
type PixelRect struct {
	LeftPx, TopPx, FromBottomPx int
	WidthPx, HeightPx           int
}

// ViewportInPixels returns the [Info.Viewport] in pixels.
// It is not clamped to the screen.
func (info Info) ViewportInPixels() PixelRect {
	return info.pixelRect(info.Viewport, false)
}

// ClipRectInPixels returns the [Info.ClipRect] in pixels,
// clamped to the screen.
func (info Info) ClipRectInPixels() PixelRect {
	return info.pixelRect(info.ClipRect, true)
}

func (info Info) pixelRect(r math32.Box2, clamp bool) PixelRect {
	ppp := info.PixelsPerPoint
	if ppp <= 0 {
		ppp = 1
	}
	left := int(math32.Round(r.Min.X * ppp))
	top := int(math32.Round(r.Min.Y * ppp))
	right := int(math32.Round(r.Max.X * ppp))
	bottom := int(math32.Round(r.Max.Y * ppp))
	if clamp {
		left = min(max(left, 0), info.ScreenSize.X)
		right = min(max(right, 0), info.ScreenSize.X)
		top = min(max(top, 0), info.ScreenSize.Y)
		bottom = min(max(bottom, 0), info.ScreenSize.Y)
	}
	right = max(right, left)
	bottom = max(bottom, top)
	return PixelRect{
		LeftPx:       left,
		TopPx:        top,
		FromBottomPx: info.ScreenSize.Y - bottom,
		WidthPx:      right - left,
		HeightPx:     bottom - top,
	}
}

// Viewport returns the rectangle as a [threed.Viewport].
func (pr PixelRect) Viewport() threed.Viewport {
	return threed.Viewport{X: pr.LeftPx, Y: pr.FromBottomPx, Width: pr.WidthPx, Height: pr.HeightPx}
}

// ScissorBox returns the rectangle as a [threed.ScissorBox].
func (pr PixelRect) ScissorBox() threed.ScissorBox {
	return threed.ScissorBox(pr.Viewport())
}

// Painter gives a paint callback access to the host's GPU
// and the target it should draw into.
type Painter interface {

	// GPU returns the host GPU, or nil if there is none.
	GPU() *gpu.GPU

	// Device returns the host's logical GPU device, or nil.
	Device() *gpu.Device

	// IntermediateTarget returns the target the host wants callbacks
	// to draw into, or nil if they should draw to the screen.
	IntermediateTarget() threed.Target
}

// TargetPainter is a [Painter] without a GPU that always hands out
// the same target, for headless rendering.
type TargetPainter struct {
	Target threed.Target
}

func (tp *TargetPainter) GPU() *gpu.GPU                     { return nil }
func (tp *TargetPainter) Device() *gpu.Device               { return nil }
func (tp *TargetPainter) IntermediateTarget() threed.Target { return tp.Target }

// Func is the function of a [Callback].
type Func func(info Info, p Painter)

// Callback is a [Func] tagged with the region, in points,
// that it paints.
type Callback struct {
	Rect math32.Box2
	Func Func
}

// List is the queue of callbacks for the next frame.
// It is safe for concurrent use.
type List struct {
	mu        sync.Mutex
	callbacks []Callback
}

// Add queues a callback.
func (ls *List) Add(cb Callback) {
	ls.mu.Lock()
	ls.callbacks = append(ls.callbacks, cb)
	ls.mu.Unlock()
}

// Drain returns the queued callbacks in the order they were added,
// and empties the queue.
func (ls *List) Drain() []Callback {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	cbs := ls.callbacks
	ls.callbacks = nil
	return cbs
}

// Len returns the number of queued callbacks.
func (ls *List) Len() int {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return len(ls.callbacks)
}

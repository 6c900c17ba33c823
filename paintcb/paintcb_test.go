// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package paintcb

import (
	"image"
	"sync"
	"testing"

	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"

	"cogentcore.org/custom3d/threed"
)

func TestViewportInPixels(t *testing.T) {
	info := Info{
		Viewport:       math32.B2(10, 20, 266, 276),
		ClipRect:       math32.B2(10, 20, 266, 100),
		PixelsPerPoint: 2,
		ScreenSize:     image.Pt(1100, 1220),
	}
	vp := info.ViewportInPixels()
	assert.Equal(t, PixelRect{LeftPx: 20, TopPx: 40, FromBottomPx: 1220 - 552, WidthPx: 512, HeightPx: 512}, vp)
	assert.Equal(t, threed.Viewport{X: 20, Y: 668, Width: 512, Height: 512}, vp.Viewport())

	cr := info.ClipRectInPixels()
	assert.Equal(t, 160, cr.HeightPx)
	assert.Equal(t, 1220-200, cr.FromBottomPx)
	assert.Equal(t, threed.ScissorBox{X: 20, Y: 1020, Width: 512, Height: 160}, cr.ScissorBox())
}

func TestPixelRectRounding(t *testing.T) {
	info := Info{
		Viewport:       math32.B2(0.3, 0.6, 10.2, 10.7),
		PixelsPerPoint: 1.5,
		ScreenSize:     image.Pt(100, 100),
	}
	vp := info.ViewportInPixels()
	// 0.45 -> 0, 0.9 -> 1, 15.3 -> 15, 16.05 -> 16
	assert.Equal(t, PixelRect{LeftPx: 0, TopPx: 1, FromBottomPx: 84, WidthPx: 15, HeightPx: 15}, vp)

	info.PixelsPerPoint = 0
	assert.Equal(t, 10, info.ViewportInPixels().WidthPx)
}

func TestClipRectClamped(t *testing.T) {
	info := Info{
		Viewport:       math32.B2(-50, 80, 150, 280),
		ClipRect:       math32.B2(-50, 80, 150, 280),
		PixelsPerPoint: 1,
		ScreenSize:     image.Pt(100, 200),
	}
	vp := info.ViewportInPixels()
	assert.Equal(t, -50, vp.LeftPx)
	assert.Equal(t, 200, vp.WidthPx)
	assert.Equal(t, -80, vp.FromBottomPx)

	cr := info.ClipRectInPixels()
	assert.Equal(t, PixelRect{LeftPx: 0, TopPx: 80, FromBottomPx: 0, WidthPx: 100, HeightPx: 120}, cr)

	info.ClipRect = math32.B2(300, 300, 400, 400)
	assert.True(t, info.ClipRectInPixels().ScissorBox().Empty())
}

func TestList(t *testing.T) {
	var ls List
	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ls.Add(Callback{Rect: math32.B2(0, 0, float32(i), 1)})
		}()
	}
	wg.Wait()
	assert.Equal(t, 10, ls.Len())
	cbs := ls.Drain()
	assert.Len(t, cbs, 10)
	assert.Equal(t, 0, ls.Len())
	assert.Empty(t, ls.Drain())

	calls := 0
	ls.Add(Callback{Func: func(info Info, p Painter) { calls++ }})
	for _, cb := range ls.Drain() {
		cb.Func(Info{}, &TargetPainter{})
	}
	assert.Equal(t, 1, calls)
}

func TestTargetPainter(t *testing.T) {
	it := threed.NewImageTarget(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	var p Painter = &TargetPainter{Target: it}
	assert.Nil(t, p.GPU())
	assert.Nil(t, p.Device())
	assert.Same(t, it, p.IntermediateTarget())
}

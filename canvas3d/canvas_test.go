// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas3d

import (
	"image"
	"testing"

	"cogentcore.org/core/core"
	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"

	"cogentcore.org/custom3d/paintcb"
	"cogentcore.org/custom3d/threed"
)

func TestCallbackInfos(t *testing.T) {
	cbs := []paintcb.Callback{
		{Rect: math32.B2(10, 20, 522, 532)},
		{Rect: math32.B2(600, 0, 700, 100)},
	}
	clip := math32.B2(10, 20, 522, 300)
	infos := callbackInfos(cbs, clip, image.Pt(550, 610))
	assert.Len(t, infos, 2)

	info := infos[0]
	assert.Equal(t, cbs[0].Rect, info.Viewport)
	assert.Equal(t, math32.B2(10, 20, 522, 300), info.ClipRect)
	assert.Equal(t, float32(1), info.PixelsPerPoint)
	assert.Equal(t, image.Pt(550, 610), info.ScreenSize)
	assert.Equal(t, threed.Viewport{X: 10, Y: 78, Width: 512, Height: 512}, info.ViewportInPixels().Viewport())

	// entirely outside the clip rect: nothing may be drawn
	assert.True(t, infos[1].ClipRectInPixels().ScissorBox().Empty())
}

func TestCanvasDrag(t *testing.T) {
	b := core.NewBody()
	cv := NewCanvas(b)
	assert.Equal(t, math32.Vec2(512, 512), cv.Size)

	var total math32.Vector2
	cv.OnDrag(func(delta math32.Vector2) { total = total.Add(delta) })
	cv.Drag(math32.Vec2(100, 5))
	cv.Drag(math32.Vec2(-30, 0))
	assert.Equal(t, math32.Vec2(70, 5), total)

	painted := 0
	cv.OnPaint(func(cv *Canvas) {
		painted++
		cv.Callbacks.Add(paintcb.Callback{Rect: cv.Rect()})
	})
	cv.paint()
	assert.Equal(t, 1, painted)
	assert.Equal(t, 1, cv.Callbacks.Len())

	cv.SetSize(math32.Vec2(256, 128))
	assert.Equal(t, math32.Vec2(256, 128), cv.Size)
}

func TestFrameCallbacksKeepLast(t *testing.T) {
	b := core.NewBody()
	cv := NewCanvas(b)
	assert.Empty(t, cv.frameCallbacks())

	first := paintcb.Callback{Rect: math32.B2(0, 0, 10, 10)}
	cv.Callbacks.Add(first)
	assert.Equal(t, []paintcb.Callback{first}, cv.frameCallbacks())

	// frames where the canvas did not render repaint the last callbacks
	assert.Equal(t, []paintcb.Callback{first}, cv.frameCallbacks())
	assert.Equal(t, []paintcb.Callback{first}, cv.frameCallbacks())

	second := paintcb.Callback{Rect: math32.B2(5, 5, 20, 20)}
	cv.Callbacks.Add(second)
	assert.Equal(t, []paintcb.Callback{second}, cv.frameCallbacks())
	assert.Equal(t, 0, cv.Callbacks.Len())
}

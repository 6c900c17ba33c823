// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package renderer

import (
	"errors"
	"image"
	"image/color"
	"runtime"
	"sync"
	"testing"

	"cogentcore.org/core/gpu"
	"cogentcore.org/core/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/custom3d/base/threadlocal"
	"cogentcore.org/custom3d/paintcb"
	"cogentcore.org/custom3d/threed"
)

// brokenPainter has a GPU but no device.
type brokenPainter struct{}

func (bp *brokenPainter) GPU() *gpu.GPU                     { return &gpu.GPU{} }
func (bp *brokenPainter) Device() *gpu.Device               { return nil }
func (bp *brokenPainter) IntermediateTarget() threed.Target { return nil }

func onLockedThread(fn func()) {
	done := make(chan struct{})
	go func() {
		runtime.LockOSThread()
		defer close(done)
		renderers.Delete()
		fn()
		renderers.Delete()
	}()
	<-done
}

func TestTriangle(t *testing.T) {
	ms := Triangle()
	assert.NoError(t, ms.Validate())
	assert.Equal(t, []math32.Vector3{
		math32.Vec3(0.5, -0.5, 0),
		math32.Vec3(-0.5, -0.5, 0),
		math32.Vec3(0, 0.5, 0),
	}, ms.Positions)
	assert.Equal(t, []color.RGBA{
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
	}, ms.Colors)
	assert.Equal(t, Triangle(), ms)
}

func TestModelTransform(t *testing.T) {
	r := &Renderer{Context: threed.NewHeadlessContext()}
	md, err := r.Model(2)
	require.NoError(t, err)
	assert.Equal(t, *threed.RotationY(2), md.Transform)

	// fresh each frame: a later model does not accumulate
	md2, err := r.Model(2)
	require.NoError(t, err)
	assert.Equal(t, md.Transform, md2.Transform)
	assert.NotSame(t, md, md2)
}

func TestNewErrors(t *testing.T) {
	_, err := New(&brokenPainter{})
	var ie *threed.InitError
	assert.True(t, errors.As(err, &ie))
	assert.ErrorIs(t, err, threed.ErrNoDevice)

	r, err := New(&paintcb.TargetPainter{})
	require.NoError(t, err)
	assert.True(t, r.Context.IsHeadless())
}

func TestWithOncePerThread(t *testing.T) {
	onLockedThread(func() {
		p := &paintcb.TargetPainter{}
		var first, second *Renderer
		require.NoError(t, With(p, func(r *Renderer) { first = r }))
		require.NoError(t, With(p, func(r *Renderer) { second = r }))
		assert.NotNil(t, first)
		assert.Same(t, first, second)
	})
}

func TestWithFromFrameGoroutines(t *testing.T) {
	// each frame paints from a new goroutine, as a window does
	var th threadlocal.Thread
	p := &paintcb.TargetPainter{}
	seen := map[*Renderer]bool{}
	var wg sync.WaitGroup
	for range 200 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			th.Run(func() {
				assert.NoError(t, With(p, func(r *Renderer) { seen[r] = true }))
			})
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 1)
	th.Run(func() { renderers.Delete() })
}

func TestWithInitErrorNotCached(t *testing.T) {
	onLockedThread(func() {
		called := false
		err := With(&brokenPainter{}, func(r *Renderer) { called = true })
		assert.ErrorIs(t, err, threed.ErrNoDevice)
		assert.False(t, called)
		_, ok := renderers.Get()
		assert.False(t, ok)

		// a later frame retries
		require.NoError(t, With(&paintcb.TargetPainter{}, func(r *Renderer) { called = true }))
		assert.True(t, called)
	})
}

func TestCustomPaint(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 200))
	it := threed.NewImageTarget(img)
	p := &paintcb.TargetPainter{Target: it}
	r, err := New(p)
	require.NoError(t, err)
	r.Context.EnableSRGB()

	// a 100x100 point region at (50, 50), with the lower half clipped away
	info := paintcb.Info{
		Viewport:       math32.B2(50, 50, 150, 150),
		ClipRect:       math32.B2(50, 50, 150, 100),
		PixelsPerPoint: 1,
		ScreenSize:     img.Rect.Size(),
	}
	// background the host drew first
	bg := threed.ClearColor(0.2, 0.2, 0.2, 1)
	require.NoError(t, it.ClearPartially(threed.NewScissorBoxAtOrigin(200, 200), bg))

	require.NoError(t, r.CustomPaint(info, p, 0))
	assert.False(t, r.Context.SRGB())

	gray := color.RGBA{51, 51, 51, 255}
	// the top vertex lands at about (100, 70), inside the clip rect
	c := img.RGBAAt(100, 75)
	assert.NotEqual(t, gray, c)
	assert.Greater(t, c.B, c.R)
	// the centroid at about (100, 110) is clipped away
	assert.Equal(t, gray, img.RGBAAt(100, 110))
	assert.Equal(t, float32(1), it.DepthAt(100, 110))
	// outside the region nothing changes
	assert.Equal(t, gray, img.RGBAAt(10, 10))
	assert.Equal(t, float32(1), it.DepthAt(10, 10))
	assert.Less(t, it.DepthAt(100, 75), float32(1))
}

func TestRenderAngles(t *testing.T) {
	r := &Renderer{Context: threed.NewHeadlessContext()}
	render := func(angle float32) *image.RGBA {
		img := image.NewRGBA(image.Rect(0, 0, 64, 64))
		it := threed.NewImageTarget(img)
		require.NoError(t, r.Render(it, threed.NewViewportAtOrigin(64, 64), threed.NewScissorBoxAtOrigin(64, 64), angle))
		return img
	}
	// the triangle is symmetric about the Y axis except for its colors,
	// so a half turn mirrors red and green
	a := render(0)
	b := render(math32.Pi)
	ca := a.RGBAAt(40, 40)
	cb := b.RGBAAt(23, 40)
	assert.InDelta(t, int(ca.R), int(cb.R), 16)
	assert.InDelta(t, int(ca.G), int(cb.G), 16)

	// edge on, almost nothing is drawn
	c := render(math32.Pi / 2)
	drawn := 0
	for i := 3; i < len(c.Pix); i += 4 {
		if c.Pix[i] != 0 {
			drawn++
		}
	}
	assert.Less(t, drawn, 64)
}

// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package threed

import (
	"image"

	"cogentcore.org/core/gpu"
)

// Target is a color and depth buffer that models are rendered into.
// All operations are restricted to a [ScissorBox]; pixels outside of it
// are never modified.
type Target interface {

	// Size returns the size of the target in pixels.
	Size() image.Point

	// ClearPartially clears the channels selected by cs
	// inside the scissor box.
	ClearPartially(sb ScissorBox, cs ClearState) error

	// RenderPartially renders the models as seen by the camera,
	// writing only pixels inside the scissor box, with depth testing.
	RenderPartially(sb ScissorBox, cam *Camera, models ...*Model) error

	// Release gives the underlying buffer back to its owner.
	// The target must not be used afterwards, but the buffer it wraps
	// keeps its contents.
	Release()
}

// Screen returns the default target of the context, of the given size.
// It is made on first use and resized as needed afterwards. It is owned
// by the context: calling Release on it does nothing. For a headless
// context it is an [ImageTarget]; otherwise it is an offscreen GPU render
// texture on the context's device. Nothing composites that texture onto
// a window, so on a GPU context what is drawn into the screen is not
// shown; hosts that display GPU output pass an intermediate target.
func Screen(cx *Context, width, height int) (Target, error) {
	sz := image.Pt(width, height)
	if cx.screen != nil && cx.screen.Size() == sz {
		return cx.screen, nil
	}
	if cx.IsHeadless() {
		if it, ok := cx.screen.(*ImageTarget); ok {
			it.SetSize(sz)
			return it, nil
		}
		cx.screen = NewImageTarget(image.NewRGBA(image.Rectangle{Max: sz}))
		return cx.screen, nil
	}
	if gt, ok := cx.screen.(*GPUTarget); ok {
		gt.SetSize(sz)
		return gt, nil
	}
	gt, err := NewGPUTarget(cx, sz, 4, gpu.Depth32)
	if err != nil {
		return nil, err
	}
	gt.owner = cx
	cx.screen = gt
	return gt, nil
}

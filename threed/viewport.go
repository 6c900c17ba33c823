// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package threed

import (
	"fmt"
	"image"
)

// Viewport is the pixel rectangle of a target that receives the
// projected output of a [Camera]. X and Y are the lower left corner,
// with Y measured up from the bottom edge of the target.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// NewViewportAtOrigin returns a [Viewport] covering a whole
// target of the given size.
func NewViewportAtOrigin(width, height int) Viewport {
	return Viewport{Width: width, Height: height}
}

func (vp Viewport) String() string {
	return fmt.Sprintf("(%d, %d) %dx%d", vp.X, vp.Y, vp.Width, vp.Height)
}

// Empty returns whether the viewport has no area.
func (vp Viewport) Empty() bool {
	return vp.Width <= 0 || vp.Height <= 0
}

// Aspect returns the width / height ratio, or 1 if the viewport is empty.
func (vp Viewport) Aspect() float32 {
	if vp.Empty() {
		return 1
	}
	return float32(vp.Width) / float32(vp.Height)
}

// Intersect returns the part of the viewport that is also in other.
func (vp Viewport) Intersect(other Viewport) Viewport {
	x0, y0 := max(vp.X, other.X), max(vp.Y, other.Y)
	x1 := min(vp.X+vp.Width, other.X+other.Width)
	y1 := min(vp.Y+vp.Height, other.Y+other.Height)
	if x1 <= x0 || y1 <= y0 {
		return Viewport{}
	}
	return Viewport{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// ImageRect returns the viewport as an [image.Rectangle] in the
// top-left origin coordinates of a target with the given height.
func (vp Viewport) ImageRect(targetHeight int) image.Rectangle {
	top := targetHeight - (vp.Y + vp.Height)
	return image.Rect(vp.X, top, vp.X+vp.Width, top+vp.Height)
}

// ViewportFromImageRect returns the [Viewport] for the given top-left
// origin rectangle in a target with the given height.
func ViewportFromImageRect(r image.Rectangle, targetHeight int) Viewport {
	return Viewport{X: r.Min.X, Y: targetHeight - r.Max.Y, Width: r.Dx(), Height: r.Dy()}
}

// ScissorBox is the pixel rectangle that subsequent clear and render
// operations on a [Target] are restricted to. It has the same bottom-left
// origin layout as a [Viewport].
type ScissorBox Viewport

// NewScissorBoxAtOrigin returns a [ScissorBox] covering a whole
// target of the given size.
func NewScissorBoxAtOrigin(width, height int) ScissorBox {
	return ScissorBox{Width: width, Height: height}
}

func (sb ScissorBox) String() string { return Viewport(sb).String() }

// Empty returns whether the scissor box has no area.
func (sb ScissorBox) Empty() bool { return Viewport(sb).Empty() }

// Intersect returns the part of the scissor box that is also in other.
func (sb ScissorBox) Intersect(other ScissorBox) ScissorBox {
	return ScissorBox(Viewport(sb).Intersect(Viewport(other)))
}

// ImageRect returns the scissor box as an [image.Rectangle] in the
// top-left origin coordinates of a target with the given height.
func (sb ScissorBox) ImageRect(targetHeight int) image.Rectangle {
	return Viewport(sb).ImageRect(targetHeight)
}

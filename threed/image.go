// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package threed

import (
	"image"

	"cogentcore.org/core/math32"
)

// ImageTarget is a [Target] that rasterizes in software into an
// [image.RGBA] with a float32 depth buffer. It is used for headless
// rendering and for testing.
type ImageTarget struct {

	// Image receives the color output.
	Image *image.RGBA

	// Depth has one value per pixel of Image, in row order.
	// Depth values range from 0 (near) to 1 (far).
	Depth []float32
}

// NewImageTarget returns a new [ImageTarget] drawing into img,
// with the depth buffer cleared to 1.
func NewImageTarget(img *image.RGBA) *ImageTarget {
	it := &ImageTarget{Image: img}
	it.resetDepth()
	return it
}

func (it *ImageTarget) resetDepth() {
	n := it.Image.Rect.Dx() * it.Image.Rect.Dy()
	if cap(it.Depth) >= n {
		it.Depth = it.Depth[:n]
	} else {
		it.Depth = make([]float32, n)
	}
	for i := range it.Depth {
		it.Depth[i] = 1
	}
}

// SetSize replaces the image with a new one of the given size
// if the size differs.
func (it *ImageTarget) SetSize(sz image.Point) {
	if it.Size() == sz {
		return
	}
	it.Image = image.NewRGBA(image.Rectangle{Max: sz})
	it.resetDepth()
}

func (it *ImageTarget) Size() image.Point {
	return it.Image.Rect.Size()
}

// DepthAt returns the depth value at pixel (x, y) of the image.
func (it *ImageTarget) DepthAt(x, y int) float32 {
	r := it.Image.Rect
	return it.Depth[(y-r.Min.Y)*r.Dx()+(x-r.Min.X)]
}

// scissorRect returns the scissor box in image coordinates,
// clipped to the image.
func (it *ImageTarget) scissorRect(sb ScissorBox) image.Rectangle {
	r := it.Image.Rect
	return sb.ImageRect(r.Dy()).Add(r.Min).Intersect(r)
}

func (it *ImageTarget) ClearPartially(sb ScissorBox, cs ClearState) error {
	r := it.scissorRect(sb)
	if r.Empty() {
		return nil
	}
	hasColor := cs.HasColor()
	ir := it.Image.Rect
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if hasColor {
				pi := it.Image.PixOffset(x, y)
				pix := it.Image.Pix[pi : pi+4 : pi+4]
				clearChannel(&pix[0], cs.Red)
				clearChannel(&pix[1], cs.Green)
				clearChannel(&pix[2], cs.Blue)
				clearChannel(&pix[3], cs.Alpha)
			}
			if cs.Depth != nil {
				it.Depth[(y-ir.Min.Y)*ir.Dx()+(x-ir.Min.X)] = *cs.Depth
			}
		}
	}
	return nil
}

func clearChannel(c *uint8, v *float32) {
	if v == nil {
		return
	}
	*c = toUint8(*v)
}

func toUint8(v float32) uint8 {
	return uint8(math32.Clamp(v, 0, 1)*255 + 0.5)
}

// vertex is a vertex transformed into window coordinates.
type vertex struct {
	x, y, z float32 // window position and depth in [0, 1]
	invW    float32 // 1/w for perspective correct interpolation
	color   math32.Vector4
}

func (it *ImageTarget) RenderPartially(sb ScissorBox, cam *Camera, models ...*Model) error {
	clip := it.scissorRect(sb)
	ir := it.Image.Rect
	vr := cam.Viewport.ImageRect(ir.Dy()).Add(ir.Min)
	if clip.Empty() || vr.Empty() {
		return nil
	}
	viewProj := cam.ViewProjection()
	for _, md := range models {
		if err := md.Mesh.Validate(); err != nil {
			return err
		}
		var mvp math32.Matrix4
		mvp.MulMatrices(&viewProj, &md.Transform)
		pos := md.Mesh.Positions
		for t := 0; t+2 < len(pos); t += 3 {
			var vs [3]vertex
			visible := true
			for k := range 3 {
				cp := math32.Vector4FromVector3(pos[t+k], 1).MulMatrix4(&mvp)
				if cp.W <= 0 {
					visible = false
					break
				}
				ndc := cp.PerspDiv()
				vs[k] = vertex{
					x:     float32(vr.Min.X) + (ndc.X+1)*0.5*float32(vr.Dx()),
					y:     float32(vr.Min.Y) + (1-ndc.Y)*0.5*float32(vr.Dy()),
					z:     (ndc.Z + 1) * 0.5,
					invW:  1 / cp.W,
					color: md.colors[t+k],
				}
			}
			if visible {
				it.rasterize(vs, clip)
			}
		}
	}
	return nil
}

// edge returns the signed area term of point (px, py)
// relative to the edge from a to b.
func edge(a, b vertex, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

// rasterize fills the triangle within clip, sampling at pixel centers,
// with perspective correct color interpolation and a less-than depth test.
// Both windings are drawn.
func (it *ImageTarget) rasterize(vs [3]vertex, clip image.Rectangle) {
	area := edge(vs[0], vs[1], vs[2].x, vs[2].y)
	if area == 0 {
		return
	}
	minX := math32.Min(vs[0].x, math32.Min(vs[1].x, vs[2].x))
	maxX := math32.Max(vs[0].x, math32.Max(vs[1].x, vs[2].x))
	minY := math32.Min(vs[0].y, math32.Min(vs[1].y, vs[2].y))
	maxY := math32.Max(vs[0].y, math32.Max(vs[1].y, vs[2].y))
	bb := image.Rect(int(math32.Floor(minX)), int(math32.Floor(minY)), int(math32.Ceil(maxX))+1, int(math32.Ceil(maxY))+1).Intersect(clip)
	ir := it.Image.Rect
	for y := bb.Min.Y; y < bb.Max.Y; y++ {
		py := float32(y) + 0.5
		for x := bb.Min.X; x < bb.Max.X; x++ {
			px := float32(x) + 0.5
			w0 := edge(vs[1], vs[2], px, py) / area
			w1 := edge(vs[2], vs[0], px, py) / area
			w2 := edge(vs[0], vs[1], px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*vs[0].z + w1*vs[1].z + w2*vs[2].z
			if z < 0 || z > 1 {
				continue
			}
			di := (y-ir.Min.Y)*ir.Dx() + (x - ir.Min.X)
			if z >= it.Depth[di] {
				continue
			}
			p0, p1, p2 := w0*vs[0].invW, w1*vs[1].invW, w2*vs[2].invW
			ps := p0 + p1 + p2
			c := vs[0].color.MulScalar(p0 / ps).Add(vs[1].color.MulScalar(p1 / ps)).Add(vs[2].color.MulScalar(p2 / ps))
			it.Depth[di] = z
			it.blend(x, y, c)
		}
	}
}

// blend composites c over the pixel at (x, y).
func (it *ImageTarget) blend(x, y int, c math32.Vector4) {
	pi := it.Image.PixOffset(x, y)
	pix := it.Image.Pix[pi : pi+4 : pi+4]
	a := math32.Clamp(c.W, 0, 1)
	if a >= 1 {
		pix[0], pix[1], pix[2], pix[3] = toUint8(c.X), toUint8(c.Y), toUint8(c.Z), 255
		return
	}
	// image.RGBA is alpha premultiplied
	ia := 1 - a
	pix[0] = toUint8(c.X*a + float32(pix[0])/255*ia)
	pix[1] = toUint8(c.Y*a + float32(pix[1])/255*ia)
	pix[2] = toUint8(c.Z*a + float32(pix[2])/255*ia)
	pix[3] = toUint8(a + float32(pix[3])/255*ia)
}

// Release does nothing: the image stays owned by whoever made the target.
func (it *ImageTarget) Release() {}

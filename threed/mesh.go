// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package threed

import (
	"errors"
	"fmt"
	"image/color"

	"cogentcore.org/core/gpu"
	"cogentcore.org/core/math32"
)

// ErrInvalidMesh is returned for a [CPUMesh] that cannot be rendered.
var ErrInvalidMesh = errors.New("threed: invalid mesh")

// CPUMesh is a triangle list held in host memory: every three
// consecutive positions form one triangle.
type CPUMesh struct {

	// Positions are the vertex positions.
	Positions []math32.Vector3

	// Colors are the optional per-vertex colors. If set, there must be
	// one for each position. Vertices without colors are white.
	Colors []color.RGBA
}

// Validate returns an error wrapping [ErrInvalidMesh] if the mesh
// has no triangles, a partial triangle, or a mismatched color count.
func (ms *CPUMesh) Validate() error {
	n := len(ms.Positions)
	switch {
	case n == 0:
		return fmt.Errorf("%w: no positions", ErrInvalidMesh)
	case n%3 != 0:
		return fmt.Errorf("%w: %d positions is not a whole number of triangles", ErrInvalidMesh, n)
	case len(ms.Colors) > 0 && len(ms.Colors) != n:
		return fmt.Errorf("%w: %d colors for %d positions", ErrInvalidMesh, len(ms.Colors), n)
	}
	return nil
}

// NumTriangles returns the number of triangles in the mesh.
func (ms *CPUMesh) NumTriangles() int {
	return len(ms.Positions) / 3
}

// VertexColor returns the color of vertex i.
func (ms *CPUMesh) VertexColor(i int) color.RGBA {
	if i < len(ms.Colors) {
		return ms.Colors[i]
	}
	return color.RGBA{255, 255, 255, 255}
}

// ColorMaterial shades a mesh with its interpolated per-vertex colors,
// without lighting. Tint is multiplied with the vertex colors;
// the zero value means no tint.
type ColorMaterial struct {
	Tint color.RGBA
}

// apply returns the vertex color c as normalized RGBA,
// tinted and converted for output according to srgb.
func (cm ColorMaterial) apply(c color.RGBA, srgb bool) math32.Vector4 {
	v := math32.Vec4(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255)
	if cm.Tint != (color.RGBA{}) {
		v = v.Mul(math32.Vec4(float32(cm.Tint.R)/255, float32(cm.Tint.G)/255, float32(cm.Tint.B)/255, float32(cm.Tint.A)/255))
	}
	if srgb {
		r, g, b := gpu.SRGBFromLinear(v.X, v.Y, v.Z)
		// the conversion can overshoot 1 at full intensity
		v.X, v.Y, v.Z = math32.Clamp(r, 0, 1), math32.Clamp(g, 0, 1), math32.Clamp(b, 0, 1)
	}
	return v
}

// Model is a mesh with a material and a model transform,
// ready to be rendered into a [Target].
type Model struct {

	// Mesh is the geometry.
	Mesh *CPUMesh

	// Material shades the mesh.
	Material ColorMaterial

	// Transform is the model to world transform.
	Transform math32.Matrix4

	// colors are the shaded vertex colors, computed in [NewModel].
	colors []math32.Vector4
}

// NewModel returns a new [Model] for the given mesh and material with
// an identity transform, computing its output colors for the given
// context.
func NewModel(cx *Context, ms *CPUMesh, mat ColorMaterial) (*Model, error) {
	if err := ms.Validate(); err != nil {
		return nil, err
	}
	md := &Model{Mesh: ms, Material: mat}
	md.Transform.SetIdentity()
	md.colors = make([]math32.Vector4, len(ms.Positions))
	for i := range ms.Positions {
		md.colors[i] = mat.apply(ms.VertexColor(i), cx.SRGB())
	}
	return md, nil
}

// SetTransform sets the model transform.
func (md *Model) SetTransform(m *math32.Matrix4) *Model {
	md.Transform.CopyFrom(m)
	return md
}

// RotationY returns the matrix for a rotation of angle radians
// about the Y axis.
func RotationY(angle float32) *math32.Matrix4 {
	m := &math32.Matrix4{}
	m.SetRotationY(angle)
	return m
}

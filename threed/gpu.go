// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package threed

import (
	_ "embed"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"unsafe"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/gpu"
	"cogentcore.org/core/math32"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed shaders/vertexcolor.wgsl
var vertexColorShader string

// MaxGPUModels is the number of models a [GPUTarget] can render
// in one call to RenderPartially.
const MaxGPUModels = 8

// gpuCamera is the uniform camera struct, laid out as in the shader.
type gpuCamera struct {
	Model      math32.Matrix4
	View       math32.Matrix4
	Projection math32.Matrix4
}

// GPUTarget is a [Target] that renders on the GPU into a
// [gpu.RenderTexture], which the host then composites onto its surface.
// The texture is private to the target, so the host only ever
// sees the region it composites.
type GPUTarget struct {

	// RenderTexture is the color and depth texture rendered into.
	RenderTexture *gpu.RenderTexture

	// System is the graphics system rendering into RenderTexture.
	System *gpu.GraphicsSystem

	pipeline *gpu.GraphicsPipeline

	// pending is a clear requested by ClearPartially,
	// applied at the start of the next render pass.
	pending *ClearState

	// owner is the context holding this target as its screen.
	// Release is a no-op while it is set.
	owner *Context

	// clearedTo is the color of the last color clear.
	clearedTo color.RGBA

	// drawn is whether anything was rendered since the last color clear.
	drawn bool
}

// DepthFormat returns the depth buffer type for the given number of bits,
// which must be 24 or 32.
func DepthFormat(bits int) (gpu.Types, error) {
	switch bits {
	case 32:
		return gpu.Depth32, nil
	case 24:
		return gpu.Depth24Stencil8, nil
	}
	return gpu.UndefinedType, fmt.Errorf("threed: unsupported depth buffer size %d", bits)
}

// NewGPUTarget returns a new [GPUTarget] of the given size on the
// context's device, with the given number of multisamples
// and depth buffer type (see [DepthFormat]).
func NewGPUTarget(cx *Context, size image.Point, samples int, depth gpu.Types) (*GPUTarget, error) {
	if cx.IsHeadless() {
		return nil, &InitError{Err: ErrNoGPU}
	}
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("threed: invalid GPU target size %v", size)
	}
	gt := &GPUTarget{}
	gt.RenderTexture = gpu.NewRenderTexture(cx.GPU, cx.Device, size, samples, depth)
	gt.System = gpu.NewGraphicsSystem(cx.GPU, "threed", gt.RenderTexture)
	gt.config()
	slog.Debug("threed: new GPU target", "size", size, "samples", samples)
	return gt, nil
}

func (gt *GPUTarget) config() {
	sy := gt.System
	pl := sy.AddGraphicsPipeline("vertexcolor")
	pl.SetCullMode(wgpu.CullModeNone)
	sy.SetClearColor(color.RGBA{0, 0, 0, 0})
	sy.SetClearDepthStencil(1, 0)

	sh := pl.AddShader("vertexcolor")
	sh.OpenCode(vertexColorShader)
	pl.AddEntry(sh, gpu.VertexShader, "vs_main")
	pl.AddEntry(sh, gpu.FragmentShader, "fs_main")

	vgp := sy.Vars().AddVertexGroup()
	ugp := sy.Vars().AddGroup(gpu.Uniform)

	vgp.Add("Pos", gpu.Float32Vector3, 0, gpu.VertexShader)
	vgp.Add("Color", gpu.Float32Vector4, 0, gpu.VertexShader)
	idxv := vgp.Add("Index", gpu.Uint16, 0, gpu.VertexShader)
	idxv.Role = gpu.Index

	ugp.AddStruct("Camera", int(unsafe.Sizeof(gpuCamera{})), 1, gpu.VertexShader)

	vgp.SetNValues(MaxGPUModels)
	ugp.SetNValues(MaxGPUModels)
	sy.Config()
	gt.pipeline = pl
}

func (gt *GPUTarget) Size() image.Point {
	return gt.RenderTexture.Format.Size
}

// SetSize resizes the render texture if the size differs.
func (gt *GPUTarget) SetSize(sz image.Point) {
	if gt.Size() == sz {
		return
	}
	gt.System.SetSize(sz)
}

// Texture returns the texture holding the most recent render,
// for compositing onto the host surface.
func (gt *GPUTarget) Texture() (*gpu.Texture, error) {
	return gt.RenderTexture.GetCurrentTextureObject()
}

// ClearPartially records the clear, which is applied by the
// render pass of the next RenderPartially. Clears recorded before
// that are merged, later values winning.
func (gt *GPUTarget) ClearPartially(sb ScissorBox, cs ClearState) error {
	if gt.scissorRect(sb).Empty() {
		return nil
	}
	if gt.pending == nil {
		gt.pending = &cs
		return nil
	}
	gt.pending.merge(cs)
	return nil
}

func (gt *GPUTarget) scissorRect(sb ScissorBox) image.Rectangle {
	sz := gt.Size()
	return sb.ImageRect(sz.Y).Intersect(image.Rectangle{Max: sz})
}

func (gt *GPUTarget) RenderPartially(sb ScissorBox, cam *Camera, models ...*Model) error {
	if len(models) > MaxGPUModels {
		return fmt.Errorf("threed: %d models exceeds the GPU target limit of %d", len(models), MaxGPUModels)
	}
	clip := gt.scissorRect(sb)
	sz := gt.Size()
	vr := cam.Viewport.ImageRect(sz.Y)
	if clip.Empty() || vr.Empty() {
		return nil
	}
	for i, md := range models {
		if err := gt.upload(i, cam, md); err != nil {
			return err
		}
	}

	sy := gt.System
	pending := gt.pending
	gt.pending = nil
	var rp *wgpu.RenderPassEncoder
	var err error
	if gt.clearPass(pending) {
		sy.SetClearColor(gt.clearedTo)
		depth := float32(1)
		if pending.HasDepth() {
			depth = *pending.Depth
		}
		sy.SetClearDepthStencil(depth, 0)
		rp, err = sy.BeginRenderPass()
	} else {
		rp, err = sy.BeginRenderPassNoClear()
	}
	if err != nil {
		return err
	}
	rp.SetViewport(float32(vr.Min.X), float32(vr.Min.Y), float32(vr.Dx()), float32(vr.Dy()), 0, 1)
	rp.SetScissorRect(uint32(clip.Min.X), uint32(clip.Min.Y), uint32(clip.Dx()), uint32(clip.Dy()))
	pl := gt.pipeline
	for i := range models {
		vs := sy.Vars()
		vs.SetCurrentValue(0, "Camera", i)
		vs.SetCurrentValue(gpu.VertexGroup, "Pos", i)
		vs.SetCurrentValue(gpu.VertexGroup, "Color", i)
		vs.SetCurrentValue(gpu.VertexGroup, "Index", i)
		if err := pl.BindPipeline(rp); errors.Log(err) != nil {
			rp.End()
			sy.EndRenderPass(rp)
			return err
		}
		pl.BindDrawIndexed(rp)
	}
	rp.End()
	sy.EndRenderPass(rp)
	gt.drawn = true
	return nil
}

// clearPass returns whether the pending clear needs a clearing render
// pass, which clears both color and depth. A depth only clear can use
// one while the color still holds the last clear color.
func (gt *GPUTarget) clearPass(pending *ClearState) bool {
	switch {
	case pending == nil:
		return false
	case pending.HasColor():
		gt.clearedTo = clearColor(*pending)
		gt.drawn = false
		return true
	case pending.HasDepth() && !gt.drawn:
		return true
	}
	if pending.HasDepth() {
		slog.Debug("threed: depth clear after drawing is not supported on the GPU, keeping depth")
	}
	return false
}

// upload writes the vertex data and camera of model md into value slot i.
func (gt *GPUTarget) upload(i int, cam *Camera, md *Model) error {
	if err := md.Mesh.Validate(); err != nil {
		return err
	}
	n := len(md.Mesh.Positions)
	pos := make([]float32, 0, 3*n)
	clr := make([]float32, 0, 4*n)
	idx := make([]uint16, n)
	for k, p := range md.Mesh.Positions {
		pos = append(pos, p.X, p.Y, p.Z)
		c := md.colors[k]
		// the render texture format is sRGB, which re-encodes on write
		r, g, b := gpu.SRGBToLinear(c.X, c.Y, c.Z)
		clr = append(clr, r, g, b, c.W)
		idx[k] = uint16(k)
	}
	vs := gt.System.Vars()
	if err := setValue(vs, gpu.VertexGroup, "Pos", i, pos); err != nil {
		return err
	}
	if err := setValue(vs, gpu.VertexGroup, "Color", i, clr); err != nil {
		return err
	}
	if err := setValue(vs, gpu.VertexGroup, "Index", i, idx); err != nil {
		return err
	}
	cv := gpuCamera{View: cam.View, Projection: cam.Projection}
	cv.Model.CopyFrom(&md.Transform)
	return setValue(vs, 0, "Camera", i, []gpuCamera{cv})
}

// setValue copies from into value i of the named variable in group.
func setValue[E any](vs *gpu.Vars, group int, name string, i int, from []E) error {
	vl, err := vs.ValueByIndex(group, name, i)
	if err != nil {
		return err
	}
	return gpu.SetValueFrom(vl, from)
}

func clearColor(cs ClearState) color.RGBA {
	ch := func(v *float32) uint8 {
		if v == nil {
			return 0
		}
		return toUint8(*v)
	}
	return color.RGBA{ch(cs.Red), ch(cs.Green), ch(cs.Blue), ch(cs.Alpha)}
}

// Release releases the graphics system and render texture,
// unless the target is the screen of a [Context], which
// releases it in [Context.Release].
func (gt *GPUTarget) Release() {
	if gt.owner != nil {
		return
	}
	if gt.System != nil {
		gt.System.Release()
		gt.System = nil
	}
	if gt.RenderTexture != nil {
		gt.RenderTexture.Release()
		gt.RenderTexture = nil
	}
}

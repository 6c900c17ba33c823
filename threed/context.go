// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package threed is a small immediate-mode 3D rendering layer on top of
// the [gpu] package. It renders a list of [Model]s, each a [CPUMesh]
// with a per-vertex color material, through a perspective [Camera] into
// a [Target], restricted to a [ScissorBox]. It is designed to be called
// from inside a host GUI's paint pass, drawing into a region of a
// render target that the host owns.
//
// A [Context] is bound to the GPU device it was made from and must only
// be used on the thread that created it.
package threed

import (
	"errors"
	"fmt"
	"log/slog"

	"cogentcore.org/core/gpu"
)

var (
	// ErrNoGPU is returned when a context is made without a GPU.
	ErrNoGPU = errors.New("threed: no GPU")

	// ErrNoDevice is returned when a context is made without a device.
	ErrNoDevice = errors.New("threed: no GPU device")
)

// InitError is returned when a [Context] cannot be made
// from the GPU handle provided by the host.
type InitError struct {

	// Err is the underlying reason.
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("threed: creating context: %v", e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// Context wraps a host GPU and device for rendering.
// A headless Context has neither and renders in software.
type Context struct {

	// GPU is the host GPU, nil for a headless context.
	GPU *gpu.GPU

	// Device is the logical device shared with the host,
	// nil for a headless context.
	Device *gpu.Device

	// srgb is whether output colors are converted from linear
	// to sRGB on write.
	srgb bool

	// screen is the default target returned by [Screen].
	screen Target
}

// NewContext returns a new [Context] that renders with the given
// GPU and device, which are typically those of the host window.
// A non-nil error is always an [*InitError].
func NewContext(gp *gpu.GPU, dev *gpu.Device) (*Context, error) {
	if gp == nil {
		return nil, &InitError{Err: ErrNoGPU}
	}
	if dev == nil {
		return nil, &InitError{Err: ErrNoDevice}
	}
	slog.Debug("threed: new context")
	return &Context{GPU: gp, Device: dev, srgb: true}, nil
}

// NewHeadlessContext returns a new [Context] without a GPU,
// for use with [ImageTarget]s.
func NewHeadlessContext() *Context {
	return &Context{}
}

// IsHeadless returns whether the context has no GPU.
func (cx *Context) IsHeadless() bool {
	return cx.GPU == nil
}

// SRGB returns whether output colors are currently converted
// from linear to sRGB when written.
func (cx *Context) SRGB() bool {
	return cx.srgb
}

// EnableSRGB turns on linear to sRGB conversion of output colors,
// which is the state of a GPU context after [NewContext].
func (cx *Context) EnableSRGB() {
	cx.srgb = true
}

// Release releases the screen target of the context, if any.
// The GPU and device belong to the host and are left alone.
func (cx *Context) Release() {
	if gt, ok := cx.screen.(*GPUTarget); ok {
		gt.owner = nil
		gt.Release()
	}
	cx.screen = nil
}

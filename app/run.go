// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"image"
	"log/slog"
	"runtime"

	"cogentcore.org/core/base/iox/imagex"
	"cogentcore.org/core/colors"
	"cogentcore.org/core/core"
	"cogentcore.org/core/math32"
	"golang.org/x/image/draw"

	"cogentcore.org/custom3d/paintcb"
	"cogentcore.org/custom3d/threed"
)

// Run runs the demo with the given config: it saves a snapshot
// if [Config.Snapshot] is set, and otherwise opens the window.
func Run(cfg *Config) error { //cli:cmd -root
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Save != "" {
		if err := cfg.SaveTOML(cfg.Save); err != nil {
			return err
		}
		slog.Info("saved config", "file", cfg.Save)
	}
	if cfg.Snapshot != "" {
		img, err := Snapshot(cfg)
		if err != nil {
			return err
		}
		return imagex.Save(img, cfg.Snapshot)
	}
	b := core.NewBody("Custom 3D painting")
	a := New()
	a.Angle = cfg.Angle
	a.MakeBody(b, cfg)
	b.RunMainWindow()
	return nil
}

// SnapshotRect returns the region of the canvas in a snapshot:
// centered in a window of the configured size.
func SnapshotRect(cfg *Config) math32.Box2 {
	sz := float32(cfg.CanvasSize)
	x := max(float32(cfg.Width)-sz, 0) / 2
	y := max(float32(cfg.Height)-sz, 0) / 2
	return math32.B2(x, y, x+sz, y+sz)
}

// Snapshot renders one frame of the demo without a window or GPU,
// into an image of the configured window size filled with the
// background color, running the same paint callback as the window.
func Snapshot(cfg *Config) (*image.RGBA, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	// the renderer is kept per thread
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	sch := &colors.Schemes.Light
	if cfg.Dark {
		sch = &colors.Schemes.Dark
	}
	draw.Draw(img, img.Bounds(), sch.Background, image.Point{}, draw.Src)

	rect := SnapshotRect(cfg)
	info := paintcb.Info{
		Viewport:       rect,
		ClipRect:       rect.Intersect(math32.B2FromRect(img.Bounds())),
		PixelsPerPoint: 1,
		ScreenSize:     img.Rect.Size(),
	}
	p := &paintcb.TargetPainter{Target: threed.NewImageTarget(img)}
	if err := Paint(info, p, cfg.Angle); err != nil {
		return nil, err
	}
	return img, nil
}

// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"errors"
	"fmt"

	"cogentcore.org/core/base/iox/tomlx"
	"cogentcore.org/core/cli"
)

// ErrInvalidConfig is wrapped by the errors of [Config.Validate].
var ErrInvalidConfig = errors.New("app: invalid config")

// Config is the configuration of the demo, set from
// flags and the optional custom3d.toml file.
type Config struct {

	// Width is the initial window width in dp.
	Width int `default:"550"`

	// Height is the initial window height in dp.
	Height int `default:"610"`

	// CanvasSize is the width and height of the painted canvas in dp.
	CanvasSize int `default:"512"`

	// MultiSample is the number of multisamples used for
	// anti-aliasing the 3D content. It must be a power of 2.
	MultiSample int `default:"8"`

	// DepthBits is the size of the depth buffer values: 24 or 32.
	DepthBits int `default:"32"`

	// Angle is the initial rotation angle in radians.
	Angle float32 `default:"0.2"`

	// Dark selects the dark color scheme.
	Dark bool

	// Snapshot, if set, renders one frame without opening a window
	// and saves it to this PNG file.
	Snapshot string `toml:"-"`

	// Save, if set, writes the effective configuration
	// to this TOML file before starting.
	Save string `toml:"-"`
}

// Defaults sets the config to its default values.
func (cfg *Config) Defaults() {
	cli.SetFromDefaults(cfg)
}

// Validate returns an error wrapping [ErrInvalidConfig]
// if the config cannot be used.
func (cfg *Config) Validate() error {
	switch {
	case cfg.Width <= 0 || cfg.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, cfg.Width, cfg.Height)
	case cfg.CanvasSize <= 0:
		return fmt.Errorf("%w: canvas size %d", ErrInvalidConfig, cfg.CanvasSize)
	case cfg.MultiSample <= 0 || cfg.MultiSample&(cfg.MultiSample-1) != 0:
		return fmt.Errorf("%w: multisample count %d is not a power of 2", ErrInvalidConfig, cfg.MultiSample)
	case cfg.DepthBits != 24 && cfg.DepthBits != 32:
		return fmt.Errorf("%w: depth buffer size %d is not 24 or 32", ErrInvalidConfig, cfg.DepthBits)
	}
	return nil
}

// SaveTOML writes the config to the given TOML file,
// which can be given back to cli as a config file.
func (cfg *Config) SaveTOML(filename string) error {
	return tomlx.Save(cfg, filename)
}

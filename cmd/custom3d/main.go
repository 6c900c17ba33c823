// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command custom3d is a demo of custom 3D painting inside a Cogent Core
// window: a triangle drawn with the GPU in the paint pass of the GUI,
// rotated by dragging over it.
package main

import (
	"cogentcore.org/core/cli"

	"cogentcore.org/custom3d/app"
)

func main() { //types:skip
	opts := cli.DefaultOptions("custom3d", "A demo of custom 3D painting inside a GUI canvas.")
	opts.DefaultFiles = []string{"custom3d.toml"}
	cli.Run(opts, &app.Config{}, app.Run)
}

// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !js

package threed

// DisableSRGB turns off the linear to sRGB conversion of output colors,
// so that mesh colors are written to the target exactly as given.
// Hosts that draw into sRGB render textures enable the conversion
// for their own content, so this is called at the start of each paint.
func (cx *Context) DisableSRGB() {
	cx.srgb = false
}

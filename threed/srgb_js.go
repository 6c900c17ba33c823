// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build js

package threed

// DisableSRGB is a no-op on the web, where the canvas
// does not apply an implicit color space conversion.
func (cx *Context) DisableSRGB() {}

// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package threed

// ClearState selects which channels of a [Target] a clear writes,
// and the values to write. Nil fields are left untouched.
type ClearState struct {
	Red, Green, Blue, Alpha *float32
	Depth                   *float32
}

// ClearDepth returns a [ClearState] that only clears depth,
// leaving the color already in the target intact.
func ClearDepth(depth float32) ClearState {
	return ClearState{Depth: &depth}
}

// ClearColor returns a [ClearState] that only clears color.
func ClearColor(r, g, b, a float32) ClearState {
	return ClearState{Red: &r, Green: &g, Blue: &b, Alpha: &a}
}

// ClearColorDepth returns a [ClearState] that clears color and depth.
func ClearColorDepth(r, g, b, a, depth float32) ClearState {
	cs := ClearColor(r, g, b, a)
	cs.Depth = &depth
	return cs
}

// HasColor returns whether any color channel is cleared.
func (cs ClearState) HasColor() bool {
	return cs.Red != nil || cs.Green != nil || cs.Blue != nil || cs.Alpha != nil
}

// HasDepth returns whether depth is cleared.
func (cs ClearState) HasDepth() bool {
	return cs.Depth != nil
}

// merge sets the channels that other clears to its values.
func (cs *ClearState) merge(other ClearState) {
	set := func(dst **float32, v *float32) {
		if v != nil {
			*dst = v
		}
	}
	set(&cs.Red, other.Red)
	set(&cs.Green, other.Green)
	set(&cs.Blue, other.Blue)
	set(&cs.Alpha, other.Alpha)
	set(&cs.Depth, other.Depth)
}

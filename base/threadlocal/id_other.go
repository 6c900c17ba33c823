// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !linux && !windows

package threadlocal

// ID returns 0 on platforms without a portable thread id.
// On macOS, iOS and the web, all GPU work happens on the single
// main thread, so one value is shared by every caller.
func ID() int {
	return 0
}

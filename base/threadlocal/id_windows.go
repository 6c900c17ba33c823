// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows

package threadlocal

import "golang.org/x/sys/windows"

// ID returns the Win32 thread id of the calling thread.
func ID() int {
	return int(windows.GetCurrentThreadId())
}

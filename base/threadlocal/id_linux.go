// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package threadlocal

import "golang.org/x/sys/unix"

// ID returns the kernel thread id of the calling thread.
func ID() int {
	return unix.Gettid()
}

// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package threadlocal provides a registry of values that are confined
// to the operating system thread that created them, such as GPU
// contexts that must not be used from another thread.
//
// Go does not expose threads to user code, so the goroutine that uses
// a [Map] must be locked to its thread with [runtime.LockOSThread]
// for the lifetime of the values it stores. Code that is called from
// unlocked goroutines, such as the per-frame render goroutines of a
// window, can run through a [Thread] instead.
package threadlocal

import (
	"runtime"
	"sync"
)

// Thread runs functions on a single goroutine that is locked to its
// own OS thread, so they all see the same [ID]. The goroutine is
// started by the first call to [Thread.Run] and lives as long as the
// program. The zero value is ready to use.
type Thread struct {
	once  sync.Once
	funcs chan func()
}

func (th *Thread) start() {
	th.funcs = make(chan func())
	go func() {
		runtime.LockOSThread()
		for fn := range th.funcs {
			fn()
		}
	}()
}

// Run calls fn on the thread and waits for it to return.
// Calls from different goroutines run one at a time. fn must not
// call Run on the same Thread.
func (th *Thread) Run(fn func()) {
	th.once.Do(th.start)
	done := make(chan struct{})
	th.funcs <- func() {
		defer close(done)
		fn()
	}
	<-done
}

// Map holds at most one value of type T per operating system thread.
// Values are constructed lazily on first access from a given thread
// and reused by all later accesses from that thread. The zero value
// is ready to use.
type Map[T any] struct {

	// IDFunc returns the identity of the calling thread.
	// If it is nil, [ID] is used.
	IDFunc func() int

	mu     sync.Mutex
	values map[int]T
}

func (m *Map[T]) id() int {
	if m.IDFunc != nil {
		return m.IDFunc()
	}
	return ID()
}

// Get returns the value for the calling thread, and whether it exists.
func (m *Map[T]) Get() (T, bool) {
	id := m.id()
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[id]
	return v, ok
}

// GetOrCreate returns the value for the calling thread, calling newFn
// to construct it if this thread does not have one yet. If newFn
// returns an error, nothing is stored and the error is returned, so
// that a later call on the same thread tries again.
//
// newFn is called without holding the internal lock, so it may take
// as long as it needs and may itself use other Maps. It is only ever
// called on the thread that will own the value.
func (m *Map[T]) GetOrCreate(newFn func() (T, error)) (T, error) {
	id := m.id()
	m.mu.Lock()
	v, ok := m.values[id]
	m.mu.Unlock()
	if ok {
		return v, nil
	}
	v, err := newFn()
	if err != nil {
		var zero T
		return zero, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[int]T)
	}
	m.values[id] = v
	return v, nil
}

// Delete removes the value for the calling thread, returning it
// and whether it existed. The caller is responsible for releasing
// any resources the value holds.
func (m *Map[T]) Delete() (T, bool) {
	id := m.id()
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[id]
	if ok {
		delete(m.values, id)
	}
	return v, ok
}

// Len returns the number of threads that currently have a value.
func (m *Map[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.values)
}

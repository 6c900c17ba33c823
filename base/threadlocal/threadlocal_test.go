// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package threadlocal

import (
	"errors"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resource struct {
	n int
}

func TestGetOrCreateOncePerThread(t *testing.T) {
	cur := 1
	m := Map[*resource]{IDFunc: func() int { return cur }}
	made := 0
	newFn := func() (*resource, error) {
		made++
		return &resource{n: made}, nil
	}

	a, err := m.GetOrCreate(newFn)
	require.NoError(t, err)
	b, err := m.GetOrCreate(newFn)
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, 1, made)

	cur = 2
	c, err := m.GetOrCreate(newFn)
	require.NoError(t, err)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, made)
	assert.Equal(t, 2, m.Len())

	cur = 1
	d, ok := m.Get()
	assert.True(t, ok)
	assert.Same(t, a, d)
}

func TestGetOrCreateError(t *testing.T) {
	m := Map[*resource]{IDFunc: func() int { return 7 }}
	errBoom := errors.New("boom")
	r, err := m.GetOrCreate(func() (*resource, error) { return nil, errBoom })
	assert.ErrorIs(t, err, errBoom)
	assert.Nil(t, r)
	assert.Equal(t, 0, m.Len())

	r, err = m.GetOrCreate(func() (*resource, error) { return &resource{n: 3}, nil })
	require.NoError(t, err)
	assert.Equal(t, 3, r.n)
}

func TestDelete(t *testing.T) {
	m := Map[int]{IDFunc: func() int { return 1 }}
	_, ok := m.Delete()
	assert.False(t, ok)
	_, err := m.GetOrCreate(func() (int, error) { return 5, nil })
	require.NoError(t, err)
	v, ok := m.Delete()
	assert.True(t, ok)
	assert.Equal(t, 5, v)
	assert.Equal(t, 0, m.Len())
}

func TestLockedThreads(t *testing.T) {
	if runtime.GOOS != "linux" && runtime.GOOS != "windows" {
		t.Skip("thread ids are not distinguished on", runtime.GOOS)
	}
	var m Map[*resource]
	const n = 4
	var wg sync.WaitGroup
	firsts := make([]*resource, n)
	seconds := make([]*resource, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			newFn := func() (*resource, error) { return &resource{n: i}, nil }
			firsts[i], _ = m.GetOrCreate(newFn)
			seconds[i], _ = m.GetOrCreate(newFn)
		}()
	}
	wg.Wait()
	for i := range n {
		assert.Same(t, firsts[i], seconds[i])
	}
	assert.LessOrEqual(t, m.Len(), n)
	assert.GreaterOrEqual(t, m.Len(), 1)
}

func TestThread(t *testing.T) {
	var th Thread
	var m Map[*resource]
	made := 0
	ids := map[int]bool{}
	var wg sync.WaitGroup
	for range 200 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			th.Run(func() {
				ids[ID()] = true
				_, err := m.GetOrCreate(func() (*resource, error) {
					made++
					return &resource{n: made}, nil
				})
				assert.NoError(t, err)
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, made)
	assert.Equal(t, 1, m.Len())
	assert.Len(t, ids, 1)

	ran := false
	th.Run(func() { ran = true })
	assert.True(t, ran)
}

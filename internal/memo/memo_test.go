// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package memo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunc_ComputesOnce(t *testing.T) {
	reg := NewRegistry()

	calls := 0
	double := NewFunc(reg, func(n int) (int, error) {
		calls++
		return n * 2, nil
	})

	got, err := double.Call(21)
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	got, err = double.Call(21)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 1, calls, "second identical call must hit the cache")

	_, err = double.Call(5)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "different argument must recompute")
}

func TestFunc_Uncached(t *testing.T) {
	reg := NewRegistry()

	calls := 0
	f := NewFunc(reg, func(n int) (int, error) {
		calls++
		return n, nil
	})

	_, _ = f.Call(1)
	_, _ = f.Uncached(1)
	_, _ = f.Uncached(1)
	assert.Equal(t, 3, calls)
}

func TestFunc_ErrorsAreNotCached(t *testing.T) {
	reg := NewRegistry()

	calls := 0
	failing := NewFunc(reg, func(n int) (int, error) {
		calls++
		if calls == 1 {
			return 0, errors.New("transient")
		}
		return n, nil
	})

	_, err := failing.Call(7)
	assert.Error(t, err)

	got, err := failing.Call(7)
	assert.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Equal(t, 2, calls)
}

func TestRegistry_ClearAll(t *testing.T) {
	reg := NewRegistry()

	calls := 0
	f := NewFunc2(reg, func(a, b string) (string, error) {
		calls++
		return a + "/" + b, nil
	})

	got, err := f.Call("x", "y")
	require.NoError(t, err)
	assert.Equal(t, "x/y", got)

	_, _ = f.Call("x", "y")
	assert.Equal(t, 1, calls)

	reg.ClearAll()

	_, _ = f.Call("x", "y")
	assert.Equal(t, 2, calls, "cleared cache must recompute")
	assert.Equal(t, 1, reg.Size())
}

func TestFunc4_TupleKey(t *testing.T) {
	reg := NewRegistry()

	calls := 0
	f := NewFunc4(reg, func(a, b, c string, d int) (string, error) {
		calls++
		return a + b + c, nil
	})

	_, _ = f.Call("p", "q", "r", 1)
	_, _ = f.Call("p", "q", "r", 1)
	assert.Equal(t, 1, calls)

	// Any differing tuple element is a distinct key.
	_, _ = f.Call("p", "q", "r", 2)
	assert.Equal(t, 2, calls)
}

type widget struct {
	caches CacheSet
	loads  int
}

func (w *widget) shape(name string) (string, error) {
	return Method(&w.caches, "shape", w.loadShape).Call(name)
}

func (w *widget) loadShape(name string) (string, error) {
	w.loads++
	return "shape:" + name, nil
}

func TestCacheSet_PerInstance(t *testing.T) {
	a := &widget{}
	b := &widget{}

	_, _ = a.shape("disc")
	_, _ = a.shape("disc")
	assert.Equal(t, 1, a.loads, "instance cache must dedupe")

	_, _ = b.shape("disc")
	assert.Equal(t, 1, b.loads, "caches must not be shared across instances")
}

func TestCacheSet_SelectiveInvalidation(t *testing.T) {
	w := &widget{}
	_, _ = w.shape("disc")

	// Invalidating a name nothing registered must not disturb the
	// registered cache.
	w.caches.Invalidate("color")
	_, _ = w.shape("disc")
	assert.Equal(t, 1, w.loads)

	w.caches.Invalidate("shape")
	_, _ = w.shape("disc")
	assert.Equal(t, 2, w.loads)

	assert.True(t, w.caches.Has("shape"))
	assert.False(t, w.caches.Has("color"))
}

func TestCacheSet_Clear(t *testing.T) {
	w := &widget{}
	_, _ = w.shape("disc")
	_, _ = w.shape("ring")
	assert.Equal(t, 2, w.loads)

	w.caches.Clear()

	_, _ = w.shape("disc")
	assert.Equal(t, 3, w.loads)
}

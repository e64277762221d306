// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package memo

// clearable is the least a cache has to be so a Registry or CacheSet can
// reach into it for bulk operations without knowing its key/value types.
type clearable interface {
	Clear()
}

// Cache is a plain memoization map. Entries live until Clear; there is no
// TTL and no eviction, because a cached lookup must stay identical for the
// cache's lifetime.
type Cache[K comparable, V any] struct {
	entries map[K]V
}

// NewCache returns an empty cache.
func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{entries: make(map[K]V)}
}

// Get returns the cached value for key and whether it was present.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	v, ok := c.entries[key]
	return v, ok
}

// Put stores value under key, replacing any previous entry.
func (c *Cache[K, V]) Put(key K, value V) {
	c.entries[key] = value
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	return len(c.entries)
}

// Clear drops every entry.
func (c *Cache[K, V]) Clear() {
	c.entries = make(map[K]V)
}

// Registry owns function caches so they can be cleared in bulk, typically
// between build runs in a long-lived driver process or between tests. It
// replaces a process-global cache list; whoever owns the Registry owns the
// lifetime of everything memoized through it.
type Registry struct {
	caches []clearable
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) register(c clearable) {
	r.caches = append(r.caches, c)
}

// ClearAll empties every cache created through this registry.
func (r *Registry) ClearAll() {
	for _, c := range r.caches {
		c.Clear()
	}
}

// Size returns the number of registered caches.
func (r *Registry) Size() int {
	return len(r.caches)
}

// Key2 through Key4 are the argument tuples used as cache keys. They are
// explicit structs rather than serialized strings so the compiler enforces
// comparability per memoized function.

type Key2[A, B comparable] struct {
	A A
	B B
}

type Key3[A, B, C comparable] struct {
	A A
	B B
	C C
}

type Key4[A, B, C, D comparable] struct {
	A A
	B B
	C C
	D D
}

// Func memoizes a single-argument function. A call that returns a non-nil
// error is not cached; the error propagates and the next call recomputes.
type Func[A comparable, R any] struct {
	cache *Cache[A, R]
	fn    func(A) (R, error)
}

// NewFunc wraps fn with a cache registered in r. fn must be referentially
// transparent for the lifetime of the cache.
func NewFunc[A comparable, R any](r *Registry, fn func(A) (R, error)) *Func[A, R] {
	f := &Func[A, R]{cache: NewCache[A, R](), fn: fn}
	r.register(f.cache)
	return f
}

// Call returns the memoized result for a, computing it on first use.
func (f *Func[A, R]) Call(a A) (R, error) {
	if v, ok := f.cache.Get(a); ok {
		return v, nil
	}
	v, err := f.fn(a)
	if err != nil {
		return v, err
	}
	f.cache.Put(a, v)
	return v, nil
}

// Uncached bypasses the cache entirely.
func (f *Func[A, R]) Uncached(a A) (R, error) {
	return f.fn(a)
}

// Func2 memoizes a two-argument function.
type Func2[A, B comparable, R any] struct {
	cache *Cache[Key2[A, B], R]
	fn    func(A, B) (R, error)
}

func NewFunc2[A, B comparable, R any](r *Registry, fn func(A, B) (R, error)) *Func2[A, B, R] {
	f := &Func2[A, B, R]{cache: NewCache[Key2[A, B], R](), fn: fn}
	r.register(f.cache)
	return f
}

func (f *Func2[A, B, R]) Call(a A, b B) (R, error) {
	key := Key2[A, B]{a, b}
	if v, ok := f.cache.Get(key); ok {
		return v, nil
	}
	v, err := f.fn(a, b)
	if err != nil {
		return v, err
	}
	f.cache.Put(key, v)
	return v, nil
}

func (f *Func2[A, B, R]) Uncached(a A, b B) (R, error) {
	return f.fn(a, b)
}

// Func3 memoizes a three-argument function.
type Func3[A, B, C comparable, R any] struct {
	cache *Cache[Key3[A, B, C], R]
	fn    func(A, B, C) (R, error)
}

func NewFunc3[A, B, C comparable, R any](r *Registry, fn func(A, B, C) (R, error)) *Func3[A, B, C, R] {
	f := &Func3[A, B, C, R]{cache: NewCache[Key3[A, B, C], R](), fn: fn}
	r.register(f.cache)
	return f
}

func (f *Func3[A, B, C, R]) Call(a A, b B, c C) (R, error) {
	key := Key3[A, B, C]{a, b, c}
	if v, ok := f.cache.Get(key); ok {
		return v, nil
	}
	v, err := f.fn(a, b, c)
	if err != nil {
		return v, err
	}
	f.cache.Put(key, v)
	return v, nil
}

func (f *Func3[A, B, C, R]) Uncached(a A, b B, c C) (R, error) {
	return f.fn(a, b, c)
}

// Func4 memoizes a four-argument function.
type Func4[A, B, C, D comparable, R any] struct {
	cache *Cache[Key4[A, B, C, D], R]
	fn    func(A, B, C, D) (R, error)
}

func NewFunc4[A, B, C, D comparable, R any](r *Registry, fn func(A, B, C, D) (R, error)) *Func4[A, B, C, D, R] {
	f := &Func4[A, B, C, D, R]{cache: NewCache[Key4[A, B, C, D], R](), fn: fn}
	r.register(f.cache)
	return f
}

func (f *Func4[A, B, C, D, R]) Call(a A, b B, c C, d D) (R, error) {
	key := Key4[A, B, C, D]{a, b, c, d}
	if v, ok := f.cache.Get(key); ok {
		return v, nil
	}
	v, err := f.fn(a, b, c, d)
	if err != nil {
		return v, err
	}
	f.cache.Put(key, v)
	return v, nil
}

func (f *Func4[A, B, C, D, R]) Uncached(a A, b B, c C, d D) (R, error) {
	return f.fn(a, b, c, d)
}

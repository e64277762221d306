// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package memo

// CacheSet holds the method caches of a single instance, keyed by the method
// name they were registered under. It replaces the trick of stashing caches
// in dynamically-named attributes: a cache exists in the set only because a
// method explicitly registered it, so selective invalidation can never touch
// unrelated instance state.
//
// The zero value is ready to use; embed one in any type with memoized
// methods and let it be destroyed with the instance.
type CacheSet struct {
	caches map[string]clearable
}

func (s *CacheSet) register(name string, c clearable) {
	if s.caches == nil {
		s.caches = make(map[string]clearable)
	}
	s.caches[name] = c
}

// Has reports whether a cache is registered under name.
func (s *CacheSet) Has(name string) bool {
	_, ok := s.caches[name]
	return ok
}

// Invalidate clears the caches registered under the given names. Names with
// no registered cache are skipped: if no method ever registered it, it is not
// ours to clear.
func (s *CacheSet) Invalidate(names ...string) {
	for _, name := range names {
		if c, ok := s.caches[name]; ok {
			c.Clear()
		}
	}
}

// Clear empties every cache in the set.
func (s *CacheSet) Clear() {
	for _, c := range s.caches {
		c.Clear()
	}
}

// Method memoizes a single-argument method of the instance owning set. The
// cache is created lazily on the first call for the instance and registered
// under name, which is what Invalidate matches against. Typical use:
//
//	type scanner struct {
//		caches memo.CacheSet
//	}
//
//	func (s *scanner) headers(dir string) ([]string, error) {
//		return memo.Method(&s.caches, "headers", s.readHeaders).Call(dir)
//	}
func Method[A comparable, R any](set *CacheSet, name string, fn func(A) (R, error)) *Func[A, R] {
	if c, ok := set.caches[name]; ok {
		if f, ok := c.(*methodCache[A, R]); ok {
			return &f.Func
		}
	}
	f := &methodCache[A, R]{Func[A, R]{cache: NewCache[A, R](), fn: fn}}
	set.register(name, f)
	return &f.Func
}

// Method2 is Method for two-argument methods.
func Method2[A, B comparable, R any](set *CacheSet, name string, fn func(A, B) (R, error)) *Func2[A, B, R] {
	if c, ok := set.caches[name]; ok {
		if f, ok := c.(*methodCache2[A, B, R]); ok {
			return &f.Func2
		}
	}
	f := &methodCache2[A, B, R]{Func2[A, B, R]{cache: NewCache[Key2[A, B], R](), fn: fn}}
	set.register(name, f)
	return &f.Func2
}

// methodCache wraps Func so the whole memoizer, not just its map, lives in
// the set and can be type-recovered on subsequent calls.
type methodCache[A comparable, R any] struct {
	Func[A, R]
}

func (m *methodCache[A, R]) Clear() { m.cache.Clear() }

type methodCache2[A, B comparable, R any] struct {
	Func2[A, B, R]
}

func (m *methodCache2[A, B, R]) Clear() { m.cache.Clear() }

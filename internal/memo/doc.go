// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package memo provides unsynchronized memoization for the driver's pure,
// filesystem-snapshot lookups. A Registry owns every function cache created
// through it and can clear them all between independent build runs; a
// CacheSet holds the per-instance method caches of a single value and
// supports selective invalidation by registered name.
//
// Nothing here locks. The driver is single-threaded by contract and callers
// must not share a Registry or CacheSet across goroutines.
package memo

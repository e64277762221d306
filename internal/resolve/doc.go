// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package resolve locates versioned companion descriptor files and
// classifies package directories for the bldc driver.
//
// A companion descriptor can be tagged with the toolchain rank it targets,
// e.g. lib.bldc-30.mxi next to the unversioned lib.mxi. Resolution picks the
// highest tagged rank that does not exceed the active toolchain, falling back
// to the unversioned file. Directory classification distinguishes regular
// packages (carrying a marker file such as __pkg__.mx) from namespace
// directories that merely contribute a path segment.
//
// Every lookup is memoized through a memo.Registry, so results are snapshots:
// if the source tree changes mid-run, the owner of the registry must clear it.
package resolve

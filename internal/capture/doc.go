// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package capture temporarily redirects a numbered process output stream
// (conventionally 2, standard error) into a temp file so diagnostic text
// written by compilers and subprocesses can be collected and reported.
//
// A Session preserves the stream's original destination with a duplicated
// descriptor, and Close always releases that descriptor no matter how the
// protected region exits. Captured content stays retrievable after Close.
// Only one capture may be active on a given stream at a time.
package capture

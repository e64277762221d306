// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package driller traverses JSON diagnostics and descriptor documents to
// extract useful views for commands that need deeper inspection.
package driller

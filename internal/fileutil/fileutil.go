// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package fileutil collects the small file-handling helpers the bldc driver
// leans on: generated-output bookkeeping, mtime comparison, and source-file
// opening with encoding detection.
package fileutil

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FailureMarker is the first line written into an output file after a failed
// compilation, so later runs (and humans) know not to trust the content.
const FailureMarker = "#error this file is the result of a failed bldc compilation, do not use it"

// generatedPrefix opens every file the bldc code generator emits.
const generatedPrefix = "/* Generated by bldc "

// ReplaceSuffix swaps the extension of path for newSuffix (including dot).
func ReplaceSuffix(path, newSuffix string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + newSuffix
}

// OpenNewFile creates path as a brand-new file, unlinking any previous one
// first so hard links to old outputs are never overwritten in place.
func OpenNewFile(path string) (*os.File, error) {
	if _, err := os.Lstat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("failed to replace %s: %w", path, err)
		}
	}
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
}

// ModificationTime returns path's mtime.
func ModificationTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// FileNewerThan reports whether path was modified after t.
func FileNewerThan(path string, t time.Time) (bool, error) {
	mtime, err := ModificationTime(path)
	if err != nil {
		return false, err
	}
	return mtime.After(t), nil
}

// SafeMakedirs is MkdirAll that tolerates a concurrent creator.
func SafeMakedirs(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
			return nil
		}
		return err
	}
	return nil
}

// IsGeneratedFile reports whether path looks like bldc output and is safe to
// overwrite: a generated file, the failure marker (when allowFailed), or an
// empty file left behind by an earlier crash. A missing file answers
// ifNotFound so callers can choose whether absence counts as safe.
func IsGeneratedFile(path string, allowFailed, ifNotFound bool) bool {
	marker := []byte(FailureMarker)

	f, err := os.Open(path)
	if err != nil {
		return ifNotFound
	}
	defer f.Close()

	head := make([]byte, len(marker))
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return ifNotFound
	}
	head = head[:n]

	switch {
	case bytes.HasPrefix(head, []byte(generatedPrefix)):
		return true
	case allowFailed && bytes.Equal(head, marker):
		return true
	case len(head) == 0:
		// Empty files might be leftovers from previous failures.
		return true
	}
	return false
}

// MarkFailedOutput stomps junk content in an output file after a failed
// compilation, and backdates the mtime below prev so the file never looks
// fresher than its source.
func MarkFailedOutput(path string, prev time.Time) error {
	if !IsGeneratedFile(path, true, false) {
		return nil
	}

	f, err := OpenNewFile(path)
	if err != nil {
		// The file being gone already is as good as poisoned.
		return nil
	}
	if _, err := fmt.Fprintln(f, FailureMarker); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	if !prev.IsZero() {
		backdated := prev.Add(-time.Second)
		return os.Chtimes(path, backdated, backdated)
	}
	return nil
}

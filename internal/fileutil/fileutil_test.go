// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package fileutil

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceSuffix(t *testing.T) {
	tests := []struct {
		path string
		suf  string
		want string
	}{
		{"lib/mod.mx", ".c", "lib/mod.c"},
		{"mod.bldc-30.mxi", ".h", "mod.bldc-30.h"},
		{"noext", ".c", "noext.c"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ReplaceSuffix(tt.path, tt.suf))
	}
}

func TestOpenNewFile_ReplacesHardLinkedOutput(t *testing.T) {
	dir := t.TempDir()
	orig := filepath.Join(dir, "out.c")
	link := filepath.Join(dir, "link.c")

	require.NoError(t, os.WriteFile(orig, []byte("old"), 0o644))
	require.NoError(t, os.Link(orig, link))

	f, err := OpenNewFile(orig)
	require.NoError(t, err)
	_, err = f.WriteString("new")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	// The hard link still holds the old content.
	got, err := os.ReadFile(link)
	require.NoError(t, err)
	assert.Equal(t, "old", string(got))

	got, err = os.ReadFile(orig)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestFileNewerThan(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	mtime, err := ModificationTime(path)
	require.NoError(t, err)

	newer, err := FileNewerThan(path, mtime.Add(-time.Hour))
	require.NoError(t, err)
	assert.True(t, newer)

	newer, err = FileNewerThan(path, mtime.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, newer)

	_, err = FileNewerThan(filepath.Join(dir, "missing"), time.Now())
	assert.Error(t, err)
}

func TestSafeMakedirs(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b", "c")

	require.NoError(t, SafeMakedirs(nested))
	require.NoError(t, SafeMakedirs(nested), "existing directory is fine")

	file := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	assert.Error(t, SafeMakedirs(file), "a file in the way is not")
}

func TestIsGeneratedFile(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		return p
	}

	generated := write("gen.c", "/* Generated by bldc 3.1 */\nint x;\n")
	failed := write("failed.c", FailureMarker+"\n")
	empty := write("empty.c", "")
	foreign := write("foreign.c", "int main(void) { return 0; }\n")

	assert.True(t, IsGeneratedFile(generated, false, false))
	assert.True(t, IsGeneratedFile(empty, false, false))
	assert.False(t, IsGeneratedFile(foreign, false, false))

	assert.False(t, IsGeneratedFile(failed, false, false))
	assert.True(t, IsGeneratedFile(failed, true, false))

	missing := filepath.Join(dir, "missing.c")
	assert.True(t, IsGeneratedFile(missing, false, true))
	assert.False(t, IsGeneratedFile(missing, false, false))
}

func TestMarkFailedOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.c")
	require.NoError(t, os.WriteFile(path, []byte("/* Generated by bldc 3.1 */\njunk"), 0o644))

	prev, err := ModificationTime(path)
	require.NoError(t, err)

	require.NoError(t, MarkFailedOutput(path, prev))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, FailureMarker+"\n", string(got))

	mtime, err := ModificationTime(path)
	require.NoError(t, err)
	assert.True(t, mtime.Before(prev), "poisoned output must be backdated")

	// A hand-written file is left alone.
	foreign := filepath.Join(dir, "keep.c")
	require.NoError(t, os.WriteFile(foreign, []byte("int main;"), 0o644))
	require.NoError(t, MarkFailedOutput(foreign, time.Time{}))
	got, err = os.ReadFile(foreign)
	require.NoError(t, err)
	assert.Equal(t, "int main;", string(got))
}

func TestDetectSourceEncoding(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "declaration on first line",
			input: "# coding: iso-8859-15\nx = 1\n",
			want:  "iso-8859-15",
		},
		{
			name:  "declaration on second line",
			input: "#!/usr/bin/env bldc\n# -*- coding=utf-8 -*-\n",
			want:  "utf-8",
		},
		{
			name:  "declaration on third line ignored",
			input: "a\nb\n# coding: latin-1\n",
			want:  "UTF-8",
		},
		{
			name:  "no declaration",
			input: "plain source\n",
			want:  "UTF-8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectSourceEncoding(strings.NewReader(tt.input), "UTF-8")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOpenSourceFile_SkipsBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mod.mx")
	require.NoError(t, os.WriteFile(path, []byte("\xef\xbb\xbfx = 1\n"), 0o644))

	r, c, err := OpenSourceFile(path)
	require.NoError(t, err)
	defer c.Close()

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(got))
}

func TestOpenSourceFile_DeclaredEncoding(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mod.mx")
	// "café" in latin-1 beneath a declaration.
	require.NoError(t, os.WriteFile(path, []byte("# coding: ISO-8859-1\ncaf\xe9\n"), 0o644))

	r, c, err := OpenSourceFile(path)
	require.NoError(t, err)
	defer c.Close()

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Contains(t, string(got), "café")
}

func TestSkipBOM_NoBOM(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("abc"))
	require.NoError(t, SkipBOM(r))
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package fileutil

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// encodingDeclRegex matches a source encoding declaration such as
// "# coding: iso-8859-15" or "# -*- coding=utf-8 -*-" when it appears in the
// first two lines of a file.
var encodingDeclRegex = regexp.MustCompile(`(\w*coding)[:=]\s*([-\w.]+)`)

// DetectSourceEncoding sniffs the declared encoding from the first two lines
// of r, returning def when no declaration is found. Most files declare
// nothing, so the read is a single bulk chunk rather than line-at-a-time.
func DetectSourceEncoding(r io.Reader, def string) string {
	var head []byte
	buf := make([]byte, 500)
	for bytes.Count(head, []byte{'\n'}) < 2 {
		n, err := r.Read(buf)
		head = append(head, buf[:n]...)
		if err != nil || n == 0 {
			break
		}
	}

	lines := bytes.SplitN(head, []byte{'\n'}, 3)
	for i := 0; i < len(lines) && i < 2; i++ {
		if m := encodingDeclRegex.FindSubmatch(lines[i]); m != nil {
			return string(m[2])
		}
	}
	return def
}

// OpenSourceFile opens a source module for reading as text: the declared
// encoding (default UTF-8) is applied and a leading BOM is skipped. The
// caller owns the returned closer.
func OpenSourceFile(path string) (io.Reader, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	name := DetectSourceEncoding(f, "UTF-8")
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()
		return nil, nil, err
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("unknown source encoding %q in %s", name, path)
	}

	reader := bufio.NewReader(transform.NewReader(f, enc.NewDecoder()))
	if err := SkipBOM(reader); err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return reader, f, nil
}

// SkipBOM reads past a byte order mark at the start of a decoded source
// stream. Easier here than in the scanner.
func SkipBOM(r *bufio.Reader) error {
	ch, _, err := r.ReadRune()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}
	if ch != '\uFEFF' {
		return r.UnreadRune()
	}
	return nil
}

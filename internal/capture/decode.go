// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package capture

import (
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// DecodeBestEffort turns captured bytes into text without ever failing.
// Candidates are tried in order: UTF-8, then the locale's declared encoding,
// each accepted only when the decode is lossless. The last resort is Latin-1,
// which maps every byte to a rune, so non-empty input always yields non-empty
// output. Diagnostics from misconfigured tools at least keep their readable
// ASCII parts intact.
func DecodeBestEffort(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	if utf8.Valid(b) {
		return string(b)
	}

	if name := localeEncodingName(); name != "" {
		if enc, err := ianaindex.IANA.Encoding(name); err == nil && enc != nil {
			if s, ok := decodeLossless(enc, b); ok {
				return s
			}
		}
	}

	s, _ := charmap.ISO8859_1.NewDecoder().Bytes(b)
	return string(s)
}

// decodeLossless decodes b and accepts the result only if nothing was
// replaced along the way.
func decodeLossless(enc encoding.Encoding, b []byte) (string, bool) {
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", false
	}
	if strings.ContainsRune(string(out), utf8.RuneError) {
		return "", false
	}
	return string(out), true
}

// localeEncodingName extracts the charset from the usual locale variables,
// e.g. "de_DE.ISO-8859-15" -> "ISO-8859-15".
func localeEncodingName() string {
	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		locale := os.Getenv(key)
		if locale == "" {
			continue
		}
		if i := strings.IndexByte(locale, '.'); i >= 0 {
			name := locale[i+1:]
			if j := strings.IndexByte(name, '@'); j >= 0 {
				name = name[:j]
			}
			return name
		}
	}
	return ""
}

// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeBestEffort(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		env   map[string]string
		want  string
	}{
		{
			name:  "plain ascii",
			input: []byte("warning: unused variable"),
			want:  "warning: unused variable",
		},
		{
			name:  "valid utf-8",
			input: []byte("gr\xc3\xbc\xc3\x9fe"),
			want:  "grüße",
		},
		{
			name:  "latin-1 fallback",
			input: []byte("caf\xe9"),
			want:  "café",
		},
		{
			name:  "locale encoding wins over fallback",
			input: []byte("\xa4"), // EURO SIGN in ISO-8859-15, CURRENCY SIGN in Latin-1
			env:   map[string]string{"LC_ALL": "de_DE.ISO-8859-15"},
			want:  "€",
		},
		{
			name:  "empty input",
			input: nil,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LC_ALL", "")
			t.Setenv("LC_CTYPE", "")
			t.Setenv("LANG", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			assert.Equal(t, tt.want, DecodeBestEffort(tt.input))
		})
	}
}

func TestDecodeBestEffort_NeverEmptyForNonEmptyInput(t *testing.T) {
	// Arbitrary junk, including sequences invalid in every multi-byte
	// encoding, still decodes via the byte-per-rune fallback.
	inputs := [][]byte{
		{0xff, 0xfe, 0xfd},
		{0x80},
		{0xc3}, // truncated utf-8 sequence
	}
	for _, in := range inputs {
		got := DecodeBestEffort(in)
		assert.NotEmpty(t, got)
		assert.Equal(t, len(in), len([]rune(got)))
	}
}

func TestLocaleEncodingName(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LC_CTYPE", "")
	t.Setenv("LANG", "en_US.UTF-8")
	assert.Equal(t, "UTF-8", localeEncodingName())

	t.Setenv("LC_ALL", "de_DE.ISO-8859-15@euro")
	assert.Equal(t, "ISO-8859-15", localeEncodingName())

	t.Setenv("LC_ALL", "C")
	t.Setenv("LANG", "")
	assert.Equal(t, "", localeEncodingName())
}

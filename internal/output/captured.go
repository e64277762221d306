// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/staranto/bldctlgo/internal/capture"
)

// Banner builds the default banner line for a captured stream, naming the
// stream and its size. Callers that want their own wording pass that line to
// PrintCaptured directly instead.
func Banner(label string, size int) string {
	return fmt.Sprintf("--- %s (%s) ---", label, humanize.Bytes(uint64(size)))
}

// PrintCaptured emits a captured tool stream.  The bytes are decoded on a
// best-effort basis so a tool babbling in the build host's locale never
// breaks the report.  A non-empty banner precedes the content, styled when
// color is on.
func PrintCaptured(w io.Writer, banner string, data []byte, color bool) {
	if w == nil {
		w = os.Stdout
	}

	if banner != "" {
		if color {
			headerColor, _, _ := getColors("colors")
			banner = lipgloss.NewStyle().Foreground(lipgloss.Color(headerColor)).Render(banner)
		}
		fmt.Fprintln(w, banner)
	}

	if len(data) == 0 {
		return
	}

	text := capture.DecodeBestEffort(data)
	fmt.Fprint(w, text)
	if len(text) > 0 && text[len(text)-1] != '\n' {
		fmt.Fprintln(w)
	}
}

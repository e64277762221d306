// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package version carries the bldctl release version and helpers for turning
// a bldc toolchain version string into the integer rank embedded in versioned
// companion filenames.
package version

import (
	"fmt"
	"os"
	"regexp"

	"github.com/staranto/bldctlgo/internal/config"
)

// Version is the bldctl release version. Overridden at build time via
// -ldflags "-X ...version.Version=...".
var Version = "0.4.0"

var toolchainRegex = regexp.MustCompile(`^([0-9]+)\.([0-9]+)`)

// ToolchainRank converts a toolchain version string into the two-part
// major+minor concatenation used in versioned companion filenames, e.g.
// "3.1.2" -> 31 and "3.10" -> 310. Anything after the minor part is ignored.
func ToolchainRank(v string) (int, error) {
	parts := toolchainRegex.FindStringSubmatch(v)
	if parts == nil {
		return 0, fmt.Errorf("invalid toolchain version: %q", v)
	}

	var rank int
	if _, err := fmt.Sscanf(parts[1]+parts[2], "%d", &rank); err != nil {
		return 0, fmt.Errorf("invalid toolchain version: %q", v)
	}
	return rank, nil
}

// CurrentToolchain resolves the active toolchain version string.
// Precedence:
//  1. the explicit value, if non-empty (typically the --toolchain flag)
//  2. BLDCTL_TOOLCHAIN
//  3. config key toolchain.version
func CurrentToolchain(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if tc, ok := os.LookupEnv("BLDCTL_TOOLCHAIN"); ok && tc != "" {
		return tc, nil
	}
	if tc, err := config.GetString("toolchain.version"); err == nil && tc != "" {
		return tc, nil
	}
	return "", fmt.Errorf("no toolchain version configured")
}

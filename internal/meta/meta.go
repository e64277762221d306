// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"context"

	"github.com/staranto/bldctlgo/internal/config"
	"github.com/staranto/bldctlgo/internal/memo"
)

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	// Registry collects every per-run memo cache so a command (or a test)
	// can drop all cached filesystem state in one call.
	Registry    *memo.Registry
	RootDir     string
	StartingDir string
}

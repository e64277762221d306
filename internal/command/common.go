// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/staranto/bldctlgo/internal/attrs"
	"github.com/staranto/bldctlgo/internal/config"
	"github.com/staranto/bldctlgo/internal/memo"
	"github.com/staranto/bldctlgo/internal/meta"
	"github.com/staranto/bldctlgo/internal/output"
	"github.com/staranto/bldctlgo/internal/resolve"
	"github.com/staranto/bldctlgo/internal/version"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr bldctl <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "bldctl", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// DumpSchemaIfRequested prints the JSON schema for the provided type when
// --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema("", t)
		return true
	}
	return false
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		for _, d := range defaults {
			al.Set(d)
		}
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
		al.SetGlobalTransformSpec()
	}
	return
}

// EmitEntries wraps a result slice in an {"entries": ...} document and passes
// it to the common output routine.
func EmitEntries(results any, al attrs.AttrList, cmd *cli.Command) error {
	doc := map[string]any{"entries": results}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	output.SliceDiceSpit(*bytes.NewBuffer(raw), al, cmd, "entries", os.Stdout)
	return nil
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// NewResolverFromCommand constructs a resolve.Resolver honoring the --marker
// flag and the package.markers config list, sharing the run-wide memo
// registry so repeated lookups inside one invocation hit the cache.
func NewResolverFromCommand(cmd *cli.Command) *resolve.Resolver {
	m := GetMeta(cmd)

	reg := m.Registry
	if reg == nil {
		reg = memo.NewRegistry()
	}

	opts := []resolve.Option{}
	if marker := cmd.String("marker"); marker != "" {
		opts = append(opts, resolve.WithMarker(marker))
	}
	if files, err := config.GetStringSlice("package.markers"); err == nil && len(files) > 0 {
		opts = append(opts, resolve.WithPackageFiles(files))
	}

	return resolve.New(reg, opts...)
}

// CurrentToolchainRank resolves the working toolchain version (--toolchain,
// environment, then config) and converts it to a companion file rank.
func CurrentToolchainRank(cmd *cli.Command) (int, error) {
	v, err := version.CurrentToolchain(cmd.String("toolchain"))
	if err != nil {
		return 0, err
	}
	return version.ToolchainRank(v)
}

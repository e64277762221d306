// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/bldctlgo/internal/meta"
	"github.com/staranto/bldctlgo/internal/resolve"
)

func PkgCheckCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "pkg") {
		return nil
	}
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(resolve.PackageDir{})) {
		return nil
	}

	args := cmd.Args().Slice()
	if len(args) < 1 {
		return fmt.Errorf("expected <dir> [segments...], got %v", args)
	}
	dir, segments := args[0], args[1:]

	if len(segments) > 0 {
		if err := resolve.CheckReservedName(strings.Join(segments, ".")); err != nil {
			return err
		}
	}

	r := NewResolverFromCommand(cmd)
	pd, err := r.CheckPackageDir(dir, segments)
	if err != nil {
		return err
	}

	al := BuildAttrs(cmd, "dir", "namespace")
	return EmitEntries([]resolve.PackageDir{pd}, al, cmd)
}

func PkgRootCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "pkg") {
		return nil
	}

	args := cmd.Args().Slice()
	if len(args) != 1 {
		return fmt.Errorf("expected <file>, got %v", args)
	}

	r := NewResolverFromCommand(cmd)
	fmt.Println(r.FindRootPackageDir(args[0]))
	return nil
}

func PkgCommandBuilder(app *cli.Command, m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:  "pkg",
		Usage: "package directory queries",
		Metadata: map[string]any{
			"meta": m,
		},
		Commands: []*cli.Command{
			{
				Name:      "check",
				Usage:     "classify a directory as package or namespace",
				UsageText: `bldctl pkg check <dir> [segments...] [options]`,
				Metadata: map[string]any{
					"meta": m,
				},
				Flags: append([]cli.Flag{
					NewMarkerFlag("pkg", m.Config.Source),
					tldrFlag,
					schemaFlag,
				}, NewGlobalFlags("pkg")...),
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := GlobalFlagsValidator(ctx, c); err != nil {
						return err
					}
					return PkgCheckCommandAction(ctx, c)
				},
			},
			{
				Name:      "root",
				Usage:     "find the outermost package directory holding a file",
				UsageText: `bldctl pkg root <file> [options]`,
				Metadata: map[string]any{
					"meta": m,
				},
				Flags: []cli.Flag{
					NewMarkerFlag("pkg", m.Config.Source),
					tldrFlag,
				},
				Action: PkgRootCommandAction,
			},
		},
	}
}

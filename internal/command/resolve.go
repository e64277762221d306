// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/bldctlgo/internal/cacheutil"
	"github.com/staranto/bldctlgo/internal/meta"
	"github.com/staranto/bldctlgo/internal/output"
	"github.com/staranto/bldctlgo/internal/resolve"
)

func ResolveCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "resolve") {
		return nil
	}

	// Bail out early if we're just dumping the schema.
	if DumpSchemaIfRequested(cmd, reflect.TypeOf(resolve.VersionEntry{})) {
		return nil
	}

	args := cmd.Args().Slice()
	if len(args) < 3 {
		return fmt.Errorf("expected <dir> <base> <suffix>, got %v", args)
	}
	dir, base, suffix := args[0], args[1], args[2]

	r := NewResolverFromCommand(cmd)

	if cmd.Bool("all") {
		return resolveAll(cmd, r, dir, base, suffix)
	}

	rank, err := CurrentToolchainRank(cmd)
	if err != nil {
		return err
	}
	log.Debugf("toolchain rank: %d", rank)

	path, err := r.FindVersionedFile(dir, base, suffix, rank)
	if err != nil {
		return err
	}
	if path == "" {
		return fmt.Errorf("no companion file for %s%s in %s", base, suffix, dir)
	}

	fmt.Println(path)
	return nil
}

// resolveAll lists every versioned companion of <base><suffix>, optionally
// through the on-disk cache, and hands the entries to the output pipeline.
func resolveAll(cmd *cli.Command, r *resolve.Resolver, dir, base, suffix string) error {
	al := BuildAttrs(cmd, "version", "path")
	log.Debugf("attrs: %v", al)

	scan := func() ([]byte, error) {
		entries, err := r.ScanVersionedFiles(dir, base, suffix)
		if err != nil {
			return nil, err
		}
		return json.Marshal(map[string]any{"entries": entries})
	}

	var raw []byte
	var err error
	if cmd.Bool("cache") {
		key := strings.Join([]string{dir, base, suffix, cmd.String("marker")}, "\x00")
		raw, err = cacheutil.ReadThrough([]string{"resolve"}, key, scan)
	} else {
		raw, err = scan()
	}
	if err != nil {
		return err
	}

	output.SliceDiceSpit(*bytes.NewBuffer(raw), al, cmd, "entries", os.Stdout)
	return nil
}

func ResolveCommandBuilder(app *cli.Command, m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "resolve versioned companion files",
		UsageText: `bldctl resolve <dir> <base> <suffix> [options]`,
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:        "all",
				Usage:       "list every versioned companion instead of the best match",
				HideDefault: true,
			},
			&cli.BoolFlag{
				Name:        "cache",
				Usage:       "read and write the companion scan through the on-disk cache",
				HideDefault: true,
			},
			NewMarkerFlag("resolve", m.Config.Source),
			NewToolchainFlag("resolve", m.Config.Source),
			tldrFlag,
			schemaFlag,
		}, NewGlobalFlags("resolve")...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := ResolveCommandValidator(ctx, c); err != nil {
				return err
			}
			return ResolveCommandAction(ctx, c)
		},
	}
}

func ResolveCommandValidator(ctx context.Context, cmd *cli.Command) error {
	return GlobalFlagsValidator(ctx, cmd)
}

// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/bldctlgo/internal/fileutil"
	"github.com/staranto/bldctlgo/internal/meta"
)

func SrcEncodingCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "src") {
		return nil
	}

	args := cmd.Args().Slice()
	if len(args) != 1 {
		return fmt.Errorf("expected <file>, got %v", args)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Println(fileutil.DetectSourceEncoding(f, "UTF-8"))
	return nil
}

func SrcCatCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "src") {
		return nil
	}

	args := cmd.Args().Slice()
	if len(args) != 1 {
		return fmt.Errorf("expected <file>, got %v", args)
	}

	r, closer, err := fileutil.OpenSourceFile(args[0])
	if err != nil {
		return err
	}
	defer closer.Close()

	if _, err := io.Copy(os.Stdout, r); err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	return nil
}

func SrcCommandBuilder(app *cli.Command, m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:  "src",
		Usage: "inspect source modules",
		Metadata: map[string]any{
			"meta": m,
		},
		Commands: []*cli.Command{
			{
				Name:      "encoding",
				Usage:     "report the declared encoding of a source module",
				UsageText: `bldctl src encoding <file>`,
				Metadata: map[string]any{
					"meta": m,
				},
				Flags: []cli.Flag{
					tldrFlag,
				},
				Action: SrcEncodingCommandAction,
			},
			{
				Name:      "cat",
				Usage:     "print a source module decoded to UTF-8",
				UsageText: `bldctl src cat <file>`,
				Metadata: map[string]any{
					"meta": m,
				},
				Flags: []cli.Flag{
					tldrFlag,
				},
				Action: SrcCatCommandAction,
			},
		},
	}
}

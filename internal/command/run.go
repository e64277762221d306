// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/bldctlgo/internal/capture"
	"github.com/staranto/bldctlgo/internal/fileutil"
	"github.com/staranto/bldctlgo/internal/meta"
	"github.com/staranto/bldctlgo/internal/output"
)

func RunCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "run") {
		return nil
	}

	args := cmd.Args().Slice()
	if len(args) == 0 {
		return fmt.Errorf("no tool specified; usage: bldctl run [options] -- <tool> [args...]")
	}

	stream := int(cmd.Int("stream"))

	// Record the pre-run mtimes of any outputs we may have to poison, before
	// the tool gets a chance to touch them.
	marks := cmd.StringSlice("mark-failed")
	prev := make(map[string]time.Time, len(marks))
	for _, path := range marks {
		prev[path], _ = fileutil.ModificationTime(path)
	}

	session, err := capture.Begin(stream)
	if err != nil {
		return err
	}

	// The child inherits our redirected descriptor, so its stream lands in
	// the capture along with anything we write ourselves.
	tool := exec.CommandContext(ctx, args[0], args[1:]...)
	tool.Stdin = os.Stdin
	tool.Stdout = os.Stdout
	tool.Stderr = os.Stderr
	runErr := tool.Run()

	if err := session.Close(); err != nil {
		return err
	}

	captured, err := session.Bytes()
	if err != nil {
		return err
	}
	log.Debugf("captured %d bytes from stream %d", len(captured), stream)

	if cmd.Bool("diag") {
		al := BuildAttrs(cmd, "level", "module", "where")
		output.SliceDiceSpit(*bytes.NewBuffer(captured), al, cmd, "", os.Stdout)
	} else {
		// --header with no text gets the stock stream/size banner.
		banner := cmd.String("header")
		if cmd.IsSet("header") && banner == "" {
			label := "stderr"
			if stream == capture.Stdout {
				label = "stdout"
			}
			banner = output.Banner(label, len(captured))
		}
		output.PrintCaptured(os.Stdout, banner, captured, cmd.Bool("color"))
	}

	if runErr != nil {
		// Stomp half-written outputs so a later incremental build doesn't
		// mistake them for good ones.
		for _, path := range marks {
			if err := fileutil.MarkFailedOutput(path, prev[path]); err != nil {
				log.WithError(err).Warnf("failed to mark %s", path)
			}
		}
		return fmt.Errorf("%s failed: %w", args[0], runErr)
	}
	return nil
}

func RunCommandBuilder(app *cli.Command, m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "run a tool with a stream captured",
		UsageText: `bldctl run [options] -- <tool> [args...]`,
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:  "stream",
				Usage: "stream to capture: 1 (stdout) or 2 (stderr)",
				Value: capture.Stderr,
				Validator: func(value int) error {
					return FlagValidators(value, StreamValidator)
				},
			},
			&cli.BoolFlag{
				Name:        "diag",
				Usage:       "treat the captured stream as JSON diagnostics",
				HideDefault: true,
			},
			&cli.StringFlag{
				Name:  "header",
				Usage: "banner line to print before the captured stream",
			},
			&cli.StringSliceFlag{
				Name:  "mark-failed",
				Usage: "output file to poison and backdate if the tool fails",
			},
			tldrFlag,
		}, NewGlobalFlags("run")...),
		Action: func(ctx context.Context, c *cli.Command) error {
			if err := GlobalFlagsValidator(ctx, c); err != nil {
				return err
			}
			return RunCommandAction(ctx, c)
		},
	}
}

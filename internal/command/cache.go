// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/bldctlgo/internal/cacheutil"
	"github.com/staranto/bldctlgo/internal/meta"
)

func CachePurgeCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "cache") {
		return nil
	}

	hours := int(cmd.Int("hours"))
	if err := cacheutil.Purge(hours); err != nil {
		return err
	}

	if dir, ok := cacheutil.Dir(); ok {
		fmt.Printf("purged entries older than %dh from %s\n", hours, dir)
	}
	return nil
}

func CacheCommandBuilder(app *cli.Command, m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "manage the on-disk scan cache",
		Metadata: map[string]any{
			"meta": m,
		},
		Commands: []*cli.Command{
			{
				Name:      "purge",
				Usage:     "remove cache entries older than a cutoff",
				UsageText: `bldctl cache purge [--hours N]`,
				Metadata: map[string]any{
					"meta": m,
				},
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "hours",
						Usage: "age in hours beyond which entries are removed",
						Value: 24,
						Sources: cli.NewValueSourceChain(
							yaml.YAML("cache.clean", altsrc.StringSourcer(m.Config.Source)),
						),
					},
					tldrFlag,
				},
				Action: CachePurgeCommandAction,
			},
		},
	}
}

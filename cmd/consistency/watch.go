// SPDX-License-Identifier: MIT

package main

import (
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/katalvlaran/consistency/config"
	"github.com/katalvlaran/consistency/report"
	"github.com/spf13/cobra"
)

func newWatchCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <population.yaml>",
		Short: "Re-score a population whenever it or the config file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load()
			if err != nil {
				return err
			}
			defer e.cleanup()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			path := args[0]
			cfg := e.cfg
			rescore := func(changed string) error {
				if g.configPath != "" && changed == filepath.Clean(g.configPath) {
					next, err := config.Load(g.configPath)
					if err != nil {
						return err
					}
					cfg = next
				}
				s, err := score(ctx, cfg, path, e.logger)
				if err != nil {
					return err
				}
				return report.Write(cmd.OutOrStdout(), e.format, s)
			}
			if err := rescore(path); err != nil {
				return err
			}

			watched := []string{path}
			if g.configPath != "" {
				watched = append(watched, g.configPath)
			}

			return config.Watch(ctx, e.logger, rescore, watched...)
		},
	}
}

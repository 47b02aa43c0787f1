// SPDX-License-Identifier: MIT

package main

import (
	"github.com/katalvlaran/consistency/report"
	"github.com/spf13/cobra"
)

func newScoreCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "score <population.yaml>",
		Short: "Evaluate a population once and print the scores",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.load()
			if err != nil {
				return err
			}
			defer e.cleanup()

			s, err := score(cmd.Context(), e.cfg, args[0], e.logger)
			if err != nil {
				return err
			}

			return report.Write(cmd.OutOrStdout(), e.format, s)
		},
	}
}

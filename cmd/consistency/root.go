// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/katalvlaran/consistency/agent"
	"github.com/katalvlaran/consistency/config"
	"github.com/katalvlaran/consistency/population"
	"github.com/katalvlaran/consistency/report"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Version is set at build time.
var Version = "0.1.0"

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	format     string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:   "consistency",
		Short: "Score agent consistency within a population",
		Long: `Consistency measures how far each agent's beliefs or plans sit from the
rest of its population. Pairwise dissimilarities become a Markov chain whose
stationary distribution is each agent's inconsistency.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "engine config file (YAML); defaults apply when empty")
	root.PersistentFlags().StringVarP(&g.format, "format", "f", "", "output format: table | json | prom (default table on a terminal, json otherwise)")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newScoreCmd(g), newWatchCmd(g), newVersionCmd())

	return root
}

// env is the loaded configuration and logger of one invocation.
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	format  report.Format
	cleanup func() error
}

func (g *globalFlags) load() (*env, error) {
	cfg := config.Default()
	if g.configPath != "" {
		var err error
		if cfg, err = config.Load(g.configPath); err != nil {
			return nil, err
		}
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return nil, err
	}
	if g.verbose {
		level = slog.LevelDebug
	}
	format, err := g.resolveFormat()
	if err != nil {
		return nil, err
	}
	logger, cleanup := config.SetupLogger(cfg.Log.File, level)

	return &env{cfg: cfg, logger: logger, format: format, cleanup: cleanup}, nil
}

func (g *globalFlags) resolveFormat() (report.Format, error) {
	if g.format != "" {
		return report.ParseFormat(g.format)
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return report.FormatTable, nil
	}

	return report.FormatJSON, nil
}

// score loads the population at path, evaluates it once and summarizes.
func score(ctx context.Context, cfg *config.Config, path string, logger *slog.Logger) (report.Summary, error) {
	doc, err := population.Load(path)
	if err != nil {
		return report.Summary{}, err
	}
	agents, err := doc.Materialize()
	if err != nil {
		return report.Summary{}, err
	}
	eng, err := config.NewEngine[*agent.Agent](cfg.Engine, logger)
	if err != nil {
		return report.Summary{}, err
	}
	eng.Add(agents...)
	if err := eng.Evaluate(ctx); err != nil {
		return report.Summary{}, fmt.Errorf("evaluate %s: %w", path, err)
	}
	logger.Info("population scored", "path", path, "agents", eng.Len(), "solver", eng.Solver().String())

	return report.Collect(eng, cfg.Engine.Metric), nil
}

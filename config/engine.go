// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/consistency/consistency"
	"github.com/katalvlaran/consistency/filter"
	"github.com/katalvlaran/consistency/metric"
)

// Entity is what a configured engine can score: a comparable handle onto
// observable beliefs and plans.
type Entity interface {
	comparable
	filter.Observable
}

// BuildMetric resolves Metric with its parameters.
func (e EngineConfig) BuildMetric() (metric.Metric, error) {
	c, err := metric.ParseCompression(e.Compression)
	if err != nil {
		return nil, err
	}

	return metric.ByName(e.Metric, metric.Options{Normalized: e.Normalize, Compression: c})
}

// BuildSolver resolves Algorithm. The iterative solver is seeded when Seed
// is set.
func (e EngineConfig) BuildSolver() (consistency.Solver, error) {
	switch e.Algorithm {
	case consistency.AlgorithmExact:
		return consistency.Exact{}, nil
	case consistency.AlgorithmIterative:
		if e.Seed != nil {
			return consistency.NewSeededIterative(e.Iterations, *e.Seed)
		}
		return consistency.NewIterative(e.Iterations, nil)
	}

	return nil, fmt.Errorf("unknown algorithm %q", e.Algorithm)
}

// BuildFilter resolves Filter scoped to Paths.
func BuildFilter[E filter.Observable](e EngineConfig) (filter.Filter[E], error) {
	switch e.Filter {
	case FilterAll:
		return filter.NewAll[E](e.Paths...), nil
	case FilterBeliefs:
		return filter.NewBeliefs[E](e.Paths...), nil
	case FilterPlans:
		return filter.NewPlans[E](e.Paths...), nil
	}

	return nil, fmt.Errorf("unknown filter %q", e.Filter)
}

// NewEngine builds a consistency engine from e, logging to logger.
func NewEngine[E Entity](e EngineConfig, logger *slog.Logger) (*consistency.Engine[E], error) {
	f, err := BuildFilter[E](e)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	m, err := e.BuildMetric()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	s, err := e.BuildSolver()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return consistency.New(f, m,
		consistency.WithSolver(s),
		consistency.WithEpsilon(e.Epsilon),
		consistency.WithWorkers(e.Workers),
		consistency.WithLogger(logger),
	)
}

// SPDX-License-Identifier: MIT

package consistency

import (
	"fmt"
	"log/slog"
	"math"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the self-loop weight written on the transition
	// diagonal. It keeps the chain aperiodic without dominating the rows.
	DefaultEpsilon = 0.001

	// DefaultWorkers selects runtime.GOMAXPROCS(0) for the matrix fan-out.
	DefaultWorkers = 0
)

// Option configures an Engine at construction. Options validate their
// arguments eagerly; New reports the first invalid one.
type Option func(o *options) error

type options struct {
	solver  Solver
	epsilon float64
	workers int
	logger  *slog.Logger
}

func defaultOptions() options {
	return options{
		solver:  Exact{},
		epsilon: DefaultEpsilon,
		workers: DefaultWorkers,
		logger:  slog.Default(),
	}
}

// gatherOptions applies opts over the defaults in order.
func gatherOptions(opts ...Option) (options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&o); err != nil {
			return options{}, err
		}
	}

	return o, nil
}

// WithSolver selects the stationary-distribution solver (default Exact{}).
func WithSolver(s Solver) Option {
	return func(o *options) error {
		if s == nil {
			return ErrNilSolver
		}
		if it, ok := s.(*Iterative); ok && it == nil {
			return ErrNilSolver
		}
		o.solver = s
		return nil
	}
}

// WithEpsilon sets the diagonal self-loop weight; it must be finite and > 0.
func WithEpsilon(eps float64) Option {
	return func(o *options) error {
		if math.IsNaN(eps) || math.IsInf(eps, 0) || eps <= 0 {
			return fmt.Errorf("%w: got %v", ErrInvalidEpsilon, eps)
		}
		o.epsilon = eps
		return nil
	}
}

// WithWorkers bounds the matrix fan-out; 0 selects GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) error {
		if n < 0 {
			return fmt.Errorf("%w: got %d", ErrInvalidWorkers, n)
		}
		o.workers = n
		return nil
	}
}

// WithLogger routes engine logs to l; nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) error {
		if l != nil {
			o.logger = l
		}
		return nil
	}
}

// SPDX-License-Identifier: MIT

package consistency

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"sync"
	"time"

	"github.com/katalvlaran/consistency/filter"
	"github.com/katalvlaran/consistency/matrix"
	"github.com/katalvlaran/consistency/metric"
	"github.com/samber/lo"
)

// Score is the per-entity result of an evaluation.
type Score struct {
	// Consistency is (1 − π_i)/‖π‖₁, in [0,1].
	Consistency float64 `json:"consistency"`
	// Inconsistency is the stationary probability π_i, in [0,1].
	Inconsistency float64 `json:"inconsistency"`
}

// DefaultScore is reported for entities without computed data: full
// consistency absent evidence.
var DefaultScore = Score{Consistency: 1, Inconsistency: 0}

// Engine scores a dynamic group of entities E against each other.
//
// The registry is safe for concurrent Add, Remove and queries. Evaluate
// holds a dedicated lock, so at most one evaluation is in flight; the
// registry lock is only taken to snapshot entities and to publish results,
// never across the matrix build or solve.
type Engine[E comparable] struct {
	filter filter.Filter[E]
	metric metric.Metric
	opts   options

	evalMu sync.Mutex   // single Evaluate in flight
	mu     sync.RWMutex // guards scores, stats
	scores map[E]Score
	stats  Statistics
}

// New returns an engine projecting entities with f and comparing them with m.
//
// Errors:
//   - ErrNilFilter, ErrNilMetric for missing collaborators.
//   - The first error reported by opts (ErrNilSolver, ErrInvalidEpsilon, ErrInvalidWorkers).
func New[E comparable](f filter.Filter[E], m metric.Metric, opts ...Option) (*Engine[E], error) {
	if f == nil {
		return nil, ErrNilFilter
	}
	if m == nil {
		return nil, ErrNilMetric
	}
	o, err := gatherOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("new engine: %w", err)
	}

	return &Engine[E]{
		filter: f,
		metric: m,
		opts:   o,
		scores: make(map[E]Score),
	}, nil
}

// Filter returns the representation filter.
func (e *Engine[E]) Filter() filter.Filter[E] { return e.filter }

// Metric returns the distance metric.
func (e *Engine[E]) Metric() metric.Metric { return e.metric }

// Solver returns the configured solver.
func (e *Engine[E]) Solver() Solver { return e.opts.solver }

// Epsilon returns the diagonal self-loop weight.
func (e *Engine[E]) Epsilon() float64 { return e.opts.epsilon }

// Add starts tracking entities with DefaultScore. Tracked entities keep
// their current score.
func (e *Engine[E]) Add(entities ...E) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, ent := range entities {
		if _, ok := e.scores[ent]; !ok {
			e.scores[ent] = DefaultScore
		}
	}
}

// Remove stops tracking entities. Unknown entities are ignored.
func (e *Engine[E]) Remove(entities ...E) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, ent := range entities {
		delete(e.scores, ent)
	}
}

// Len returns the number of tracked entities.
func (e *Engine[E]) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.scores)
}

// Clear drops every tracked entity and the statistics.
func (e *Engine[E]) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	clear(e.scores)
	e.stats.Reset()
}

// Evaluate recomputes every tracked entity's score.
//
// Implementation:
//   - Stage 1: snapshot the tracked entities; fewer than 2 is a no-op.
//   - Stage 2: BuildTransition over the snapshot.
//   - Stage 3: a degenerate matrix yields the zero vector; otherwise solve.
//   - Stage 4: with s1 = ‖π‖₁, store inconsistency π_i and consistency
//     (1 − π_i)/s1. When s1 == 0 every evaluated entity is reset to
//     DefaultScore instead.
//   - Stage 5: rebuild Statistics from π.
//
// Entities removed while the evaluation runs stay removed; entities added
// during it keep DefaultScore until the next evaluation.
//
// Errors:
//   - metric.ErrInvalidDistance (wrapped) when the metric breaks its contract.
//   - solver errors (matrix sentinels) and ctx.Err() on cancellation.
//
// On error the stored scores and statistics are left untouched.
func (e *Engine[E]) Evaluate(ctx context.Context) error {
	e.evalMu.Lock()
	defer e.evalMu.Unlock()

	log := e.opts.logger
	e.mu.RLock()
	entities := lo.Keys(e.scores)
	e.mu.RUnlock()

	n := len(entities)
	if n < 2 {
		log.DebugContext(ctx, "consistency evaluation skipped", slog.Int("entities", n))
		return nil
	}
	start := time.Now()
	log.DebugContext(ctx, "consistency evaluation started",
		slog.Int("entities", n),
		slog.String("solver", e.opts.solver.String()),
	)

	t, err := BuildTransition(ctx, entities, e.filter, e.metric, e.opts.epsilon, e.opts.workers)
	if err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}

	var pi []float64
	if t.Degenerate() {
		log.DebugContext(ctx, "consistency matrix degenerate", slog.Int("entities", n))
		pi = make([]float64, n)
	} else if pi, err = e.opts.solver.Solve(t); err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}
	if err := matrix.ValidateFinite(pi); err != nil {
		return fmt.Errorf("evaluate: stationary vector: %w", err)
	}
	s1 := matrix.Norm1(pi)

	e.mu.Lock()
	e.stats.Reset()
	for i, ent := range entities {
		e.stats.Add(pi[i])
		if _, ok := e.scores[ent]; !ok {
			continue
		}
		if s1 == 0 {
			e.scores[ent] = DefaultScore
			continue
		}
		e.scores[ent] = Score{Consistency: (1 - pi[i]) / s1, Inconsistency: pi[i]}
	}
	stats := e.stats
	e.mu.Unlock()

	log.DebugContext(ctx, "consistency evaluation done",
		slog.Int("entities", n),
		slog.Float64("mean", stats.Mean()),
		slog.Float64("stddev", stats.StdDev()),
		slog.Duration("elapsed", time.Since(start)),
	)

	return nil
}

// Score returns the stored score of ent and whether ent is tracked.
// Untracked entities report DefaultScore.
func (e *Engine[E]) Score(ent E) (Score, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, ok := e.scores[ent]
	if !ok {
		return DefaultScore, false
	}

	return s, true
}

// Consistency returns the consistency of ent, 1 when unknown.
func (e *Engine[E]) Consistency(ent E) float64 {
	s, _ := e.Score(ent)
	return s.Consistency
}

// Inconsistency returns the inconsistency of ent, 0 when unknown.
func (e *Engine[E]) Inconsistency(ent E) float64 {
	s, _ := e.Score(ent)
	return s.Inconsistency
}

// Scores returns a copy of every tracked entity's score.
func (e *Engine[E]) Scores() map[E]Score {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return lo.Assign(e.scores)
}

// Consistencies yields (entity, consistency) for every tracked entity.
// Each call takes a fresh snapshot; iteration order is unspecified.
func (e *Engine[E]) Consistencies() iter.Seq2[E, float64] {
	return e.values(func(s Score) float64 { return s.Consistency })
}

// Inconsistencies yields (entity, inconsistency) for every tracked entity.
// Each call takes a fresh snapshot; iteration order is unspecified.
func (e *Engine[E]) Inconsistencies() iter.Seq2[E, float64] {
	return e.values(func(s Score) float64 { return s.Inconsistency })
}

// values snapshots lazily on first pull so consumers may call back into
// the engine from the loop body without holding the registry lock.
func (e *Engine[E]) values(pick func(Score) float64) iter.Seq2[E, float64] {
	return func(yield func(E, float64) bool) {
		for ent, s := range e.Scores() {
			if !yield(ent, pick(s)) {
				return
			}
		}
	}
}

// Statistics returns a copy of the aggregate over the latest stationary vector.
func (e *Engine[E]) Statistics() Statistics {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return e.stats
}

// SPDX-License-Identifier: MIT

package consistency

import (
	"context"
	"fmt"
	"runtime"

	"github.com/katalvlaran/consistency/filter"
	"github.com/katalvlaran/consistency/matrix"
	"github.com/katalvlaran/consistency/metric"
	"golang.org/x/sync/errgroup"
)

// Transition is the dissimilarity-driven Markov transition matrix of one
// evaluation.
//
//   - Matrix holds the row-normalized dissimilarities with ε on the diagonal.
//   - RowNorms holds each row's 1-norm before normalization (the entity's
//     total dissimilarity to the group). Zero means the row was left as is.
//   - Epsilon is the self-loop weight written on the diagonal.
type Transition struct {
	Matrix   *matrix.Dense
	RowNorms []float64
	Epsilon  float64
}

// Size returns the matrix order n.
func (t *Transition) Size() int { return t.Matrix.Rows() }

// Degenerate reports whether the matrix carries no discriminating signal:
// every off-diagonal entry is zero, i.e. the total sum is n·ε.
// Complexity: O(n²).
func (t *Transition) Degenerate() bool {
	return t.Matrix.OffDiagonalSum() == 0
}

// BuildTransition assembles the n×n transition matrix for entities.
//
// Implementation:
//   - Stage 1: project every entity once with f (fan-out, one task per entity).
//   - Stage 2: for every unordered pair i<j compute d = m(repr_i, repr_j),
//     validate it and write it to (i,j) and (j,i). One task per row i covers
//     the cells (i, j>i) and their mirrors, so tasks never share a cell.
//   - Stage 3: barrier (errgroup Wait), then divide each row by its 1-norm
//     unless that norm is zero.
//   - Stage 4: overwrite the diagonal with eps.
//
// Inputs:
//   - entities: the evaluation order; index i addresses row/column i.
//   - workers: fan-out limit; ≤ 0 selects runtime.GOMAXPROCS(0).
//
// Errors:
//   - matrix.ErrInvalidDimensions when entities is empty.
//   - metric.ErrInvalidDistance (wrapped with the pair) on contract violations.
//   - ctx.Err() when the context is cancelled during the fan-out.
//
// Complexity:
//   - Time O(n²) metric calls spread over workers, Space O(n²).
func BuildTransition[E comparable](
	ctx context.Context,
	entities []E,
	f filter.Filter[E],
	m metric.Metric,
	eps float64,
	workers int,
) (*Transition, error) {
	n := len(entities)
	dense, err := matrix.NewSquare(n)
	if err != nil {
		return nil, fmt.Errorf("build transition: %w", err)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	reprs := make([]filter.Representation, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range entities {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reprs[i] = f.Apply(entities[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build transition: project: %w", err)
	}

	g, gctx = errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n-1; i++ {
		g.Go(func() error {
			for j := i + 1; j < n; j++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				d := m.Distance(reprs[i], reprs[j])
				if err := metric.Validate(d); err != nil {
					return fmt.Errorf("pair (%d,%d): %w", i, j, err)
				}
				if err := dense.Set(i, j, d); err != nil {
					return err
				}
				if err := dense.Set(j, i, d); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build transition: %w", err)
	}

	norms := make([]float64, n)
	for i := 0; i < n; i++ {
		row, err := dense.RowView(i)
		if err != nil {
			return nil, fmt.Errorf("build transition: %w", err)
		}
		norms[i] = matrix.Norm1(row)
		matrix.ScaleVec(row, norms[i])
		row[i] = eps
	}

	return &Transition{Matrix: dense, RowNorms: norms, Epsilon: eps}, nil
}

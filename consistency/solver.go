// SPDX-License-Identifier: MIT

package consistency

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/katalvlaran/consistency/matrix"
)

// Algorithm names, as used in configuration files.
const (
	AlgorithmExact     = "exact"
	AlgorithmIterative = "iterative"
)

// Solver computes the stationary distribution of a transition matrix: its
// dominant left eigenvector, normalized to 1-norm 1 with non-negative
// entries. A zero vector is returned unchanged (zero).
//
// The set of solvers is closed: Exact and *Iterative are the only
// implementations, so an unknown algorithm cannot reach evaluation time.
type Solver interface {
	Solve(t *Transition) ([]float64, error)
	fmt.Stringer
	sealed()
}

var (
	_ Solver = Exact{}
	_ Solver = (*Iterative)(nil)
)

// Exact solves through a full symmetric eigendecomposition.
//
// Implementation:
//   - Stage 1: for M = D⁻¹W + εI (W symmetric dissimilarities, D = diag(RowNorms))
//     form the similar symmetric matrix S = D^{1/2}·M·D^{-1/2} = D^{-1/2}WD^{-1/2} + εI.
//     Rows with a zero norm map to an isolated ε on the diagonal.
//   - Stage 2: Jacobi-decompose S; pick the eigenvalue that is strictly largest
//     scanning left to right (ties keep the lowest index).
//   - Stage 3: map the eigenvector u back to the left eigenvector π = D^{1/2}u,
//     normalize by the 1-norm and take absolute values.
//
// A Transition without RowNorms must already be symmetric; its left and
// right eigenvectors coincide and it is decomposed as is.
//
// Determinism: identical matrices give identical vectors.
// Complexity: O(n³) per Jacobi sweep budget, Space O(n²).
type Exact struct {
	// Tolerance of the Jacobi off-diagonal convergence test (≤ 0: matrix default).
	Tolerance float64
	// MaxRotations caps Jacobi rotations (≤ 0: derived from n).
	MaxRotations int
}

func (Exact) sealed() {}

// String implements fmt.Stringer.
func (Exact) String() string { return AlgorithmExact }

// Solve implements Solver.
func (s Exact) Solve(t *Transition) ([]float64, error) {
	sym, weights, err := similarSymmetric(t)
	if err != nil {
		return nil, fmt.Errorf("exact: %w", err)
	}
	vals, vecs, err := matrix.EigenSym(sym, s.Tolerance, s.MaxRotations)
	if err != nil {
		return nil, fmt.Errorf("exact: %w", err)
	}

	best := 0
	for k := 1; k < len(vals); k++ {
		if vals[k] > vals[best] {
			best = k
		}
	}
	pi, err := matrix.Column(vecs, best)
	if err != nil {
		return nil, fmt.Errorf("exact: %w", err)
	}
	if weights != nil {
		for i := range pi {
			pi[i] *= weights[i]
		}
	}

	return finish(pi), nil
}

// similarSymmetric builds S and the back-transform weights √RowNorms
// (nil when the transition carries no norms).
func similarSymmetric(t *Transition) (*matrix.Dense, []float64, error) {
	if t == nil || t.Matrix == nil {
		return nil, nil, matrix.ErrNilMatrix
	}
	if err := matrix.ValidateSquare(t.Matrix); err != nil {
		return nil, nil, err
	}
	n := t.Size()
	if t.RowNorms == nil {
		return t.Matrix, nil, nil
	}
	if err := matrix.ValidateVecLen(t.RowNorms, n); err != nil {
		return nil, nil, err
	}

	weights := make([]float64, n)
	for i, d := range t.RowNorms {
		weights[i] = math.Sqrt(d)
	}
	sym, err := matrix.NewSquare(n)
	if err != nil {
		return nil, nil, err
	}
	var i, j int
	for i = 0; i < n; i++ {
		mii, err := t.Matrix.At(i, i)
		if err != nil {
			return nil, nil, err
		}
		if err = sym.Set(i, i, mii); err != nil {
			return nil, nil, fmt.Errorf("cell (%d,%d): %w", i, i, err)
		}
		for j = i + 1; j < n; j++ {
			var v float64
			if weights[i] > 0 && weights[j] > 0 {
				mij, err := t.Matrix.At(i, j)
				if err != nil {
					return nil, nil, err
				}
				mji, err := t.Matrix.At(j, i)
				if err != nil {
					return nil, nil, err
				}
				// Both halves equal W_ij/√(d_i·d_j); average away rounding.
				v = 0.5 * (mij*weights[i]/weights[j] + mji*weights[j]/weights[i])
			}
			// Set rejects NaN/Inf from overflowing row norms.
			if err = sym.Set(i, j, v); err != nil {
				return nil, nil, fmt.Errorf("cell (%d,%d): %w", i, j, err)
			}
			if err = sym.Set(j, i, v); err != nil {
				return nil, nil, fmt.Errorf("cell (%d,%d): %w", j, i, err)
			}
		}
	}

	return sym, weights, nil
}

// DefaultIterations is the power-iteration count used when none is configured.
const DefaultIterations = 8

// Iterative approximates the stationary distribution with a fixed number of
// left power iterations: v ← v·M, v ← v/‖v‖₂, starting from a random
// non-negative vector. There is no convergence check.
//
// The random source is injectable; NewIterative with a nil source draws an
// unseeded one. Solve serializes access to the source, so one *Iterative
// may be shared by several engines.
type Iterative struct {
	iterations int

	mu  sync.Mutex
	rng *rand.Rand
}

// NewIterative builds an iterative solver running k iterations over src.
//
// Errors:
//   - ErrInvalidIterations when k < 1.
func NewIterative(k int, src rand.Source) (*Iterative, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidIterations, k)
	}
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}

	return &Iterative{iterations: k, rng: rand.New(src)}, nil
}

// NewSeededIterative is NewIterative over a PCG source pinned by seed.
func NewSeededIterative(k int, seed uint64) (*Iterative, error) {
	return NewIterative(k, rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func (*Iterative) sealed() {}

// Iterations returns the configured iteration count.
func (s *Iterative) Iterations() int { return s.iterations }

// String implements fmt.Stringer.
func (s *Iterative) String() string {
	return fmt.Sprintf("%s(k=%d)", AlgorithmIterative, s.iterations)
}

// Solve implements Solver.
// Complexity: O(n²·k).
func (s *Iterative) Solve(t *Transition) ([]float64, error) {
	if t == nil || t.Matrix == nil {
		return nil, fmt.Errorf("iterative: %w", matrix.ErrNilMatrix)
	}
	if err := matrix.ValidateSquare(t.Matrix); err != nil {
		return nil, fmt.Errorf("iterative: %w", err)
	}

	v := make([]float64, t.Size())
	s.mu.Lock()
	for i := range v {
		v[i] = s.rng.Float64()
	}
	s.mu.Unlock()

	var err error
	for k := 0; k < s.iterations; k++ {
		if v, err = matrix.VecMat(v, t.Matrix); err != nil {
			return nil, fmt.Errorf("iterative: %w", err)
		}
		if !matrix.ScaleVec(v, matrix.Norm2(v)) {
			break // collapsed onto the zero vector
		}
	}

	return finish(v), nil
}

// finish normalizes v by its 1-norm (zero stays zero) and fixes the sign.
func finish(v []float64) []float64 {
	matrix.ScaleVec(v, matrix.Norm1(v))
	matrix.Abs(v)

	return v
}

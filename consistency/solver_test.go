// SPDX-License-Identifier: MIT

package consistency_test

import (
	"context"
	"math"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/katalvlaran/consistency/consistency"
	"github.com/katalvlaran/consistency/matrix"
	"github.com/katalvlaran/consistency/metric"
	"github.com/stretchr/testify/require"
)

func rankingTransition(t *testing.T) (*consistency.Transition, []string) {
	t.Helper()
	p := rankingPopulation()
	names := []string{"A", "B", "C", "D"}
	tr, err := consistency.BuildTransition(context.Background(), names, p.filter(), metric.SymmetricDifference{}, consistency.DefaultEpsilon, 0)
	require.NoError(t, err)

	return tr, names
}

// byWeight returns names ordered by ascending weight.
func byWeight(names []string, w []float64) []string {
	idx := []int{0, 1, 2, 3}
	slices.SortFunc(idx, func(a, b int) int {
		switch {
		case w[a] < w[b]:
			return -1
		case w[a] > w[b]:
			return 1
		}
		return 0
	})
	out := make([]string, len(idx))
	for k, i := range idx {
		out[k] = names[i]
	}

	return out
}

func TestExact_StationaryIsDegreeProportional(t *testing.T) {
	t.Parallel()

	tr, names := rankingTransition(t)
	pi, err := consistency.Exact{}.Solve(tr)
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{12.0 / 68, 14.0 / 68, 16.0 / 68, 26.0 / 68}, pi, 1e-9)
	require.InDelta(t, 1.0, matrix.Norm1(pi), 1e-12)
	require.Equal(t, []string{"A", "B", "C", "D"}, byWeight(names, pi))

	again, err := consistency.Exact{}.Solve(tr)
	require.NoError(t, err)
	require.Equal(t, pi, again, "exact solver is deterministic")
}

func TestExact_SymmetricWithoutNorms(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewSquare(2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, 0.001))
	require.NoError(t, m.Set(0, 1, 1))
	require.NoError(t, m.Set(1, 0, 1))
	require.NoError(t, m.Set(1, 1, 0.001))

	pi, err := consistency.Exact{}.Solve(&consistency.Transition{Matrix: m, Epsilon: 0.001})
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.5, 0.5}, pi, 1e-12)

	require.NoError(t, m.Set(0, 1, 0.5))
	_, err = consistency.Exact{}.Solve(&consistency.Transition{Matrix: m})
	require.ErrorIs(t, err, matrix.ErrAsymmetry)
}

func TestExact_RejectsOverflowingNorms(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewSquare(2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, 0.001))
	require.NoError(t, m.Set(0, 1, 1))
	require.NoError(t, m.Set(1, 0, 1))
	require.NoError(t, m.Set(1, 1, 0.001))

	_, err = consistency.Exact{}.Solve(&consistency.Transition{Matrix: m, RowNorms: []float64{math.Inf(1), 1}})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
	require.ErrorContains(t, err, "cell (0,1)")
}

func TestSolvers_RejectMissingMatrix(t *testing.T) {
	t.Parallel()

	it, err := consistency.NewSeededIterative(4, 1)
	require.NoError(t, err)
	for _, s := range []consistency.Solver{consistency.Exact{}, it} {
		_, err := s.Solve(nil)
		require.ErrorIs(t, err, matrix.ErrNilMatrix, s.String())
		_, err = s.Solve(&consistency.Transition{})
		require.ErrorIs(t, err, matrix.ErrNilMatrix, s.String())
	}
}

func TestIterative_Construction(t *testing.T) {
	t.Parallel()

	_, err := consistency.NewIterative(0, nil)
	require.ErrorIs(t, err, consistency.ErrInvalidIterations)

	s, err := consistency.NewIterative(consistency.DefaultIterations, nil)
	require.NoError(t, err)
	require.Equal(t, 8, s.Iterations())
	require.Equal(t, "iterative(k=8)", s.String())
	require.Equal(t, "exact", consistency.Exact{}.String())
}

func TestIterative_AgreesWithExact(t *testing.T) {
	t.Parallel()

	tr, names := rankingTransition(t)
	exact, err := consistency.Exact{}.Solve(tr)
	require.NoError(t, err)

	converged, err := consistency.NewIterative(100, rand.NewPCG(3, 5))
	require.NoError(t, err)
	pi, err := converged.Solve(tr)
	require.NoError(t, err)
	require.InDeltaSlice(t, exact, pi, 1e-9)

	// The default budget is an approximation but keeps the ranking.
	short, err := consistency.NewSeededIterative(consistency.DefaultIterations, 42)
	require.NoError(t, err)
	pi, err = short.Solve(tr)
	require.NoError(t, err)
	require.InDelta(t, 1.0, matrix.Norm1(pi), 1e-12)
	require.Equal(t, byWeight(names, exact), byWeight(names, pi))
}

func TestIterative_SeedIsReproducible(t *testing.T) {
	t.Parallel()

	tr, _ := rankingTransition(t)
	a, err := consistency.NewSeededIterative(3, 99)
	require.NoError(t, err)
	b, err := consistency.NewSeededIterative(3, 99)
	require.NoError(t, err)

	pa, err := a.Solve(tr)
	require.NoError(t, err)
	pb, err := b.Solve(tr)
	require.NoError(t, err)
	require.Equal(t, pa, pb)
}

func TestSolvers_ZeroMatrixStaysZero(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewSquare(3)
	require.NoError(t, err)
	it, err := consistency.NewSeededIterative(5, 1)
	require.NoError(t, err)

	pi, err := it.Solve(&consistency.Transition{Matrix: m, RowNorms: []float64{0, 0, 0}})
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 0}, pi)

	pi, err = consistency.Exact{}.Solve(&consistency.Transition{Matrix: m, RowNorms: []float64{0, 0, 0}})
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 0}, pi)
}

// SPDX-License-Identifier: MIT

package consistency_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/katalvlaran/consistency/consistency"
	"github.com/katalvlaran/consistency/filter"
	"github.com/katalvlaran/consistency/metric"
	"github.com/stretchr/testify/require"
)

// population maps entity names to their fixed representations.
type population map[string]filter.Representation

func (p population) filter() filter.Filter[string] {
	return filter.FilterFunc[string](func(name string) filter.Representation { return p[name] })
}

func (p population) names() []string {
	out := make([]string, 0, len(p))
	for name := range p {
		out = append(out, name)
	}

	return out
}

// regressionPopulation returns (a) a 3-term set, (b) the same plus one term,
// (c) 1500 unrelated random terms.
func regressionPopulation() population {
	a := filter.NewRepresentation("foo", "xxx", "bar")
	b := filter.NewRepresentation("foo", "xxx", "bar", "hello")

	rng := rand.New(rand.NewPCG(7, 11))
	terms := make([]string, 1500)
	for i := range terms {
		terms[i] = fmt.Sprintf("r%d-%016x", i, rng.Uint64())
	}

	return population{"a": a, "b": b, "c": filter.NewRepresentation(terms...)}
}

// rankingPopulation has total symmetric-difference degrees 12, 14, 16, 26.
func rankingPopulation() population {
	return population{
		"A": filter.NewRepresentation("1", "2", "3"),
		"B": filter.NewRepresentation("1", "2", "3", "4"),
		"C": filter.NewRepresentation("1", "2", "5", "6"),
		"D": filter.NewRepresentation("7", "8", "9", "10", "11"),
	}
}

func newEngine(t *testing.T, p population, m metric.Metric, opts ...consistency.Option) *consistency.Engine[string] {
	t.Helper()
	e, err := consistency.New(p.filter(), m, opts...)
	require.NoError(t, err)
	e.Add(p.names()...)

	return e
}

// requireSumRules checks Σ inconsistency ≈ 1 and Σ consistency ≈ n − 1, all in [0,1].
func requireSumRules(t *testing.T, e *consistency.Engine[string], n int) {
	t.Helper()
	var sumC, sumI float64
	for _, c := range e.Consistencies() {
		require.GreaterOrEqual(t, c, 0.0)
		require.LessOrEqual(t, c, 1.0)
		sumC += c
	}
	for _, v := range e.Inconsistencies() {
		require.GreaterOrEqual(t, v, 0.0)
		require.LessOrEqual(t, v, 1.0)
		sumI += v
	}
	require.InDelta(t, 1.0, sumI, 1e-9)
	require.InDelta(t, float64(n-1), sumC, 1e-9)
}

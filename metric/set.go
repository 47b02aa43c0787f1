// SPDX-License-Identifier: MIT

package metric

import (
	"github.com/katalvlaran/consistency/filter"
	"github.com/samber/lo"
)

// Discrete is 0 when both representations hold the same set of terms and 1
// otherwise. Multiplicity is ignored.
type Discrete struct{}

// Distance implements Metric.
func (Discrete) Distance(a, b filter.Representation) float64 {
	left, right := lo.Difference(lo.Uniq(a), lo.Uniq(b))
	if len(left) == 0 && len(right) == 0 {
		return 0
	}

	return 1
}

// SymmetricDifference counts the terms present in exactly one of the two
// sets. With Normalized set the count is divided by the size of the union
// (the Jaccard distance), which keeps the value in [0,1].
type SymmetricDifference struct {
	Normalized bool
}

// Distance implements Metric.
func (m SymmetricDifference) Distance(a, b filter.Representation) float64 {
	left, right := lo.Difference(lo.Uniq(a), lo.Uniq(b))
	diff := float64(len(left) + len(right))
	if !m.Normalized || diff == 0 {
		return diff
	}

	return diff / float64(len(lo.Union(a, b)))
}

// WeightedDifference compares multisets: every term contributes the
// difference of its multiplicities, scaled by Weight(term). A nil Weight
// counts every term as 1. Weight must return finite, non-negative values.
type WeightedDifference struct {
	Weight func(term string) float64
}

// Distance implements Metric.
func (m WeightedDifference) Distance(a, b filter.Representation) float64 {
	ca := lo.CountValues(a)
	cb := lo.CountValues(b)

	var sum float64
	for _, term := range lo.Union(lo.Keys(ca), lo.Keys(cb)) {
		delta := ca[term] - cb[term]
		if delta < 0 {
			delta = -delta
		}
		if delta == 0 {
			continue
		}
		w := 1.0
		if m.Weight != nil {
			w = m.Weight(term)
		}
		sum += float64(delta) * w
	}

	return sum
}

// SPDX-License-Identifier: MIT

// Package metric defines pairwise distances between filter representations.
//
// Every Metric must be a pure, symmetric, non-negative function:
//
//	Distance(a, b) == Distance(b, a) >= 0
//
// The consistency engine never asks for the distance of an entity to itself
// and checks every value it receives with Validate, so a buggy metric fails
// the evaluation instead of leaking NaN or Inf into the transition matrix.
//
// Standard metrics:
//
//	Discrete             0 when the two term sets are equal, 1 otherwise
//	SymmetricDifference  |A △ B|, optionally divided by |A ∪ B|
//	WeightedDifference   Σ |m_A(t) − m_B(t)| · w(t) over the multisets
//	Levenshtein          edit distance over the canonical serializations
//	NCD                  normalized compression distance
package metric

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/consistency/filter"
)

// Sentinel errors.
var (
	// ErrInvalidDistance marks a metric value that is negative, NaN or ±Inf.
	ErrInvalidDistance = errors.New("metric: distance must be finite and non-negative")

	// ErrUnknownMetric is returned by ByName for unregistered names.
	ErrUnknownMetric = errors.New("metric: unknown metric")

	// ErrUnknownCompression is returned for unsupported NCD compressors.
	ErrUnknownCompression = errors.New("metric: unknown compression")
)

// Metric is a symmetric, non-negative distance between two representations.
type Metric interface {
	Distance(a, b filter.Representation) float64
}

// MetricFunc adapts a plain function to the Metric interface.
type MetricFunc func(a, b filter.Representation) float64

// Distance calls f(a, b).
func (f MetricFunc) Distance(a, b filter.Representation) float64 { return f(a, b) }

// Validate rejects values that break the metric contract.
func Validate(d float64) error {
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidDistance, d)
	}

	return nil
}

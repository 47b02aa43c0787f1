// SPDX-License-Identifier: MIT

package consistency

import "math"

// Statistics is a running descriptive summary of the latest stationary
// distribution: count, sum, mean, sample variance, min and max.
//
// Implementation:
//   - Welford's online update keeps mean and the sum of squared deviations
//     numerically stable in a single pass.
//
// The zero value is an empty summary. Statistics is a value type; the
// engine hands out copies.
type Statistics struct {
	n        int
	sum      float64
	mean     float64
	m2       float64 // Σ (x − mean)²
	min, max float64
}

// Add records one observation.
// Complexity: O(1).
func (s *Statistics) Add(x float64) {
	s.n++
	s.sum += x
	if s.n == 1 {
		s.mean, s.m2, s.min, s.max = x, 0, x, x
		return
	}
	delta := x - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (x - s.mean)
	s.min = math.Min(s.min, x)
	s.max = math.Max(s.max, x)
}

// Reset clears all observations.
func (s *Statistics) Reset() { *s = Statistics{} }

// N returns the number of observations.
func (s Statistics) N() int { return s.n }

// Sum returns the sum of observations.
func (s Statistics) Sum() float64 { return s.sum }

// Mean returns the arithmetic mean, or NaN when empty.
func (s Statistics) Mean() float64 {
	if s.n == 0 {
		return math.NaN()
	}

	return s.mean
}

// Variance returns the bias-corrected sample variance: NaN when empty, 0 for
// a single observation.
func (s Statistics) Variance() float64 {
	switch s.n {
	case 0:
		return math.NaN()
	case 1:
		return 0
	}

	return s.m2 / float64(s.n-1)
}

// StdDev returns the square root of Variance.
func (s Statistics) StdDev() float64 { return math.Sqrt(s.Variance()) }

// Min returns the smallest observation, or NaN when empty.
func (s Statistics) Min() float64 {
	if s.n == 0 {
		return math.NaN()
	}

	return s.min
}

// Max returns the largest observation, or NaN when empty.
func (s Statistics) Max() float64 {
	if s.n == 0 {
		return math.NaN()
	}

	return s.max
}

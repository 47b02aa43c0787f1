// SPDX-License-Identifier: MIT

// Package matrix: vector kernels.
//
// Purpose:
//   - Norms used for probability normalization (1-norm) and power-iteration
//     rescaling (2-norm).
//   - The row-vector product VecMat (xᵀ·A). A stationary distribution of a
//     row-stochastic transition matrix is a fixed point of VecMat.
//
// Determinism:
//   - Fixed i→j loop orders, no map iteration.

package matrix

import "math"

// ZeroSum is the initial accumulator value for dot products and norms.
const ZeroSum = 0.0

// Norm1 returns Σ|x[i]|.
// Complexity: O(n).
func Norm1(x []float64) float64 {
	acc := ZeroSum
	for _, v := range x {
		acc += math.Abs(v)
	}

	return acc
}

// Norm2 returns the Euclidean length of x. Uses a scaled sum of squares so
// very large or very small entries do not overflow/underflow.
// Complexity: O(n).
func Norm2(x []float64) float64 {
	scale, ssq := 0.0, 1.0
	for _, v := range x {
		if v == 0 {
			continue
		}
		a := math.Abs(v)
		if scale < a {
			ssq = 1 + ssq*(scale/a)*(scale/a)
			scale = a
		} else {
			ssq += (a / scale) * (a / scale)
		}
	}
	if scale == 0 {
		return 0
	}

	return scale * math.Sqrt(ssq)
}

// ScaleVec divides x in place by d. A zero divisor leaves x untouched and
// reports false.
// Complexity: O(n).
func ScaleVec(x []float64, d float64) bool {
	if d == 0 {
		return false
	}
	for i := range x {
		x[i] /= d
	}

	return true
}

// Abs replaces every entry of x by its absolute value, in place.
// Complexity: O(n).
func Abs(x []float64) {
	for i, v := range x {
		x[i] = math.Abs(v)
	}
}

// VecMat computes y = xᵀ * m for a row vector x.
//
// Implementation:
//   - Stage 1: validate m and len(x) == m.Rows().
//   - Stage 2: accumulate x[i]·row(i) into y, row by row, so memory is walked
//     in storage order.
//
// Complexity: Time O(r*c), Space O(c) for y.
func VecMat(x []float64, m *Dense) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opVecMat, err)
	}
	if err := ValidateVecLen(x, m.r); err != nil {
		return nil, matrixErrorf(opVecMat, err)
	}

	y := make([]float64, m.c)
	var i, j, base int
	var xv float64
	for i = 0; i < m.r; i++ {
		xv = x[i]
		if xv == 0 {
			continue // skip zero rows of the weight vector
		}
		base = i * m.c
		for j = 0; j < m.c; j++ {
			y[j] += xv * m.data[base+j]
		}
	}

	return y, nil
}

// SPDX-License-Identifier: MIT

// Package matrix: central validators.
// Kernels call these first and return the sentinel (wrapped with the
// validator tag) so error priority stays uniform:
// nil -> shape -> vector length -> numeric policy -> structure.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps a sentinel with the validator name.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil rejects a nil *Dense.
func ValidateNotNil(m *Dense) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSquare rejects nil and non-square matrices.
func ValidateSquare(m *Dense) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.r != m.c {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateVecLen rejects nil vectors and vectors whose length is not n.
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite rejects vectors holding NaN or ±Inf.
func ValidateFinite(x []float64) error {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return validatorErrorf("ValidateFinite", ErrNaNInf)
		}
	}

	return nil
}

// ValidateSymmetric checks |A[i,j]-A[j,i]| ≤ tol over the strict upper triangle.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrNaNInf (tolerance not finite), ErrAsymmetry.
//
// Complexity:
//   - Time O(n²), Space O(1).
func ValidateSymmetric(m *Dense, tol float64) error {
	if err := ValidateSquare(m); err != nil {
		return err
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return validatorErrorf("ValidateSymmetric", ErrNaNInf)
	}
	tol = math.Abs(tol)

	n := m.r
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if math.Abs(m.data[i*n+j]-m.data[j*n+i]) > tol {
				return validatorErrorf("ValidateSymmetric", ErrAsymmetry)
			}
		}
	}

	return nil
}

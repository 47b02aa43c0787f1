// SPDX-License-Identifier: MIT

package matrix

import "math"

// Default numeric budget for EigenSym.
const (
	// DefaultEigenTolerance is the off-diagonal magnitude below which the
	// rotated matrix is considered diagonal.
	DefaultEigenTolerance = 1e-12

	// rotationsPerCell scales the rotation budget with n² when the caller
	// passes maxRotations <= 0.
	rotationsPerCell = 64

	// minRotations is the floor of the derived rotation budget.
	minRotations = 1024
)

// EigenSym computes eigenvalues and eigenvectors of a symmetric matrix via
// classical Jacobi rotations.
//
// Implementation:
//   - Stage 1: validate square, symmetric within tol; clone into a working copy A.
//   - Stage 2: repeatedly pick (p,q) with the largest |A[p,q]| in i→j order and
//     apply a rotation that zeroes it; accumulate the rotation into Q.
//   - Stage 3: verify convergence, read eigenvalues from diag(A).
//
// Inputs:
//   - m: symmetric matrix (within tol); n := m.Rows().
//   - tol: convergence threshold (≤ 0 selects DefaultEigenTolerance).
//   - maxRotations: safety cap (≤ 0 selects max(64·n², 1024)).
//
// Returns:
//   - []float64: eigenvalues in the (unsorted) order Jacobi leaves them.
//   - *Dense: Q whose column k is the unit eigenvector of eigenvalue k.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrAsymmetry, ErrNaNInf,
//     ErrMatrixEigenFailed (max off-diagonal ≥ tol after the budget).
//
// Determinism:
//   - Fixed pivot scan and update order: identical input, identical output.
//
// Complexity:
//   - Time O(rotations · n), Space O(n²).
func EigenSym(m *Dense, tol float64, maxRotations int) ([]float64, *Dense, error) {
	if tol <= 0 || math.IsNaN(tol) {
		tol = DefaultEigenTolerance
	}
	if err := ValidateSymmetric(m, math.Max(tol, 1e-9)); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	n := m.r
	if maxRotations <= 0 {
		maxRotations = max(rotationsPerCell*n*n, minRotations)
	}
	a := m.Clone()
	q, err := NewSquare(n)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	var i, j int
	for i = 0; i < n; i++ {
		q.data[i*n+i] = 1.0
	}

	var (
		p, r               int     // current pivot indices
		maxOff, off        float64 // largest |A[p,r]| and scratch
		app, arr, apr      float64 // A[p,p], A[r,r], A[p,r]
		aip, air, qip, qir float64 // row/column temporaries
		theta, t, c, s     float64 // rotation parameters
	)
	for iter := 0; iter < maxRotations; iter++ {
		// Find pivot maximizing |A[p,r]| over the strict upper triangle.
		maxOff = ZeroSum
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				off = math.Abs(a.data[i*n+j])
				if off > maxOff {
					maxOff, p, r = off, i, j
				}
			}
		}
		if maxOff < tol {
			break
		}

		app = a.data[p*n+p]
		arr = a.data[r*n+r]
		apr = a.data[p*n+r]

		// θ = (arr−app)/(2·apr); t = sign(θ)/(|θ|+√(θ²+1)).
		theta = (arr - app) / (2 * apr)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		s = t * c

		for i = 0; i < n; i++ {
			if i == p || i == r {
				continue
			}
			aip = a.data[i*n+p]
			air = a.data[i*n+r]
			a.data[i*n+p] = c*aip - s*air
			a.data[p*n+i] = a.data[i*n+p]
			a.data[i*n+r] = s*aip + c*air
			a.data[r*n+i] = a.data[i*n+r]
		}
		a.data[p*n+p] = c*c*app - 2*c*s*apr + s*s*arr
		a.data[r*n+r] = s*s*app + 2*c*s*apr + c*c*arr
		a.data[p*n+r], a.data[r*n+p] = 0, 0

		for i = 0; i < n; i++ {
			qip = q.data[i*n+p]
			qir = q.data[i*n+r]
			q.data[i*n+p] = c*qip - s*qir
			q.data[i*n+r] = s*qip + c*qir
		}
	}

	// Final convergence check over the strict upper triangle.
	maxOff = ZeroSum
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			maxOff = math.Max(maxOff, math.Abs(a.data[i*n+j]))
		}
	}
	if maxOff >= tol {
		return nil, nil, matrixErrorf(opEigen, ErrMatrixEigenFailed)
	}

	eigs := make([]float64, n)
	for i = 0; i < n; i++ {
		eigs[i] = a.data[i*n+i]
	}

	return eigs, q, nil
}

// Column copies column j of m into a new slice.
//
// Errors:
//   - ErrNilMatrix, ErrOutOfRange.
//
// Complexity: O(r).
func Column(m *Dense, j int) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, err
	}
	if j < 0 || j >= m.c {
		return nil, denseErrorf(ctxAt, 0, j, ErrOutOfRange)
	}
	col := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		col[i] = m.data[i*m.c+j]
	}

	return col, nil
}

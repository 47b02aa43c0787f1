// SPDX-License-Identifier: MIT

// Package matrix provides the dense linear-algebra primitives the
// consistency engine is built on.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix with bounds-checked At/Set, a
//     finite-only write policy and aliasing row views.
//   - Vector kernels: Norm1, Norm2, ScaleVec, Abs and VecMat (xᵀ·A).
//   - EigenSym, a deterministic Jacobi eigensolver for symmetric matrices.
//   - Central validators and a sentinel error set (errors.go) matched with
//     errors.Is.
//
// Matrices here are small and dense: one row and column per tracked
// entity, O(n²) memory, O(n³) decomposition.
package matrix

// SPDX-License-Identifier: MIT

// Package matrix_test contains unit tests for the Dense storage.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/consistency/matrix"
	"github.com/stretchr/testify/require"
)

// TestNewDenseInvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 5)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(5, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewSquare(-1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestRowsCols verifies that Rows() and Cols() return correct dimension values.
func TestRowsCols(t *testing.T) {
	m, err := matrix.NewDense(3, 4)
	require.NoError(t, err)

	require.Equal(t, 3, m.Rows())
	require.Equal(t, 4, m.Cols())
}

// TestAtSetOutOfBounds ensures At() and Set() return ErrOutOfRange on invalid access.
func TestAtSetOutOfBounds(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.At(0, 2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	require.ErrorIs(t, m.Set(2, 0, 1), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)
}

// TestSetRejectsNonFinite ensures NaN and ±Inf never enter the buffer.
func TestSetRejectsNonFinite(t *testing.T) {
	m, err := matrix.NewSquare(2)
	require.NoError(t, err)

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		require.ErrorIs(t, m.Set(0, 1, v), matrix.ErrNaNInf)
	}
	got, err := m.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 0.0, got)
}

func TestRowViewAliasesStorage(t *testing.T) {
	m, err := matrix.NewSquare(3)
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 2, 7))

	row, err := m.RowView(1)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 7}, row)

	row[0] = 5
	got, err := m.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, 5.0, got)

	_, err = m.RowView(3)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestOffDiagonalSum(t *testing.T) {
	m, err := matrix.NewSquare(2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, 0.5))
	require.NoError(t, m.Set(0, 1, -2))
	require.NoError(t, m.Set(1, 0, 3))
	require.NoError(t, m.Set(1, 1, 0.5))

	require.InDelta(t, 5.0, m.OffDiagonalSum(), 1e-15)
}

func TestCloneIsIndependent(t *testing.T) {
	m, err := matrix.NewSquare(2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, 1))

	cp := m.Clone()
	require.NoError(t, cp.Set(0, 0, 9))

	orig, _ := m.At(0, 0)
	require.Equal(t, 1.0, orig)
	require.Equal(t, "[1, 0]\n[0, 0]\n", m.String())
}

package matrix_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/linalg/internal/backend/dense"
	"github.com/born-ml/linalg/internal/matrix"
	"github.com/born-ml/linalg/internal/matrix/matrixtest"
)

func TestDataType(t *testing.T) {
	tests := []struct {
		dt   matrix.DataType
		size int
		name string
	}{
		{matrix.Float64, 8, "float64"},
		{matrix.Float32, 4, "float32"},
		{matrix.Int, 8, "int"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.size, tt.dt.Size())
		assert.Equal(t, tt.name, tt.dt.String())
	}
	assert.Equal(t, "unknown", matrix.DataType(99).String())
	assert.Panics(t, func() { matrix.DataType(99).Size() })
}

func TestNormType_String(t *testing.T) {
	assert.Equal(t, "1", matrix.NormOne.String())
	assert.Equal(t, "inf", matrix.NormInf.String())
	assert.Equal(t, "frobenius", matrix.NormFrobenius.String())
	assert.Equal(t, "NormType(7)", matrix.NormType(7).String())
}

func TestFloat64Only(t *testing.T) {
	var lock matrix.Float64Only
	for i, v := range []int{0, 1, -1, math.MaxInt} {
		_, err := lock.IntAt(i, i)
		require.ErrorIs(t, err, matrix.ErrTypeMismatch)
		require.ErrorIs(t, lock.SetInt(0, 0, v), matrix.ErrTypeMismatch)
	}
	_, err := lock.Float32AtIndex(0)
	require.ErrorIs(t, err, matrix.ErrTypeMismatch)
	assert.Contains(t, err.Error(), "Float32AtIndex")

	err = lock.SetFloat32Index(0, 1)
	require.ErrorIs(t, err, matrix.ErrTypeMismatch)
	assert.Contains(t, err.Error(), "SetFloat32Index")
	require.ErrorIs(t, lock.SetIntIndex(3, 1), matrix.ErrTypeMismatch)
}

func TestMismatchError(t *testing.T) {
	b := dense.New()
	err := matrix.MismatchError("Add", b, matrixtest.Foreign(1, 1))
	require.ErrorIs(t, err, matrix.ErrBackendMismatch)
	assert.Contains(t, err.Error(), "dense vs foreign")

	err = matrix.MismatchError("Add", b, nil)
	require.ErrorIs(t, err, matrix.ErrBackendMismatch)
	assert.Contains(t, err.Error(), "<nil>")
}

func TestUnsupported(t *testing.T) {
	err := matrix.Unsupported("gomatrix", "LU")
	require.ErrorIs(t, err, matrix.ErrUnsupported)
	assert.Equal(t, `LU: matrix: operation not supported by backend (backend "gomatrix")`, err.Error())
}

func TestChecks(t *testing.T) {
	b := dense.New()
	sq := matrixtest.New(t, b, []float64{1, 2}, []float64{3, 4})
	row := matrixtest.New(t, b, []float64{1, 2, 3})

	require.NoError(t, matrix.CheckShape(1, 1))
	require.ErrorIs(t, matrix.CheckShape(0, 1), matrix.ErrInvalidShape)
	require.ErrorIs(t, matrix.CheckData(nil, 1, 1), matrix.ErrInvalidShape)

	// Shapes whose element count or byte size overflows int.
	require.ErrorIs(t, matrix.CheckShape(math.MaxInt/2+1, 2), matrix.ErrInvalidShape)
	require.ErrorIs(t, matrix.CheckShape(math.MaxInt, math.MaxInt), matrix.ErrInvalidShape)
	require.ErrorIs(t, matrix.CheckShape(math.MaxInt/8+1, 1), matrix.ErrInvalidShape)
	require.NoError(t, matrix.CheckShape(math.MaxInt/8, 1))
	require.ErrorIs(t, matrix.CheckData(nil, math.MaxInt/2+1, 2), matrix.ErrInvalidShape)

	require.NoError(t, matrix.CheckIndex("At", 1, 1, 2, 2))
	require.ErrorIs(t, matrix.CheckIndex("At", 2, 0, 2, 2), matrix.ErrIndexOutOfRange)
	require.ErrorIs(t, matrix.CheckLinearIndex("AtIndex", 4, 2, 2), matrix.ErrIndexOutOfRange)

	require.ErrorIs(t, matrix.CheckSameShape("Add", sq, row), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.CheckMulShape("Mul", sq, row), matrix.ErrDimensionMismatch)
	require.NoError(t, matrix.CheckMulShape("Mul", row, row.T()))
	require.ErrorIs(t, matrix.CheckSquare("Det", row), matrix.ErrNotSquare)
	require.ErrorIs(t, matrix.CheckSolve("Solve", sq, row), matrix.ErrDimensionMismatch)

	require.NoError(t, matrix.CheckSlice("Slice", 0, 1, 0, 2, 2, 2))
	require.ErrorIs(t, matrix.CheckSlice("Slice", 1, 0, 0, 2, 2, 2), matrix.ErrIndexOutOfRange)

	require.NoError(t, matrix.CheckVector("SetRow", row, 3))
	require.NoError(t, matrix.CheckVector("SetCol", row.T(), 3))
	require.ErrorIs(t, matrix.CheckVector("SetRow", sq, 4), matrix.ErrDimensionMismatch)
}

func TestFloorMod(t *testing.T) {
	tests := []struct{ a, b, want float64 }{
		{7, 3, 1},
		{-7, 3, 2},
		{7, -3, -2},
		{-7, -3, -1},
		{6, 3, 0},
		{5.5, 2, 1.5},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%g_mod_%g", tt.a, tt.b), func(t *testing.T) {
			assert.InDelta(t, tt.want, matrix.FloorMod(tt.a, tt.b), 1e-15)
		})
	}
	assert.True(t, math.IsNaN(matrix.FloorMod(1, 0)))
}

func TestAllCloseAndFormat(t *testing.T) {
	b := dense.New()
	a := matrixtest.New(t, b, []float64{1, 2}, []float64{3, 4})
	c := matrixtest.New(t, b, []float64{1, 2}, []float64{3, 4 + 1e-12})

	assert.True(t, matrix.AllClose(a, c, 1e-9))
	assert.False(t, matrix.AllClose(a, c, 1e-14))
	assert.False(t, matrix.AllClose(a, a.T(), 0.1))
	assert.False(t, matrix.AllClose(a, matrixtest.New(t, b, []float64{1, 2}), 1))

	assert.Equal(t, "[1, 2]\n[3, 4]\n", matrix.FormatMatrix(a))
	assert.Equal(t, []float64{1, 2, 3, 4}, matrix.Elements(a))
}

func TestNormOf_LargeValues(t *testing.T) {
	v, err := matrix.NormOf([]float64{3e200, 4e200}, 1, 2, matrix.NormFrobenius)
	require.NoError(t, err)
	assert.InEpsilon(t, 5e200, v, 1e-15)

	v, err = matrix.NormOf([]float64{0, 0}, 1, 2, matrix.NormFrobenius)
	require.NoError(t, err)
	assert.Zero(t, v)
}

func TestIsSymmetric(t *testing.T) {
	assert.True(t, matrix.IsSymmetric([]float64{1, 2, 2, 1}, 2, 0))
	assert.True(t, matrix.IsSymmetric([]float64{1, 2, 2 + 1e-13, 1}, 2, matrix.SymmetryTolerance))
	assert.False(t, matrix.IsSymmetric([]float64{1, 2, 3, 1}, 2, matrix.SymmetryTolerance))
}

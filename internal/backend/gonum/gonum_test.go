package gonum

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/linalg/internal/matrix"
	"github.com/born-ml/linalg/internal/matrix/matrixtest"
)

func TestConformance(t *testing.T) {
	matrixtest.Run(t, New(), matrixtest.Full)
}

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"condition", mat.Condition(math.Inf(1)), matrix.ErrSingular},
		{"singular", mat.ErrSingular, matrix.ErrSingular},
		{"psd", mat.ErrNotPSD, matrix.ErrNotPositiveDefinite},
		{"square", mat.ErrSquare, matrix.ErrNotSquare},
		{"shape", mat.ErrShape, matrix.ErrDimensionMismatch},
		{"index", mat.ErrRowAccess, matrix.ErrIndexOutOfRange},
		{"zero", mat.ErrZeroLength, matrix.ErrInvalidShape},
		{"norm", mat.ErrNormOrder, matrix.ErrUnsupported},
		{"stack", mat.ErrorStack{Err: mat.ErrShape}, matrix.ErrDimensionMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translate("Op", tt.in)
			require.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "Op: ")
		})
	}

	assert.NoError(t, translate("Op", nil))

	other := errors.New("other")
	require.ErrorIs(t, translate("Op", other), other)
}

func TestGuard_RecoversEnginePanic(t *testing.T) {
	err := guard("Mul", func() {
		var out mat.Dense
		out.Mul(mat.NewDense(2, 3, nil), mat.NewDense(2, 3, nil))
	})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestQR_Wide(t *testing.T) {
	b := New()
	a := matrixtest.New(t, b, []float64{1, 2, 3, 4}, []float64{5, 6, 7, 8})

	q, r, err := a.QR()
	require.NoError(t, err)
	assert.Equal(t, 2, q.Rows())
	assert.Equal(t, 2, q.Cols())
	assert.Equal(t, 2, r.Rows())
	assert.Equal(t, 4, r.Cols())

	qr, err := q.Mul(r)
	require.NoError(t, err)
	assert.True(t, matrix.AllClose(qr, a, 1e-12))
}

func TestPInv_RankDeficient(t *testing.T) {
	b := New()
	a := matrixtest.New(t, b, []float64{1, 2}, []float64{2, 4}, []float64{3, 6})

	p, err := a.PInv()
	require.NoError(t, err)

	// Penrose condition A·A⁺·A = A holds without full rank.
	ap, err := a.Mul(p)
	require.NoError(t, err)
	apa, err := ap.Mul(a)
	require.NoError(t, err)
	assert.True(t, matrix.AllClose(apa, a, 1e-10))
}

func TestWrap_SharesStorage(t *testing.T) {
	b := New()
	d := mat.NewDense(1, 2, []float64{1, 2})
	m := b.Wrap(d)

	d.Set(0, 1, 5)
	v, err := m.At(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)
	assert.Same(t, d, m.(*Matrix).Dense())
}

func TestT_IsMaterialized(t *testing.T) {
	b := New()
	a := matrixtest.New(t, b, []float64{1, 2}, []float64{3, 4})

	tr := a.T()
	require.NoError(t, a.Set(0, 1, 100))
	v, err := tr.At(1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
}

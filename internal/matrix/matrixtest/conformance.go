// Package matrixtest holds the behavior suite every matrix backend must pass.
package matrixtest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/linalg/internal/matrix"
)

// Tolerance is the element-wise tolerance used by the suite.
const Tolerance = 1e-10

// Capabilities lists the optional operations a backend provides.
// Absent ones must fail with matrix.ErrUnsupported.
type Capabilities struct {
	Mean bool
	LU   bool
	PInv bool
	// ArgExtrema covers ArgMax and ArgMin.
	ArgExtrema bool
}

// Full enables every optional capability.
var Full = Capabilities{Mean: true, LU: true, PInv: true, ArgExtrema: true}

type foreignBackend struct{}

func (foreignBackend) Name() string { return "foreign" }
func (foreignBackend) Zeros(int, int) (matrix.Matrix, error) {
	return nil, matrix.ErrUnsupported
}
func (foreignBackend) Eye(int) (matrix.Matrix, error) { return nil, matrix.ErrUnsupported }
func (foreignBackend) FromSlice([]float64, int, int) (matrix.Matrix, error) {
	return nil, matrix.ErrUnsupported
}

// foreignMatrix stands in for an operand produced by some other backend.
// Only identity and shape are implemented; adapters must reject it before
// touching anything else.
type foreignMatrix struct {
	matrix.Matrix
	rows, cols int
}

func (f foreignMatrix) Backend() matrix.Backend { return foreignBackend{} }
func (f foreignMatrix) Rows() int               { return f.rows }
func (f foreignMatrix) Cols() int               { return f.cols }

// Foreign returns a rows×cols operand that belongs to no real backend.
func Foreign(rows, cols int) matrix.Matrix {
	return foreignMatrix{rows: rows, cols: cols}
}

// New builds a matrix from rows of values, failing the test on error.
func New(t testing.TB, b matrix.Backend, rows ...[]float64) matrix.Matrix {
	t.Helper()
	data := make([]float64, 0, len(rows)*len(rows[0]))
	for _, r := range rows {
		data = append(data, r...)
	}
	m, err := b.FromSlice(data, len(rows), len(rows[0]))
	require.NoError(t, err)
	return m
}

// AssertClose checks that got matches the rows of want within Tolerance.
func AssertClose(t testing.TB, want [][]float64, got matrix.Matrix) {
	t.Helper()
	require.Equal(t, len(want), got.Rows(), "rows")
	require.Equal(t, len(want[0]), got.Cols(), "cols")
	for i, row := range want {
		for j, w := range row {
			v, err := got.At(i, j)
			require.NoError(t, err)
			assert.InDelta(t, w, v, Tolerance*math.Max(1, math.Abs(w)), "(%d,%d)", i, j)
		}
	}
}

func mustMul(t testing.TB, a, b matrix.Matrix) matrix.Matrix {
	t.Helper()
	out, err := a.Mul(b)
	require.NoError(t, err)
	return out
}

// Run executes the suite against b.
func Run(t *testing.T, b matrix.Backend, caps Capabilities) {
	t.Run("Construction", func(t *testing.T) { testConstruction(t, b) })
	t.Run("Creators", func(t *testing.T) { testCreators(t, b) })
	t.Run("Access", func(t *testing.T) { testAccess(t, b) })
	t.Run("TypeLock", func(t *testing.T) { testTypeLock(t, b) })
	t.Run("Arithmetic", func(t *testing.T) { testArithmetic(t, b) })
	t.Run("BackendMismatch", func(t *testing.T) { testMismatch(t, b) })
	t.Run("Structure", func(t *testing.T) { testStructure(t, b) })
	t.Run("Apply", func(t *testing.T) { testApply(t, b) })
	t.Run("Reductions", func(t *testing.T) { testReductions(t, b, caps) })
	t.Run("Decompositions", func(t *testing.T) { testDecompositions(t, b, caps) })
}

func testConstruction(t *testing.T, b matrix.Backend) {
	z, err := b.Zeros(2, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, z.Rows())
	assert.Equal(t, 3, z.Cols())
	assert.Equal(t, b.Name(), z.Backend().Name())
	assert.Equal(t, matrix.Float64, z.DType())
	AssertClose(t, [][]float64{{0, 0, 0}, {0, 0, 0}}, z)

	eye, err := b.Eye(3)
	require.NoError(t, err)
	AssertClose(t, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, eye)

	_, err = b.Zeros(0, 3)
	require.ErrorIs(t, err, matrix.ErrInvalidShape)
	_, err = b.Eye(-1)
	require.ErrorIs(t, err, matrix.ErrInvalidShape)
	_, err = b.FromSlice([]float64{1, 2, 3}, 2, 2)
	require.ErrorIs(t, err, matrix.ErrInvalidShape)

	// Shapes whose storage size overflows int are rejected, not allocated short.
	_, err = b.Zeros(math.MaxInt/2+1, 2)
	require.ErrorIs(t, err, matrix.ErrInvalidShape)
	_, err = b.FromSlice(nil, math.MaxInt/4, math.MaxInt/4)
	require.ErrorIs(t, err, matrix.ErrInvalidShape)
	_, err = b.Eye(math.MaxInt / 2)
	require.ErrorIs(t, err, matrix.ErrInvalidShape)

	src := []float64{1, 2, 3, 4}
	m, err := b.FromSlice(src, 2, 2)
	require.NoError(t, err)
	src[0] = 99
	v, err := m.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v, "FromSlice must copy its input")
}

func testCreators(t *testing.T, b matrix.Backend) {
	ones, err := matrix.Ones(b, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, b.Name(), ones.Backend().Name())
	v, err := ones.AtIndex(4)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)
	filled, err := matrix.Fill(b, 3, 5, func(_, _ int) float64 { return 1 })
	require.NoError(t, err)
	assert.True(t, matrix.AllClose(filled, ones, 0))

	grid, err := matrix.Fill(b, 2, 3, func(i, j int) float64 { return float64(10*i + j) })
	require.NoError(t, err)
	AssertClose(t, [][]float64{{0, 1, 2}, {10, 11, 12}}, grid)

	rows, err := matrix.FromRows(b, [][]float64{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	v, err = rows.AtIndex(3)
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)
	col, err := matrix.FromRows(b, [][]float64{{1}, {2}, {3}})
	require.NoError(t, err)
	_, err = col.At(0, 2)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfRange)

	_, err = matrix.FromRows(b, [][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrInvalidShape)
	_, err = matrix.FromRows(b, nil)
	require.ErrorIs(t, err, matrix.ErrInvalidShape)

	r, err := matrix.Arange(b, 1, 1.5, 0.1)
	require.NoError(t, err)
	AssertClose(t, [][]float64{{1, 1.1, 1.2, 1.3, 1.4}}, r)
	r, err = matrix.Arange(b, 3, 0, -1)
	require.NoError(t, err)
	AssertClose(t, [][]float64{{3, 2, 1}}, r)
	for _, bad := range [][3]float64{{0, 1, 0}, {1, 0, 1}, {0, 0, 1}, {0, math.Inf(1), 1}, {math.NaN(), 1, 1}} {
		_, err = matrix.Arange(b, bad[0], bad[1], bad[2])
		require.ErrorIs(t, err, matrix.ErrInvalidShape, "Arange%v", bad)
	}

	_, err = matrix.Ones(b, math.MaxInt/2+1, 2)
	require.ErrorIs(t, err, matrix.ErrInvalidShape)
}

func testApply(t *testing.T, b matrix.Backend) {
	m := New(t, b, []float64{1, 2}, []float64{3, 4})

	sq := m.Apply(func(v float64) float64 { return v * v })
	assert.Equal(t, b.Name(), sq.Backend().Name())
	AssertClose(t, [][]float64{{1, 4}, {9, 16}}, sq)

	z, err := b.Zeros(3, 3)
	require.NoError(t, err)
	eye, err := b.Eye(3)
	require.NoError(t, err)
	diag := z.ApplyIndexed(func(i, j int, _ float64) float64 {
		if i == j {
			return 1
		}
		return 0
	})
	assert.True(t, matrix.AllClose(diag, eye, 0))

	pos := m.ApplyIndexed(func(i, j int, v float64) float64 { return v + float64(10*i+j) })
	AssertClose(t, [][]float64{{1, 3}, {13, 15}}, pos)
	AssertClose(t, [][]float64{{1, 2}, {3, 4}}, m)
}

func testAccess(t *testing.T, b matrix.Backend) {
	m := New(t, b, []float64{1, 2, 3}, []float64{4, 5, 6})

	v, err := m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)

	require.NoError(t, m.Set(0, 1, -2))
	v, err = m.AtIndex(1)
	require.NoError(t, err)
	assert.Equal(t, -2.0, v)

	require.NoError(t, m.SetIndex(5, 60))
	v, err = m.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 60.0, v)

	for _, idx := range [][2]int{{-1, 0}, {2, 0}, {0, 3}, {0, -1}} {
		_, err = m.At(idx[0], idx[1])
		require.ErrorIs(t, err, matrix.ErrIndexOutOfRange, "At%v", idx)
		require.ErrorIs(t, m.Set(idx[0], idx[1], 1), matrix.ErrIndexOutOfRange, "Set%v", idx)
	}
	_, err = m.AtIndex(6)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfRange)
	require.ErrorIs(t, m.SetIndex(-1, 0), matrix.ErrIndexOutOfRange)
}

func testTypeLock(t *testing.T, b matrix.Backend) {
	for _, v := range []float64{0, 1, -3.5, 1e300, math.Inf(1)} {
		m := New(t, b, []float64{v})

		_, err := m.IntAt(0, 0)
		require.ErrorIs(t, err, matrix.ErrTypeMismatch)
		_, err = m.Float32At(0, 0)
		require.ErrorIs(t, err, matrix.ErrTypeMismatch)
		_, err = m.IntAtIndex(0)
		require.ErrorIs(t, err, matrix.ErrTypeMismatch)
		_, err = m.Float32AtIndex(0)
		require.ErrorIs(t, err, matrix.ErrTypeMismatch)
		require.ErrorIs(t, m.SetInt(0, 0, 1), matrix.ErrTypeMismatch)
		require.ErrorIs(t, m.SetFloat32(0, 0, 1), matrix.ErrTypeMismatch)
		require.ErrorIs(t, m.SetIntIndex(0, 1), matrix.ErrTypeMismatch)
		require.ErrorIs(t, m.SetFloat32Index(0, 1), matrix.ErrTypeMismatch)

		got, err := m.At(0, 0)
		require.NoError(t, err)
		assert.Equal(t, v, got, "failed typed access must not modify the matrix")
	}
}

func testArithmetic(t *testing.T, b matrix.Backend) {
	a := New(t, b, []float64{1, 2}, []float64{3, 4})
	c := New(t, b, []float64{5, 6}, []float64{7, 8})

	sum, err := a.Add(c)
	require.NoError(t, err)
	assert.Equal(t, b.Name(), sum.Backend().Name())
	AssertClose(t, [][]float64{{6, 8}, {10, 12}}, sum)

	diff, err := a.Sub(c)
	require.NoError(t, err)
	AssertClose(t, [][]float64{{-4, -4}, {-4, -4}}, diff)

	AssertClose(t, [][]float64{{19, 22}, {43, 50}}, mustMul(t, a, c))

	had, err := a.MulElem(c)
	require.NoError(t, err)
	AssertClose(t, [][]float64{{5, 12}, {21, 32}}, had)

	num := New(t, b, []float64{7, -7}, []float64{7.5, -1})
	den := New(t, b, []float64{3, 3}, []float64{-2, 4})
	mod, err := num.Mod(den)
	require.NoError(t, err)
	AssertClose(t, [][]float64{{1, 2}, {-0.5, 3}}, mod)

	AssertClose(t, [][]float64{{-1, -2}, {-3, -4}}, a.Neg())
	AssertClose(t, [][]float64{{11, 12}, {13, 14}}, a.AddScalar(10))
	AssertClose(t, [][]float64{{0, 1}, {2, 3}}, a.SubScalar(1))
	AssertClose(t, [][]float64{{2, 4}, {6, 8}}, a.Scale(2))
	AssertClose(t, [][]float64{{0.5, 1}, {1.5, 2}}, a.DivScalar(2))
	AssertClose(t, [][]float64{{1, 2}, {3, 4}}, a)

	rect := New(t, b, []float64{1, 2, 3})
	_, err = a.Add(rect)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = a.Mul(rect)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	prod := mustMul(t, rect.T(), rect)
	assert.Equal(t, 3, prod.Rows())
	assert.Equal(t, 3, prod.Cols())
}

func testMismatch(t *testing.T, b matrix.Backend) {
	a := New(t, b, []float64{1, 2}, []float64{3, 4})
	f := Foreign(2, 2)

	binary := map[string]func(matrix.Matrix) (matrix.Matrix, error){
		"Add":     a.Add,
		"Sub":     a.Sub,
		"Mul":     a.Mul,
		"MulElem": a.MulElem,
		"Mod":     a.Mod,
		"Solve":   a.Solve,
	}
	for name, op := range binary {
		_, err := op(f)
		require.ErrorIs(t, err, matrix.ErrBackendMismatch, name)
		_, err = op(nil)
		require.ErrorIs(t, err, matrix.ErrBackendMismatch, name+"(nil)")
	}
	require.ErrorIs(t, a.SetRow(0, Foreign(1, 2)), matrix.ErrBackendMismatch)
	require.ErrorIs(t, a.SetCol(0, Foreign(2, 1)), matrix.ErrBackendMismatch)

	// Mismatch is reported before shape.
	_, err := a.Add(Foreign(5, 7))
	require.ErrorIs(t, err, matrix.ErrBackendMismatch)
}

func testStructure(t *testing.T, b matrix.Backend) {
	m := New(t, b, []float64{1, 2, 3}, []float64{4, 5, 6})

	tr := m.T()
	AssertClose(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, tr)
	require.NoError(t, tr.Set(0, 0, 100))
	v, _ := m.At(0, 0)
	assert.Equal(t, 1.0, v, "T must not alias its source")

	row, err := m.Row(1)
	require.NoError(t, err)
	AssertClose(t, [][]float64{{4, 5, 6}}, row)
	col, err := m.Col(2)
	require.NoError(t, err)
	AssertClose(t, [][]float64{{3}, {6}}, col)
	_, err = m.Row(2)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfRange)
	_, err = m.Col(-1)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfRange)

	require.NoError(t, m.SetRow(0, New(t, b, []float64{7, 8, 9})))
	require.NoError(t, m.SetCol(1, New(t, b, []float64{-1}, []float64{-2})))
	AssertClose(t, [][]float64{{7, -1, 9}, {4, -2, 6}}, m)
	require.ErrorIs(t, m.SetRow(0, New(t, b, []float64{1, 2})), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, m.SetCol(3, New(t, b, []float64{1}, []float64{2})), matrix.ErrIndexOutOfRange)

	AssertClose(t, [][]float64{{7}, {-2}}, m.Diag())

	s, err := m.Slice(0, 2, 1, 3)
	require.NoError(t, err)
	AssertClose(t, [][]float64{{-1, 9}, {-2, 6}}, s)
	require.NoError(t, s.Set(0, 0, 42))
	v, _ = m.At(0, 1)
	assert.Equal(t, -1.0, v, "Slice must not alias its source")
	_, err = m.Slice(0, 3, 0, 1)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfRange)
	_, err = m.Slice(1, 1, 0, 1)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfRange)

	c := m.Clone()
	require.NoError(t, c.Set(1, 1, 0))
	v, _ = m.At(1, 1)
	assert.Equal(t, -2.0, v, "Clone must not alias its source")

	assert.NotEmpty(t, m.String())
}

func testReductions(t *testing.T, b matrix.Backend, caps Capabilities) {
	m := New(t, b, []float64{1, -2}, []float64{-3, 4})

	check := func(name string, want float64, got float64, err error) {
		t.Helper()
		require.NoError(t, err, name)
		assert.InDelta(t, want, got, Tolerance, name)
	}

	v, err := m.Sum()
	check("Sum", 0, v, err)
	v, err = m.Max()
	check("Max", 4, v, err)
	v, err = m.Min()
	check("Min", -3, v, err)
	v, err = m.Trace()
	check("Trace", 5, v, err)
	v, err = m.Norm(matrix.NormOne)
	check("Norm1", 6, v, err)
	v, err = m.Norm(matrix.NormInf)
	check("NormInf", 7, v, err)
	v, err = m.Norm(matrix.NormFrobenius)
	check("NormF", math.Sqrt(30), v, err)

	_, err = m.Norm(matrix.NormType(42))
	require.ErrorIs(t, err, matrix.ErrUnsupported)

	v, err = m.Mean()
	if caps.Mean {
		check("Mean", 0, v, err)
	} else {
		require.ErrorIs(t, err, matrix.ErrUnsupported)
	}

	_, err = New(t, b, []float64{1, 2, 3}).Trace()
	require.ErrorIs(t, err, matrix.ErrNotSquare)

	ties := New(t, b, []float64{2, 7, -1}, []float64{7, -1, 0})
	hi, err := ties.ArgMax()
	if !caps.ArgExtrema {
		require.ErrorIs(t, err, matrix.ErrUnsupported)
		_, err = ties.ArgMin()
		require.ErrorIs(t, err, matrix.ErrUnsupported)
		return
	}
	require.NoError(t, err)
	assert.Equal(t, 1, hi, "first maximum wins")
	lo, err := ties.ArgMin()
	require.NoError(t, err)
	assert.Equal(t, 2, lo, "first minimum wins")

	withNaN := New(t, b, []float64{math.NaN(), 3, 5})
	hi, err = withNaN.ArgMax()
	require.NoError(t, err)
	assert.Equal(t, 2, hi)
	lo, err = withNaN.ArgMin()
	require.NoError(t, err)
	assert.Equal(t, 1, lo)
}

func testDecompositions(t *testing.T, b matrix.Backend, caps Capabilities) {
	a := New(t, b,
		[]float64{4, 12, -16},
		[]float64{12, 37, -43},
		[]float64{-16, -43, 98},
	)
	eye, err := b.Eye(3)
	require.NoError(t, err)

	t.Run("Chol", func(t *testing.T) {
		l, err := a.Chol()
		require.NoError(t, err)
		AssertClose(t, [][]float64{{2, 0, 0}, {6, 1, 0}, {-8, 5, 3}}, l)
		assert.True(t, matrix.AllClose(mustMul(t, l, l.T()), a, 1e-12))

		_, err = New(t, b, []float64{1, 2}, []float64{2, 1}).Chol()
		require.ErrorIs(t, err, matrix.ErrNotPositiveDefinite)
		_, err = New(t, b, []float64{1, 2, 3}).Chol()
		require.ErrorIs(t, err, matrix.ErrNotSquare)
	})

	t.Run("LU", func(t *testing.T) {
		g := New(t, b, []float64{0, 2, 1}, []float64{1, 1, 1}, []float64{2, 1, 3})
		p, l, u, err := g.LU()
		if !caps.LU {
			require.ErrorIs(t, err, matrix.ErrUnsupported)
			return
		}
		require.NoError(t, err)
		assert.True(t, matrix.AllClose(mustMul(t, mustMul(t, p, l), u), g, 1e-12))
		for i := 0; i < 3; i++ {
			d, _ := l.At(i, i)
			assert.InDelta(t, 1, d, Tolerance, "unit diagonal")
			for j := i + 1; j < 3; j++ {
				v, _ := l.At(i, j)
				assert.Zero(t, v, "L(%d,%d)", i, j)
				v, _ = u.At(j, i)
				assert.Zero(t, v, "U(%d,%d)", j, i)
			}
		}
	})

	t.Run("QR", func(t *testing.T) {
		g := New(t, b, []float64{12, -51, 4}, []float64{6, 167, -68}, []float64{-4, 24, -41})
		q, r, err := g.QR()
		require.NoError(t, err)
		assert.True(t, matrix.AllClose(mustMul(t, q, r), g, 1e-10))
		assert.True(t, matrix.AllClose(mustMul(t, q.T(), q), eye, 1e-12))
		for i := 1; i < 3; i++ {
			for j := 0; j < i; j++ {
				v, _ := r.At(i, j)
				assert.InDelta(t, 0, v, 1e-10, "R(%d,%d)", i, j)
			}
		}
	})

	t.Run("InvDetSolve", func(t *testing.T) {
		inv, err := a.Inv()
		require.NoError(t, err)
		assert.True(t, matrix.AllClose(mustMul(t, a, inv), eye, 1e-10))

		det, err := a.Det()
		require.NoError(t, err)
		assert.InDelta(t, 36, det, 1e-9)

		rhs := New(t, b, []float64{1, 0}, []float64{2, 1}, []float64{3, -1})
		x, err := a.Solve(rhs)
		require.NoError(t, err)
		assert.True(t, matrix.AllClose(x, mustMul(t, inv, rhs), 1e-9))
		assert.True(t, matrix.AllClose(mustMul(t, a, x), rhs, 1e-9))

		sing := New(t, b, []float64{1, 2}, []float64{2, 4})
		_, err = sing.Inv()
		require.ErrorIs(t, err, matrix.ErrSingular)
		_, err = sing.Solve(New(t, b, []float64{1}, []float64{1}))
		require.ErrorIs(t, err, matrix.ErrSingular)
		det, err = sing.Det()
		require.NoError(t, err)
		assert.InDelta(t, 0, det, 1e-12)

		rect := New(t, b, []float64{1, 2, 3}, []float64{4, 5, 6})
		_, err = rect.Inv()
		require.ErrorIs(t, err, matrix.ErrNotSquare)
		_, err = rect.Det()
		require.ErrorIs(t, err, matrix.ErrNotSquare)
		_, err = a.Solve(New(t, b, []float64{1}, []float64{2}))
		require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	})

	t.Run("PInv", func(t *testing.T) {
		tall := New(t, b, []float64{1, 2}, []float64{3, 4}, []float64{5, 6})
		pinv, err := tall.PInv()
		if !caps.PInv {
			require.ErrorIs(t, err, matrix.ErrUnsupported)
			return
		}
		require.NoError(t, err)
		require.Equal(t, 2, pinv.Rows())
		require.Equal(t, 3, pinv.Cols())
		// A⁺A = I for full column rank.
		eye2, err := b.Eye(2)
		require.NoError(t, err)
		assert.True(t, matrix.AllClose(mustMul(t, pinv, tall), eye2, 1e-9))
		// A·A⁺·A = A.
		assert.True(t, matrix.AllClose(mustMul(t, mustMul(t, tall, pinv), tall), tall, 1e-9))

		wide := tall.T()
		wp, err := wide.PInv()
		require.NoError(t, err)
		assert.True(t, matrix.AllClose(mustMul(t, wide, wp), eye2, 1e-9))
	})
}

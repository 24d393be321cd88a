package algo

import (
	"context"
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/linalg/internal/backend/dense"
	"github.com/born-ml/linalg/internal/matrix"
	"github.com/born-ml/linalg/internal/matrix/matrixtest"
	"github.com/born-ml/linalg/internal/parallel"
	"github.com/born-ml/linalg/internal/registry"
)

// forEachBackend runs fn against every live backend.
func forEachBackend(t *testing.T, fn func(t *testing.T, b matrix.Backend)) {
	t.Helper()
	r := registry.Discover(registry.DefaultCandidates())
	require.NotEmpty(t, r.Backends())
	for _, b := range r.Backends() {
		t.Run(b.Name(), func(t *testing.T) { fn(t, b) })
	}
}

func assertRelClose(t *testing.T, want [][]float64, got matrix.Matrix, tol float64) {
	t.Helper()
	require.Equal(t, len(want), got.Rows())
	require.Equal(t, len(want[0]), got.Cols())
	for i, row := range want {
		for j, w := range row {
			v, err := got.At(i, j)
			require.NoError(t, err)
			assert.InDelta(t, w, v, tol*math.Max(1, math.Abs(w)), "(%d,%d)", i, j)
		}
	}
}

func TestPadeDegree(t *testing.T) {
	tests := []struct {
		norm      float64
		degree, s int
	}{
		{0, 3, 0},
		{1.4e-2, 3, 0},
		{1.495585217958292e-2, 5, 0},
		{0.25, 5, 0},
		{2.539398330063230e-1, 7, 0},
		{0.95, 7, 0},
		{9.504178996162932e-1, 9, 0},
		{2.09, 9, 0},
		{2.097847961257068, 13, 0},
		{5.371920351148152, 13, 0},
		{5.38, 13, 1},
		{10.75, 13, 2},
		{1000, 13, 8},
	}
	for _, tt := range tests {
		d, s := PadeDegree(tt.norm)
		assert.Equal(t, tt.degree, d, "degree for %g", tt.norm)
		assert.Equal(t, tt.s, s, "squarings for %g", tt.norm)
	}
}

func TestPadeCoefficients(t *testing.T) {
	b, err := PadeCoefficients(13)
	require.NoError(t, err)
	require.Len(t, b, 14)
	assert.Equal(t, 64764752532480000.0, b[0])
	assert.Equal(t, 1.0, b[13])

	b[0] = 0
	again, _ := PadeCoefficients(13)
	assert.Equal(t, 64764752532480000.0, again[0], "tables must not be mutable through the copy")

	for d, n := range map[int]int{3: 4, 5: 6, 7: 8, 9: 10} {
		b, err := PadeCoefficients(d)
		require.NoError(t, err)
		assert.Len(t, b, n)
	}

	_, err = PadeCoefficients(4)
	require.ErrorIs(t, err, ErrDegree)
}

func TestExpm_Zero(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b matrix.Backend) {
		z, err := b.Zeros(3, 3)
		require.NoError(t, err)

		e, err := Expm(z)
		require.NoError(t, err)
		assert.Equal(t, b.Name(), e.Backend().Name())
		matrixtest.AssertClose(t, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, e)
	})
}

func TestExpm_DiagonalLogs(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b matrix.Backend) {
		a := matrixtest.New(t, b, []float64{math.Ln2, 0}, []float64{0, math.Log(3)})

		norm, err := a.Norm(matrix.NormOne)
		require.NoError(t, err)
		d, s := PadeDegree(norm)
		assert.Equal(t, 9, d)
		assert.Zero(t, s)

		e, err := Expm(a)
		require.NoError(t, err)
		assertRelClose(t, [][]float64{{2, 0}, {0, 3}}, e, 1e-9)
	})
}

func TestExpm_ScalingBranch(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b matrix.Backend) {
		tests := []struct {
			name string
			a    [][]float64
			want [][]float64
			s    int
		}{
			{
				name: "rotation",
				a:    [][]float64{{0, 30}, {-30, 0}},
				want: [][]float64{{math.Cos(30), math.Sin(30)}, {-math.Sin(30), math.Cos(30)}},
				s:    3,
			},
			{
				name: "jordan",
				a:    [][]float64{{1, 5}, {0, 1}},
				want: [][]float64{{math.E, 5 * math.E}, {0, math.E}},
				s:    1,
			},
			{
				name: "diagonal no squaring",
				a:    [][]float64{{3, 0}, {0, -2}},
				want: [][]float64{{math.Exp(3), 0}, {0, math.Exp(-2)}},
				s:    0,
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				a := matrixtest.New(t, b, tt.a...)
				norm, err := a.Norm(matrix.NormOne)
				require.NoError(t, err)
				require.Greater(t, norm, 2.097847961257068)

				d, s := PadeDegree(norm)
				assert.Equal(t, 13, d)
				assert.Equal(t, tt.s, s)
				assert.Equal(t, int(math.Max(0, math.Ceil(math.Log2(norm/5.371920351148152)))), s)

				e, err := Expm(a)
				require.NoError(t, err)
				assertRelClose(t, tt.want, e, 1e-8)
			})
		}
	})
}

func TestExpm_EveryDegree(t *testing.T) {
	b := dense.New()
	for _, x := range []float64{0.01, -0.2, 0.9, 2.0, 4, -4, 50} {
		a := matrixtest.New(t, b, []float64{x})
		e, err := Expm(a)
		require.NoError(t, err)
		v, err := e.At(0, 0)
		require.NoError(t, err)
		assert.InEpsilon(t, math.Exp(x), v, 1e-12, "exp(%g)", x)
	}
}

func TestExpm_BackendsAgree(t *testing.T) {
	data := []float64{
		0.5, -1.2, 0.3, 2.1,
		0.0, 0.7, -0.4, 1.0,
		1.5, 0.2, -0.9, 0.6,
		-0.3, 0.8, 0.4, 0.1,
	}
	var ref []float64
	forEachBackend(t, func(t *testing.T, b matrix.Backend) {
		a, err := b.FromSlice(data, 4, 4)
		require.NoError(t, err)
		e, err := Expm(a)
		require.NoError(t, err)

		got := matrix.Elements(e)
		if ref == nil {
			ref = got
			return
		}
		assert.InDeltaSlice(t, ref, got, 1e-9)
	})
}

func TestExpm_Errors(t *testing.T) {
	b := dense.New()

	_, err := Expm(matrixtest.New(t, b, []float64{1, 2}))
	require.ErrorIs(t, err, matrix.ErrNotSquare)

	_, err = Expm(matrixtest.New(t, b, []float64{math.NaN()}))
	require.ErrorIs(t, err, ErrNonFinite)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ExpmWithConfig(ctx, matrixtest.New(t, b, []float64{1}), Config{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestSolveColumns(t *testing.T) {
	configs := map[string]parallel.Config{
		"sequential": {},
		"parallel":   {Enabled: true, NumWorkers: 3, MinChunkSize: 1},
	}
	for name, cfg := range configs {
		t.Run(name, func(t *testing.T) {
			forEachBackend(t, func(t *testing.T, b matrix.Backend) {
				a := matrixtest.New(t, b, []float64{2, 1}, []float64{1, 3})
				rhs := matrixtest.New(t, b, []float64{3, 1, 0}, []float64{4, 2, 5})

				x, err := SolveColumns(context.Background(), a, rhs, cfg)
				require.NoError(t, err)
				ax, err := a.Mul(x)
				require.NoError(t, err)
				assert.True(t, matrix.AllClose(ax, rhs, 1e-12))

				sing := matrixtest.New(t, b, []float64{1, 2}, []float64{2, 4})
				_, err = SolveColumns(context.Background(), sing, rhs, cfg)
				require.ErrorIs(t, err, matrix.ErrSingular)

				_, err = SolveColumns(context.Background(), a, matrixtest.New(t, b, []float64{1}), cfg)
				require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
			})
		})
	}
}

// solveCounter counts the solves SolveColumns issues against the wrapped matrix.
type solveCounter struct {
	matrix.Matrix
	solves atomic.Int32
}

func (c *solveCounter) Solve(b matrix.Matrix) (matrix.Matrix, error) {
	c.solves.Add(1)
	return c.Matrix.Solve(b)
}

// factorCounter also exposes the wrapped matrix's Factorize.
type factorCounter struct {
	solveCounter
	factors atomic.Int32
}

func (c *factorCounter) Factorize() (matrix.Solver, error) {
	c.factors.Add(1)
	return c.Matrix.(matrix.Factorizer).Factorize()
}

func TestSolveColumns_FactorsOnce(t *testing.T) {
	b := dense.New()
	q := matrixtest.New(t, b, []float64{4, 1, 0}, []float64{1, 3, 1}, []float64{0, 1, 2})
	rhs := matrixtest.New(t, b, []float64{1, 0, 2, 5}, []float64{0, 1, 3, 6}, []float64{1, 1, 4, 7})
	cfg := parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}

	fc := &factorCounter{solveCounter: solveCounter{Matrix: q}}
	x, err := SolveColumns(context.Background(), fc, rhs, cfg)
	require.NoError(t, err)
	assert.Equal(t, int32(1), fc.factors.Load())
	assert.Zero(t, fc.solves.Load(), "columns reuse the factorization")
	qx, err := q.Mul(x)
	require.NoError(t, err)
	assert.True(t, matrix.AllClose(qx, rhs, 1e-12))

	sc := &solveCounter{Matrix: q}
	y, err := SolveColumns(context.Background(), sc, rhs, cfg)
	require.NoError(t, err)
	assert.Equal(t, int32(4), sc.solves.Load(), "one Solve per column without a factorizer")
	assert.True(t, matrix.AllClose(x, y, 1e-12))
}

func TestPade_Validation(t *testing.T) {
	b := dense.New()
	_, _, err := Pade(matrixtest.New(t, b, []float64{1, 2}), 3)
	require.ErrorIs(t, err, matrix.ErrNotSquare)
	_, _, err = Pade(matrixtest.New(t, b, []float64{1}), 11)
	require.ErrorIs(t, err, ErrDegree)
}

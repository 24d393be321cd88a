package gonum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/linalg/internal/matrix"
)

// Matrix wraps a *mat.Dense owned exclusively by the adapter.
type Matrix struct {
	matrix.Float64Only

	backend *Backend
	d       *mat.Dense
}

func (m *Matrix) cast(op string, other matrix.Matrix) (*Matrix, error) {
	o, ok := other.(*Matrix)
	if !ok || o == nil {
		return nil, matrix.MismatchError(op, m.backend, other)
	}
	return o, nil
}

// Dense returns the underlying gonum matrix. Writes through it are visible in m.
func (m *Matrix) Dense() *mat.Dense { return m.d }

// Backend returns the backend that created m.
func (m *Matrix) Backend() matrix.Backend {
	if m == nil {
		return nil
	}
	return m.backend
}

// DType returns matrix.Float64.
func (m *Matrix) DType() matrix.DataType { return matrix.Float64 }

// Rows returns the number of rows.
func (m *Matrix) Rows() int { r, _ := m.d.Dims(); return r }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { _, c := m.d.Dims(); return c }

// At returns element (i, j).
func (m *Matrix) At(i, j int) (float64, error) {
	if err := matrix.CheckIndex("At", i, j, m.Rows(), m.Cols()); err != nil {
		return 0, err
	}
	return m.d.At(i, j), nil
}

// Set assigns element (i, j).
func (m *Matrix) Set(i, j int, v float64) error {
	if err := matrix.CheckIndex("Set", i, j, m.Rows(), m.Cols()); err != nil {
		return err
	}
	m.d.Set(i, j, v)
	return nil
}

// AtIndex returns the element at row-major position k.
func (m *Matrix) AtIndex(k int) (float64, error) {
	r, c := m.d.Dims()
	if err := matrix.CheckLinearIndex("AtIndex", k, r, c); err != nil {
		return 0, err
	}
	return m.d.At(k/c, k%c), nil
}

// SetIndex assigns the element at row-major position k.
func (m *Matrix) SetIndex(k int, v float64) error {
	r, c := m.d.Dims()
	if err := matrix.CheckLinearIndex("SetIndex", k, r, c); err != nil {
		return err
	}
	m.d.Set(k/c, k%c, v)
	return nil
}

func (m *Matrix) binary(op string, other matrix.Matrix, check func(string, matrix.Matrix, matrix.Matrix) error,
	fn func(dst, a, b *mat.Dense)) (matrix.Matrix, error) {
	o, err := m.cast(op, other)
	if err != nil {
		return nil, err
	}
	if err := check(op, m, o); err != nil {
		return nil, err
	}
	var out mat.Dense
	if err := guard(op, func() { fn(&out, m.d, o.d) }); err != nil {
		return nil, err
	}
	return m.backend.wrap(&out), nil
}

// Add returns m + other.
func (m *Matrix) Add(other matrix.Matrix) (matrix.Matrix, error) {
	return m.binary("Add", other, matrix.CheckSameShape, func(dst, a, b *mat.Dense) { dst.Add(a, b) })
}

// Sub returns m - other.
func (m *Matrix) Sub(other matrix.Matrix) (matrix.Matrix, error) {
	return m.binary("Sub", other, matrix.CheckSameShape, func(dst, a, b *mat.Dense) { dst.Sub(a, b) })
}

// Mul returns the matrix product m·other.
func (m *Matrix) Mul(other matrix.Matrix) (matrix.Matrix, error) {
	return m.binary("Mul", other, matrix.CheckMulShape, func(dst, a, b *mat.Dense) { dst.Mul(a, b) })
}

// MulElem returns the element-wise product.
func (m *Matrix) MulElem(other matrix.Matrix) (matrix.Matrix, error) {
	return m.binary("MulElem", other, matrix.CheckSameShape, func(dst, a, b *mat.Dense) { dst.MulElem(a, b) })
}

// Mod returns the element-wise floored modulo m mod other.
func (m *Matrix) Mod(other matrix.Matrix) (matrix.Matrix, error) {
	return m.binary("Mod", other, matrix.CheckSameShape, func(dst, a, b *mat.Dense) {
		dst.Apply(func(i, j int, v float64) float64 { return matrix.FloorMod(v, b.At(i, j)) }, a)
	})
}

func (m *Matrix) apply(fn func(v float64) float64) matrix.Matrix {
	var out mat.Dense
	out.Apply(func(_, _ int, v float64) float64 { return fn(v) }, m.d)
	return m.backend.wrap(&out)
}

// Apply returns a new matrix with fn applied to every element.
func (m *Matrix) Apply(fn func(v float64) float64) matrix.Matrix {
	return m.apply(fn)
}

// ApplyIndexed returns a new matrix whose element (i, j) is fn(i, j, m[i,j]).
func (m *Matrix) ApplyIndexed(fn func(i, j int, v float64) float64) matrix.Matrix {
	var out mat.Dense
	out.Apply(fn, m.d)
	return m.backend.wrap(&out)
}

// Neg returns -m.
func (m *Matrix) Neg() matrix.Matrix { return m.Scale(-1) }

// AddScalar returns m + v element-wise.
func (m *Matrix) AddScalar(v float64) matrix.Matrix {
	return m.apply(func(x float64) float64 { return x + v })
}

// SubScalar returns m - v element-wise.
func (m *Matrix) SubScalar(v float64) matrix.Matrix {
	return m.apply(func(x float64) float64 { return x - v })
}

// Scale returns v·m.
func (m *Matrix) Scale(v float64) matrix.Matrix {
	var out mat.Dense
	out.Scale(v, m.d)
	return m.backend.wrap(&out)
}

// DivScalar returns m / v element-wise.
func (m *Matrix) DivScalar(v float64) matrix.Matrix {
	return m.apply(func(x float64) float64 { return x / v })
}

// T returns a transposed copy. mat.Dense.T is a view, so it is materialized.
func (m *Matrix) T() matrix.Matrix {
	return m.backend.wrap(mat.DenseCopyOf(m.d.T()))
}

// Row returns row i as a 1×cols matrix.
func (m *Matrix) Row(i int) (matrix.Matrix, error) {
	if err := matrix.CheckIndex("Row", i, 0, m.Rows(), m.Cols()); err != nil {
		return nil, err
	}
	row := append([]float64(nil), m.d.RawRowView(i)...)
	return m.backend.wrap(mat.NewDense(1, len(row), row)), nil
}

// Col returns column j as a rows×1 matrix.
func (m *Matrix) Col(j int) (matrix.Matrix, error) {
	if err := matrix.CheckIndex("Col", 0, j, m.Rows(), m.Cols()); err != nil {
		return nil, err
	}
	col := mat.Col(nil, j, m.d)
	return m.backend.wrap(mat.NewDense(len(col), 1, col)), nil
}

// SetRow replaces row i with the elements of row.
func (m *Matrix) SetRow(i int, row matrix.Matrix) error {
	r, err := m.cast("SetRow", row)
	if err != nil {
		return err
	}
	if err := matrix.CheckIndex("SetRow", i, 0, m.Rows(), m.Cols()); err != nil {
		return err
	}
	if err := matrix.CheckVector("SetRow", r, m.Cols()); err != nil {
		return err
	}
	return guard("SetRow", func() { m.d.SetRow(i, vectorData(r.d)) })
}

// SetCol replaces column j with the elements of col.
func (m *Matrix) SetCol(j int, col matrix.Matrix) error {
	c, err := m.cast("SetCol", col)
	if err != nil {
		return err
	}
	if err := matrix.CheckIndex("SetCol", 0, j, m.Rows(), m.Cols()); err != nil {
		return err
	}
	if err := matrix.CheckVector("SetCol", c, m.Rows()); err != nil {
		return err
	}
	return guard("SetCol", func() { m.d.SetCol(j, vectorData(c.d)) })
}

// vectorData returns the elements of a 1×n or n×1 matrix in order.
func vectorData(d *mat.Dense) []float64 {
	r, _ := d.Dims()
	if r == 1 {
		return append([]float64(nil), d.RawRowView(0)...)
	}
	return mat.Col(nil, 0, d)
}

// Diag returns the main diagonal as a min(rows, cols)×1 matrix.
func (m *Matrix) Diag() matrix.Matrix {
	dv := m.d.DiagView()
	n := dv.Diag()
	out := mat.NewDense(n, 1, nil)
	for i := 0; i < n; i++ {
		out.Set(i, 0, dv.At(i, i))
	}
	return m.backend.wrap(out)
}

// Slice copies the half-open window [r0,r1)×[c0,c1).
func (m *Matrix) Slice(r0, r1, c0, c1 int) (matrix.Matrix, error) {
	if err := matrix.CheckSlice("Slice", r0, r1, c0, c1, m.Rows(), m.Cols()); err != nil {
		return nil, err
	}
	return m.backend.wrap(mat.DenseCopyOf(m.d.Slice(r0, r1, c0, c1))), nil
}

// Clone returns an independent copy.
func (m *Matrix) Clone() matrix.Matrix {
	return m.backend.wrap(mat.DenseCopyOf(m.d))
}

// Sum returns the sum of all elements.
func (m *Matrix) Sum() (float64, error) { return mat.Sum(m.d), nil }

// Max returns the largest element.
func (m *Matrix) Max() (float64, error) { return mat.Max(m.d), nil }

// Min returns the smallest element.
func (m *Matrix) Min() (float64, error) { return mat.Min(m.d), nil }

// rowMajor returns the elements in row-major order. Wrapped matrices may be
// strided views, so the data is compacted first.
func (m *Matrix) rowMajor() []float64 {
	return mat.DenseCopyOf(m.d).RawMatrix().Data
}

// ArgMax returns the row-major index of the first largest element.
func (m *Matrix) ArgMax() (int, error) { return matrix.ArgMaxOf(m.rowMajor()), nil }

// ArgMin returns the row-major index of the first smallest element.
func (m *Matrix) ArgMin() (int, error) { return matrix.ArgMinOf(m.rowMajor()), nil }

// Mean returns the arithmetic mean of all elements.
func (m *Matrix) Mean() (float64, error) {
	r, c := m.d.Dims()
	return mat.Sum(m.d) / float64(r*c), nil
}

// Trace returns the sum of the main diagonal of a square matrix.
func (m *Matrix) Trace() (float64, error) {
	if err := matrix.CheckSquare("Trace", m); err != nil {
		return 0, err
	}
	return mat.Trace(m.d), nil
}

// Norm returns the requested matrix norm.
func (m *Matrix) Norm(kind matrix.NormType) (float64, error) {
	var ord float64
	switch kind {
	case matrix.NormOne:
		ord = 1
	case matrix.NormInf:
		ord = math.Inf(1)
	case matrix.NormFrobenius:
		ord = 2
	default:
		return 0, fmt.Errorf("Norm(%s): %w", kind, matrix.ErrUnsupported)
	}
	return mat.Norm(m.d, ord), nil
}

// String formats m one row per line.
func (m *Matrix) String() string {
	return fmt.Sprintf("gonum %dx%d\n%v", m.Rows(), m.Cols(), mat.Formatted(m.d))
}

//go:build gomatrix

package gomatrix

import (
	"fmt"

	gm "github.com/skelterjohn/go.matrix"

	"github.com/born-ml/linalg/internal/matrix"
)

// Matrix wraps a *gm.DenseMatrix owned exclusively by the adapter.
type Matrix struct {
	matrix.Float64Only

	backend *Backend
	d       *gm.DenseMatrix
}

func (m *Matrix) cast(op string, other matrix.Matrix) (*Matrix, error) {
	o, ok := other.(*Matrix)
	if !ok || o == nil {
		return nil, matrix.MismatchError(op, m.backend, other)
	}
	return o, nil
}

// Engine returns the underlying go.matrix value. Writes through it are visible in m.
func (m *Matrix) Engine() *gm.DenseMatrix { return m.d }

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
func (m *Matrix) Rows() int { return m.d.Rows() }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.d.Cols() }

// At returns element (i, j).
func (m *Matrix) At(i, j int) (float64, error) {
	if err := matrix.CheckIndex("At", i, j, m.Rows(), m.Cols()); err != nil {
		return 0, err
	}
	return m.d.Get(i, j), nil
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
	if err := matrix.CheckLinearIndex("AtIndex", k, m.Rows(), m.Cols()); err != nil {
		return 0, err
	}
	return m.d.Get(k/m.Cols(), k%m.Cols()), nil
}

// SetIndex assigns the element at row-major position k.
func (m *Matrix) SetIndex(k int, v float64) error {
	if err := matrix.CheckLinearIndex("SetIndex", k, m.Rows(), m.Cols()); err != nil {
		return err
	}
	m.d.Set(k/m.Cols(), k%m.Cols(), v)
	return nil
}

func (m *Matrix) binary(op string, other matrix.Matrix, check func(string, matrix.Matrix, matrix.Matrix) error,
	fn func(a, b *gm.DenseMatrix) (*gm.DenseMatrix, error)) (matrix.Matrix, error) {
	o, err := m.cast(op, other)
	if err != nil {
		return nil, err
	}
	if err := check(op, m, o); err != nil {
		return nil, err
	}
	out, err := fn(m.d, o.d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, matrix.ErrDimensionMismatch, err)
	}
	return m.backend.wrap(out), nil
}

// Add returns m + other.
func (m *Matrix) Add(other matrix.Matrix) (matrix.Matrix, error) {
	return m.binary("Add", other, matrix.CheckSameShape, (*gm.DenseMatrix).PlusDense)
}

// Sub returns m - other.
func (m *Matrix) Sub(other matrix.Matrix) (matrix.Matrix, error) {
	return m.binary("Sub", other, matrix.CheckSameShape, (*gm.DenseMatrix).MinusDense)
}

// Mul returns the matrix product m·other.
func (m *Matrix) Mul(other matrix.Matrix) (matrix.Matrix, error) {
	return m.binary("Mul", other, matrix.CheckMulShape, (*gm.DenseMatrix).TimesDense)
}

// MulElem returns the element-wise product.
func (m *Matrix) MulElem(other matrix.Matrix) (matrix.Matrix, error) {
	return m.binary("MulElem", other, matrix.CheckSameShape, (*gm.DenseMatrix).ElementMultDense)
}

// Mod returns the element-wise floored modulo m mod other.
func (m *Matrix) Mod(other matrix.Matrix) (matrix.Matrix, error) {
	return m.binary("Mod", other, matrix.CheckSameShape, func(a, b *gm.DenseMatrix) (*gm.DenseMatrix, error) {
		out := gm.Zeros(a.Rows(), a.Cols())
		for i := 0; i < a.Rows(); i++ {
			for j := 0; j < a.Cols(); j++ {
				out.Set(i, j, matrix.FloorMod(a.Get(i, j), b.Get(i, j)))
			}
		}
		return out, nil
	})
}

func (m *Matrix) apply(fn func(v float64) float64) matrix.Matrix {
	out := gm.Zeros(m.Rows(), m.Cols())
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			out.Set(i, j, fn(m.d.Get(i, j)))
		}
	}
	return m.backend.wrap(out)
}

// Apply returns a new matrix with fn applied to every element.
func (m *Matrix) Apply(fn func(v float64) float64) matrix.Matrix {
	return m.apply(fn)
}

// ApplyIndexed returns a new matrix whose element (i, j) is fn(i, j, m[i,j]).
func (m *Matrix) ApplyIndexed(fn func(i, j int, v float64) float64) matrix.Matrix {
	out := gm.Zeros(m.Rows(), m.Cols())
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			out.Set(i, j, fn(i, j, m.d.Get(i, j)))
		}
	}
	return m.backend.wrap(out)
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
	out := m.d.Copy()
	out.Scale(v)
	return m.backend.wrap(out)
}

// DivScalar returns m / v element-wise.
func (m *Matrix) DivScalar(v float64) matrix.Matrix {
	return m.apply(func(x float64) float64 { return x / v })
}

// T returns a transposed copy.
func (m *Matrix) T() matrix.Matrix {
	return m.backend.wrap(m.d.Transpose())
}

// Row returns row i as a 1×cols matrix.
func (m *Matrix) Row(i int) (matrix.Matrix, error) {
	return m.Slice(i, i+1, 0, m.Cols())
}

// Col returns column j as a rows×1 matrix.
func (m *Matrix) Col(j int) (matrix.Matrix, error) {
	return m.Slice(0, m.Rows(), j, j+1)
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
	for j, v := range matrix.Elements(r) {
		m.d.Set(i, j, v)
	}
	return nil
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
	for i, v := range matrix.Elements(c) {
		m.d.Set(i, j, v)
	}
	return nil
}

// Diag returns the main diagonal as a min(rows, cols)×1 matrix.
func (m *Matrix) Diag() matrix.Matrix {
	n := min(m.Rows(), m.Cols())
	out := gm.Zeros(n, 1)
	for i := 0; i < n; i++ {
		out.Set(i, 0, m.d.Get(i, i))
	}
	return m.backend.wrap(out)
}

// Slice copies the half-open window [r0,r1)×[c0,c1).
func (m *Matrix) Slice(r0, r1, c0, c1 int) (matrix.Matrix, error) {
	if err := matrix.CheckSlice("Slice", r0, r1, c0, c1, m.Rows(), m.Cols()); err != nil {
		return nil, err
	}
	out := gm.Zeros(r1-r0, c1-c0)
	for i := r0; i < r1; i++ {
		for j := c0; j < c1; j++ {
			out.Set(i-r0, j-c0, m.d.Get(i, j))
		}
	}
	return m.backend.wrap(out), nil
}

// Clone returns an independent copy.
func (m *Matrix) Clone() matrix.Matrix {
	return m.backend.wrap(m.d.Copy())
}

// Sum returns the sum of all elements.
func (m *Matrix) Sum() (float64, error) {
	sum := 0.0
	for _, v := range matrix.Elements(m) {
		sum += v
	}
	return sum, nil
}

// Max returns the largest element.
func (m *Matrix) Max() (float64, error) {
	data := matrix.Elements(m)
	best := data[0]
	for _, v := range data[1:] {
		best = max(best, v)
	}
	return best, nil
}

// Min returns the smallest element.
func (m *Matrix) Min() (float64, error) {
	data := matrix.Elements(m)
	best := data[0]
	for _, v := range data[1:] {
		best = min(best, v)
	}
	return best, nil
}

// Mean is not provided by this backend.
func (m *Matrix) Mean() (float64, error) {
	return 0, matrix.Unsupported(Name, "Mean")
}

// ArgMax is not provided by this backend.
func (m *Matrix) ArgMax() (int, error) {
	return 0, matrix.Unsupported(Name, "ArgMax")
}

// ArgMin is not provided by this backend.
func (m *Matrix) ArgMin() (int, error) {
	return 0, matrix.Unsupported(Name, "ArgMin")
}

// Trace returns the sum of the main diagonal of a square matrix.
func (m *Matrix) Trace() (float64, error) {
	if err := matrix.CheckSquare("Trace", m); err != nil {
		return 0, err
	}
	return m.d.Trace(), nil
}

// Norm returns the requested matrix norm.
func (m *Matrix) Norm(kind matrix.NormType) (float64, error) {
	v, err := matrix.NormOf(matrix.Elements(m), m.Rows(), m.Cols(), kind)
	if err != nil {
		return 0, fmt.Errorf("%s backend: %w", Name, err)
	}
	return v, nil
}

// String formats m one row per line.
func (m *Matrix) String() string {
	return fmt.Sprintf("gomatrix %dx%d\n%s", m.Rows(), m.Cols(), matrix.FormatMatrix(m))
}

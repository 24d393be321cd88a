package dense

import (
	"fmt"

	"github.com/born-ml/linalg/internal/matrix"
)

// Matrix is a row-major float64 matrix owned by a dense Backend.
type Matrix struct {
	matrix.Float64Only

	backend    *Backend
	rows, cols int
	data       []float64
}

// cast returns other as a dense matrix, or ErrBackendMismatch.
func (m *Matrix) cast(op string, other matrix.Matrix) (*Matrix, error) {
	o, ok := other.(*Matrix)
	if !ok || o == nil {
		return nil, matrix.MismatchError(op, m.backend, other)
	}
	return o, nil
}

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
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// RawData returns the backing row-major slice. Writes through it are visible in m.
func (m *Matrix) RawData() []float64 { return m.data }

// At returns element (i, j).
func (m *Matrix) At(i, j int) (float64, error) {
	if err := matrix.CheckIndex("At", i, j, m.rows, m.cols); err != nil {
		return 0, err
	}
	return m.data[i*m.cols+j], nil
}

// Set assigns element (i, j).
func (m *Matrix) Set(i, j int, v float64) error {
	if err := matrix.CheckIndex("Set", i, j, m.rows, m.cols); err != nil {
		return err
	}
	m.data[i*m.cols+j] = v
	return nil
}

// AtIndex returns the element at row-major position k.
func (m *Matrix) AtIndex(k int) (float64, error) {
	if err := matrix.CheckLinearIndex("AtIndex", k, m.rows, m.cols); err != nil {
		return 0, err
	}
	return m.data[k], nil
}

// SetIndex assigns the element at row-major position k.
func (m *Matrix) SetIndex(k int, v float64) error {
	if err := matrix.CheckLinearIndex("SetIndex", k, m.rows, m.cols); err != nil {
		return err
	}
	m.data[k] = v
	return nil
}

func (m *Matrix) elementwise(op string, other matrix.Matrix, f func(x, y float64) float64) (matrix.Matrix, error) {
	o, err := m.cast(op, other)
	if err != nil {
		return nil, err
	}
	if err := matrix.CheckSameShape(op, m, o); err != nil {
		return nil, err
	}
	out := m.backend.alloc(m.rows, m.cols)
	zip(out.data, m.data, o.data, f)
	return out, nil
}

// Add returns m + other.
func (m *Matrix) Add(other matrix.Matrix) (matrix.Matrix, error) {
	return m.elementwise("Add", other, func(x, y float64) float64 { return x + y })
}

// Sub returns m - other.
func (m *Matrix) Sub(other matrix.Matrix) (matrix.Matrix, error) {
	return m.elementwise("Sub", other, func(x, y float64) float64 { return x - y })
}

// MulElem returns the element-wise product.
func (m *Matrix) MulElem(other matrix.Matrix) (matrix.Matrix, error) {
	return m.elementwise("MulElem", other, func(x, y float64) float64 { return x * y })
}

// Mod returns the element-wise floored modulo m mod other.
func (m *Matrix) Mod(other matrix.Matrix) (matrix.Matrix, error) {
	return m.elementwise("Mod", other, matrix.FloorMod)
}

// Mul returns the matrix product m·other.
func (m *Matrix) Mul(other matrix.Matrix) (matrix.Matrix, error) {
	o, err := m.cast("Mul", other)
	if err != nil {
		return nil, err
	}
	if err := matrix.CheckMulShape("Mul", m, o); err != nil {
		return nil, err
	}
	out := m.backend.alloc(m.rows, o.cols)
	matmul(out.data, m.data, o.data, m.rows, m.cols, o.cols, m.backend.par)
	return out, nil
}

func (m *Matrix) apply(f func(x float64) float64) *Matrix {
	out := m.backend.alloc(m.rows, m.cols)
	mapTo(out.data, m.data, f)
	return out
}

// Apply returns a new matrix with fn applied to every element.
func (m *Matrix) Apply(fn func(v float64) float64) matrix.Matrix {
	return m.apply(fn)
}

// ApplyIndexed returns a new matrix whose element (i, j) is fn(i, j, m[i,j]).
func (m *Matrix) ApplyIndexed(fn func(i, j int, v float64) float64) matrix.Matrix {
	out := m.backend.alloc(m.rows, m.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			k := i*m.cols + j
			out.data[k] = fn(i, j, m.data[k])
		}
	}
	return out
}

// Neg returns -m.
func (m *Matrix) Neg() matrix.Matrix {
	return m.apply(func(x float64) float64 { return -x })
}

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
	return m.apply(func(x float64) float64 { return x * v })
}

// DivScalar returns m / v element-wise.
func (m *Matrix) DivScalar(v float64) matrix.Matrix {
	return m.apply(func(x float64) float64 { return x / v })
}

// T returns a transposed copy.
func (m *Matrix) T() matrix.Matrix {
	out := m.backend.alloc(m.cols, m.rows)
	transpose(out.data, m.data, m.rows, m.cols)
	return out
}

// Row returns row i as a 1×cols matrix.
func (m *Matrix) Row(i int) (matrix.Matrix, error) {
	if err := matrix.CheckIndex("Row", i, 0, m.rows, m.cols); err != nil {
		return nil, err
	}
	out := m.backend.alloc(1, m.cols)
	copy(out.data, m.data[i*m.cols:(i+1)*m.cols])
	return out, nil
}

// Col returns column j as a rows×1 matrix.
func (m *Matrix) Col(j int) (matrix.Matrix, error) {
	if err := matrix.CheckIndex("Col", 0, j, m.rows, m.cols); err != nil {
		return nil, err
	}
	out := m.backend.alloc(m.rows, 1)
	for i := 0; i < m.rows; i++ {
		out.data[i] = m.data[i*m.cols+j]
	}
	return out, nil
}

// SetRow replaces row i with the elements of row.
func (m *Matrix) SetRow(i int, row matrix.Matrix) error {
	r, err := m.cast("SetRow", row)
	if err != nil {
		return err
	}
	if err := matrix.CheckIndex("SetRow", i, 0, m.rows, m.cols); err != nil {
		return err
	}
	if err := matrix.CheckVector("SetRow", r, m.cols); err != nil {
		return err
	}
	copy(m.data[i*m.cols:(i+1)*m.cols], r.data)
	return nil
}

// SetCol replaces column j with the elements of col.
func (m *Matrix) SetCol(j int, col matrix.Matrix) error {
	c, err := m.cast("SetCol", col)
	if err != nil {
		return err
	}
	if err := matrix.CheckIndex("SetCol", 0, j, m.rows, m.cols); err != nil {
		return err
	}
	if err := matrix.CheckVector("SetCol", c, m.rows); err != nil {
		return err
	}
	for i, v := range c.data {
		m.data[i*m.cols+j] = v
	}
	return nil
}

// Diag returns the main diagonal as a min(rows, cols)×1 matrix.
func (m *Matrix) Diag() matrix.Matrix {
	n := min(m.rows, m.cols)
	out := m.backend.alloc(n, 1)
	for i := 0; i < n; i++ {
		out.data[i] = m.data[i*m.cols+i]
	}
	return out
}

// Slice copies the half-open window [r0,r1)×[c0,c1).
func (m *Matrix) Slice(r0, r1, c0, c1 int) (matrix.Matrix, error) {
	if err := matrix.CheckSlice("Slice", r0, r1, c0, c1, m.rows, m.cols); err != nil {
		return nil, err
	}
	w := c1 - c0
	out := m.backend.alloc(r1-r0, w)
	for i := r0; i < r1; i++ {
		copy(out.data[(i-r0)*w:(i-r0+1)*w], m.data[i*m.cols+c0:i*m.cols+c1])
	}
	return out, nil
}

// Clone returns an independent copy.
func (m *Matrix) Clone() matrix.Matrix {
	return m.clone()
}

func (m *Matrix) clone() *Matrix {
	out := m.backend.alloc(m.rows, m.cols)
	copy(out.data, m.data)
	return out
}

// String formats m one row per line.
func (m *Matrix) String() string {
	return fmt.Sprintf("dense %dx%d\n%s", m.rows, m.cols, matrix.FormatMatrix(m))
}

//go:build gomatrix

package gomatrix

import (
	"fmt"

	gm "github.com/skelterjohn/go.matrix"

	"github.com/born-ml/linalg/internal/matrix"
)

// Available reports whether the engine is compiled into this binary.
const Available = true

// Backend creates matrices backed by *gm.DenseMatrix.
type Backend struct{}

// New creates a go.matrix backend.
func New() (matrix.Backend, error) {
	return &Backend{}, nil
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return Name
}

// Zeros returns a zero-initialized rows×cols matrix.
func (b *Backend) Zeros(rows, cols int) (matrix.Matrix, error) {
	if err := matrix.CheckShape(rows, cols); err != nil {
		return nil, fmt.Errorf("zeros: %w", err)
	}
	return b.wrap(gm.Zeros(rows, cols)), nil
}

// Eye returns the n×n identity matrix.
func (b *Backend) Eye(n int) (matrix.Matrix, error) {
	if err := matrix.CheckShape(n, n); err != nil {
		return nil, fmt.Errorf("eye: %w", err)
	}
	d := gm.Zeros(n, n)
	for i := 0; i < n; i++ {
		d.Set(i, i, 1)
	}
	return b.wrap(d), nil
}

// FromSlice copies row-major data into a new rows×cols matrix.
func (b *Backend) FromSlice(data []float64, rows, cols int) (matrix.Matrix, error) {
	if err := matrix.CheckData(data, rows, cols); err != nil {
		return nil, fmt.Errorf("from slice: %w", err)
	}
	// MakeDenseMatrix adopts its slice.
	return b.wrap(gm.MakeDenseMatrix(append([]float64(nil), data...), rows, cols)), nil
}

func (b *Backend) wrap(d *gm.DenseMatrix) *Matrix {
	return &Matrix{backend: b, d: d}
}

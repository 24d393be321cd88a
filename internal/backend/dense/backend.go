// Package dense implements the pure Go matrix backend.
//
// Matrices are stored as flat row-major float64 slices. Kernels fan rows out
// through internal/parallel and use fused multiply-add where the CPU has it.
package dense

import (
	"fmt"

	"github.com/born-ml/linalg/internal/matrix"
	"github.com/born-ml/linalg/internal/parallel"
)

// Name is the registry identifier of this backend.
const Name = "dense"

// Backend creates pure Go matrices.
type Backend struct {
	par parallel.Config
}

// New creates a dense backend with the default parallel configuration.
func New() *Backend {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a dense backend using cfg for row fan-out.
func NewWithConfig(cfg parallel.Config) *Backend {
	return &Backend{par: cfg}
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return Name
}

// FMA reports whether kernels use hardware fused multiply-add.
func (b *Backend) FMA() bool {
	return useFMA
}

// Zeros returns a zero-initialized rows×cols matrix.
func (b *Backend) Zeros(rows, cols int) (matrix.Matrix, error) {
	if err := matrix.CheckShape(rows, cols); err != nil {
		return nil, fmt.Errorf("zeros: %w", err)
	}
	return b.alloc(rows, cols), nil
}

// Eye returns the n×n identity matrix.
func (b *Backend) Eye(n int) (matrix.Matrix, error) {
	if err := matrix.CheckShape(n, n); err != nil {
		return nil, fmt.Errorf("eye: %w", err)
	}
	return b.eye(n), nil
}

// FromSlice copies row-major data into a new rows×cols matrix.
func (b *Backend) FromSlice(data []float64, rows, cols int) (matrix.Matrix, error) {
	if err := matrix.CheckData(data, rows, cols); err != nil {
		return nil, fmt.Errorf("from slice: %w", err)
	}
	m := b.alloc(rows, cols)
	copy(m.data, data)
	return m, nil
}

func (b *Backend) alloc(rows, cols int) *Matrix {
	return &Matrix{backend: b, rows: rows, cols: cols, data: make([]float64, rows*cols)}
}

func (b *Backend) wrap(data []float64, rows, cols int) *Matrix {
	return &Matrix{backend: b, rows: rows, cols: cols, data: data}
}

func (b *Backend) eye(n int) *Matrix {
	m := b.alloc(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// Package gonum adapts gonum.org/v1/gonum/mat to the matrix interface.
//
// Gonum reports misuse by panicking with mat.Error values. Every engine call
// that can do so runs under mat.Maybe and its error is translated to the
// matrix sentinels.
package gonum

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/linalg/internal/matrix"
)

// Name is the registry identifier of this backend.
const Name = "gonum"

// Backend creates matrices backed by *mat.Dense.
type Backend struct{}

// New creates a gonum backend.
func New() *Backend {
	return &Backend{}
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
	return b.wrap(mat.NewDense(rows, cols, nil)), nil
}

// Eye returns the n×n identity matrix.
func (b *Backend) Eye(n int) (matrix.Matrix, error) {
	if err := matrix.CheckShape(n, n); err != nil {
		return nil, fmt.Errorf("eye: %w", err)
	}
	return b.wrap(identity(n)), nil
}

// FromSlice copies row-major data into a new rows×cols matrix.
func (b *Backend) FromSlice(data []float64, rows, cols int) (matrix.Matrix, error) {
	if err := matrix.CheckData(data, rows, cols); err != nil {
		return nil, fmt.Errorf("from slice: %w", err)
	}
	return b.wrap(mat.NewDense(rows, cols, append([]float64(nil), data...))), nil
}

// Wrap adopts d without copying. d must be non-empty.
func (b *Backend) Wrap(d *mat.Dense) matrix.Matrix {
	return b.wrap(d)
}

func (b *Backend) wrap(d *mat.Dense) *Matrix {
	return &Matrix{backend: b, d: d}
}

func identity(n int) *mat.Dense {
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		d.Set(i, i, 1)
	}
	return d
}

// translate maps a gonum failure onto the matrix sentinels.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	var stack mat.ErrorStack
	if errors.As(err, &stack) {
		err = stack.Err
	}

	var cond mat.Condition
	switch {
	case errors.As(err, &cond):
		return fmt.Errorf("%s: %w (condition number %.4e)", op, matrix.ErrSingular, float64(cond))
	case errors.Is(err, mat.ErrSingular):
		return fmt.Errorf("%s: %w", op, matrix.ErrSingular)
	case errors.Is(err, mat.ErrNotPSD):
		return fmt.Errorf("%s: %w", op, matrix.ErrNotPositiveDefinite)
	case errors.Is(err, mat.ErrSquare):
		return fmt.Errorf("%s: %w", op, matrix.ErrNotSquare)
	case errors.Is(err, mat.ErrShape), errors.Is(err, mat.ErrRowLength), errors.Is(err, mat.ErrColLength):
		return fmt.Errorf("%s: %w: %v", op, matrix.ErrDimensionMismatch, err)
	case errors.Is(err, mat.ErrIndexOutOfRange), errors.Is(err, mat.ErrRowAccess), errors.Is(err, mat.ErrColAccess):
		return fmt.Errorf("%s: %w", op, matrix.ErrIndexOutOfRange)
	case errors.Is(err, mat.ErrZeroLength), errors.Is(err, mat.ErrNegativeDimension):
		return fmt.Errorf("%s: %w", op, matrix.ErrInvalidShape)
	case errors.Is(err, mat.ErrNormOrder):
		return fmt.Errorf("%s: %w", op, matrix.ErrUnsupported)
	default:
		return fmt.Errorf("%s: gonum: %w", op, err)
	}
}

// guard runs fn under mat.Maybe and translates any recovered panic.
func guard(op string, fn func()) error {
	return translate(op, mat.Maybe(fn))
}

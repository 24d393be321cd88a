//go:build gomatrix

package gomatrix

import (
	"fmt"

	"github.com/born-ml/linalg/internal/matrix"
)

// Chol returns lower-triangular L with m = L·Lᵀ.
func (m *Matrix) Chol() (matrix.Matrix, error) {
	if err := matrix.CheckSquare("Chol", m); err != nil {
		return nil, err
	}
	if !matrix.IsSymmetric(matrix.Elements(m), m.Rows(), matrix.SymmetryTolerance) {
		return nil, fmt.Errorf("Chol: %w: matrix is not symmetric", matrix.ErrNotPositiveDefinite)
	}
	l, err := m.d.Cholesky()
	if err != nil {
		return nil, fmt.Errorf("Chol: %w: %v", matrix.ErrNotPositiveDefinite, err)
	}
	return m.backend.wrap(l), nil
}

// LU is not provided by this backend.
func (m *Matrix) LU() (p, l, u matrix.Matrix, err error) {
	return nil, nil, nil, matrix.Unsupported(Name, "LU")
}

// QR returns Q and R with m = Q·R as computed by the engine.
func (m *Matrix) QR() (q, r matrix.Matrix, err error) {
	qd, rd := m.d.QR()
	return m.backend.wrap(qd), m.backend.wrap(rd), nil
}

// Inv returns the inverse of a square non-singular matrix.
func (m *Matrix) Inv() (matrix.Matrix, error) {
	if err := matrix.CheckSquare("Inv", m); err != nil {
		return nil, err
	}
	inv, err := m.d.Inverse()
	if err != nil {
		return nil, fmt.Errorf("Inv: %w: %v", matrix.ErrSingular, err)
	}
	return m.backend.wrap(inv), nil
}

// PInv is not provided by this backend.
func (m *Matrix) PInv() (matrix.Matrix, error) {
	return nil, matrix.Unsupported(Name, "PInv")
}

// Det returns the determinant of a square matrix.
func (m *Matrix) Det() (float64, error) {
	if err := matrix.CheckSquare("Det", m); err != nil {
		return 0, err
	}
	return m.d.Det(), nil
}

// Solve returns X with m·X = b, computed as m⁻¹·b.
func (m *Matrix) Solve(b matrix.Matrix) (matrix.Matrix, error) {
	bd, err := m.cast("Solve", b)
	if err != nil {
		return nil, err
	}
	if err := matrix.CheckSolve("Solve", m, bd); err != nil {
		return nil, err
	}
	inv, err := m.d.Inverse()
	if err != nil {
		return nil, fmt.Errorf("Solve: %w: %v", matrix.ErrSingular, err)
	}
	x, err := inv.TimesDense(bd.d)
	if err != nil {
		return nil, fmt.Errorf("Solve: %w: %v", matrix.ErrDimensionMismatch, err)
	}
	return m.backend.wrap(x), nil
}

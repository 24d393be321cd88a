package gonum

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/born-ml/linalg/internal/matrix"
)

// pinvRcond is the relative singular value cutoff used by PInv.
const pinvRcond = 1e-15

// Chol returns lower-triangular L with m = L·Lᵀ.
func (m *Matrix) Chol() (matrix.Matrix, error) {
	if err := matrix.CheckSquare("Chol", m); err != nil {
		return nil, err
	}
	n := m.Rows()
	data := mat.DenseCopyOf(m.d).RawMatrix().Data
	if !matrix.IsSymmetric(data, n, matrix.SymmetryTolerance) {
		return nil, fmt.Errorf("Chol: %w: matrix is not symmetric", matrix.ErrNotPositiveDefinite)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(mat.NewSymDense(n, data)); !ok {
		return nil, fmt.Errorf("Chol: %w", matrix.ErrNotPositiveDefinite)
	}
	var l mat.TriDense
	chol.LTo(&l)
	return m.backend.wrap(mat.DenseCopyOf(&l)), nil
}

// LU returns P, L and U with m = P·L·U.
func (m *Matrix) LU() (p, l, u matrix.Matrix, err error) {
	if err := matrix.CheckSquare("LU", m); err != nil {
		return nil, nil, nil, err
	}
	var (
		lu     mat.LU
		lt, ut mat.TriDense
		pd     *mat.Dense
	)
	err = guard("LU", func() {
		lu.Factorize(m.d)
		lu.LTo(&lt)
		lu.UTo(&ut)
		pd = identity(m.Rows())
		pd.PermuteRows(lu.RowPivots(nil), false)
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return m.backend.wrap(pd), m.backend.wrap(mat.DenseCopyOf(&lt)), m.backend.wrap(mat.DenseCopyOf(&ut)), nil
}

// QR returns orthogonal Q (rows×rows) and upper-triangular R (rows×cols)
// with m = Q·R. Wide matrices factor their leading square block and carry
// the remaining columns as Qᵀ·A[:, rows:].
func (m *Matrix) QR() (q, r matrix.Matrix, err error) {
	rows, cols := m.d.Dims()
	var qd, rd mat.Dense
	err = guard("QR", func() {
		var qr mat.QR
		if rows >= cols {
			qr.Factorize(m.d)
			qr.QTo(&qd)
			qr.RTo(&rd)
			return
		}
		qr.Factorize(m.d.Slice(0, rows, 0, rows))
		qr.QTo(&qd)
		var head, tail mat.Dense
		qr.RTo(&head)
		tail.Mul(qd.T(), m.d.Slice(0, rows, rows, cols))
		rd.Augment(&head, &tail)
	})
	if err != nil {
		return nil, nil, err
	}
	return m.backend.wrap(&qd), m.backend.wrap(&rd), nil
}

// Inv returns the inverse of a square non-singular matrix.
func (m *Matrix) Inv() (matrix.Matrix, error) {
	if err := matrix.CheckSquare("Inv", m); err != nil {
		return nil, err
	}
	var out mat.Dense
	var inv error
	if err := guard("Inv", func() { inv = out.Inverse(m.d) }); err != nil {
		return nil, err
	}
	if inv != nil {
		return nil, translate("Inv", inv)
	}
	return m.backend.wrap(&out), nil
}

// PInv returns the Moore-Penrose pseudo-inverse V·Σ⁺·Uᵀ from a thin SVD.
// Singular values below pinvRcond·σ_max are treated as zero, so
// rank-deficient input is accepted.
func (m *Matrix) PInv() (matrix.Matrix, error) {
	var svd mat.SVD
	if ok := svd.Factorize(m.d, mat.SVDThin); !ok {
		return nil, fmt.Errorf("PInv: %w: SVD did not converge", matrix.ErrSingular)
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	s := svd.Values(nil)

	// Scale columns of V by 1/σ in place, then multiply by Uᵀ.
	cutoff := pinvRcond * s[0]
	vr, _ := v.Dims()
	for k, sigma := range s {
		inv := 0.0
		if sigma > cutoff {
			inv = 1 / sigma
		}
		for i := 0; i < vr; i++ {
			v.Set(i, k, v.At(i, k)*inv)
		}
	}
	var out mat.Dense
	out.Mul(&v, u.T())
	return m.backend.wrap(&out), nil
}

// Det returns the determinant of a square matrix.
func (m *Matrix) Det() (float64, error) {
	if err := matrix.CheckSquare("Det", m); err != nil {
		return 0, err
	}
	return mat.Det(m.d), nil
}

// Solve returns X with m·X = b.
func (m *Matrix) Solve(b matrix.Matrix) (matrix.Matrix, error) {
	bd, err := m.cast("Solve", b)
	if err != nil {
		return nil, err
	}
	if err := matrix.CheckSolve("Solve", m, bd); err != nil {
		return nil, err
	}
	var out mat.Dense
	var solve error
	if err := guard("Solve", func() { solve = out.Solve(m.d, bd.d) }); err != nil {
		return nil, err
	}
	if solve != nil {
		return nil, translate("Solve", solve)
	}
	return m.backend.wrap(&out), nil
}

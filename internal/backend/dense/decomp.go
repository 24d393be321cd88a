package dense

import (
	"fmt"
	"math"
	"slices"

	"github.com/born-ml/linalg/internal/matrix"
)

const eps = 0x1p-52

// pivotTolerance is the magnitude below which a pivot marks the matrix as
// numerically singular: n·ε·max|a_ij|.
func pivotTolerance(a []float64, n int) float64 {
	biggest := 0.0
	for _, v := range a {
		biggest = max(biggest, math.Abs(v))
	}
	return float64(n) * eps * biggest
}

// luFactors holds a partial-pivot factorization with A[piv[i]] = (L·U)[i].
// L is unit lower triangular and stored strictly below the diagonal of lu;
// U occupies the diagonal and above.
type luFactors struct {
	n        int
	lu       []float64
	piv      []int
	sign     float64
	singular bool
}

func factorLU(a []float64, n int) *luFactors {
	f := &luFactors{n: n, lu: slices.Clone(a), piv: make([]int, n), sign: 1}
	for i := range f.piv {
		f.piv[i] = i
	}
	tol := pivotTolerance(a, n)
	lu := f.lu

	for k := 0; k < n; k++ {
		p, best := k, math.Abs(lu[k*n+k])
		for i := k + 1; i < n; i++ {
			if v := math.Abs(lu[i*n+k]); v > best {
				p, best = i, v
			}
		}
		if p != k {
			for j := 0; j < n; j++ {
				lu[k*n+j], lu[p*n+j] = lu[p*n+j], lu[k*n+j]
			}
			f.piv[k], f.piv[p] = f.piv[p], f.piv[k]
			f.sign = -f.sign
		}

		pivot := lu[k*n+k]
		if best <= tol {
			f.singular = true
		}
		if pivot == 0 {
			// Column is already zero below the diagonal.
			continue
		}
		urow := lu[k*n+k+1 : (k+1)*n]
		for i := k + 1; i < n; i++ {
			l := lu[i*n+k] / pivot
			lu[i*n+k] = l
			if l != 0 {
				axpy(-l, urow, lu[i*n+k+1:(i+1)*n])
			}
		}
	}
	return f
}

func (f *luFactors) det() float64 {
	d := f.sign
	for i := 0; i < f.n; i++ {
		d *= f.lu[i*f.n+i]
	}
	return d
}

// solve returns X with A·X = B for row-major B (n×nrhs).
func (f *luFactors) solve(b []float64, nrhs int) []float64 {
	n := f.n
	x := make([]float64, n*nrhs)
	for i, p := range f.piv {
		copy(x[i*nrhs:(i+1)*nrhs], b[p*nrhs:(p+1)*nrhs])
	}
	// Forward substitution with unit L.
	for i := 0; i < n; i++ {
		xi := x[i*nrhs : (i+1)*nrhs]
		for k := 0; k < i; k++ {
			if l := f.lu[i*n+k]; l != 0 {
				axpy(-l, x[k*nrhs:(k+1)*nrhs], xi)
			}
		}
	}
	// Back substitution with U.
	for i := n - 1; i >= 0; i-- {
		xi := x[i*nrhs : (i+1)*nrhs]
		for k := i + 1; k < n; k++ {
			if u := f.lu[i*n+k]; u != 0 {
				axpy(-u, x[k*nrhs:(k+1)*nrhs], xi)
			}
		}
		d := f.lu[i*n+i]
		for j := range xi {
			xi[j] /= d
		}
	}
	return x
}

// gaussJordan inverts the row-major n×n matrix a with partial pivoting.
func gaussJordan(a []float64, n int) ([]float64, bool) {
	work := slices.Clone(a)
	inv := make([]float64, n*n)
	for i := 0; i < n; i++ {
		inv[i*n+i] = 1
	}
	tol := pivotTolerance(a, n)

	for k := 0; k < n; k++ {
		p, best := k, math.Abs(work[k*n+k])
		for i := k + 1; i < n; i++ {
			if v := math.Abs(work[i*n+k]); v > best {
				p, best = i, v
			}
		}
		if best <= tol {
			return nil, false
		}
		if p != k {
			for j := 0; j < n; j++ {
				work[k*n+j], work[p*n+j] = work[p*n+j], work[k*n+j]
				inv[k*n+j], inv[p*n+j] = inv[p*n+j], inv[k*n+j]
			}
		}

		d := 1 / work[k*n+k]
		wk, ik := work[k*n:(k+1)*n], inv[k*n:(k+1)*n]
		for j := range wk {
			wk[j] *= d
			ik[j] *= d
		}
		for i := 0; i < n; i++ {
			if i == k {
				continue
			}
			if f := work[i*n+k]; f != 0 {
				axpy(-f, wk, work[i*n:(i+1)*n])
				axpy(-f, ik, inv[i*n:(i+1)*n])
			}
		}
	}
	return inv, true
}

// householderQR factors row-major a (m×n) as Q·R with Q m×m orthogonal and
// R m×n upper triangular.
func householderQR(a []float64, m, n int) (q, r []float64) {
	r = slices.Clone(a)
	q = make([]float64, m*m)
	for i := 0; i < m; i++ {
		q[i*m+i] = 1
	}
	v := make([]float64, m)

	for k := 0; k < min(m-1, n); k++ {
		norm := 0.0
		for i := k; i < m; i++ {
			norm = math.Hypot(norm, r[i*n+k])
		}
		if norm == 0 {
			continue
		}
		alpha := -math.Copysign(norm, r[k*n+k])

		clear(v)
		for i := k; i < m; i++ {
			v[i] = r[i*n+k]
		}
		v[k] -= alpha
		beta := dot(v[k:], v[k:])
		if beta == 0 {
			continue
		}
		tau := 2 / beta

		// R ← H·R on the trailing columns.
		for j := k + 1; j < n; j++ {
			s := 0.0
			for i := k; i < m; i++ {
				s += v[i] * r[i*n+j]
			}
			s *= tau
			for i := k; i < m; i++ {
				r[i*n+j] -= s * v[i]
			}
		}
		r[k*n+k] = alpha
		for i := k + 1; i < m; i++ {
			r[i*n+k] = 0
		}

		// Q ← Q·H.
		for i := 0; i < m; i++ {
			qi := q[i*m : (i+1)*m]
			s := tau * dot(qi[k:], v[k:])
			axpy(-s, v[k:], qi[k:])
		}
	}
	return q, r
}

// cholesky returns lower-triangular L with A = L·Lᵀ, or false when a pivot
// is not positive.
func cholesky(a []float64, n int) ([]float64, bool) {
	l := make([]float64, n*n)
	for j := 0; j < n; j++ {
		lj := l[j*n : j*n+j]
		d := a[j*n+j] - dot(lj, lj)
		if !(d > 0) {
			return nil, false
		}
		ljj := math.Sqrt(d)
		l[j*n+j] = ljj
		for i := j + 1; i < n; i++ {
			l[i*n+j] = (a[i*n+j] - dot(l[i*n:i*n+j], lj)) / ljj
		}
	}
	return l, true
}

// Chol returns lower-triangular L with m = L·Lᵀ.
func (m *Matrix) Chol() (matrix.Matrix, error) {
	if err := matrix.CheckSquare("Chol", m); err != nil {
		return nil, err
	}
	if !matrix.IsSymmetric(m.data, m.rows, matrix.SymmetryTolerance) {
		return nil, fmt.Errorf("Chol: %w: matrix is not symmetric", matrix.ErrNotPositiveDefinite)
	}
	l, ok := cholesky(m.data, m.rows)
	if !ok {
		return nil, fmt.Errorf("Chol: %w", matrix.ErrNotPositiveDefinite)
	}
	return m.backend.wrap(l, m.rows, m.rows), nil
}

// LU returns the permutation P, unit lower-triangular L and upper-triangular
// U with m = P·L·U. Singular matrices factor too; U then has a zero pivot.
func (m *Matrix) LU() (p, l, u matrix.Matrix, err error) {
	if err := matrix.CheckSquare("LU", m); err != nil {
		return nil, nil, nil, err
	}
	n := m.rows
	f := factorLU(m.data, n)

	pm, lm, um := m.backend.alloc(n, n), m.backend.alloc(n, n), m.backend.alloc(n, n)
	for i, src := range f.piv {
		pm.data[src*n+i] = 1
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			switch {
			case j < i:
				lm.data[i*n+j] = f.lu[i*n+j]
			case j == i:
				lm.data[i*n+j] = 1
				um.data[i*n+j] = f.lu[i*n+j]
			default:
				um.data[i*n+j] = f.lu[i*n+j]
			}
		}
	}
	return pm, lm, um, nil
}

// QR returns orthogonal Q (rows×rows) and upper-triangular R (rows×cols)
// with m = Q·R.
func (m *Matrix) QR() (q, r matrix.Matrix, err error) {
	qd, rd := householderQR(m.data, m.rows, m.cols)
	return m.backend.wrap(qd, m.rows, m.rows), m.backend.wrap(rd, m.rows, m.cols), nil
}

// Inv returns the inverse of a square non-singular matrix.
func (m *Matrix) Inv() (matrix.Matrix, error) {
	if err := matrix.CheckSquare("Inv", m); err != nil {
		return nil, err
	}
	inv, ok := gaussJordan(m.data, m.rows)
	if !ok {
		return nil, fmt.Errorf("Inv: %w", matrix.ErrSingular)
	}
	return m.backend.wrap(inv, m.rows, m.rows), nil
}

// PInv returns the Moore-Penrose pseudo-inverse of a full-rank matrix via the
// normal equations. Rank-deficient input fails with ErrSingular.
func (m *Matrix) PInv() (matrix.Matrix, error) {
	r, c := m.rows, m.cols
	at := make([]float64, r*c)
	transpose(at, m.data, r, c)

	var out []float64
	if r >= c {
		// (AᵀA)⁻¹Aᵀ
		g := make([]float64, c*c)
		matmul(g, at, m.data, c, r, c, m.backend.par)
		gi, ok := gaussJordan(g, c)
		if !ok {
			return nil, fmt.Errorf("PInv: %w: columns are linearly dependent", matrix.ErrSingular)
		}
		out = make([]float64, c*r)
		matmul(out, gi, at, c, c, r, m.backend.par)
	} else {
		// Aᵀ(AAᵀ)⁻¹
		g := make([]float64, r*r)
		matmul(g, m.data, at, r, c, r, m.backend.par)
		gi, ok := gaussJordan(g, r)
		if !ok {
			return nil, fmt.Errorf("PInv: %w: rows are linearly dependent", matrix.ErrSingular)
		}
		out = make([]float64, c*r)
		matmul(out, at, gi, c, r, r, m.backend.par)
	}
	return m.backend.wrap(out, c, r), nil
}

// Det returns the determinant of a square matrix.
func (m *Matrix) Det() (float64, error) {
	if err := matrix.CheckSquare("Det", m); err != nil {
		return 0, err
	}
	return factorLU(m.data, m.rows).det(), nil
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
	f := factorLU(m.data, m.rows)
	if f.singular {
		return nil, fmt.Errorf("Solve: %w", matrix.ErrSingular)
	}
	return m.backend.wrap(f.solve(bd.data, bd.cols), m.rows, bd.cols), nil
}

// Factorize computes the LU factors of a square matrix once. The returned
// solver does not see later writes to m.
func (m *Matrix) Factorize() (matrix.Solver, error) {
	if err := matrix.CheckSquare("Factorize", m); err != nil {
		return nil, err
	}
	f := factorLU(m.data, m.rows)
	if f.singular {
		return nil, fmt.Errorf("Factorize: %w", matrix.ErrSingular)
	}
	return &luSolver{backend: m.backend, f: f}, nil
}

var _ matrix.Factorizer = (*Matrix)(nil)

// luSolver reuses one factorization; solve only reads it.
type luSolver struct {
	backend *Backend
	f       *luFactors
}

// Solve returns X with A·X = b for the factored A.
func (s *luSolver) Solve(b matrix.Matrix) (matrix.Matrix, error) {
	bd, ok := b.(*Matrix)
	if !ok || bd == nil {
		return nil, matrix.MismatchError("Solve", s.backend, b)
	}
	if bd.rows != s.f.n {
		return nil, fmt.Errorf("Solve: %w: A is %dx%d, B is %dx%d",
			matrix.ErrDimensionMismatch, s.f.n, s.f.n, bd.rows, bd.cols)
	}
	return s.backend.wrap(s.f.solve(bd.data, bd.cols), s.f.n, bd.cols), nil
}

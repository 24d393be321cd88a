// Package matrix defines the capability interface shared by every dense
// matrix backend, together with the guards that keep backends from mixing.
package matrix

import "fmt"

// NormType selects the norm computed by Matrix.Norm.
type NormType int

// Supported norms.
const (
	// NormOne is the induced 1-norm: the maximum absolute column sum.
	NormOne NormType = iota
	// NormInf is the induced ∞-norm: the maximum absolute row sum.
	NormInf
	// NormFrobenius is the square root of the sum of squared elements.
	NormFrobenius
)

// String returns a human-readable norm name.
func (n NormType) String() string {
	switch n {
	case NormOne:
		return "1"
	case NormInf:
		return "inf"
	case NormFrobenius:
		return "frobenius"
	default:
		return fmt.Sprintf("NormType(%d)", int(n))
	}
}

// Matrix is a two-dimensional float64 matrix owned by a single Backend.
//
// Every binary operation requires both operands to come from the same
// backend; mixing backends fails with ErrBackendMismatch instead of converting.
// Results always own fresh storage, including T and Slice.
//
// Operations a backend cannot provide fail with ErrUnsupported.
type Matrix interface {
	// Backend returns the provider that created this matrix.
	Backend() Backend
	// DType returns the element kind.
	DType() DataType

	Rows() int
	Cols() int

	// Element access.
	At(i, j int) (float64, error)
	Set(i, j int, v float64) error
	AtIndex(k int) (float64, error)   // Row-major linear index.
	SetIndex(k int, v float64) error // Row-major linear index.

	// Typed primitive accessors. They only succeed when DType matches.
	Float32At(i, j int) (float32, error)
	IntAt(i, j int) (int, error)
	Float32AtIndex(k int) (float32, error)
	IntAtIndex(k int) (int, error)
	SetFloat32(i, j int, v float32) error
	SetInt(i, j int, v int) error
	SetFloat32Index(k int, v float32) error
	SetIntIndex(k int, v int) error

	// Arithmetic.
	Add(other Matrix) (Matrix, error)
	Sub(other Matrix) (Matrix, error)
	Mul(other Matrix) (Matrix, error)     // Matrix product.
	MulElem(other Matrix) (Matrix, error) // Element-wise product.
	Mod(other Matrix) (Matrix, error)     // Element-wise floored modulo.
	Neg() Matrix
	AddScalar(v float64) Matrix
	SubScalar(v float64) Matrix
	Scale(v float64) Matrix
	DivScalar(v float64) Matrix

	// Structure.
	T() Matrix
	Row(i int) (Matrix, error)
	Col(j int) (Matrix, error)
	SetRow(i int, row Matrix) error
	SetCol(j int, col Matrix) error
	Diag() Matrix
	Slice(r0, r1, c0, c1 int) (Matrix, error)
	Clone() Matrix

	// Element-wise mapping into a new matrix.
	Apply(fn func(v float64) float64) Matrix
	ApplyIndexed(fn func(i, j int, v float64) float64) Matrix

	// Reductions.
	Sum() (float64, error)
	Max() (float64, error)
	Min() (float64, error)
	Mean() (float64, error)
	Trace() (float64, error)
	Norm(kind NormType) (float64, error)
	ArgMax() (int, error) // Row-major index of the first maximum.
	ArgMin() (int, error) // Row-major index of the first minimum.

	// Decompositions and solvers.
	Chol() (Matrix, error)
	LU() (p, l, u Matrix, err error)
	QR() (q, r Matrix, err error)
	Inv() (Matrix, error)
	PInv() (Matrix, error)
	Det() (float64, error)
	Solve(b Matrix) (Matrix, error)

	fmt.Stringer
}

// Solver solves linear systems against a factorization computed once.
// Solve must be safe for concurrent use.
type Solver interface {
	Solve(b Matrix) (Matrix, error)
}

// Factorizer is implemented by matrices that can factor themselves once and
// then solve for many right-hand sides. Singular matrices fail with ErrSingular.
type Factorizer interface {
	Factorize() (Solver, error)
}

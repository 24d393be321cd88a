package matrix

import (
	"fmt"
	"math"
)

// MismatchError reports that other was not produced by self.
// Adapters call it when the type assertion on the other operand fails.
func MismatchError(op string, self Backend, other Matrix) error {
	otherName := "<nil>"
	if other != nil && other.Backend() != nil {
		otherName = other.Backend().Name()
	}
	return fmt.Errorf("%s: %w (%s vs %s)", op, ErrBackendMismatch, self.Name(), otherName)
}

// Unsupported reports that backend does not implement op.
func Unsupported(backend, op string) error {
	return fmt.Errorf("%s: %w (backend %q)", op, ErrUnsupported, backend)
}

// Float64Only implements the typed primitive accessors of a float64 matrix.
// Each of them fails with ErrTypeMismatch: reading a float64 matrix as
// float32 or int would silently lose precision, so callers have to read with
// At and convert explicitly.
//
// Adapters embed it to satisfy the Float32/Int part of the Matrix interface.
type Float64Only struct{}

func typeLocked(op string, want DataType) error {
	return fmt.Errorf("%s: %w: implicit conversion of %s matrix to %s is disabled, use At and convert explicitly",
		op, ErrTypeMismatch, Float64, want)
}

// Float32At always fails with ErrTypeMismatch.
func (Float64Only) Float32At(_, _ int) (float32, error) { return 0, typeLocked("Float32At", Float32) }

// IntAt always fails with ErrTypeMismatch.
func (Float64Only) IntAt(_, _ int) (int, error) { return 0, typeLocked("IntAt", Int) }

// Float32AtIndex always fails with ErrTypeMismatch.
func (Float64Only) Float32AtIndex(_ int) (float32, error) {
	return 0, typeLocked("Float32AtIndex", Float32)
}

// IntAtIndex always fails with ErrTypeMismatch.
func (Float64Only) IntAtIndex(_ int) (int, error) { return 0, typeLocked("IntAtIndex", Int) }

// SetFloat32 always fails with ErrTypeMismatch.
func (Float64Only) SetFloat32(_, _ int, _ float32) error { return typeLocked("SetFloat32", Float32) }

// SetInt always fails with ErrTypeMismatch.
func (Float64Only) SetInt(_, _ int, _ int) error { return typeLocked("SetInt", Int) }

// SetFloat32Index always fails with ErrTypeMismatch.
func (Float64Only) SetFloat32Index(_ int, _ float32) error {
	return typeLocked("SetFloat32Index", Float32)
}

// SetIntIndex always fails with ErrTypeMismatch.
func (Float64Only) SetIntIndex(_ int, _ int) error { return typeLocked("SetIntIndex", Int) }

// CheckShape validates constructor dimensions. Both must be positive and
// the storage of rows·cols float64 elements must be addressable in bytes.
func CheckShape(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: %dx%d (dimensions must be > 0)", ErrInvalidShape, rows, cols)
	}
	if rows > math.MaxInt/cols || rows*cols > math.MaxInt/Float64.Size() {
		return fmt.Errorf("%w: %dx%d overflows addressable storage", ErrInvalidShape, rows, cols)
	}
	return nil
}

// CheckData validates a row-major data slice for a rows×cols matrix.
func CheckData(data []float64, rows, cols int) error {
	if err := CheckShape(rows, cols); err != nil {
		return err
	}
	if len(data) != rows*cols {
		return fmt.Errorf("%w: %dx%d requires %d elements, got %d",
			ErrInvalidShape, rows, cols, rows*cols, len(data))
	}
	return nil
}

// CheckIndex validates (i, j) against a rows×cols shape.
func CheckIndex(op string, i, j, rows, cols int) error {
	if i < 0 || i >= rows || j < 0 || j >= cols {
		return fmt.Errorf("%s(%d,%d): %w for %dx%d", op, i, j, ErrIndexOutOfRange, rows, cols)
	}
	return nil
}

// CheckLinearIndex validates a row-major linear index against a rows×cols shape.
func CheckLinearIndex(op string, k, rows, cols int) error {
	if k < 0 || k >= rows*cols {
		return fmt.Errorf("%s(%d): %w for %dx%d", op, k, ErrIndexOutOfRange, rows, cols)
	}
	return nil
}

// CheckSameShape validates element-wise operands.
func CheckSameShape(op string, a, b Matrix) error {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return fmt.Errorf("%s: %w: %dx%d vs %dx%d", op, ErrDimensionMismatch, a.Rows(), a.Cols(), b.Rows(), b.Cols())
	}
	return nil
}

// CheckMulShape validates a matrix product a·b.
func CheckMulShape(op string, a, b Matrix) error {
	if a.Cols() != b.Rows() {
		return fmt.Errorf("%s: %w: %dx%d · %dx%d", op, ErrDimensionMismatch, a.Rows(), a.Cols(), b.Rows(), b.Cols())
	}
	return nil
}

// CheckSquare validates that m is square.
func CheckSquare(op string, m Matrix) error {
	if m.Rows() != m.Cols() {
		return fmt.Errorf("%s: %w: %dx%d", op, ErrNotSquare, m.Rows(), m.Cols())
	}
	return nil
}

// CheckSolve validates A·X = B: A square and B with as many rows as A.
func CheckSolve(op string, a, b Matrix) error {
	if err := CheckSquare(op, a); err != nil {
		return err
	}
	if b.Rows() != a.Rows() {
		return fmt.Errorf("%s: %w: A is %dx%d, B is %dx%d", op, ErrDimensionMismatch, a.Rows(), a.Cols(), b.Rows(), b.Cols())
	}
	return nil
}

// CheckSlice validates the half-open window [r0,r1)×[c0,c1).
func CheckSlice(op string, r0, r1, c0, c1, rows, cols int) error {
	if r0 < 0 || c0 < 0 || r1 > rows || c1 > cols || r0 >= r1 || c0 >= c1 {
		return fmt.Errorf("%s[%d:%d,%d:%d]: %w for %dx%d", op, r0, r1, c0, c1, ErrIndexOutOfRange, rows, cols)
	}
	return nil
}

// CheckVector validates a replacement row or column of length n.
// Both orientations (1×n and n×1) are accepted.
func CheckVector(op string, v Matrix, n int) error {
	if v.Rows()*v.Cols() != n || (v.Rows() != 1 && v.Cols() != 1) {
		return fmt.Errorf("%s: %w: expected %d elements, got %dx%d", op, ErrDimensionMismatch, n, v.Rows(), v.Cols())
	}
	return nil
}

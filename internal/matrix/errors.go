package matrix

import "errors"

// Sentinel errors. Call sites wrap them with operation context
// ("Add: matrix: backend mismatch ..."), so match with errors.Is.
var (
	// ErrIndexOutOfRange reports a row, column or linear index outside the matrix.
	ErrIndexOutOfRange = errors.New("matrix: index out of range")

	// ErrBackendMismatch reports a binary operation across two different backends.
	ErrBackendMismatch = errors.New("matrix: operands belong to different backends")

	// ErrTypeMismatch reports a primitive accessor that does not match the element kind.
	ErrTypeMismatch = errors.New("matrix: element type mismatch")

	// ErrUnsupported reports a capability the backend does not provide.
	ErrUnsupported = errors.New("matrix: operation not supported by backend")

	// ErrNoBackendAvailable reports that no live backend exists to serve a default request.
	ErrNoBackendAvailable = errors.New("matrix: no backend available")

	// ErrBackendAbsent is returned by a backend constructor whose engine is not
	// compiled into the binary. Discovery skips such candidates silently.
	ErrBackendAbsent = errors.New("matrix: backend not present in this build")

	// ErrUnknownBackend reports a lookup for a name that is not registered or not live.
	ErrUnknownBackend = errors.New("matrix: unknown backend")

	// ErrDimensionMismatch reports operands with incompatible shapes.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNotSquare reports a non-square matrix where a square one is required.
	ErrNotSquare = errors.New("matrix: matrix is not square")

	// ErrSingular reports a singular (or numerically singular) matrix.
	ErrSingular = errors.New("matrix: matrix is singular")

	// ErrNotPositiveDefinite reports a Cholesky input that is not symmetric positive definite.
	ErrNotPositiveDefinite = errors.New("matrix: matrix is not symmetric positive definite")

	// ErrInvalidShape reports non-positive dimensions or a data slice of the wrong length.
	ErrInvalidShape = errors.New("matrix: invalid shape")
)

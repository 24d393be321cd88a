package ndarray

import "errors"

// Sentinel errors. Call sites wrap them with context; match with errors.Is.
var (
	// ErrRankMismatch reports an index tuple or range list whose length
	// differs from the number of axes.
	ErrRankMismatch = errors.New("ndarray: rank mismatch")

	// ErrIndexOutOfRange reports an index component or linear offset outside
	// its axis, or a range reaching past the array.
	ErrIndexOutOfRange = errors.New("ndarray: index out of range")

	// ErrInvalidRange reports a range with End <= Start.
	ErrInvalidRange = errors.New("ndarray: invalid range")

	// ErrShapeMismatch reports a source array whose extents differ from the
	// destination ranges.
	ErrShapeMismatch = errors.New("ndarray: shape mismatch")

	// ErrInvalidShape reports an empty shape, a non-positive extent or a
	// data slice of the wrong length.
	ErrInvalidShape = errors.New("ndarray: invalid shape")
)

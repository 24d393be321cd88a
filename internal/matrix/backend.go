package matrix

// Backend is a capability provider that creates matrices.
//
// Implementations:
//   - dense: pure Go engine with FMA-aware kernels
//   - gonum: gonum.org/v1/gonum/mat
//   - gomatrix: github.com/skelterjohn/go.matrix (build tag "gomatrix")
//
// Every matrix created by a backend reports it through Matrix.Backend, and
// only matrices of the same backend may be combined.
type Backend interface {
	// Name returns the stable backend identifier used by the registry.
	Name() string

	// Zeros returns a zero-initialized rows×cols matrix.
	Zeros(rows, cols int) (Matrix, error)

	// Eye returns the n×n identity matrix.
	Eye(n int) (Matrix, error)

	// FromSlice copies data (row-major, len == rows*cols) into a new matrix.
	FromSlice(data []float64, rows, cols int) (Matrix, error)
}

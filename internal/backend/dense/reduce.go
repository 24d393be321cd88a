package dense

import (
	"fmt"

	"github.com/born-ml/linalg/internal/matrix"
)

// Sum returns the sum of all elements.
func (m *Matrix) Sum() (float64, error) {
	sum := 0.0
	for _, v := range m.data {
		sum += v
	}
	return sum, nil
}

// Max returns the largest element.
func (m *Matrix) Max() (float64, error) {
	best := m.data[0]
	for _, v := range m.data[1:] {
		best = max(best, v)
	}
	return best, nil
}

// Min returns the smallest element.
func (m *Matrix) Min() (float64, error) {
	best := m.data[0]
	for _, v := range m.data[1:] {
		best = min(best, v)
	}
	return best, nil
}

// ArgMax returns the row-major index of the first largest element.
func (m *Matrix) ArgMax() (int, error) {
	return matrix.ArgMaxOf(m.data), nil
}

// ArgMin returns the row-major index of the first smallest element.
func (m *Matrix) ArgMin() (int, error) {
	return matrix.ArgMinOf(m.data), nil
}

// Mean returns the arithmetic mean of all elements.
func (m *Matrix) Mean() (float64, error) {
	sum, _ := m.Sum()
	return sum / float64(len(m.data)), nil
}

// Trace returns the sum of the main diagonal of a square matrix.
func (m *Matrix) Trace() (float64, error) {
	if err := matrix.CheckSquare("Trace", m); err != nil {
		return 0, err
	}
	sum := 0.0
	for i := 0; i < m.rows; i++ {
		sum += m.data[i*m.cols+i]
	}
	return sum, nil
}

// Norm returns the requested matrix norm.
func (m *Matrix) Norm(kind matrix.NormType) (float64, error) {
	v, err := matrix.NormOf(m.data, m.rows, m.cols, kind)
	if err != nil {
		return 0, fmt.Errorf("%s backend: %w", Name, err)
	}
	return v, nil
}

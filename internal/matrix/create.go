package matrix

import (
	"fmt"
	"math"
)

// Ones returns a rows×cols matrix of ones built by b.
func Ones(b Backend, rows, cols int) (Matrix, error) {
	return Fill(b, rows, cols, func(_, _ int) float64 { return 1 })
}

// Fill returns a rows×cols matrix built by b whose element (i, j) is fn(i, j).
func Fill(b Backend, rows, cols int, fn func(i, j int) float64) (Matrix, error) {
	if err := CheckShape(rows, cols); err != nil {
		return nil, fmt.Errorf("Fill: %w", err)
	}
	data := make([]float64, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			data[i*cols+j] = fn(i, j)
		}
	}
	return b.FromSlice(data, rows, cols)
}

// FromRows builds a matrix from a slice of equally long rows.
func FromRows(b Backend, rows [][]float64) (Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("FromRows: %w: no elements", ErrInvalidShape)
	}
	cols := len(rows[0])
	if err := CheckShape(len(rows), cols); err != nil {
		return nil, fmt.Errorf("FromRows: %w", err)
	}
	data := make([]float64, 0, len(rows)*cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("FromRows: %w: row %d has %d elements, row 0 has %d",
				ErrInvalidShape, i, len(r), cols)
		}
		data = append(data, r...)
	}
	return b.FromSlice(data, len(rows), cols)
}

// Arange returns the 1×n row vector start, start+step, ... of every value
// strictly before stop. Elements are computed as start + k·step so rounding
// does not accumulate.
func Arange(b Backend, start, stop, step float64) (Matrix, error) {
	for _, v := range []float64{start, stop, step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("Arange: %w: non-finite bound", ErrInvalidShape)
		}
	}
	if step == 0 {
		return nil, fmt.Errorf("Arange: %w: zero step", ErrInvalidShape)
	}
	count := math.Ceil((stop - start) / step)
	if count < 1 {
		return nil, fmt.Errorf("Arange: %w: empty range [%g, %g) with step %g", ErrInvalidShape, start, stop, step)
	}
	if count > float64(math.MaxInt/Float64.Size()) {
		return nil, fmt.Errorf("Arange: %w: %g elements", ErrInvalidShape, count)
	}
	n := int(count)
	data := make([]float64, n)
	for k := range data {
		data[k] = start + float64(k)*step
	}
	return b.FromSlice(data, 1, n)
}

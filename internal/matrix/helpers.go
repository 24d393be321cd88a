package matrix

import (
	"fmt"
	"math"
	"strings"
)

// FloorMod returns a mod b with the sign of b (a - b*floor(a/b)).
// FloorMod(a, 0) is NaN.
func FloorMod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

// Elements returns a row-major copy of m's elements read through At.
// It works for any backend and is meant for adapters lacking a bulk export,
// tests and formatting.
func Elements(m Matrix) []float64 {
	r, c := m.Rows(), m.Cols()
	out := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := m.At(i, j)
			if err != nil {
				panic(fmt.Sprintf("matrix: Elements: %v", err)) // in-range by construction
			}
			out[i*c+j] = v
		}
	}
	return out
}

// AllClose reports whether a and b have the same shape and every pair of
// elements satisfies |x-y| <= tol*max(1, |y|). Backends may differ.
func AllClose(a, b Matrix, tol float64) bool {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return false
	}
	x, y := Elements(a), Elements(b)
	for k := range x {
		if math.IsNaN(x[k]) || math.IsNaN(y[k]) {
			return false
		}
		if math.Abs(x[k]-y[k]) > tol*math.Max(1, math.Abs(y[k])) {
			return false
		}
	}
	return true
}

// FormatMatrix renders m one bracketed row per line, e.g. "[1, 2]\n[3, 4]\n".
func FormatMatrix(m Matrix) string {
	r, c := m.Rows(), m.Cols()
	data := Elements(m)

	var sb strings.Builder
	for i := 0; i < r; i++ {
		sb.WriteString("[")
		for j := 0; j < c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", data[i*c+j])
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}

// NormOf computes kind over a row-major buffer. Adapters whose engine lacks
// a given norm fall back to it.
func NormOf(data []float64, rows, cols int, kind NormType) (float64, error) {
	switch kind {
	case NormOne:
		best := 0.0
		for j := 0; j < cols; j++ {
			s := 0.0
			for i := 0; i < rows; i++ {
				s += math.Abs(data[i*cols+j])
			}
			best = math.Max(best, s)
		}
		return best, nil
	case NormInf:
		best := 0.0
		for i := 0; i < rows; i++ {
			s := 0.0
			for _, v := range data[i*cols : (i+1)*cols] {
				s += math.Abs(v)
			}
			best = math.Max(best, s)
		}
		return best, nil
	case NormFrobenius:
		// Scaled sum of squares avoids overflow for large entries.
		scale, ssq := 0.0, 1.0
		for _, v := range data {
			if v == 0 {
				continue
			}
			a := math.Abs(v)
			if scale < a {
				ssq = 1 + ssq*(scale/a)*(scale/a)
				scale = a
			} else {
				ssq += (a / scale) * (a / scale)
			}
		}
		return scale * math.Sqrt(ssq), nil
	default:
		return 0, fmt.Errorf("Norm(%s): %w", kind, ErrUnsupported)
	}
}

// IsSymmetric reports whether the row-major n×n buffer equals its transpose
// within tol relative to the larger magnitude of each mirrored pair.
func IsSymmetric(data []float64, n int, tol float64) bool {
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := data[i*n+j], data[j*n+i]
			if math.Abs(a-b) > tol*math.Max(1, math.Max(math.Abs(a), math.Abs(b))) {
				return false
			}
		}
	}
	return true
}

// SymmetryTolerance is the relative tolerance Chol uses to accept a matrix
// as symmetric.
const SymmetryTolerance = 1e-10

// ArgMaxOf returns the index of the first largest element of data, ignoring
// NaNs. It returns 0 when every element is NaN.
func ArgMaxOf(data []float64) int {
	return argExtremum(data, func(v, best float64) bool { return v > best })
}

// ArgMinOf returns the index of the first smallest element of data, ignoring
// NaNs. It returns 0 when every element is NaN.
func ArgMinOf(data []float64) int {
	return argExtremum(data, func(v, best float64) bool { return v < best })
}

func argExtremum(data []float64, better func(v, best float64) bool) int {
	at := -1
	for k, v := range data {
		if math.IsNaN(v) {
			continue
		}
		if at < 0 || better(v, data[at]) {
			at = k
		}
	}
	return max(at, 0)
}

package dense

import (
	"math"

	"github.com/born-ml/linalg/internal/parallel"
)

// axpy computes y += alpha*x.
func axpy(alpha float64, x, y []float64) {
	y = y[:len(x)]
	if useFMA {
		for i, v := range x {
			y[i] = math.FMA(alpha, v, y[i])
		}
		return
	}
	for i, v := range x {
		y[i] += alpha * v
	}
}

// dot returns x·y.
func dot(x, y []float64) float64 {
	y = y[:len(x)]
	sum := 0.0
	if useFMA {
		for i, v := range x {
			sum = math.FMA(v, y[i], sum)
		}
		return sum
	}
	for i, v := range x {
		sum += v * y[i]
	}
	return sum
}

// matmul computes C = A·B for row-major A (m×k) and B (k×n).
// Rows of C are independent and fan out through cfg; the inner i-k-j order
// streams rows of B.
func matmul(c, a, b []float64, m, k, n int, cfg parallel.Config) {
	parallel.For(m, func(i int) {
		ci := c[i*n : (i+1)*n]
		clear(ci)
		ai := a[i*k : (i+1)*k]
		for p, aip := range ai {
			if aip == 0 {
				continue
			}
			axpy(aip, b[p*n:(p+1)*n], ci)
		}
	}, cfg)
}

// transpose writes the transpose of row-major src (rows×cols) into dst.
func transpose(dst, src []float64, rows, cols int) {
	for i := 0; i < rows; i++ {
		row := src[i*cols : (i+1)*cols]
		for j, v := range row {
			dst[j*rows+i] = v
		}
	}
}

// zip applies f element-wise to a and b, writing into dst.
func zip(dst, a, b []float64, f func(x, y float64) float64) {
	b = b[:len(a)]
	dst = dst[:len(a)]
	for i, v := range a {
		dst[i] = f(v, b[i])
	}
}

// mapTo applies f to every element of src, writing into dst.
func mapTo(dst, src []float64, f func(x float64) float64) {
	dst = dst[:len(src)]
	for i, v := range src {
		dst[i] = f(v)
	}
}

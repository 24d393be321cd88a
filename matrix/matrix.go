// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package matrix

import (
	"github.com/born-ml/linalg/internal/algo"
	"github.com/born-ml/linalg/internal/matrix"
	"github.com/born-ml/linalg/internal/registry"
)

// Matrix is a two-dimensional float64 matrix owned by a single Backend.
type Matrix = matrix.Matrix

// Backend creates matrices.
type Backend = matrix.Backend

// Solver solves systems against a matrix factorized once.
type Solver = matrix.Solver

// Factorizer is implemented by matrices that can factor themselves for
// repeated solves.
type Factorizer = matrix.Factorizer

// DataType is the element kind of a matrix.
type DataType = matrix.DataType

// Element kinds.
const (
	Float64 DataType = matrix.Float64
	Float32 DataType = matrix.Float32
	Int     DataType = matrix.Int
)

// NormType selects the norm computed by Matrix.Norm.
type NormType = matrix.NormType

// Supported norms.
const (
	NormOne       NormType = matrix.NormOne
	NormInf       NormType = matrix.NormInf
	NormFrobenius NormType = matrix.NormFrobenius
)

// Errors returned by matrices, backends and discovery. Match with errors.Is.
var (
	ErrIndexOutOfRange     = matrix.ErrIndexOutOfRange
	ErrBackendMismatch     = matrix.ErrBackendMismatch
	ErrTypeMismatch        = matrix.ErrTypeMismatch
	ErrUnsupported         = matrix.ErrUnsupported
	ErrNoBackendAvailable  = matrix.ErrNoBackendAvailable
	ErrUnknownBackend      = matrix.ErrUnknownBackend
	ErrDimensionMismatch   = matrix.ErrDimensionMismatch
	ErrNotSquare           = matrix.ErrNotSquare
	ErrSingular            = matrix.ErrSingular
	ErrNotPositiveDefinite = matrix.ErrNotPositiveDefinite
	ErrInvalidShape        = matrix.ErrInvalidShape
)

// EnvBackend is the environment variable naming the preferred default backend.
const EnvBackend = registry.EnvBackend

// Default returns the default backend of the process-wide registry.
func Default() (Backend, error) {
	return registry.Default()
}

// DefaultFor returns the default backend among those whose matrices hold dt.
// It fails with ErrNoBackendAvailable when no live backend stores dt.
func DefaultFor(dt DataType) (Backend, error) {
	return registry.Global().DefaultFor(dt)
}

// Backends returns the names of the live backends in preference order.
func Backends() []string {
	return registry.Global().Names()
}

// Use returns the live backend called name.
//
// Example:
//
//	b, err := matrix.Use("dense")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	m, _ := b.Eye(3)
func Use(name string) (Backend, error) {
	return registry.Global().Lookup(name)
}

// Zeros returns a rows×cols zero matrix on the default backend.
func Zeros(rows, cols int) (Matrix, error) {
	b, err := Default()
	if err != nil {
		return nil, err
	}
	return b.Zeros(rows, cols)
}

// ZerosOf returns a rows×cols zero matrix of element kind dt.
func ZerosOf(dt DataType, rows, cols int) (Matrix, error) {
	b, err := DefaultFor(dt)
	if err != nil {
		return nil, err
	}
	return b.Zeros(rows, cols)
}

// Ones returns a rows×cols matrix of ones on the default backend.
func Ones(rows, cols int) (Matrix, error) {
	b, err := Default()
	if err != nil {
		return nil, err
	}
	return matrix.Ones(b, rows, cols)
}

// Fill returns a rows×cols matrix on the default backend whose element
// (i, j) is fn(i, j).
func Fill(rows, cols int, fn func(i, j int) float64) (Matrix, error) {
	b, err := Default()
	if err != nil {
		return nil, err
	}
	return matrix.Fill(b, rows, cols, fn)
}

// FromRows copies a slice of equal-length rows into a matrix on the default
// backend. Jagged input fails with ErrInvalidShape.
func FromRows(rows [][]float64) (Matrix, error) {
	b, err := Default()
	if err != nil {
		return nil, err
	}
	return matrix.FromRows(b, rows)
}

// Arange returns the 1×n row start, start+step, ... stopping before stop.
func Arange(start, stop, step float64) (Matrix, error) {
	b, err := Default()
	if err != nil {
		return nil, err
	}
	return matrix.Arange(b, start, stop, step)
}

// Eye returns the n×n identity on the default backend.
func Eye(n int) (Matrix, error) {
	b, err := Default()
	if err != nil {
		return nil, err
	}
	return b.Eye(n)
}

// FromSlice copies row-major data into a rows×cols matrix on the default backend.
func FromSlice(data []float64, rows, cols int) (Matrix, error) {
	b, err := Default()
	if err != nil {
		return nil, err
	}
	return b.FromSlice(data, rows, cols)
}

// Expm returns the matrix exponential of a square matrix, computed by the
// backend of a.
func Expm(a Matrix) (Matrix, error) {
	return algo.Expm(a)
}

// AllClose reports whether a and b have the same shape and every pair of
// elements differs by at most tol, relative to max(1, |b|).
func AllClose(a, b Matrix, tol float64) bool {
	return matrix.AllClose(a, b, tol)
}

// Format renders m one row per line.
func Format(m Matrix) string {
	return matrix.FormatMatrix(m)
}

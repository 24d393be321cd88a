// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ndarray provides a generic row-major N-dimensional array.
//
// Example:
//
//	a, _ := ndarray.FromSlice([]int{1, 2, 3, 4, 5, 6}, 2, 3)
//	sub, _ := a.GetRange(ndarray.Range{Start: 0, End: 2}, ndarray.Range{Start: 1, End: 3})
//	// sub holds [[2, 3], [5, 6]] and does not share storage with a.
package ndarray

import (
	"github.com/born-ml/linalg/internal/ndarray"
)

// Element is the set of element types an Array can hold.
type Element = ndarray.Element

// Array is an N-dimensional array over one flat row-major buffer.
type Array[T Element] = ndarray.Array[T]

// Shape is the ordered list of per-axis extents.
type Shape = ndarray.Shape

// Range selects the half-open interval [Start, End) of one axis.
type Range = ndarray.Range

// Errors. Match with errors.Is.
var (
	ErrRankMismatch    = ndarray.ErrRankMismatch
	ErrIndexOutOfRange = ndarray.ErrIndexOutOfRange
	ErrInvalidRange    = ndarray.ErrInvalidRange
	ErrShapeMismatch   = ndarray.ErrShapeMismatch
	ErrInvalidShape    = ndarray.ErrInvalidShape
)

// New returns a zero-filled array with the given extents.
func New[T Element](shape ...int) (*Array[T], error) {
	return ndarray.New[T](shape...)
}

// FromSlice returns an array holding a copy of data in row-major order.
func FromSlice[T Element](data []T, shape ...int) (*Array[T], error) {
	return ndarray.FromSlice(data, shape...)
}

// Generate returns an array filled with init(idx) for every multi-index.
func Generate[T Element](init func(idx []int) T, shape ...int) (*Array[T], error) {
	return ndarray.Generate(init, shape...)
}

// FlattenIndex maps a multi-index to its row-major linear offset.
func FlattenIndex(indices []int, extents Shape) (int, error) {
	return ndarray.FlattenIndex(indices, extents)
}

// UnflattenIndex maps a row-major linear offset to its multi-index.
func UnflattenIndex(linear int, extents Shape) ([]int, error) {
	return ndarray.UnflattenIndex(linear, extents)
}

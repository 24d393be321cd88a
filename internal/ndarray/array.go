// Package ndarray provides a generic row-major N-dimensional array with
// multi-index access and eager range copies.
package ndarray

import (
	"fmt"
)

// Element is the set of element types an Array can hold.
type Element interface {
	~float32 | ~float64 | ~int | ~int32 | ~int64
}

// Array is an N-dimensional array over one flat row-major buffer that it
// owns exclusively.
type Array[T Element] struct {
	shape   Shape
	strides []int
	data    []T
}

// New returns a zero-filled array with the given extents.
func New[T Element](shape ...int) (*Array[T], error) {
	s := Shape(shape).Clone()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("New: %w", err)
	}
	return newArray(s, make([]T, s.NumElements())), nil
}

// FromSlice returns an array holding a copy of data, read in row-major order.
func FromSlice[T Element](data []T, shape ...int) (*Array[T], error) {
	s := Shape(shape).Clone()
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("FromSlice: %w", err)
	}
	if len(data) != s.NumElements() {
		return nil, fmt.Errorf("FromSlice: %w: %d values for shape %v", ErrInvalidShape, len(data), []int(s))
	}
	return newArray(s, append([]T(nil), data...)), nil
}

// Generate returns an array whose elements are init(idx) for every
// multi-index. The slice passed to init is reused between calls.
func Generate[T Element](init func(idx []int) T, shape ...int) (*Array[T], error) {
	a, err := New[T](shape...)
	if err != nil {
		return nil, fmt.Errorf("Generate: %w", err)
	}
	idx := make([]int, len(a.shape))
	for k := range a.data {
		a.unflatten(idx, k)
		a.data[k] = init(idx)
	}
	return a, nil
}

func newArray[T Element](s Shape, data []T) *Array[T] {
	return &Array[T]{shape: s, strides: s.Strides(), data: data}
}

// unflatten writes the multi-index of a valid offset k into dst.
func (a *Array[T]) unflatten(dst []int, k int) {
	for axis, stride := range a.strides {
		dst[axis] = k / stride
		k %= stride
	}
}

// Shape returns a copy of the extents.
func (a *Array[T]) Shape() Shape { return a.shape.Clone() }

// Rank returns the number of axes.
func (a *Array[T]) Rank() int { return len(a.shape) }

// Len returns the number of elements.
func (a *Array[T]) Len() int { return len(a.data) }

// Data returns a copy of the row-major buffer.
func (a *Array[T]) Data() []T { return append([]T(nil), a.data...) }

// Copy returns an independent copy of the array.
func (a *Array[T]) Copy() *Array[T] {
	return newArray(a.shape.Clone(), a.Data())
}

// At returns the element at the multi-index idx.
func (a *Array[T]) At(idx ...int) (T, error) {
	k, err := flatten(idx, a.shape)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("At: %w", err)
	}
	return a.data[k], nil
}

// Set stores v at the multi-index idx.
func (a *Array[T]) Set(v T, idx ...int) error {
	k, err := flatten(idx, a.shape)
	if err != nil {
		return fmt.Errorf("Set: %w", err)
	}
	a.data[k] = v
	return nil
}

// Apply replaces every element x with fn(x).
func (a *Array[T]) Apply(fn func(T) T) {
	for k, x := range a.data {
		a.data[k] = fn(x)
	}
}

// ApplyIndexed replaces every element x at linear offset k with fn(k, x).
func (a *Array[T]) ApplyIndexed(fn func(k int, x T) T) {
	for k, x := range a.data {
		a.data[k] = fn(k, x)
	}
}

// Range selects the half-open interval [Start, End) of one axis.
type Range struct {
	Start, End int
}

// Len returns the number of positions in the range.
func (r Range) Len() int { return r.End - r.Start }

// checkRanges validates one range per axis against the array's extents.
func (a *Array[T]) checkRanges(op string, ranges []Range) error {
	if len(ranges) != len(a.shape) {
		return fmt.Errorf("%s: %w: %d ranges for %d axes", op, ErrRankMismatch, len(ranges), len(a.shape))
	}
	for axis, r := range ranges {
		if r.End <= r.Start {
			return fmt.Errorf("%s: %w: [%d, %d) on axis %d", op, ErrInvalidRange, r.Start, r.End, axis)
		}
		if r.Start < 0 || r.End > a.shape[axis] {
			return fmt.Errorf("%s: %w: [%d, %d) on axis %d with extent %d",
				op, ErrIndexOutOfRange, r.Start, r.End, axis, a.shape[axis])
		}
	}
	return nil
}

// GetRange returns a new array holding the elements selected by one range
// per axis. The result has extent End-Start on each axis and does not share
// storage with a.
func (a *Array[T]) GetRange(ranges ...Range) (*Array[T], error) {
	if err := a.checkRanges("GetRange", ranges); err != nil {
		return nil, err
	}
	s := make(Shape, len(ranges))
	for axis, r := range ranges {
		s[axis] = r.Len()
	}
	out := newArray(s, make([]T, s.NumElements()))

	idx := make([]int, len(s))
	for k := range out.data {
		out.unflatten(idx, k)
		src := 0
		for axis, i := range idx {
			src += (i + ranges[axis].Start) * a.strides[axis]
		}
		out.data[k] = a.data[src]
	}
	return out, nil
}

// SetRange copies src into the region of a selected by one range per axis.
// The extent of every range must equal the extent of src on that axis.
func (a *Array[T]) SetRange(src *Array[T], ranges ...Range) error {
	if err := a.checkRanges("SetRange", ranges); err != nil {
		return err
	}
	if len(src.shape) != len(a.shape) {
		return fmt.Errorf("SetRange: %w: source rank %d, destination rank %d", ErrRankMismatch, len(src.shape), len(a.shape))
	}
	for axis, r := range ranges {
		if r.Len() != src.shape[axis] {
			return fmt.Errorf("SetRange: %w: range [%d, %d) on axis %d for source extent %d",
				ErrShapeMismatch, r.Start, r.End, axis, src.shape[axis])
		}
	}

	idx := make([]int, len(src.shape))
	for k, v := range src.data {
		src.unflatten(idx, k)
		dst := 0
		for axis, i := range idx {
			dst += (i + ranges[axis].Start) * a.strides[axis]
		}
		a.data[dst] = v
	}
	return nil
}

// String formats the array as its shape followed by the flat buffer.
func (a *Array[T]) String() string {
	return fmt.Sprintf("Array%v%v", []int(a.shape), a.data)
}

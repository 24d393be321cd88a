package ndarray

import (
	"fmt"
	"math"
)

// Shape is the ordered list of per-axis extents.
type Shape []int

// maxElementSize is the byte size of the widest Element type.
const maxElementSize = 8

// NumElements returns the product of the extents. It is only meaningful for
// shapes that pass Validate.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that the shape has at least one axis, that all extents are
// positive and that the storage of NumElements elements is addressable.
func (s Shape) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: no axes", ErrInvalidShape)
	}
	n := 1
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("%w: extent %d at axis %d (must be > 0)", ErrInvalidShape, dim, i)
		}
		if n > math.MaxInt/maxElementSize/dim {
			return fmt.Errorf("%w: shape %v overflows addressable storage", ErrInvalidShape, []int(s))
		}
		n *= dim
	}
	return nil
}

// Equal reports whether both shapes have the same extents.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	return append(Shape(nil), s...)
}

// Strides returns the row-major strides: stride[i] is the product of all
// extents after axis i.
func (s Shape) Strides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}
	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// FlattenIndex maps a multi-index to its row-major linear offset, walking
// axes from last to first with a running stride.
func FlattenIndex(indices []int, extents Shape) (int, error) {
	if err := extents.Validate(); err != nil {
		return 0, err
	}
	return flatten(indices, extents)
}

// flatten is FlattenIndex for extents that already passed Validate.
func flatten(indices []int, extents Shape) (int, error) {
	if len(indices) != len(extents) {
		return 0, fmt.Errorf("%w: %d indices for %d axes", ErrRankMismatch, len(indices), len(extents))
	}
	offset, stride := 0, 1
	for axis := len(extents) - 1; axis >= 0; axis-- {
		i := indices[axis]
		if i < 0 || i >= extents[axis] {
			return 0, fmt.Errorf("%w: index %d on axis %d with extent %d", ErrIndexOutOfRange, i, axis, extents[axis])
		}
		offset += i * stride
		stride *= extents[axis]
	}
	return offset, nil
}

// UnflattenIndex maps a row-major linear offset back to its multi-index.
func UnflattenIndex(linear int, extents Shape) ([]int, error) {
	if err := extents.Validate(); err != nil {
		return nil, err
	}
	idx := make([]int, len(extents))
	if err := unflattenInto(idx, linear, extents); err != nil {
		return nil, err
	}
	return idx, nil
}

func unflattenInto(dst []int, linear int, extents Shape) error {
	if n := extents.NumElements(); linear < 0 || linear >= n {
		return fmt.Errorf("%w: offset %d outside [0, %d)", ErrIndexOutOfRange, linear, n)
	}
	for axis := len(extents) - 1; axis >= 0; axis-- {
		dst[axis] = linear % extents[axis]
		linear /= extents[axis]
	}
	return nil
}

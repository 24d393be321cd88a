package matrix

// DataType is the element kind of a matrix.
//
// The set is closed: every backend stores one of these kinds, and the typed
// primitive accessors on Matrix only succeed for the matching kind.
type DataType int

// Supported element kinds.
const (
	Float64 DataType = iota
	Float32
	Int
)

// Size returns the byte size of one element.
func (dt DataType) Size() int {
	switch dt {
	case Float64:
		return 8
	case Float32:
		return 4
	case Int:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float64:
		return "float64"
	case Float32:
		return "float32"
	case Int:
		return "int"
	default:
		return "unknown"
	}
}

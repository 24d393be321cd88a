//go:build !gomatrix

package gomatrix

import (
	"fmt"

	"github.com/born-ml/linalg/internal/matrix"
)

// Available reports whether the engine is compiled into this binary.
const Available = false

// New reports that the engine was not compiled in.
func New() (matrix.Backend, error) {
	return nil, fmt.Errorf("%s: %w (rebuild with -tags gomatrix)", Name, matrix.ErrBackendAbsent)
}

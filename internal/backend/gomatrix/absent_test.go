//go:build !gomatrix

package gomatrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/linalg/internal/matrix"
)

func TestNew_Absent(t *testing.T) {
	b, err := New()
	require.ErrorIs(t, err, matrix.ErrBackendAbsent)
	assert.Nil(t, b)
	assert.False(t, Available)
	assert.Contains(t, err.Error(), "-tags gomatrix")
}

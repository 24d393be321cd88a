//go:build gomatrix

package gomatrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/linalg/internal/matrix"
	"github.com/born-ml/linalg/internal/matrix/matrixtest"
)

func TestConformance(t *testing.T) {
	b, err := New()
	require.NoError(t, err)
	matrixtest.Run(t, b, matrixtest.Capabilities{})
}

func TestNew_Available(t *testing.T) {
	b, err := New()
	require.NoError(t, err)
	assert.True(t, Available)
	assert.Equal(t, Name, b.Name())
}

func TestUnsupported(t *testing.T) {
	b, err := New()
	require.NoError(t, err)
	m := matrixtest.New(t, b, []float64{1, 2}, []float64{3, 4})

	_, err = m.Mean()
	require.ErrorIs(t, err, matrix.ErrUnsupported)
	_, _, _, err = m.LU()
	require.ErrorIs(t, err, matrix.ErrUnsupported)
	_, err = m.PInv()
	require.ErrorIs(t, err, matrix.ErrUnsupported)
}

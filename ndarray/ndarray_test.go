// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package ndarray_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/linalg/ndarray"
)

func TestGetRange(t *testing.T) {
	a, err := ndarray.FromSlice([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)

	sub, err := a.GetRange(ndarray.Range{Start: 0, End: 2}, ndarray.Range{Start: 1, End: 3})
	require.NoError(t, err)
	assert.Equal(t, ndarray.Shape{2, 2}, sub.Shape())
	assert.Equal(t, []float64{2, 3, 5, 6}, sub.Data())

	_, err = a.GetRange(ndarray.Range{Start: 0, End: 2})
	require.ErrorIs(t, err, ndarray.ErrRankMismatch)
}

func TestIndexHelpers(t *testing.T) {
	idx, err := ndarray.UnflattenIndex(5, ndarray.Shape{2, 3})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, idx)

	k, err := ndarray.FlattenIndex(idx, ndarray.Shape{2, 3})
	require.NoError(t, err)
	assert.Equal(t, 5, k)

	g, err := ndarray.Generate(func(idx []int) int64 { return int64(idx[0] * idx[1]) }, 3, 3)
	require.NoError(t, err)
	v, err := g.At(2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(4), v)

	_, err = ndarray.New[int32](0)
	require.ErrorIs(t, err, ndarray.ErrInvalidShape)
}

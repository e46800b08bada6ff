package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatIndexOrdersByDistance(t *testing.T) {
	ix := NewFlatIndex(2)
	require.NoError(t, ix.Add([][]float32{
		{0, 0}, // idx 0
		{3, 4}, // idx 1, squared distance 25 from origin
		{1, 0}, // idx 2, squared distance 1 from origin
	}))

	distances, indices, err := ix.Search([]float32{0, 0}, 3)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2, 1}, indices)
	assert.Equal(t, []float32{0, 1, 25}, distances)
}

func TestFlatIndexPadsWithSentinel(t *testing.T) {
	ix := NewFlatIndex(2)
	require.NoError(t, ix.Add([][]float32{{1, 1}}))

	distances, indices, err := ix.Search([]float32{0, 0}, 4)
	require.NoError(t, err)

	require.Len(t, distances, 4)
	assert.Equal(t, 0, indices[0])
	for i := 1; i < 4; i++ {
		assert.Equal(t, float32(-1), distances[i])
		assert.Equal(t, -1, indices[i])
	}
}

func TestFlatIndexRejectsMismatchedWidths(t *testing.T) {
	ix := NewFlatIndex(3)

	assert.Error(t, ix.Add([][]float32{{1, 2}}))

	_, _, err := ix.Search([]float32{1, 2}, 1)
	assert.Error(t, err)

	_, _, err = ix.Search([]float32{1, 2, 3}, 0)
	assert.Error(t, err)
}

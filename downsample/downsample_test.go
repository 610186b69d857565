package downsample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(v int64) *int64 { return &v }

func TestSampleCountAndOrder(t *testing.T) {
	weights := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	idxs, err := Sample(weights, Options{N: 4, Seed: seed(42)})
	require.NoError(t, err)
	assert.Len(t, idxs, 4)
	assert.True(t, sortedAscending(idxs))

	unique := map[int]bool{}
	for _, i := range idxs {
		unique[i] = true
	}
	assert.Len(t, unique, 4)
}

func TestSampleReproducibleWithSeed(t *testing.T) {
	weights := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	a, err := Sample(weights, Options{N: 5, Seed: seed(7)})
	require.NoError(t, err)
	b, err := Sample(weights, Options{N: 5, Seed: seed(7)})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSampleNaiveIgnoresWeights(t *testing.T) {
	weights := []float64{1000, 1, 1, 1, 1}
	idxs, err := Sample(weights, Options{N: 5, Naive: true, Seed: seed(1)})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, idxs)
}

func TestSampleRejectsOutOfRangeN(t *testing.T) {
	weights := []float64{1, 2, 3}
	_, err := Sample(weights, Options{N: 4, Seed: seed(1)})
	require.Error(t, err)

	_, err = Sample(weights, Options{N: -1, Seed: seed(1)})
	require.Error(t, err)
}

func TestSampleZero(t *testing.T) {
	weights := []float64{1, 2, 3}
	idxs, err := Sample(weights, Options{N: 0, Seed: seed(1)})
	require.NoError(t, err)
	assert.Empty(t, idxs)
}

func sortedAscending(idxs []int) bool {
	for i := 1; i < len(idxs); i++ {
		if idxs[i] < idxs[i-1] {
			return false
		}
	}
	return true
}

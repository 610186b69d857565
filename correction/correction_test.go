package correction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownMethodRejected(t *testing.T) {
	_, _, err := Correct("nonsense", []float64{0.01}, 0.05)
	require.Error(t, err)
}

func TestBonferroniClampsAtOne(t *testing.T) {
	rejected, corrected, err := Correct(Bonferroni, []float64{0.5, 0.5, 0.5}, 0.05)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1}, corrected)
	assert.Equal(t, []bool{false, false, false}, rejected)
}

func TestBonferroniSimple(t *testing.T) {
	rejected, corrected, err := Correct(Bonferroni, []float64{0.01, 0.04}, 0.05)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.02, 0.08}, corrected, 1e-9)
	assert.Equal(t, []bool{true, false}, rejected)
}

func TestHolmMonotone(t *testing.T) {
	p := []float64{0.01, 0.02, 0.03, 0.04}
	_, corrected, err := Correct(Holm, p, 0.05)
	require.NoError(t, err)
	idx := rankedIndices(p)
	for i := 1; i < len(idx); i++ {
		assert.GreaterOrEqual(t, corrected[idx[i]], corrected[idx[i-1]])
	}
}

func TestHochbergMonotone(t *testing.T) {
	p := []float64{0.01, 0.02, 0.03, 0.04}
	_, corrected, err := Correct(Hochberg, p, 0.05)
	require.NoError(t, err)
	idx := rankedIndices(p)
	for i := 1; i < len(idx); i++ {
		assert.GreaterOrEqual(t, corrected[idx[i]], corrected[idx[i-1]])
	}
}

func TestBHLessStringentThanBonferroni(t *testing.T) {
	p := []float64{0.001, 0.002, 0.01, 0.5, 0.8}
	_, bonf, err := Correct(Bonferroni, p, 0.05)
	require.NoError(t, err)
	_, bh, err := Correct(BH, p, 0.05)
	require.NoError(t, err)
	for i := range p {
		assert.LessOrEqual(t, bh[i], bonf[i])
	}
}

func TestBYMoreStringentThanBH(t *testing.T) {
	p := []float64{0.001, 0.002, 0.01, 0.5, 0.8}
	_, bh, err := Correct(BH, p, 0.05)
	require.NoError(t, err)
	_, by, err := Correct(BY, p, 0.05)
	require.NoError(t, err)
	for i := range p {
		assert.GreaterOrEqual(t, by[i], bh[i])
	}
}

func TestSidakBoundedByBonferroni(t *testing.T) {
	p := []float64{0.01, 0.02, 0.03}
	_, bonf, err := Correct(Bonferroni, p, 0.05)
	require.NoError(t, err)
	_, sid, err := Correct(Sidak, p, 0.05)
	require.NoError(t, err)
	for i := range p {
		assert.LessOrEqual(t, sid[i], bonf[i])
	}
}

func TestAlphaOutOfRange(t *testing.T) {
	_, _, err := Correct(Bonferroni, []float64{0.1}, 1.5)
	require.Error(t, err)
}

package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateStochasticKSeries_Extremes(t *testing.T) {
	highs := []float64{12, 13, 14, 15}
	lows := []float64{8, 9, 10, 11}

	// Close at the window high.
	closesHigh := []float64{10, 11, 12, 15}
	k, err := CalculateStochasticKSeries(highs, lows, closesHigh, 3)
	require.NoError(t, err)
	last := k[len(k)-1]
	require.True(t, last.OK)
	assert.InDelta(t, 100.0, last.V, 1e-9)

	// Close at the window low.
	closesLow := []float64{10, 11, 12, 9}
	k, err = CalculateStochasticKSeries(highs, lows, closesLow, 3)
	require.NoError(t, err)
	last = k[len(k)-1]
	require.True(t, last.OK)
	assert.InDelta(t, 0.0, last.V, 1e-9)
}

func TestCalculateStochasticKSeries_FlatRangeUndefined(t *testing.T) {
	highs := []float64{10, 10, 10, 10}
	lows := []float64{10, 10, 10, 10}
	closes := []float64{10, 10, 10, 10}
	k, err := CalculateStochasticKSeries(highs, lows, closes, 3)
	require.NoError(t, err)
	for i, v := range k {
		assert.False(t, v.OK, "flat range at %d must be undefined, not zero", i)
	}
}

func TestCalculateStochasticKSeries_BoundsAndWarmUp(t *testing.T) {
	highs := []float64{11, 12, 13, 12, 14, 13, 15}
	lows := []float64{9, 10, 11, 10, 12, 11, 13}
	closes := []float64{10, 11, 12, 11, 13, 12, 14}
	k, err := CalculateStochasticKSeries(highs, lows, closes, 4)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		assert.False(t, k[i].OK)
	}
	for i := 3; i < len(closes); i++ {
		require.True(t, k[i].OK)
		assert.GreaterOrEqual(t, k[i].V, 0.0)
		assert.LessOrEqual(t, k[i].V, 100.0)
	}
}

func TestCalculateStochasticKSeries_LengthMismatch(t *testing.T) {
	_, err := CalculateStochasticKSeries([]float64{1, 2}, []float64{1}, []float64{1, 2}, 2)
	assert.Error(t, err)
}

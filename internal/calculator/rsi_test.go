package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateRSISeries_WarmUp(t *testing.T) {
	closes := []float64{10, 11, 12, 13, 14, 15}
	rsi, err := CalculateRSISeries(closes, 3)
	require.NoError(t, err)
	require.Len(t, rsi, len(closes))

	for i := 0; i < 3; i++ {
		assert.False(t, rsi[i].OK, "entry %d should be undefined during warm-up", i)
	}
	for i := 3; i < len(closes); i++ {
		assert.True(t, rsi[i].OK, "entry %d should be defined", i)
	}
}

func TestCalculateRSISeries_MonotonicExtremes(t *testing.T) {
	up := []float64{10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}
	down := []float64{20, 19, 18, 17, 16, 15, 14, 13, 12, 11, 10}

	rsiUp, err := CalculateRSISeries(up, 5)
	require.NoError(t, err)
	last := rsiUp[len(rsiUp)-1]
	require.True(t, last.OK)
	assert.Equal(t, 100.0, last.V, "all gains must saturate to 100")

	rsiDown, err := CalculateRSISeries(down, 5)
	require.NoError(t, err)
	last = rsiDown[len(rsiDown)-1]
	require.True(t, last.OK)
	assert.Equal(t, 0.0, last.V, "all losses must drive RSI to 0")
}

func TestCalculateRSISeries_KnownValues(t *testing.T) {
	// window 2 over 1,2,3,2: at index 2 losses are zero (saturate),
	// at index 3 one gain and one loss of equal size give RSI 50.
	closes := []float64{1, 2, 3, 2}
	rsi, err := CalculateRSISeries(closes, 2)
	require.NoError(t, err)

	require.True(t, rsi[2].OK)
	assert.Equal(t, 100.0, rsi[2].V)
	require.True(t, rsi[3].OK)
	assert.InDelta(t, 50.0, rsi[3].V, 1e-9)
}

func TestCalculateRSISeries_Bounds(t *testing.T) {
	closes := []float64{50, 53, 49, 51, 48, 52, 55, 50, 47, 53, 56, 51, 49, 54, 52}
	rsi, err := CalculateRSISeries(closes, 4)
	require.NoError(t, err)
	for i, v := range rsi {
		if !v.OK {
			continue
		}
		assert.GreaterOrEqual(t, v.V, 0.0, "entry %d below 0", i)
		assert.LessOrEqual(t, v.V, 100.0, "entry %d above 100", i)
	}
}

func TestCalculateRSISeries_ShortSeries(t *testing.T) {
	rsi, err := CalculateRSISeries([]float64{10, 11}, 14)
	require.NoError(t, err)
	for _, v := range rsi {
		assert.False(t, v.OK)
	}

	_, err = CalculateRSISeries([]float64{10, 11}, 0)
	assert.Error(t, err)
}

package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateEMASeries_SeededWithMean(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6}
	ema, err := CalculateEMASeries(values, 3)
	require.NoError(t, err)

	assert.False(t, ema[0].OK)
	assert.False(t, ema[1].OK)
	require.True(t, ema[2].OK)
	assert.InDelta(t, 2.0, ema[2].V, 1e-9, "seed must be the mean of the first span")

	// alpha = 2/(3+1) = 0.5, so the EMA of a linear ramp lags by one:
	// 3, 4, 5 at indexes 3, 4, 5.
	assert.InDelta(t, 3.0, ema[3].V, 1e-9)
	assert.InDelta(t, 4.0, ema[4].V, 1e-9)
	assert.InDelta(t, 5.0, ema[5].V, 1e-9)
}

func TestCalculateMACDSeries_ConstantSeries(t *testing.T) {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 42.0
	}
	macd, signal, err := CalculateMACDSeries(closes, 12, 26, 9)
	require.NoError(t, err)
	require.Len(t, macd, 60)
	require.Len(t, signal, 60)

	// MACD defined from the slow warm-up, signal 8 days later.
	assert.False(t, macd[24].OK)
	assert.True(t, macd[25].OK)
	assert.False(t, signal[32].OK)
	assert.True(t, signal[33].OK)

	for i := range closes {
		if macd[i].OK {
			assert.InDelta(t, 0.0, macd[i].V, 1e-12)
		}
		if signal[i].OK {
			assert.InDelta(t, 0.0, signal[i].V, 1e-12)
		}
	}
}

func TestCalculateMACDSeries_Validation(t *testing.T) {
	closes := []float64{1, 2, 3}
	_, _, err := CalculateMACDSeries(closes, 26, 12, 9)
	assert.Error(t, err, "fast >= slow must be rejected")

	_, _, err = CalculateMACDSeries(closes, 0, 26, 9)
	assert.Error(t, err)

	// Too short for any warm-up: everything undefined, no error.
	macd, signal, err := CalculateMACDSeries(closes, 12, 26, 9)
	require.NoError(t, err)
	for i := range closes {
		assert.False(t, macd[i].OK)
		assert.False(t, signal[i].OK)
	}
}

func TestCalculateMACDSeries_RisingTrendPositive(t *testing.T) {
	closes := make([]float64, 80)
	price := 100.0
	for i := range closes {
		closes[i] = price
		price *= 1.01
	}
	macd, _, err := CalculateMACDSeries(closes, 12, 26, 9)
	require.NoError(t, err)

	last := macd[len(macd)-1]
	require.True(t, last.OK)
	assert.Greater(t, last.V, 0.0, "fast EMA must sit above slow EMA in a steady uptrend")
}

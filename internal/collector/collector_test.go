package collector

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect_AlignedSeries(t *testing.T) {
	col := NewCollector(&MockFetcher{Price: 100})
	series, ind, err := col.Collect("TEST", "6mo")
	require.NoError(t, err)

	n := len(series.Bars)
	require.Equal(t, n, ind.Len(), "indicator series must align with the price series")
	require.Equal(t, n, len(ind.MACD))
	require.Equal(t, n, len(ind.BollUpper))
	require.Equal(t, n, len(ind.StochK))

	// Warm-up entries are undefined, the tail is defined.
	assert.False(t, ind.RSI[0].OK)
	last, ok := ind.Latest()
	require.True(t, ok)
	assert.True(t, last.RSI.OK)
	assert.True(t, last.MACD.OK)
	assert.True(t, last.MACDSignal.OK)
	assert.True(t, last.BollMid.OK)
}

func TestCollect_FetchErrorPropagates(t *testing.T) {
	col := NewCollector(&MockFetcher{
		Price: 100,
		Errs:  map[string]error{"GONE": ErrNoData},
	})
	_, _, err := col.Collect("GONE", "3mo")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoData))
}

func TestCollect_InvalidPeriod(t *testing.T) {
	col := NewCollector(&MockFetcher{Price: 100})
	_, _, err := col.Collect("TEST", "4mo")
	assert.Error(t, err)

	assert.True(t, ValidPeriod("1y"))
	assert.False(t, ValidPeriod("forever"))
}

func TestNameResolver(t *testing.T) {
	r := NewNameResolver(map[string]string{"005930.KS": "Samsung Electronics"})
	r.lookup = func(symbol string) (string, error) {
		if symbol == "AAPL" {
			return "Apple Inc.", nil
		}
		return "", errors.New("not found")
	}

	assert.Equal(t, "Samsung Electronics", r.Resolve("005930.KS"), "override wins")
	assert.Equal(t, "Apple Inc.", r.Resolve("AAPL"))
	assert.Equal(t, "ZZZZ", r.Resolve("ZZZZ"), "lookup failure falls back to the code")
}

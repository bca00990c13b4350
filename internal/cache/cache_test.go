package cache

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAdvisor/internal/model"
)

func TestReportRoundTrip(t *testing.T) {
	c := New(time.Minute)

	_, ok := c.LastReport()
	assert.False(t, ok, "empty cache has no report")

	r := &model.Report{ID: uuid.New(), GeneratedAt: time.Now()}
	c.PutReport(r)

	got, ok := c.LastReport()
	require.True(t, ok)
	assert.Equal(t, r.ID, got.ID)
}

func TestExpiry(t *testing.T) {
	c := New(10 * time.Millisecond)
	c.PutSeries("AAPL", "6mo", &model.PriceSeries{Symbol: "AAPL"})

	_, ok := c.Series("AAPL", "6mo")
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)
	_, ok = c.Series("AAPL", "6mo")
	assert.False(t, ok, "entry expired")

	c.Cleanup()
	c.mu.RLock()
	assert.Empty(t, c.items)
	c.mu.RUnlock()
}

func TestSeriesKeyedByPeriod(t *testing.T) {
	c := New(time.Minute)
	c.PutSeries("AAPL", "6mo", &model.PriceSeries{Symbol: "AAPL"})

	_, ok := c.Series("AAPL", "1y")
	assert.False(t, ok, "different period misses")
}

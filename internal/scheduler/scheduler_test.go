package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAdvisor/internal/cache"
	"StockAdvisor/internal/collector"
	"StockAdvisor/internal/model"
	"StockAdvisor/internal/notifier"
	"StockAdvisor/internal/portfolio"
	"StockAdvisor/internal/recorder"
)

func newTestScheduler() *Scheduler {
	fetcher := &collector.MockFetcher{Price: 100, Rate: 1380}
	an := portfolio.NewAnalyzer(collector.NewCollector(fetcher), nil)
	holdings := []model.Holding{{Code: "AAPL", Quantity: 5}}
	return NewScheduler(context.Background(), an, holdings, cache.New(time.Minute),
		notifier.NoopNotifier{}, recorder.NewNoopRecorder())
}

func TestHandleCommand_ReportBeforeAnyRun(t *testing.T) {
	s := newTestScheduler()
	reply := s.HandleCommand("/report")
	assert.Contains(t, reply, "No recent report")
}

func TestHandleCommand_AnalyzeThenReport(t *testing.T) {
	s := newTestScheduler()

	reply := s.HandleCommand("/analyze")
	assert.Empty(t, reply, "analyze replies through the watch task itself")

	report, ok := s.Cache.LastReport()
	require.True(t, ok, "watch task caches the report")
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "AAPL", report.Rows[0].Code)

	reply = s.HandleCommand("/report")
	assert.Contains(t, reply, "AAPL")
}

func TestHandleCommand_Help(t *testing.T) {
	s := newTestScheduler()
	reply := s.HandleCommand("/bogus")
	assert.Contains(t, reply, "/report")
	assert.Contains(t, reply, "/analyze")
}

func TestRegisterRejectsBadCron(t *testing.T) {
	s := newTestScheduler()
	assert.Error(t, s.Register("not a cron expression"))
	assert.NoError(t, newTestScheduler().Register("0 0 18 * * 1-5"))
}

package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockAdvisor/internal/model"
)

func TestAnalysisRoundTrip(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "advisor.db"))
	require.NoError(t, err)
	defer r.Close()

	report := &model.Report{
		ID:          uuid.New(),
		GeneratedAt: time.Now(),
		FXRate:      1380,
		Rows: []model.AnalysisRow{
			{
				Code:     "005930.KS",
				Name:     "Samsung Electronics",
				Quantity: 10,
				Price:    71000,
				Currency: model.CurrencyKRW,
				Value:    decimal.NewFromInt(710000),
				Snapshot: model.IndicatorSnapshot{
					RSI:  model.Value{V: 28.4, OK: true},
					MACD: model.Value{}, // still in warm-up
				},
				Signal: &model.Signal{Score: 2.0, Opinion: model.OpinionStrongBuy},
			},
		},
	}

	require.NoError(t, r.RecordAnalysis(AnalysisRecordsFromReport(report)))

	var count int
	var rsi, macd *float64
	var opinion string
	row := r.db.QueryRow(`SELECT COUNT(*) FROM analysis_rows`)
	require.NoError(t, row.Scan(&count))
	assert.Equal(t, 1, count)

	row = r.db.QueryRow(`SELECT rsi, macd, opinion FROM analysis_rows WHERE code = ?`, "005930.KS")
	require.NoError(t, row.Scan(&rsi, &macd, &opinion))
	require.NotNil(t, rsi)
	assert.InDelta(t, 28.4, *rsi, 1e-9)
	assert.Nil(t, macd, "undefined indicator stored as NULL")
	assert.Equal(t, "STRONG_BUY", opinion)
}

func TestSimulationAndBacktestRecords(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "advisor.db"))
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.RecordSimulation(&SimulationRecord{
		Symbol: "AAPL", Mode: "log", LastClose: 230, Paths: 200, Days: 30,
		MeanTerminal: 236.5, ProbRise: 0.61, Timestamp: time.Now(),
	}))
	require.NoError(t, r.RecordBacktest(&BacktestRecord{
		Symbol: "AAPL", Period: "1y", Trades: 4,
		FinalValue: 11250, BuyHoldValue: 10800, Timestamp: time.Now(),
	}))

	var n int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM simulation_runs`).Scan(&n))
	assert.Equal(t, 1, n)
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM backtest_runs`).Scan(&n))
	assert.Equal(t, 1, n)
}

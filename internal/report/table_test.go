package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"StockAdvisor/internal/model"
)

func TestWriteTable(t *testing.T) {
	r := &model.Report{
		ID:          uuid.New(),
		GeneratedAt: time.Now(),
		FXRate:      1400,
		FXAssumed:   true,
		Rows: []model.AnalysisRow{
			{
				Code: "005930.KS", Name: "Samsung Electronics", Quantity: 10,
				Price: 71000, Currency: model.CurrencyKRW,
				Value: decimal.NewFromInt(710000),
				Snapshot: model.IndicatorSnapshot{
					RSI:    model.Defined(28.4),
					StochK: model.Value{}, // warm-up
				},
				Signal: &model.Signal{
					Score:   1,
					Opinion: model.OpinionBuy,
					Contributions: []model.Contribution{
						{Indicator: "rsi", Points: 1, Reason: "RSI 28.4 oversold"},
					},
				},
			},
		},
		Skipped:    []model.SkippedRow{{Code: "GONE.KQ", Reason: "no data"}},
		TotalValue: decimal.NewFromInt(710000),
	}

	var buf bytes.Buffer
	WriteTable(&buf, r)
	out := buf.String()

	assert.Contains(t, out, "Samsung Electronics")
	assert.Contains(t, out, "28.4")
	assert.Contains(t, out, "BUY")
	assert.Contains(t, out, "RSI 28.4 oversold")
	assert.Contains(t, out, "Total value: 710000 KRW")
	assert.Contains(t, out, "assumed 1400")
	assert.Contains(t, out, "skipped GONE.KQ: no data")
}

func TestWriteBacktest(t *testing.T) {
	result := &model.BacktestResult{
		Trades: []model.Trade{
			{Date: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), Side: model.TradeBuy, Price: 8, RSI: 25.0, Shares: 12},
			{Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), Side: model.TradeSell, Price: 9, RSI: 75.0, Shares: 12, ReturnPct: 0.125},
		},
		FinalValue:   112,
		BuyHoldValue: 90,
	}

	var buf bytes.Buffer
	WriteBacktest(&buf, "TEST", result)
	out := buf.String()

	assert.Contains(t, out, "2025-03-03")
	assert.Contains(t, out, "12.50%")
	assert.Contains(t, out, "final 112.00, buy-and-hold 90.00")
	assert.NotContains(t, out, "position still open")
}

func TestWriteSimulationFlat(t *testing.T) {
	b := &model.SimulationBundle{
		Symbol: "TEST", Mode: "simple", LastClose: 50,
		Paths: [][]float64{{50, 50, 50}, {50, 50, 50}},
	}

	var buf bytes.Buffer
	WriteSimulation(&buf, b)
	out := buf.String()

	assert.Contains(t, out, "2 paths over 2 days")
	assert.Contains(t, out, "50.00")
	// no path finished above the last close
	assert.True(t, strings.Contains(out, "0.0%"))
}

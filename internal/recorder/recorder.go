// Package recorder persists analysis history for later inspection.
package recorder

import (
	"time"

	"StockAdvisor/internal/model"
)

// AnalysisRecord is one persisted per-ticker analysis outcome.
type AnalysisRecord struct {
	ReportID   string
	Code       string
	Name       string
	Price      float64
	Currency   string
	ValueKRW   float64
	RSI        model.Value
	MACD       model.Value
	MACDSignal model.Value
	BollUpper  model.Value
	BollMid    model.Value
	BollLower  model.Value
	StochK     model.Value
	Score      float64
	Opinion    string
	Reasons    string
	Timestamp  time.Time
}

// SimulationRecord summarizes one Monte Carlo run.
type SimulationRecord struct {
	Symbol       string
	Mode         string
	LastClose    float64
	Paths        int
	Days         int
	MeanTerminal float64
	ProbRise     float64
	Timestamp    time.Time
}

// BacktestRecord summarizes one backtest run.
type BacktestRecord struct {
	Symbol       string
	Period       string
	Trades       int
	FinalValue   float64
	BuyHoldValue float64
	PositionOpen bool
	Timestamp    time.Time
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordAnalysis(recs []AnalysisRecord) error
	RecordSimulation(rec *SimulationRecord) error
	RecordBacktest(rec *BacktestRecord) error
	Close() error
}

// AnalysisRecordsFromReport flattens a report into persistable rows.
func AnalysisRecordsFromReport(r *model.Report) []AnalysisRecord {
	recs := make([]AnalysisRecord, 0, len(r.Rows))
	for _, row := range r.Rows {
		value, _ := row.Value.Float64()
		recs = append(recs, AnalysisRecord{
			ReportID:   r.ID.String(),
			Code:       row.Code,
			Name:       row.Name,
			Price:      row.Price,
			Currency:   string(row.Currency),
			ValueKRW:   value,
			RSI:        row.Snapshot.RSI,
			MACD:       row.Snapshot.MACD,
			MACDSignal: row.Snapshot.MACDSignal,
			BollUpper:  row.Snapshot.BollUpper,
			BollMid:    row.Snapshot.BollMid,
			BollLower:  row.Snapshot.BollLower,
			StochK:     row.Snapshot.StochK,
			Score:      row.Signal.Score,
			Opinion:    string(row.Signal.Opinion),
			Reasons:    row.Signal.ReasonSummary(),
			Timestamp:  r.GeneratedAt,
		})
	}
	return recs
}

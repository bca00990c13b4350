package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Holding is one portfolio position supplied by the caller. Name is an
// optional display-name override; zero Quantity means ticker-only mode.
type Holding struct {
	Code     string  `csv:"code" json:"code" yaml:"code"`
	Name     string  `csv:"name" json:"name,omitempty" yaml:"name,omitempty"`
	Quantity float64 `csv:"quantity" json:"quantity" yaml:"quantity"`
}

// Currency classifies how a listing is denominated.
type Currency string

const (
	CurrencyKRW Currency = "KRW"
	CurrencyUSD Currency = "USD"
)

// AnalysisRow is the per-ticker result of a portfolio analysis.
type AnalysisRow struct {
	Code     string            `json:"code"`
	Name     string            `json:"name"`
	Quantity float64           `json:"quantity"`
	Price    float64           `json:"price"`
	Currency Currency          `json:"currency"`
	Value    decimal.Decimal   `json:"value_krw"`
	Snapshot IndicatorSnapshot `json:"indicators"`
	Signal   *Signal           `json:"signal"`
}

// SkippedRow marks a ticker that could not be analyzed; the batch
// continues without it.
type SkippedRow struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// Report is the outcome of one batch analysis request.
type Report struct {
	ID          uuid.UUID       `json:"id"`
	GeneratedAt time.Time       `json:"generated_at"`
	FXRate      float64         `json:"fx_rate"`
	FXAssumed   bool            `json:"fx_assumed"` // fallback rate in use
	Rows        []AnalysisRow   `json:"rows"`
	Skipped     []SkippedRow    `json:"skipped,omitempty"`
	TotalValue  decimal.Decimal `json:"total_value_krw"`
}

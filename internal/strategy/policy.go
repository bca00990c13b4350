package strategy

import (
	"fmt"

	"StockAdvisor/internal/model"
)

// Scoring policies.
const (
	PolicyWeighted = "weighted"
	PolicyRSIOnly  = "rsi_only"
)

// ValidatePolicy rejects unknown policy names.
func ValidatePolicy(name string) error {
	switch name {
	case "", PolicyWeighted, PolicyRSIOnly:
		return nil
	default:
		return fmt.Errorf("unknown scorer policy %q", name)
	}
}

// EvaluateRSIOnly is the single-indicator policy used by the simplest
// dashboard builds: below 30 is a strong oversold buy, above 70 an
// overheated sell, 30-40 a dip buy, everything else hold. It is kept as
// a distinct policy, never merged into the weighted vote.
func EvaluateRSIOnly(rsi model.Value) *model.Signal {
	sig := &model.Signal{}
	if !rsi.OK {
		sig.Opinion = model.OpinionHold
		return sig
	}
	switch {
	case rsi.V < 30:
		sig.Opinion = model.OpinionStrongBuy
		sig.Contributions = []model.Contribution{{
			Indicator: IndicatorRSI,
			Points:    1,
			Reason:    fmt.Sprintf("RSI %.1f oversold", rsi.V),
		}}
		sig.Score = 1
	case rsi.V > 70:
		sig.Opinion = model.OpinionSell
		sig.Contributions = []model.Contribution{{
			Indicator: IndicatorRSI,
			Points:    -1,
			Reason:    fmt.Sprintf("RSI %.1f overheated", rsi.V),
		}}
		sig.Score = -1
	case rsi.V < 40:
		sig.Opinion = model.OpinionBuy
		sig.Contributions = []model.Contribution{{
			Indicator: IndicatorRSI,
			Points:    0.5,
			Reason:    fmt.Sprintf("RSI %.1f dip", rsi.V),
		}}
		sig.Score = 0.5
	default:
		sig.Opinion = model.OpinionHold
	}
	return sig
}

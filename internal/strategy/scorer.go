package strategy

import (
	"fmt"

	"StockAdvisor/internal/model"
)

// Indicator names accepted in a scorer configuration.
const (
	IndicatorRSI        = "rsi"
	IndicatorMACD       = "macd"
	IndicatorBollinger  = "bollinger"
	IndicatorStochastic = "stochastic"
)

// DefaultIndicators is the four-indicator build. Some deployments run
// without MACD; that is an inclusion-list change, not a formula change.
var DefaultIndicators = []string{IndicatorRSI, IndicatorMACD, IndicatorBollinger, IndicatorStochastic}

// Config selects which indicators vote. An empty list means the default
// four-indicator build.
type Config struct {
	Indicators []string
}

// ValidateIndicators rejects unknown indicator names.
func ValidateIndicators(names []string) error {
	for _, n := range names {
		switch n {
		case IndicatorRSI, IndicatorMACD, IndicatorBollinger, IndicatorStochastic:
		default:
			return fmt.Errorf("unknown scorer indicator %q", n)
		}
	}
	return nil
}

// scoreRSI votes +1 below 30 (oversold) and -1 above 70 (overbought).
func scoreRSI(rsi model.Value) (model.Contribution, bool) {
	if !rsi.OK {
		return model.Contribution{}, false
	}
	c := model.Contribution{Indicator: IndicatorRSI}
	switch {
	case rsi.V < 30:
		c.Points = 1
		c.Reason = fmt.Sprintf("RSI %.1f oversold", rsi.V)
	case rsi.V > 70:
		c.Points = -1
		c.Reason = fmt.Sprintf("RSI %.1f overbought", rsi.V)
	}
	return c, true
}

// scoreMACD votes ±0.5 on which side of the signal line the MACD sits.
// There is no neutral zone, so the vote is always cast; because it is
// not an event, it carries no reason tag.
func scoreMACD(macd, signal model.Value) (model.Contribution, bool) {
	if !macd.OK || !signal.OK {
		return model.Contribution{}, false
	}
	c := model.Contribution{Indicator: IndicatorMACD}
	if macd.V > signal.V {
		c.Points = 0.5
	} else {
		c.Points = -0.5
	}
	return c, true
}

// scoreBollinger votes ±1 when the price sits within 2% of a band.
func scoreBollinger(price float64, upper, lower model.Value) (model.Contribution, bool) {
	if !upper.OK || !lower.OK {
		return model.Contribution{}, false
	}
	c := model.Contribution{Indicator: IndicatorBollinger}
	switch {
	case price <= lower.V*1.02:
		c.Points = 1
		c.Reason = "near lower band"
	case price >= upper.V*0.98:
		c.Points = -1
		c.Reason = "near upper band"
	}
	return c, true
}

// scoreStochastic votes ±0.5 at the edges of the %K range.
func scoreStochastic(k model.Value) (model.Contribution, bool) {
	if !k.OK {
		return model.Contribution{}, false
	}
	c := model.Contribution{Indicator: IndicatorStochastic}
	switch {
	case k.V < 20:
		c.Points = 0.5
		c.Reason = fmt.Sprintf("%%K %.1f near floor", k.V)
	case k.V > 80:
		c.Points = -0.5
		c.Reason = fmt.Sprintf("%%K %.1f near ceiling", k.V)
	}
	return c, true
}

// Evaluate applies the weighted vote over the latest indicator readings.
// Indicators vote in the configured order; undefined readings are
// skipped entirely and contribute nothing. Only non-zero votes carry a
// reason into the signal.
func Evaluate(snap model.IndicatorSnapshot, price float64, cfg Config) *model.Signal {
	indicators := cfg.Indicators
	if len(indicators) == 0 {
		indicators = DefaultIndicators
	}

	sig := &model.Signal{}
	for _, name := range indicators {
		var c model.Contribution
		var ok bool
		switch name {
		case IndicatorRSI:
			c, ok = scoreRSI(snap.RSI)
		case IndicatorMACD:
			c, ok = scoreMACD(snap.MACD, snap.MACDSignal)
		case IndicatorBollinger:
			c, ok = scoreBollinger(price, snap.BollUpper, snap.BollLower)
		case IndicatorStochastic:
			c, ok = scoreStochastic(snap.StochK)
		}
		if !ok {
			continue
		}
		sig.Score += c.Points
		if c.Points != 0 {
			sig.Contributions = append(sig.Contributions, c)
		}
	}
	sig.Opinion = mapOpinion(sig.Score)
	return sig
}

// mapOpinion maps a summed score to an opinion bucket. The 0.5 and -0.5
// bounds are inclusive on the BUY and SELL side.
func mapOpinion(score float64) model.Opinion {
	switch {
	case score >= 1.5:
		return model.OpinionStrongBuy
	case score >= 0.5:
		return model.OpinionBuy
	case score > -0.5:
		return model.OpinionHold
	case score > -1.5:
		return model.OpinionSell
	default:
		return model.OpinionStrongSell
	}
}

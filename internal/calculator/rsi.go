package calculator

import (
	"errors"

	"StockAdvisor/internal/model"
)

// CalculateRSISeries computes the rolling-mean RSI for every bar of the
// close series. Gains and losses are averaged with a simple rolling mean
// over the window, so the first `window` entries are undefined. When the
// mean loss over the window is zero the RSI saturates to 100 rather than
// propagating a division by zero.
func CalculateRSISeries(closes []float64, window int) ([]model.Value, error) {
	if window <= 0 {
		return nil, errors.New("window must be positive")
	}
	out := make([]model.Value, len(closes))
	if len(closes) < window+1 {
		return out, nil
	}

	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gains[i] = change
		} else {
			losses[i] = -change
		}
	}

	var gainSum, lossSum float64
	for i := 1; i < len(closes); i++ {
		gainSum += gains[i]
		lossSum += losses[i]
		if i < window {
			continue
		}
		if i > window {
			gainSum -= gains[i-window]
			lossSum -= losses[i-window]
		}
		meanGain := gainSum / float64(window)
		meanLoss := lossSum / float64(window)
		if meanLoss == 0 {
			out[i] = model.Defined(100)
			continue
		}
		rs := meanGain / meanLoss
		out[i] = model.Defined(100 - 100/(1+rs))
	}
	return out, nil
}

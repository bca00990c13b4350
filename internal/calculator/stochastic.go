package calculator

import (
	"errors"
	"math"

	"StockAdvisor/internal/model"
)

// CalculateStochasticKSeries computes the stochastic %K for every bar:
// the position of the close within the n-day high/low range, as a
// percentage. Days where the range is flat (high max equals low min)
// are undefined, as are the first n-1 entries.
func CalculateStochasticKSeries(highs, lows, closes []float64, n int) ([]model.Value, error) {
	if n <= 0 {
		return nil, errors.New("window must be positive")
	}
	if len(highs) != len(lows) || len(lows) != len(closes) {
		return nil, errors.New("series length mismatch")
	}

	out := make([]model.Value, len(closes))
	for i := n - 1; i < len(closes); i++ {
		hi := math.Inf(-1)
		lo := math.Inf(1)
		for j := i - n + 1; j <= i; j++ {
			if highs[j] > hi {
				hi = highs[j]
			}
			if lows[j] < lo {
				lo = lows[j]
			}
		}
		if hi == lo {
			continue // flat range, %K undefined
		}
		out[i] = model.Defined(100 * (closes[i] - lo) / (hi - lo))
	}
	return out, nil
}

package calculator

import (
	"errors"
	"fmt"

	"github.com/montanaflynn/stats"

	"StockAdvisor/internal/model"
)

// CalculateBollingerSeries computes the moving-average envelope at
// ±k sample standard deviations for every bar. The first window-1
// entries are undefined. Sample (n-1) standard deviation is used
// throughout.
func CalculateBollingerSeries(closes []float64, window int, k float64) (upper, mid, lower []model.Value, err error) {
	if window < 2 {
		return nil, nil, nil, errors.New("window must be at least 2")
	}
	upper = make([]model.Value, len(closes))
	mid = make([]model.Value, len(closes))
	lower = make([]model.Value, len(closes))

	for i := window - 1; i < len(closes); i++ {
		win := closes[i-window+1 : i+1]
		mean, err := stats.Mean(win)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("bollinger mean: %w", err)
		}
		sd, err := stats.StandardDeviationSample(win)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("bollinger stdev: %w", err)
		}
		mid[i] = model.Defined(mean)
		upper[i] = model.Defined(mean + k*sd)
		lower[i] = model.Defined(mean - k*sd)
	}
	return upper, mid, lower, nil
}

package calculator

import (
	"errors"

	"StockAdvisor/internal/model"
)

// CalculateEMASeries computes the exponential moving average with
// smoothing factor 2/(span+1), seeded with the plain mean of the first
// `span` values. Entries before the seed are undefined.
func CalculateEMASeries(values []float64, span int) ([]model.Value, error) {
	if span <= 0 {
		return nil, errors.New("span must be positive")
	}
	out := make([]model.Value, len(values))
	if len(values) < span {
		return out, nil
	}

	var sum float64
	for i := 0; i < span; i++ {
		sum += values[i]
	}
	ema := sum / float64(span)
	out[span-1] = model.Defined(ema)

	alpha := 2.0 / (float64(span) + 1.0)
	for i := span; i < len(values); i++ {
		ema += (values[i] - ema) * alpha
		out[i] = model.Defined(ema)
	}
	return out, nil
}

// CalculateMACDSeries computes the MACD line (fast EMA minus slow EMA)
// and its signal line (EMA of the MACD line). Each line is undefined
// until its own warm-up elapses: the MACD from the slow span, the signal
// a further signalSpan-1 days later.
func CalculateMACDSeries(closes []float64, fast, slow, signalSpan int) (macd, signal []model.Value, err error) {
	if fast <= 0 || slow <= 0 || signalSpan <= 0 {
		return nil, nil, errors.New("spans must be positive")
	}
	if fast >= slow {
		return nil, nil, errors.New("fast span must be below slow span")
	}

	emaFast, err := CalculateEMASeries(closes, fast)
	if err != nil {
		return nil, nil, err
	}
	emaSlow, err := CalculateEMASeries(closes, slow)
	if err != nil {
		return nil, nil, err
	}

	macd = make([]model.Value, len(closes))
	for i := range closes {
		if emaFast[i].OK && emaSlow[i].OK {
			macd[i] = model.Defined(emaFast[i].V - emaSlow[i].V)
		}
	}

	// The signal line is an EMA over the defined suffix of the MACD line.
	signal = make([]model.Value, len(closes))
	start := slow - 1
	if start < len(closes) && len(closes)-start >= signalSpan {
		defined := make([]float64, 0, len(closes)-start)
		for i := start; i < len(closes); i++ {
			defined = append(defined, macd[i].V)
		}
		sigSeries, err := CalculateEMASeries(defined, signalSpan)
		if err != nil {
			return nil, nil, err
		}
		for j, v := range sigSeries {
			signal[start+j] = v
		}
	}
	return macd, signal, nil
}

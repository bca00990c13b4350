package collector

import (
	"fmt"
	"time"

	"StockAdvisor/internal/calculator"
	"StockAdvisor/internal/model"
)

// MockFetcher returns controllable fixed data for development and
// testing. Per-symbol bars and errors override the generated defaults.
type MockFetcher struct {
	Price float64
	Rate  float64
	Bars  map[string][]model.PriceBar
	Errs  map[string]error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(symbol, period string) (*model.PriceSeries, error) {
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	bars := m.Bars[symbol]
	if bars == nil {
		days, ok := periodDays[period]
		if !ok {
			return nil, fmt.Errorf("invalid period %q", period)
		}
		bars = GenerateMockBars(m.Price, days)
	}
	return &model.PriceSeries{Symbol: symbol, Bars: bars, FetchedAt: time.Now()}, nil
}

func (m *MockFetcher) FetchExchangeRate(pair string) (float64, error) {
	if err, ok := m.Errs[pair]; ok {
		return 0, err
	}
	if m.Rate == 0 {
		return 1400, nil
	}
	return m.Rate, nil
}

// GenerateMockBars builds a gently trending series around basePrice.
func GenerateMockBars(basePrice float64, count int) []model.PriceBar {
	bars := make([]model.PriceBar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.PriceBar{
			Date:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Windows holds the indicator parameters used when collecting.
type Windows struct {
	RSI        int
	MACDFast   int
	MACDSlow   int
	MACDSignal int
	Bollinger  int
	BollingerK float64
	Stochastic int
}

// DefaultWindows are the conventional parameter choices.
var DefaultWindows = Windows{
	RSI:        14,
	MACDFast:   12,
	MACDSlow:   26,
	MACDSignal: 9,
	Bollinger:  20,
	BollingerK: 2,
	Stochastic: 14,
}

// Collector fetches price history for one symbol and computes the full
// indicator series over it.
type Collector struct {
	Fetcher Fetcher
	Windows Windows
}

// NewCollector creates a Collector with the default indicator windows.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher, Windows: DefaultWindows}
}

// Collect fetches history and computes every indicator, positionally
// aligned with the returned price series.
func (c *Collector) Collect(symbol, period string) (*model.PriceSeries, *model.IndicatorSeries, error) {
	series, err := c.Fetcher.FetchHistory(symbol, period)
	if err != nil {
		return nil, nil, err
	}
	ind, err := c.ComputeIndicators(series)
	if err != nil {
		return nil, nil, fmt.Errorf("indicators for %s: %w", symbol, err)
	}
	return series, ind, nil
}

// ComputeIndicators runs the full indicator engine over a price series.
func (c *Collector) ComputeIndicators(series *model.PriceSeries) (*model.IndicatorSeries, error) {
	closes := series.Closes()

	rsi, err := calculator.CalculateRSISeries(closes, c.Windows.RSI)
	if err != nil {
		return nil, fmt.Errorf("rsi: %w", err)
	}
	macd, macdSignal, err := calculator.CalculateMACDSeries(closes, c.Windows.MACDFast, c.Windows.MACDSlow, c.Windows.MACDSignal)
	if err != nil {
		return nil, fmt.Errorf("macd: %w", err)
	}
	upper, mid, lower, err := calculator.CalculateBollingerSeries(closes, c.Windows.Bollinger, c.Windows.BollingerK)
	if err != nil {
		return nil, fmt.Errorf("bollinger: %w", err)
	}
	stochK, err := calculator.CalculateStochasticKSeries(series.Highs(), series.Lows(), closes, c.Windows.Stochastic)
	if err != nil {
		return nil, fmt.Errorf("stochastic: %w", err)
	}

	return &model.IndicatorSeries{
		RSI:        rsi,
		MACD:       macd,
		MACDSignal: macdSignal,
		BollUpper:  upper,
		BollMid:    mid,
		BollLower:  lower,
		StochK:     stochK,
	}, nil
}

package collector

import (
	"errors"

	"StockAdvisor/internal/model"
)

// ErrNoData marks a symbol or period the provider answered for but has
// no bars on (delisted, never traded in the window). Transport and
// provider failures are returned as ordinary errors so callers can tell
// "skip this ticker" from "the provider is down".
var ErrNoData = errors.New("no data for symbol")

// Fetcher is the market-data provider contract.
type Fetcher interface {
	// FetchHistory returns daily bars for the symbol over a lookback
	// period token (see Periods).
	FetchHistory(symbol, period string) (*model.PriceSeries, error)
	// FetchExchangeRate returns the latest rate for a currency-pair
	// pseudo-ticker such as "KRW=X".
	FetchExchangeRate(pair string) (float64, error)
	Name() string
}

// periodDays maps the accepted lookback tokens to trading-day counts.
var periodDays = map[string]int{
	"1d":  1,
	"3mo": 63,
	"6mo": 126,
	"1y":  252,
	"2y":  504,
	"5y":  1260,
	"10y": 2520,
}

// ValidPeriod reports whether p is an accepted lookback token.
func ValidPeriod(p string) bool {
	_, ok := periodDays[p]
	return ok
}

package backtest

import (
	"errors"
	"math"

	"StockAdvisor/internal/calculator"
	"StockAdvisor/internal/model"
)

// Config controls one backtest run. Zero fields take the defaults.
type Config struct {
	RSIWindow      int     // default 14
	BuyThreshold   float64 // default 30
	SellThreshold  float64 // default 70
	InitialCapital float64 // default 10000
}

func (c *Config) applyDefaults() {
	if c.RSIWindow == 0 {
		c.RSIWindow = 14
	}
	if c.BuyThreshold == 0 {
		c.BuyThreshold = 30
	}
	if c.SellThreshold == 0 {
		c.SellThreshold = 70
	}
	if c.InitialCapital == 0 {
		c.InitialCapital = 10000
	}
}

// Run walks the price series once with a long-only RSI threshold rule.
// While flat, an RSI below the buy threshold spends all cash on whole
// shares; while long, an RSI above the sell threshold liquidates the
// position and records its realized return. Days with an undefined RSI
// never trade but are still marked to market in the equity curve. A
// position still open when the series ends is left open: the equity
// curve reflects its value but no closing SELL trade is recorded.
func Run(series *model.PriceSeries, cfg Config) (*model.BacktestResult, error) {
	if len(series.Bars) == 0 {
		return nil, errors.New("empty price series")
	}
	cfg.applyDefaults()
	if cfg.SellThreshold <= cfg.BuyThreshold {
		return nil, errors.New("sell threshold must be above buy threshold")
	}

	rsi, err := calculator.CalculateRSISeries(series.Closes(), cfg.RSIWindow)
	if err != nil {
		return nil, err
	}

	cash := cfg.InitialCapital
	var shares, buyPrice float64
	res := &model.BacktestResult{
		Trades: []model.Trade{},
		Equity: make([]model.EquityPoint, 0, len(series.Bars)),
	}

	for i, bar := range series.Bars {
		if r := rsi[i]; r.OK && bar.Close > 0 {
			switch {
			case shares == 0 && r.V < cfg.BuyThreshold:
				qty := math.Floor(cash / bar.Close)
				if qty > 0 {
					shares = qty
					buyPrice = bar.Close
					cash -= qty * bar.Close
					res.Trades = append(res.Trades, model.Trade{
						Date:   bar.Date,
						Side:   model.TradeBuy,
						Price:  bar.Close,
						RSI:    r.V,
						Shares: qty,
					})
				}
			case shares > 0 && r.V > cfg.SellThreshold:
				cash += shares * bar.Close
				res.Trades = append(res.Trades, model.Trade{
					Date:      bar.Date,
					Side:      model.TradeSell,
					Price:     bar.Close,
					RSI:       r.V,
					Shares:    shares,
					ReturnPct: (bar.Close - buyPrice) / buyPrice,
				})
				shares = 0
			}
		}
		res.Equity = append(res.Equity, model.EquityPoint{
			Date:       bar.Date,
			TotalValue: cash + shares*bar.Close,
		})
	}

	res.PositionOpen = shares > 0
	res.FinalValue = res.Equity[len(res.Equity)-1].TotalValue
	if first := series.Bars[0].Close; first > 0 {
		res.BuyHoldValue = cfg.InitialCapital / first * series.LastClose()
	}
	return res, nil
}

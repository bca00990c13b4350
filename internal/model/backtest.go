package model

import "time"

// TradeSide indicates the direction of a backtest trade.
type TradeSide string

const (
	TradeBuy  TradeSide = "BUY"
	TradeSell TradeSide = "SELL"
)

// Trade records one executed backtest transition.
type Trade struct {
	Date      time.Time `json:"date"`
	Side      TradeSide `json:"side"`
	Price     float64   `json:"price"`
	RSI       float64   `json:"rsi_at_trade"`
	Shares    float64   `json:"shares"`
	ReturnPct float64   `json:"return_pct,omitempty"` // set on SELL only
}

// EquityPoint is the mark-to-market account value on one trading day.
type EquityPoint struct {
	Date       time.Time `json:"date"`
	TotalValue float64   `json:"total_value"`
}

// BacktestResult is the full output of one backtest run. Equity is
// aligned day-for-day with the input series. PositionOpen is true when
// the series ended while still holding shares; no closing SELL trade is
// recorded in that case.
type BacktestResult struct {
	Trades       []Trade       `json:"trades"`
	Equity       []EquityPoint `json:"equity"`
	FinalValue   float64       `json:"final_value"`
	BuyHoldValue float64       `json:"buy_hold_value"`
	PositionOpen bool          `json:"position_open"`
}

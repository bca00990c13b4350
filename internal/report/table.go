// Package report renders analysis results for the console.
package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"StockAdvisor/internal/model"
	"StockAdvisor/internal/montecarlo"
)

// WriteTable renders a portfolio report as an ASCII table followed by
// totals and any skipped rows.
func WriteTable(w io.Writer, r *model.Report) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Code", "Name", "Qty", "Price", "Value (KRW)", "RSI", "%K", "Opinion", "Reasons"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT,
	})

	for _, row := range r.Rows {
		table.Append([]string{
			row.Code,
			row.Name,
			fmt.Sprintf("%.0f", row.Quantity),
			fmt.Sprintf("%.2f %s", row.Price, row.Currency),
			row.Value.StringFixed(0),
			row.Snapshot.RSI.Format(1),
			row.Snapshot.StochK.Format(1),
			string(row.Signal.Opinion),
			row.Signal.ReasonSummary(),
		})
	}
	table.Render()

	fmt.Fprintf(w, "Total value: %s KRW\n", r.TotalValue.StringFixed(0))
	if r.FXAssumed {
		fmt.Fprintf(w, "USD/KRW rate unavailable, assumed %.0f\n", r.FXRate)
	} else {
		fmt.Fprintf(w, "USD/KRW rate: %.2f\n", r.FXRate)
	}
	for _, s := range r.Skipped {
		fmt.Fprintf(w, "skipped %s: %s\n", s.Code, s.Reason)
	}
}

// WriteSnapshot renders a single symbol's latest indicator readings and
// signal.
func WriteSnapshot(w io.Writer, symbol string, price float64, snap model.IndicatorSnapshot, sig model.Signal) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Indicator", "Value"})
	table.Append([]string{"Close", fmt.Sprintf("%.2f", price)})
	table.Append([]string{"RSI(14)", snap.RSI.Format(1)})
	table.Append([]string{"MACD", snap.MACD.Format(3)})
	table.Append([]string{"MACD signal", snap.MACDSignal.Format(3)})
	table.Append([]string{"Bollinger upper", snap.BollUpper.Format(2)})
	table.Append([]string{"Bollinger mid", snap.BollMid.Format(2)})
	table.Append([]string{"Bollinger lower", snap.BollLower.Format(2)})
	table.Append([]string{"Stochastic %K", snap.StochK.Format(1)})
	table.Render()

	fmt.Fprintf(w, "%s: %s (score %.1f)\n", symbol, sig.Opinion, sig.Score)
	for _, reason := range sig.Reasons() {
		fmt.Fprintf(w, "  - %s\n", reason)
	}
}

// WriteSimulation renders a Monte Carlo summary.
func WriteSimulation(w io.Writer, b *model.SimulationBundle) {
	s := montecarlo.Summarize(b)
	days := 0
	if len(b.Paths) > 0 {
		days = len(b.Paths[0]) - 1
	}

	fmt.Fprintf(w, "%s: %d paths over %d days (%s mode), last close %.2f\n",
		b.Symbol, len(b.Paths), days, b.Mode, b.LastClose)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Mean terminal", fmt.Sprintf("%.2f", s.MeanTerminal)})
	table.Append([]string{"Min terminal", fmt.Sprintf("%.2f", s.MinTerminal)})
	table.Append([]string{"Max terminal", fmt.Sprintf("%.2f", s.MaxTerminal)})
	table.Append([]string{"P(rise)", fmt.Sprintf("%.1f%%", s.ProbRise*100)})
	table.Render()
}

// WriteBacktest renders a backtest trade log and final accounting.
func WriteBacktest(w io.Writer, symbol string, r *model.BacktestResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Date", "Side", "Price", "RSI", "Shares", "Return"})
	for _, tr := range r.Trades {
		ret := ""
		if tr.Side == model.TradeSell {
			ret = fmt.Sprintf("%.2f%%", tr.ReturnPct*100)
		}
		table.Append([]string{
			tr.Date.Format("2006-01-02"),
			string(tr.Side),
			fmt.Sprintf("%.2f", tr.Price),
			fmt.Sprintf("%.1f", tr.RSI),
			fmt.Sprintf("%.0f", tr.Shares),
			ret,
		})
	}
	table.Render()

	fmt.Fprintf(w, "%s: final %.2f, buy-and-hold %.2f\n", symbol, r.FinalValue, r.BuyHoldValue)
	if r.PositionOpen {
		fmt.Fprintln(w, "position still open at end of window")
	}
}

package notifier

import (
	"fmt"
	"strings"
	"time"

	"StockAdvisor/internal/model"
)

// FormatReport formats a portfolio report into a Telegram HTML message.
func FormatReport(r *model.Report) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>Portfolio Report</b> | %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04")))

	for _, row := range r.Rows {
		b.WriteString(fmt.Sprintf("<b>%s</b> (%s)\n", row.Name, row.Code))
		b.WriteString(fmt.Sprintf("  %.2f %s × %.0f = %s KRW\n",
			row.Price, row.Currency, row.Quantity, row.Value.StringFixed(0)))
		b.WriteString(fmt.Sprintf("  RSI %s | %s", row.Snapshot.RSI.Format(1), opinionEmoji(row.Signal.Opinion)))
		if reasons := row.Signal.Reasons(); len(reasons) > 0 {
			b.WriteString(" — " + strings.Join(reasons, ", "))
		}
		b.WriteString("\n\n")
	}

	b.WriteString("  ─────────────────\n")
	b.WriteString(fmt.Sprintf("💰 Total: %s KRW\n", r.TotalValue.StringFixed(0)))
	if r.FXAssumed {
		b.WriteString(fmt.Sprintf("⚠️ USD/KRW unavailable, assumed %.0f\n", r.FXRate))
	} else {
		b.WriteString(fmt.Sprintf("USD/KRW: %.2f\n", r.FXRate))
	}

	for _, s := range r.Skipped {
		b.WriteString(fmt.Sprintf("⏭ %s skipped: %s\n", s.Code, s.Reason))
	}

	return b.String()
}

// FormatAlert formats a single strong-signal alert.
func FormatAlert(row model.AnalysisRow) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🚨 <b>%s</b> (%s): %s\n", row.Name, row.Code, opinionEmoji(row.Signal.Opinion)))
	b.WriteString(fmt.Sprintf("Price %.2f %s | RSI %s | Score %+.1f\n",
		row.Price, row.Currency, row.Snapshot.RSI.Format(1), row.Signal.Score))
	for _, reason := range row.Signal.Reasons() {
		b.WriteString(fmt.Sprintf("  • %s\n", reason))
	}
	b.WriteString(fmt.Sprintf("\n%s", time.Now().Format("2006-01-02 15:04")))
	return b.String()
}

func opinionEmoji(op model.Opinion) string {
	switch op {
	case model.OpinionStrongBuy:
		return "🟢 STRONG BUY"
	case model.OpinionBuy:
		return "🟢 BUY"
	case model.OpinionHold:
		return "⚪ HOLD"
	case model.OpinionSell:
		return "🔴 SELL"
	case model.OpinionStrongSell:
		return "🔴 STRONG SELL"
	default:
		return string(op)
	}
}

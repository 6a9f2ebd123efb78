// Package renderer turns engine views into markdown for terminal display.
package renderer

import (
	"fmt"
	"io"

	"tradeview"
)

// RenderDashboard writes the dashboard statistics as a markdown report.
func RenderDashboard(w io.Writer, stats tradeview.DashboardStats) {
	fmt.Fprint(w, "# Trading Dashboard\n\n")

	fmt.Fprintln(w, "| | |")
	fmt.Fprintln(w, "|:---|---:|")
	fmt.Fprintf(w, "| Total Trades | %d |\n", stats.TotalTrades)
	fmt.Fprintf(w, "| Total Amount | %s |\n", stats.TotalAmount)
	fmt.Fprintf(w, "| Open Positions | %d |\n", stats.CurrentPositions)
	fmt.Fprintf(w, "| Market Value | %s |\n", stats.TotalMarketValue)
	fmt.Fprintf(w, "| **Unrealized P&L** | **%s** |\n", stats.TotalUnrealizedPnL.SignedString())
	fmt.Fprintln(w, "")

	if len(stats.Positions) == 0 {
		fmt.Fprint(w, "No open positions.\n")
		return
	}

	fmt.Fprint(w, "## Positions\n\n")
	fmt.Fprintln(w, "| Symbol | Name | Quantity | Avg Cost | Price | Value | P&L | Return |")
	fmt.Fprintln(w, "|:---|:---|---:|---:|---:|---:|---:|---:|")
	for _, pos := range stats.Positions {
		ret := "-"
		if pos.Return != nil {
			ret = pos.Return.SignedString()
		}
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			pos.Symbol,
			pos.Name,
			pos.Quantity,
			pos.Cost,
			orDash(pos.CurrentPrice),
			orDash(pos.MarketValue),
			signedOrDash(pos.PnL),
			ret,
		)
	}
}

// RenderReview writes one trading day's facts as a markdown report.
func RenderReview(w io.Writer, review *tradeview.DayReview) {
	fmt.Fprintf(w, "# Daily Review for %s\n\n", review.Date)

	if review.IsEmptyDay {
		fmt.Fprint(w, "No trades on this day.\n")
		return
	}

	fmt.Fprintln(w, "| | |")
	fmt.Fprintln(w, "|:---|---:|")
	fmt.Fprintf(w, "| Trades | %d |\n", review.TradeCount)
	fmt.Fprintf(w, "| Notional | %s |\n", review.Notional)
	fmt.Fprintf(w, "| **Realized P&L** | **%s** |\n", review.RealizedDelta.SignedString())
	fmt.Fprintln(w, "")

	fmt.Fprint(w, "## Trades\n\n")
	fmt.Fprintln(w, "| Side | Symbol | Name | Quantity | Price | Notional |")
	fmt.Fprintln(w, "|:---|:---|:---|---:|---:|---:|")
	for _, t := range review.Trades {
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s |\n",
			t.Side,
			t.Symbol,
			t.Name,
			t.Quantity,
			t.Price,
			t.Notional(),
		)
	}
}

func orDash(m *tradeview.Money) string {
	if m == nil {
		return "-"
	}
	return m.String()
}

func signedOrDash(m *tradeview.Money) string {
	if m == nil {
		return "-"
	}
	return m.SignedString()
}

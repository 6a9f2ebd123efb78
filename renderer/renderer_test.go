package renderer

import (
	"strings"
	"testing"

	"tradeview"
)

func money(v float64) *tradeview.Money {
	m := tradeview.CNY(v)
	return &m
}

func TestRenderDashboard(t *testing.T) {
	stats := tradeview.DashboardStats{
		TotalTrades:        3,
		TotalAmount:        tradeview.CNY(29400),
		CurrentPositions:   2,
		TotalMarketValue:   tradeview.CNY(20900),
		TotalUnrealizedPnL: tradeview.CNY(-100),
		Positions: []tradeview.PositionView{
			{
				Symbol:       "000001",
				Name:         "平安银行",
				Quantity:     tradeview.Q(600),
				Cost:         tradeview.CNY(10),
				CurrentPrice: money(11.50),
				MarketValue:  money(6900),
				PnL:          money(900),
			},
			{
				Symbol:   "600036",
				Quantity: tradeview.Q(500),
				Cost:     tradeview.CNY(30),
			},
		},
	}

	var b strings.Builder
	RenderDashboard(&b, stats)
	out := b.String()

	for _, want := range []string{
		"# Trading Dashboard",
		"| Total Trades | 3 |",
		"| Open Positions | 2 |",
		"## Positions",
		"000001",
		"平安银行",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q:\n%s", want, out)
		}
	}
	// The unpriced row shows dashes instead of empty valuation cells.
	if !strings.Contains(out, "| - | - | - | - |") {
		t.Errorf("unpriced position row is not dashed:\n%s", out)
	}
}

func TestRenderDashboard_NoPositions(t *testing.T) {
	var b strings.Builder
	RenderDashboard(&b, tradeview.DashboardStats{
		TotalAmount:        tradeview.CNY(0),
		TotalMarketValue:   tradeview.CNY(0),
		TotalUnrealizedPnL: tradeview.CNY(0),
	})
	if !strings.Contains(b.String(), "No open positions.") {
		t.Errorf("output misses the empty notice:\n%s", b.String())
	}
}

func TestRenderReview(t *testing.T) {
	review := &tradeview.DayReview{
		Date:          tradeview.MustParseDate("2024-01-05"),
		TradeCount:    1,
		Notional:      tradeview.CNY(4400),
		RealizedDelta: tradeview.CNY(400),
		Trades: []tradeview.TradeRecord{
			{
				Symbol:   "000001",
				Name:     "平安银行",
				Side:     tradeview.Sell,
				Quantity: tradeview.Q(400),
				Price:    tradeview.CNY(11),
				Day:      tradeview.MustParseDate("2024-01-05"),
			},
		},
	}

	var b strings.Builder
	RenderReview(&b, review)
	out := b.String()

	for _, want := range []string{
		"# Daily Review for 2024-01-05",
		"| Trades | 1 |",
		"## Trades",
		"| sell | 000001 |",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q:\n%s", want, out)
		}
	}
}

func TestRenderReview_EmptyDay(t *testing.T) {
	var b strings.Builder
	RenderReview(&b, &tradeview.DayReview{
		Date:       tradeview.MustParseDate("2024-01-03"),
		IsEmptyDay: true,
	})
	if !strings.Contains(b.String(), "No trades on this day.") {
		t.Errorf("output misses the empty notice:\n%s", b.String())
	}
}

package tradeview

import (
	"maps"
	"slices"
)

// PriceLookup resolves the current price of a symbol. The second return is
// false when no price is known; a missing price feed degrades the dashboard,
// it never fails it.
type PriceLookup func(symbol string) (Money, bool)

// PositionView is one dashboard row: an open position valued at the current
// price when one is known.
type PositionView struct {
	Symbol       string   `json:"symbol"`
	Name         string   `json:"name,omitempty"`
	Quantity     Quantity `json:"quantity"`
	Cost         Money    `json:"cost"`
	CurrentPrice *Money   `json:"currentPrice,omitempty"`
	MarketValue  *Money   `json:"marketValue,omitempty"`
	PnL          *Money   `json:"pnl,omitempty"`
	Return       *Percent `json:"return,omitempty"`
}

// DashboardStats is the roll-up view the dashboard renders.
type DashboardStats struct {
	TotalTrades        int            `json:"totalTrades"`
	TotalAmount        Money          `json:"totalAmount"`
	CurrentPositions   int            `json:"currentPositions"`
	TotalMarketValue   Money          `json:"totalMarketValue"`
	TotalUnrealizedPnL Money          `json:"totalUnrealizedPnl"`
	Positions          []PositionView `json:"positions"`
}

// Summarize derives dashboard statistics from a stored aggregation result.
//
// lookup may be nil. Positions without a current price contribute nothing to
// market value and unrealized P&L and carry no price fields in their row.
func Summarize(result *AggregationResult, lookup PriceLookup) DashboardStats {
	stats := DashboardStats{
		TotalTrades:        result.TotalTrades,
		TotalAmount:        result.TotalAmount,
		CurrentPositions:   len(result.Positions),
		TotalMarketValue:   CNY(0),
		TotalUnrealizedPnL: CNY(0),
		Positions:          make([]PositionView, 0, len(result.Positions)),
	}

	symbols := slices.Collect(maps.Keys(result.Positions))
	slices.Sort(symbols)
	for _, symbol := range symbols {
		pos := result.Positions[symbol]
		row := PositionView{
			Symbol:   pos.Symbol,
			Name:     pos.Name,
			Quantity: pos.Quantity,
			Cost:     pos.AverageCost,
		}
		if lookup != nil {
			if price, ok := lookup(symbol); ok {
				value := price.Mul(pos.Quantity)
				cost := pos.AverageCost.Mul(pos.Quantity)
				pnl := value.Sub(cost)
				ret := pnl.PercentOf(cost)
				row.CurrentPrice = &price
				row.MarketValue = &value
				row.PnL = &pnl
				row.Return = &ret
				stats.TotalMarketValue = stats.TotalMarketValue.Add(value)
				stats.TotalUnrealizedPnL = stats.TotalUnrealizedPnL.Add(pnl)
			}
		}
		stats.Positions = append(stats.Positions, row)
	}
	return stats
}

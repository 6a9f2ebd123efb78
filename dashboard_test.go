package tradeview

import "testing"

func dashboardResult(t *testing.T) *AggregationResult {
	t.Helper()
	result, err := Aggregate([]TradeRecord{
		buy("2024-01-02", "000001", 1000, 10.00, 0),
		buy("2024-01-03", "600036", 500, 30.00, 1),
		sell("2024-01-05", "000001", 400, 11.00, 2),
	})
	if err != nil {
		t.Fatalf("Aggregate() returned error: %v", err)
	}
	return result
}

func TestSummarize(t *testing.T) {
	prices := map[string]Money{
		"000001": CNY(11.50),
		"600036": CNY(28.00),
	}
	lookup := func(symbol string) (Money, bool) {
		p, ok := prices[symbol]
		return p, ok
	}

	stats := Summarize(dashboardResult(t), lookup)

	if stats.TotalTrades != 3 {
		t.Errorf("totalTrades = %d, want 3", stats.TotalTrades)
	}
	// 1000×10 + 500×30 + 400×11
	if !stats.TotalAmount.Equal(CNY(29400.00)) {
		t.Errorf("totalAmount = %s, want 29400.00", stats.TotalAmount)
	}
	if stats.CurrentPositions != 2 {
		t.Errorf("currentPositions = %d, want 2", stats.CurrentPositions)
	}
	// 600×11.50 + 500×28.00
	if !stats.TotalMarketValue.Equal(CNY(20900.00)) {
		t.Errorf("totalMarketValue = %s, want 20900.00", stats.TotalMarketValue)
	}
	// 600×(11.50−10.00) + 500×(28.00−30.00)
	if !stats.TotalUnrealizedPnL.Equal(CNY(-100.00)) {
		t.Errorf("totalUnrealizedPnl = %s, want -100.00", stats.TotalUnrealizedPnL)
	}

	if len(stats.Positions) != 2 {
		t.Fatalf("positions rows = %d, want 2", len(stats.Positions))
	}
	// Rows come out sorted by symbol.
	if stats.Positions[0].Symbol != "000001" || stats.Positions[1].Symbol != "600036" {
		t.Errorf("rows out of order: %s, %s", stats.Positions[0].Symbol, stats.Positions[1].Symbol)
	}
	row := stats.Positions[0]
	if row.CurrentPrice == nil || !row.CurrentPrice.Equal(CNY(11.50)) {
		t.Errorf("currentPrice = %v, want 11.50", row.CurrentPrice)
	}
	if row.MarketValue == nil || !row.MarketValue.Equal(CNY(6900.00)) {
		t.Errorf("marketValue = %v, want 6900.00", row.MarketValue)
	}
	if row.PnL == nil || !row.PnL.Equal(CNY(900.00)) {
		t.Errorf("pnl = %v, want 900.00", row.PnL)
	}
	// 900 gained on a 6000 cost
	if row.Return == nil || !row.Return.Equal(Percent(15)) {
		t.Errorf("return = %v, want 15%%", row.Return)
	}
}

func TestSummarize_MissingPriceDegrades(t *testing.T) {
	lookup := func(symbol string) (Money, bool) {
		if symbol == "000001" {
			return CNY(11.50), true
		}
		return Money{}, false
	}

	stats := Summarize(dashboardResult(t), lookup)

	// 600036 has no price: its row carries no valuation fields and the
	// totals only cover 000001.
	var unpriced *PositionView
	for i := range stats.Positions {
		if stats.Positions[i].Symbol == "600036" {
			unpriced = &stats.Positions[i]
		}
	}
	if unpriced == nil {
		t.Fatal("expected a row for 600036")
	}
	if unpriced.CurrentPrice != nil || unpriced.MarketValue != nil || unpriced.PnL != nil || unpriced.Return != nil {
		t.Error("unpriced row must carry no valuation fields")
	}
	if !stats.TotalMarketValue.Equal(CNY(6900.00)) {
		t.Errorf("totalMarketValue = %s, want 6900.00", stats.TotalMarketValue)
	}
	if !stats.TotalUnrealizedPnL.Equal(CNY(900.00)) {
		t.Errorf("totalUnrealizedPnl = %s, want 900.00", stats.TotalUnrealizedPnL)
	}
}

func TestSummarize_NilLookup(t *testing.T) {
	stats := Summarize(dashboardResult(t), nil)
	if stats.CurrentPositions != 2 {
		t.Errorf("currentPositions = %d, want 2", stats.CurrentPositions)
	}
	if !stats.TotalMarketValue.IsZero() || !stats.TotalUnrealizedPnL.IsZero() {
		t.Error("valuation totals must stay zero without a price feed")
	}
}

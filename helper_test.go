package tradeview

// buy is a helper for tests to create a buy trade from consts.
func buy(day, symbol string, qty, price float64, seq int) TradeRecord {
	return TradeRecord{
		Symbol:   symbol,
		Side:     Buy,
		Quantity: Q(qty),
		Price:    CNY(price),
		Day:      MustParseDate(day),
		Sequence: seq,
	}
}

// sell is a helper for tests to create a sell trade from consts.
func sell(day, symbol string, qty, price float64, seq int) TradeRecord {
	return TradeRecord{
		Symbol:   symbol,
		Side:     Sell,
		Quantity: Q(qty),
		Price:    CNY(price),
		Day:      MustParseDate(day),
		Sequence: seq,
	}
}

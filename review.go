package tradeview

// DayReview is the structured fact set for one trading day, the input of the
// narrative review. A day with no trades is a valid, explicitly empty review,
// not an error.
type DayReview struct {
	Date          Date          `json:"date"`
	TradeCount    int           `json:"tradeCount"`
	Notional      Money         `json:"notional"`
	RealizedDelta Money         `json:"realizedPnlDelta"`
	IsEmptyDay    bool          `json:"isEmptyDay"`
	Trades        []TradeRecord `json:"trades,omitempty"`
}

// ReviewDay selects the trades of one date and summarizes them.
//
// The realized P&L delta is computed against the cost basis known at day
// start: the replay first works through every trade before the day, then
// applies the day's trades with the same bookkeeping the aggregator uses.
// An oversell anywhere up to and including the day surfaces as an
// OversellError.
func ReviewDay(ledger *Ledger, on Date) (*DayReview, error) {
	review := &DayReview{
		Date:          on,
		Notional:      CNY(0),
		RealizedDelta: CNY(0),
	}

	trades := ledger.Records()
	SortTrades(trades)

	books := make(map[string]*book)
	for _, t := range trades {
		if t.Day.After(on) {
			break
		}
		b, ok := books[t.Symbol]
		if !ok {
			b = &book{totalCost: CNY(0), realized: CNY(0)}
			books[t.Symbol] = b
		}
		if t.Day.Before(on) {
			// Replay up to day start to establish the cost basis.
			if err := b.apply(t); err != nil {
				return nil, err
			}
			continue
		}

		// One of the day's trades: apply it with the same bookkeeping and
		// collect the day's facts.
		before := b.realized
		if err := b.apply(t); err != nil {
			return nil, err
		}
		review.RealizedDelta = review.RealizedDelta.Add(b.realized.Sub(before))

		review.TradeCount++
		review.Notional = review.Notional.Add(t.Notional())
		review.Trades = append(review.Trades, t)
	}

	review.IsEmptyDay = review.TradeCount == 0
	return review, nil
}

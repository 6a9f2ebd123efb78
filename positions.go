package tradeview

import "slices"

// Position is the current holding of one instrument with its cost basis and
// the realized profit and loss locked in so far. A position exists only while
// its quantity is positive; the aggregator removes it the moment it closes.
type Position struct {
	Symbol      string   `json:"symbol"`
	Name        string   `json:"name,omitempty"`
	Quantity    Quantity `json:"quantity"`
	AverageCost Money    `json:"averageCost"`
	RealizedPnL Money    `json:"realizedPnl"`
}

// AggregationResult is the position state derived by replaying a ledger.
// It is a pure function of the ledger: recomputing from the same trades
// always yields a byte-identical encoding.
type AggregationResult struct {
	Positions   map[string]Position `json:"positions"`
	TotalTrades int                 `json:"totalTrades"`
	TotalAmount Money               `json:"totalAmount"`
}

// book tracks the replay state of a single instrument using the
// weighted-average cost basis: buys re-average, sells realize against the
// running average and leave it unchanged.
type book struct {
	name      string
	quantity  Quantity
	totalCost Money
	realized  Money
}

// buy adds q units at total cost q×p, re-averaging the cost basis.
func (b *book) buy(q Quantity, p Money) {
	b.quantity = b.quantity.Add(q)
	b.totalCost = b.totalCost.Add(p.Mul(q))
}

// sell disposes q units at price p. It fails when q exceeds the holding:
// the quantity of a book is never negative at any point of a replay.
func (b *book) sell(symbol string, q Quantity, p Money) error {
	if q.GreaterThan(b.quantity) {
		return &OversellError{Symbol: symbol, Attempted: q, Available: b.quantity}
	}
	costOfSale := b.totalCost.Mul(q).Div(b.quantity)
	b.realized = b.realized.Add(p.Mul(q).Sub(costOfSale))
	b.totalCost = b.totalCost.Sub(costOfSale)
	b.quantity = b.quantity.Sub(q)
	// Selling the whole holding leaves totalCost at exactly zero, so a later
	// buy starts from a fresh average cost with no explicit reset. realized
	// keeps accumulating since inception, as a gains ledger does.
	return nil
}

// averageCost is defined only while the book holds a positive quantity.
func (b *book) averageCost() Money {
	return b.totalCost.Div(b.quantity)
}

// apply replays one trade into its book.
func (b *book) apply(t TradeRecord) error {
	if t.Name != "" {
		b.name = t.Name
	}
	switch t.Side {
	case Buy:
		b.buy(t.Quantity, t.Price)
		return nil
	case Sell:
		return b.sell(t.Symbol, t.Quantity, t.Price)
	default:
		return &ValidationError{Field: "side", Reason: "trade record has no side"}
	}
}

// Aggregate replays a ledger chronologically and derives the position state.
//
// The input order is not trusted: records are re-sorted by day then source
// sequence before the replay, so the result only depends on the set of
// records. On oversell the whole aggregation fails, no partial result is
// returned.
func Aggregate(trades []TradeRecord) (*AggregationResult, error) {
	sorted := slices.Clone(trades)
	SortTrades(sorted)

	books := make(map[string]*book)
	totalAmount := CNY(0)
	for _, t := range sorted {
		totalAmount = totalAmount.Add(t.Notional())
		b, ok := books[t.Symbol]
		if !ok {
			b = &book{totalCost: CNY(0), realized: CNY(0)}
			books[t.Symbol] = b
		}
		if err := b.apply(t); err != nil {
			return nil, err
		}
	}

	result := &AggregationResult{
		Positions:   make(map[string]Position),
		TotalTrades: len(sorted),
		TotalAmount: totalAmount,
	}
	for symbol, b := range books {
		if b.quantity.IsZero() {
			continue // closed positions are absent from the result
		}
		result.Positions[symbol] = Position{
			Symbol:      symbol,
			Name:        b.name,
			Quantity:    b.quantity,
			AverageCost: b.averageCost(),
			RealizedPnL: b.realized,
		}
	}
	return result, nil
}

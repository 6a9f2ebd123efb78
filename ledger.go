package tradeview

import (
	"iter"
	"maps"
	"slices"
)

// Ledger is the full ordered trade history parsed from one uploaded file.
//
// A Ledger preserves the source row order of its records; it is read-only
// after parsing. The aggregator re-sorts chronologically on replay rather
// than trusting this order.
type Ledger struct {
	trades []TradeRecord
}

// NewLedger creates a ledger over the given trade records.
func NewLedger(trades ...TradeRecord) *Ledger {
	return &Ledger{trades: trades}
}

// Len returns the number of trade records in the ledger.
func (l *Ledger) Len() int { return len(l.trades) }

// Records returns a copy of the ledger's trade records in source order.
func (l *Ledger) Records() []TradeRecord {
	return slices.Clone(l.trades)
}

// Trades returns an iterator that yields each trade in its original order.
// With no filter every trade is yielded; with filters, a trade is yielded
// when any filter accepts it.
func (l *Ledger) Trades(filters ...func(TradeRecord) bool) iter.Seq2[int, TradeRecord] {
	return func(yield func(int, TradeRecord) bool) {
		for i, t := range l.trades {
			accept := len(filters) == 0
			for _, filter := range filters {
				if filter(t) {
					accept = true
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(i, t) {
				return
			}
		}
	}
}

// OnDay returns a predicate that filters trades executed on a given day.
func OnDay(on Date) func(TradeRecord) bool {
	return func(t TradeRecord) bool { return t.Day == on }
}

// BeforeDay returns a predicate that filters trades executed strictly before a given day.
func BeforeDay(on Date) func(TradeRecord) bool {
	return func(t TradeRecord) bool { return t.Day.Before(on) }
}

// BySymbol returns a predicate that filters trades by instrument symbol.
func BySymbol(symbol string) func(TradeRecord) bool {
	return func(t TradeRecord) bool { return t.Symbol == symbol }
}

// OldestDay returns the date of the earliest trade in the ledger.
// It returns the zero Date if the ledger is empty.
func (l *Ledger) OldestDay() Date {
	var oldest Date
	for _, t := range l.trades {
		if oldest.IsZero() || t.Day.Before(oldest) {
			oldest = t.Day
		}
	}
	return oldest
}

// NewestDay returns the date of the latest trade in the ledger.
// It returns the zero Date if the ledger is empty.
func (l *Ledger) NewestDay() Date {
	var newest Date
	for _, t := range l.trades {
		if t.Day.After(newest) {
			newest = t.Day
		}
	}
	return newest
}

// AllSymbols iterates over the distinct instrument symbols of the ledger in
// sorted order.
func (l *Ledger) AllSymbols() iter.Seq[string] {
	return func(yield func(string) bool) {
		visited := make(map[string]struct{})
		for _, t := range l.trades {
			visited[t.Symbol] = struct{}{}
		}
		symbols := slices.Collect(maps.Keys(visited))
		slices.Sort(symbols)
		for _, s := range symbols {
			if !yield(s) {
				return
			}
		}
	}
}

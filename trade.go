package tradeview

import (
	"fmt"
	"sort"
	"strings"
)

// Side is the direction of a trade execution. It is a closed enum: a
// TradeRecord can only ever hold Buy or Sell, invalid directions are rejected
// at parse time.
type Side int

const (
	Buy Side = iota + 1
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// sideAliases maps the direction labels found in brokerage exports, both the
// original Chinese ones and their English equivalents, to a Side.
var sideAliases = map[string]Side{
	"买入":   Buy,
	"买":    Buy,
	"buy":  Buy,
	"b":    Buy,
	"卖出":   Sell,
	"卖":    Sell,
	"sell": Sell,
	"s":    Sell,
}

// ParseSide parses a trade direction label into a Side.
func ParseSide(s string) (Side, error) {
	side, ok := sideAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown trade side: %q", s)
	}
	return side, nil
}

// TradeRecord is one validated buy or sell execution. It is immutable once
// parsed.
//
// Sequence is the row position in the source file. When two trades share the
// same day, sequence is the deterministic tie-break so that replaying the
// ledger always visits trades in the same order.
type TradeRecord struct {
	Symbol   string   `json:"symbol"`
	Name     string   `json:"name,omitempty"`
	Side     Side     `json:"side"`
	Quantity Quantity `json:"quantity"`
	Price    Money    `json:"price"`
	Day      Date     `json:"date"`
	Sequence int      `json:"sequence"`
}

// Notional returns quantity × price for this trade, regardless of side.
func (t TradeRecord) Notional() Money {
	return t.Price.Mul(t.Quantity)
}

func (t TradeRecord) String() string {
	return fmt.Sprintf("%s %s %s %s @%s", t.Day, t.Side, t.Symbol, t.Quantity, t.Price)
}

// MarshalJSON implements the json.Marshaler interface for Side.
func (s Side) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *Side) UnmarshalJSON(bytes []byte) error {
	side, err := ParseSide(strings.Trim(string(bytes), `"`))
	if err != nil {
		return err
	}
	*s = side
	return nil
}

// SortTrades sorts trades chronologically, by day then by source sequence.
// The sort is deterministic for any input order of the same records.
func SortTrades(trades []TradeRecord) {
	sort.SliceStable(trades, func(i, j int) bool {
		if trades[i].Day != trades[j].Day {
			return trades[i].Day.Before(trades[j].Day)
		}
		return trades[i].Sequence < trades[j].Sequence
	})
}

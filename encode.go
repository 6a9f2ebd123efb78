package tradeview

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Encode serializes the aggregation result for storage.
//
// The encoding is canonical: fields in a fixed order, positions sorted by
// symbol. Replaying the same ledger therefore always stores the same bytes,
// which is what makes concurrent unsynchronized recomputation safe.
func (r *AggregationResult) Encode() ([]byte, error) {
	var positions jsonObjectWriter
	for _, symbol := range slices.Sorted(maps.Keys(r.Positions)) {
		pos := r.Positions[symbol]
		var w jsonObjectWriter
		w.Append("symbol", pos.Symbol)
		w.Optional("name", pos.Name)
		w.Append("quantity", pos.Quantity)
		w.Append("averageCost", pos.AverageCost)
		w.Append("realizedPnl", pos.RealizedPnL)
		raw, err := w.MarshalJSON()
		if err != nil {
			return nil, err
		}
		positions.AppendRaw(symbol, raw)
	}
	rawPositions, err := positions.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var w jsonObjectWriter
	w.AppendRaw("positions", rawPositions)
	w.Append("totalTrades", r.TotalTrades)
	w.Append("totalAmount", r.TotalAmount)
	return w.MarshalJSON()
}

// DecodeAggregationResult reads back a stored aggregation result.
func DecodeAggregationResult(data []byte) (*AggregationResult, error) {
	var r AggregationResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("could not decode aggregation result: %w", err)
	}
	if r.Positions == nil {
		r.Positions = make(map[string]Position)
	}
	return &r, nil
}

// Package pricefeed resolves current prices for the dashboard valuation.
//
// A Feed is best effort: a symbol it cannot price is simply reported unknown,
// the dashboard then degrades that position instead of failing.
package pricefeed

import (
	"context"

	"tradeview"
)

// Feed resolves the current price of an instrument.
type Feed interface {
	// Quote returns the current price for symbol. The boolean is false when
	// the feed knows no price for it.
	Quote(ctx context.Context, symbol string) (tradeview.Money, bool)
}

// Static is a fixed symbol to price table, typically the closing prices
// carried by an uploaded workbook.
type Static map[string]tradeview.Money

func (s Static) Quote(ctx context.Context, symbol string) (tradeview.Money, bool) {
	price, ok := s[symbol]
	return price, ok
}

// Chain queries feeds in order and returns the first known price.
type Chain []Feed

func (c Chain) Quote(ctx context.Context, symbol string) (tradeview.Money, bool) {
	for _, feed := range c {
		if feed == nil {
			continue
		}
		if price, ok := feed.Quote(ctx, symbol); ok {
			return price, ok
		}
	}
	return tradeview.Money{}, false
}

// Lookup adapts a feed into the dashboard's lookup function.
func Lookup(ctx context.Context, feed Feed) tradeview.PriceLookup {
	if feed == nil {
		return nil
	}
	return func(symbol string) (tradeview.Money, bool) {
		return feed.Quote(ctx, symbol)
	}
}

// Package tradeview reconstructs brokerage position state from a trade
// ledger. It parses uploaded trade tables into typed records, replays the
// record sequence with a weighted-average cost basis, and derives dashboard
// statistics and per-day review facts from the result.
//
// The core functionalities include:
//   - Ledger Parsing: Converting raw tabular exports (xlsx workbooks or CSV)
//     into an ordered, validated sequence of trade records. Parsing is
//     all-or-nothing: a single malformed row rejects the whole ledger.
//   - Position Aggregation: Replaying a trade sequence chronologically into
//     per-instrument positions with average cost and realized P&L. The
//     replay is a pure function of the ledger, so recomputation is safe and
//     idempotent; short positions are rejected.
//   - Dashboard Summaries: Roll-up statistics over open positions, valued at
//     externally supplied current prices when available.
//   - Day Reviews: Structured facts for one trading day, including the
//     realized P&L delta the day's sells locked in against the cost basis
//     known at day start.
//
// This package is the foundational logic for the `tv` command-line tool and
// the HTTP API in the httpapi package; both only orchestrate the operations
// defined here.
package tradeview

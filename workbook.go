package tradeview

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet names of a brokerage export workbook. Only the trade sheet is
// required; the others enrich the result when present.
const (
	sheetTrades     = "交易数据"
	sheetCloses     = "收盘价格"
	sheetSecurities = "证券信息"
)

// Workbook is the parsed content of one uploaded file: the trade ledger plus
// the optional reference sheets the export may carry.
type Workbook struct {
	Ledger *Ledger

	// Closes holds the latest known closing price per symbol, from the
	// optional closing-prices sheet. Nil when the sheet is absent.
	Closes map[string]Money
}

// ParseXLSX parses an xlsx workbook. The trade sheet is located by its
// canonical name, falling back to the first sheet; the optional sheets are
// skipped silently when absent or malformed, a price reference must never
// fail an upload that has a valid trade table.
func ParseXLSX(raw []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("unreadable xlsx: %v", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Reason: "workbook has no sheets"}
	}
	tradeSheet := sheets[0]
	for _, s := range sheets {
		if s == sheetTrades {
			tradeSheet = s
			break
		}
	}

	rows, err := f.GetRows(tradeSheet)
	if err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("unreadable sheet %q: %v", tradeSheet, err)}
	}
	trades, err := parseRows(rows)
	if err != nil {
		return nil, err
	}

	backfillNames(trades, parseSecuritiesSheet(f))

	return &Workbook{
		Ledger: NewLedger(trades...),
		Closes: parseClosesSheet(f),
	}, nil
}

// parseSecuritiesSheet reads the optional symbol → name reference sheet.
func parseSecuritiesSheet(f *excelize.File) map[string]string {
	rows, err := f.GetRows(sheetSecurities)
	if err != nil || len(rows) < 2 {
		return nil
	}
	schema := referenceSchema(rows[0], colSymbol, colName)
	if schema == nil {
		return nil
	}
	names := make(map[string]string)
	for _, row := range rows[1:] {
		symbol := schema.cell(row, colSymbol)
		name := schema.cell(row, colName)
		if symbol == "" || name == "" {
			continue
		}
		if _, ok := names[symbol]; !ok {
			names[symbol] = name // first entry wins, duplicates are dropped
		}
	}
	return names
}

// closeAliases extends the schema aliases with the closing-price header.
var closeAliases = []string{"收盘价", "收盘价格", "close", "closing price"}

// parseClosesSheet reads the optional closing-prices sheet and keeps the
// latest close per symbol.
func parseClosesSheet(f *excelize.File) map[string]Money {
	rows, err := f.GetRows(sheetCloses)
	if err != nil || len(rows) < 2 {
		return nil
	}
	schema := referenceSchema(rows[0], colSymbol, colDate)
	if schema == nil {
		return nil
	}
	closeIdx := -1
	for i, cell := range rows[0] {
		label := strings.ToLower(strings.TrimSpace(cell))
		for _, alias := range closeAliases {
			if label == alias {
				closeIdx = i
			}
		}
	}
	if closeIdx < 0 {
		return nil
	}

	closes := make(map[string]Money)
	latest := make(map[string]Date)
	for _, row := range rows[1:] {
		symbol := schema.cell(row, colSymbol)
		if symbol == "" || closeIdx >= len(row) {
			continue
		}
		day, err := parseDayCell(schema.cell(row, colDate))
		if err != nil {
			continue
		}
		price, err := parseDecimalCell(strings.TrimSpace(row[closeIdx]))
		if err != nil || !price.IsPositive() {
			continue
		}
		if last, ok := latest[symbol]; ok && !day.After(last) {
			continue
		}
		latest[symbol] = day
		closes[symbol] = M(price.value, ReportingCurrency)
	}
	if len(closes) == 0 {
		return nil
	}
	return closes
}

// referenceSchema resolves a header row of an optional reference sheet.
// Unlike the trade schema it returns nil instead of an error when a wanted
// column is missing.
func referenceSchema(header []string, wanted ...column) *tradeSchema {
	s := scanHeader(header)
	for _, col := range wanted {
		if _, ok := s.index[col]; !ok {
			return nil
		}
	}
	return s
}

// backfillNames fills blank trade names from the securities reference.
func backfillNames(trades []TradeRecord, names map[string]string) {
	if len(names) == 0 {
		return
	}
	for i := range trades {
		if trades[i].Name == "" {
			trades[i].Name = names[trades[i].Symbol]
		}
	}
}

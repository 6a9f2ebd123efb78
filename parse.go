package tradeview

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// column identifies one field of the expected trade schema.
type column int

const (
	colSymbol column = iota
	colName
	colSide
	colQuantity
	colPrice
	colDate
)

func (c column) String() string {
	switch c {
	case colSymbol:
		return "symbol"
	case colName:
		return "name"
	case colSide:
		return "side"
	case colQuantity:
		return "quantity"
	case colPrice:
		return "price"
	case colDate:
		return "date"
	default:
		return "unknown"
	}
}

// headerAliases maps each schema column to the header labels it may carry in
// a source file. Brokerage exports use the Chinese labels; hand-written CSV
// fixtures tend to use the English ones.
var headerAliases = map[column][]string{
	colSymbol:   {"证券代码", "代码", "symbol", "code"},
	colName:     {"证券名称", "名称", "name"},
	colSide:     {"买卖方向", "方向", "side", "direction"},
	colQuantity: {"成交数量", "数量", "quantity", "qty"},
	colPrice:    {"成交价格", "价格", "price"},
	colDate:     {"日期", "成交日期", "date", "timestamp"},
}

// requiredColumns are the columns a trade table must carry. Name is optional:
// when absent it is backfilled from the securities sheet or left empty.
var requiredColumns = []column{colSymbol, colSide, colQuantity, colPrice, colDate}

// tradeSchema is the resolved mapping of schema columns to cell indexes for
// one source table.
type tradeSchema struct {
	index map[column]int
}

// scanHeader matches a header row against the known aliases.
func scanHeader(header []string) *tradeSchema {
	s := &tradeSchema{index: make(map[column]int)}
	for i, cell := range header {
		label := strings.ToLower(strings.TrimSpace(cell))
		for col, aliases := range headerAliases {
			for _, alias := range aliases {
				if label == alias {
					if _, dup := s.index[col]; !dup {
						s.index[col] = i
					}
				}
			}
		}
	}
	return s
}

// resolveSchema matches a header row against the known aliases and checks
// that every required column is present.
func resolveSchema(header []string) (*tradeSchema, error) {
	s := scanHeader(header)
	for _, col := range requiredColumns {
		if _, ok := s.index[col]; !ok {
			return nil, &ParseError{Reason: fmt.Sprintf("missing required column %q", col)}
		}
	}
	return s, nil
}

// cell returns the trimmed value of a schema column in a row, or "" when the
// row is too short.
func (s *tradeSchema) cell(row []string, col column) string {
	i, ok := s.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseRows converts a table (header row plus data rows) into an ordered
// sequence of validated trade records. The conversion is all-or-nothing: the
// first bad row aborts with a ParseError carrying the 1-based data row.
func parseRows(rows [][]string) ([]TradeRecord, error) {
	if len(rows) == 0 {
		return nil, &ParseError{Reason: "empty table, expected a header row"}
	}
	schema, err := resolveSchema(rows[0])
	if err != nil {
		return nil, err
	}

	trades := make([]TradeRecord, 0, len(rows)-1)
	for n, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		t, err := schema.parseRow(row, len(trades))
		if err != nil {
			return nil, &ParseError{Row: n + 1, Reason: err.Error()}
		}
		trades = append(trades, t)
	}
	return trades, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseRow converts one data row into a TradeRecord with the given sequence.
func (s *tradeSchema) parseRow(row []string, sequence int) (TradeRecord, error) {
	var t TradeRecord

	t.Symbol = s.cell(row, colSymbol)
	if t.Symbol == "" {
		return t, fmt.Errorf("missing symbol")
	}
	t.Name = s.cell(row, colName)

	side, err := ParseSide(s.cell(row, colSide))
	if err != nil {
		return t, err
	}
	t.Side = side

	quantity, err := parseDecimalCell(s.cell(row, colQuantity))
	if err != nil {
		return t, fmt.Errorf("invalid quantity %q", s.cell(row, colQuantity))
	}
	t.Quantity = quantity
	if !t.Quantity.IsPositive() {
		return t, fmt.Errorf("quantity must be positive, got %s", t.Quantity)
	}

	price, err := parseDecimalCell(s.cell(row, colPrice))
	if err != nil {
		return t, fmt.Errorf("invalid price %q", s.cell(row, colPrice))
	}
	t.Price = M(price.value, ReportingCurrency)
	if t.Price.IsNegative() {
		return t, fmt.Errorf("price must not be negative, got %s", t.Price)
	}

	day, err := parseDayCell(s.cell(row, colDate))
	if err != nil {
		return t, err
	}
	t.Day = day
	t.Sequence = sequence
	return t, nil
}

// parseDecimalCell parses a numeric cell, tolerating thousands separators and
// a currency prefix as found in spreadsheet exports.
func parseDecimalCell(cell string) (Quantity, error) {
	cleaned := strings.NewReplacer(",", "", "¥", "", " ", "").Replace(cell)
	if cleaned == "" {
		return Quantity{}, fmt.Errorf("empty cell")
	}
	return ParseQuantity(cleaned)
}

// excelEpoch is day zero of the spreadsheet serial date system.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// parseDayCell parses a date cell. Spreadsheet cells may hold a serial day
// number instead of a formatted date, so that is tried after the textual
// layouts.
func parseDayCell(cell string) (Date, error) {
	if cell == "" {
		return Date{}, fmt.Errorf("missing date")
	}
	if day, err := ParseDate(cell); err == nil {
		return day, nil
	}
	if serial, err := strconv.ParseFloat(cell, 64); err == nil && serial > 0 {
		return NewDate(excelEpoch.AddDate(0, 0, int(serial)).Date()), nil
	}
	return Date{}, fmt.Errorf("invalid date %q", cell)
}

// ParseCSV parses a comma separated trade table into a ledger.
func ParseCSV(r io.Reader) (*Ledger, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rows are validated against the schema, not the csv geometry
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, &ParseError{Reason: fmt.Sprintf("unreadable csv: %v", err)}
	}
	trades, err := parseRows(rows)
	if err != nil {
		return nil, err
	}
	return NewLedger(trades...), nil
}

// zipMagic is the signature of an xlsx container.
var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// Parse sniffs the format of raw uploaded bytes and parses them into a
// workbook: an xlsx container is read as a multi-sheet workbook, anything
// else is treated as a single CSV trade table.
func Parse(raw []byte) (*Workbook, error) {
	if len(raw) == 0 {
		return nil, &ParseError{Reason: "empty file"}
	}
	if bytes.HasPrefix(raw, zipMagic) {
		return ParseXLSX(raw)
	}
	ledger, err := ParseCSV(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	return &Workbook{Ledger: ledger}, nil
}

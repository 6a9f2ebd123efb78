package tradeview

import (
	"errors"
	"strings"
	"testing"
)

const sampleCSV = `日期,证券代码,证券名称,买卖方向,成交价格,成交数量
2024-01-02,000001,平安银行,买入,10.50,1000
2024-01-03,600036,招商银行,买入,33.20,500
2024-01-05,000001,平安银行,卖出,11.20,400
`

func TestParseCSV_ChineseHeaders(t *testing.T) {
	ledger, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV() returned error: %v", err)
	}
	if ledger.Len() != 3 {
		t.Fatalf("ledger has %d trades, want 3", ledger.Len())
	}

	records := ledger.Records()
	first := records[0]
	if first.Symbol != "000001" || first.Name != "平安银行" {
		t.Errorf("first trade = %q %q, want 000001 平安银行", first.Symbol, first.Name)
	}
	if first.Side != Buy {
		t.Errorf("first trade side = %v, want Buy", first.Side)
	}
	if !first.Quantity.Equal(Q(1000)) {
		t.Errorf("first trade quantity = %s, want 1000", first.Quantity)
	}
	if !first.Price.Equal(CNY(10.50)) {
		t.Errorf("first trade price = %s, want 10.50", first.Price)
	}
	if !first.Day.Equal(MustParseDate("2024-01-02")) {
		t.Errorf("first trade day = %s, want 2024-01-02", first.Day)
	}

	last := records[2]
	if last.Side != Sell || last.Sequence != 2 {
		t.Errorf("last trade = side %v seq %d, want Sell seq 2", last.Side, last.Sequence)
	}
}

func TestParseCSV_EnglishHeaders(t *testing.T) {
	csv := `date,symbol,name,side,price,quantity
2024-01-02,000001,Ping An,buy,10.50,1000
2024-01-05,000001,Ping An,sell,11.20,400
`
	ledger, err := ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCSV() returned error: %v", err)
	}
	if ledger.Len() != 2 {
		t.Fatalf("ledger has %d trades, want 2", ledger.Len())
	}
	if got := ledger.Records()[1].Side; got != Sell {
		t.Errorf("second trade side = %v, want Sell", got)
	}
}

func TestParseCSV_OptionalNameColumn(t *testing.T) {
	csv := `date,symbol,side,price,quantity
2024-01-02,000001,buy,10.50,1000
`
	ledger, err := ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCSV() returned error: %v", err)
	}
	if got := ledger.Records()[0].Name; got != "" {
		t.Errorf("name = %q, want empty", got)
	}
}

func TestParseCSV_SkipsBlankRows(t *testing.T) {
	csv := "date,symbol,side,price,quantity\n2024-01-02,000001,buy,10.50,1000\n,,,,\n\n2024-01-03,000001,sell,11,500\n"
	ledger, err := ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCSV() returned error: %v", err)
	}
	if ledger.Len() != 2 {
		t.Errorf("ledger has %d trades, want 2", ledger.Len())
	}
}

func TestParseCSV_ToleratesFormattedNumbers(t *testing.T) {
	csv := `date,symbol,side,price,quantity
2024-01-02,000001,buy,"¥10.50","1,000"
`
	ledger, err := ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCSV() returned error: %v", err)
	}
	rec := ledger.Records()[0]
	if !rec.Quantity.Equal(Q(1000)) {
		t.Errorf("quantity = %s, want 1000", rec.Quantity)
	}
	if !rec.Price.Equal(CNY(10.50)) {
		t.Errorf("price = %s, want 10.50", rec.Price)
	}
}

func TestParseCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		row     int
		contains string
	}{
		{
			name:    "missing required column",
			csv:     "date,symbol,side,price\n2024-01-02,000001,buy,10.50\n",
			row:     0,
			contains: "quantity",
		},
		{
			name:    "unknown side",
			csv:     "date,symbol,side,price,quantity\n2024-01-02,000001,hold,10.50,100\n",
			row:     1,
			contains: "side",
		},
		{
			name:    "zero quantity",
			csv:     "date,symbol,side,price,quantity\n2024-01-02,000001,buy,10.50,0\n",
			row:     1,
			contains: "quantity",
		},
		{
			name:    "negative quantity",
			csv:     "date,symbol,side,price,quantity\n2024-01-02,000001,sell,10.50,-100\n",
			row:     1,
			contains: "quantity",
		},
		{
			name:    "negative price",
			csv:     "date,symbol,side,price,quantity\n2024-01-02,000001,buy,-10.50,100\n",
			row:     1,
			contains: "price",
		},
		{
			name:    "bad price",
			csv:     "date,symbol,side,price,quantity\n2024-01-02,000001,buy,abc,100\n",
			row:     1,
			contains: "price",
		},
		{
			name:    "bad date",
			csv:     "date,symbol,side,price,quantity\nnot-a-date,000001,buy,10.50,100\n",
			row:     1,
			contains: "date",
		},
		{
			name:    "missing symbol",
			csv:     "date,symbol,side,price,quantity\n2024-01-02,,buy,10.50,100\n",
			row:     1,
			contains: "symbol",
		},
		{
			name:    "bad row after good rows",
			csv:     "date,symbol,side,price,quantity\n2024-01-02,000001,buy,10.50,100\n2024-01-03,000001,sell,11.00,oops\n",
			row:     2,
			contains: "quantity",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(test.csv))
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("ParseCSV() error = %v, want ParseError", err)
			}
			if parseErr.Row != test.row {
				t.Errorf("row = %d, want %d", parseErr.Row, test.row)
			}
			if !strings.Contains(parseErr.Reason, test.contains) {
				t.Errorf("reason = %q, want mention of %q", parseErr.Reason, test.contains)
			}
		})
	}
}

func TestParse_SniffsCSV(t *testing.T) {
	wb, err := Parse([]byte(sampleCSV))
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if wb.Ledger.Len() != 3 {
		t.Errorf("ledger has %d trades, want 3", wb.Ledger.Len())
	}
	if len(wb.Closes) != 0 {
		t.Errorf("csv upload must carry no closing prices, got %d", len(wb.Closes))
	}
}

func TestParse_EmptyFile(t *testing.T) {
	_, err := Parse(nil)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Parse() error = %v, want ParseError", err)
	}
}

func TestParseDayCell_SerialDate(t *testing.T) {
	// 45293 is 2024-01-02 in the spreadsheet serial day system.
	day, err := parseDayCell("45293")
	if err != nil {
		t.Fatalf("parseDayCell() returned error: %v", err)
	}
	if !day.Equal(MustParseDate("2024-01-02")) {
		t.Errorf("day = %s, want 2024-01-02", day)
	}
}

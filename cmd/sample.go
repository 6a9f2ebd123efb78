package cmd

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// sampleCmd writes a small sample trade file to try the tool with.
type sampleCmd struct {
	output string
}

func (*sampleCmd) Name() string     { return "sample" }
func (*sampleCmd) Synopsis() string { return "write a sample trade file" }
func (*sampleCmd) Usage() string {
	return `tv sample [-o <file>]

  Write a sample csv trade file, ready to upload and process.
`
}

func (c *sampleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "sample_trades.csv", "Output file. '-' writes to stdout.")
}

// sampleTrades is a consistent little trading history: every sell is covered
// by an earlier buy.
var sampleTrades = [][]string{
	{"日期", "证券代码", "证券名称", "买卖方向", "成交价格", "成交数量"},
	{"2024-01-02", "000001", "平安银行", "买入", "10.50", "1000"},
	{"2024-01-02", "600036", "招商银行", "买入", "32.80", "500"},
	{"2024-01-03", "000858", "五粮液", "买入", "142.00", "100"},
	{"2024-01-05", "000001", "平安银行", "卖出", "11.20", "400"},
	{"2024-01-08", "600036", "招商银行", "买入", "31.50", "300"},
	{"2024-01-10", "000858", "五粮液", "卖出", "148.50", "100"},
	{"2024-01-12", "000001", "平安银行", "买入", "10.80", "200"},
	{"2024-01-15", "600036", "招商银行", "卖出", "33.40", "600"},
}

func (c *sampleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	out := os.Stdout
	if c.output != "-" {
		var err error
		out, err = os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
	}

	w := csv.NewWriter(out)
	if err := w.WriteAll(sampleTrades); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing sample: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.output != "-" {
		fmt.Printf("Sample written to %s\n", c.output)
	}
	return subcommands.ExitSuccess
}

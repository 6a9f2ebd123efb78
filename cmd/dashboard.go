package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"tradeview/renderer"
)

// dashboardCmd renders summary statistics of a processed file.
type dashboardCmd struct{}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "show positions and P&L statistics" }
func (*dashboardCmd) Usage() string {
	return `tv dashboard <fileId>

  Show the dashboard of a processed file: open positions, total traded
  amount, market value and unrealized P&L. Prices come from the closing
  prices of the uploaded workbook when it carries any.
`
}

func (*dashboardCmd) SetFlags(f *flag.FlagSet) {}

func (c *dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	svc, err := openService()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	stats, err := svc.Dashboard(ctx, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	renderer.RenderDashboard(&b, stats)
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// processCmd aggregates an uploaded file into positions.
type processCmd struct{}

func (*processCmd) Name() string     { return "process" }
func (*processCmd) Synopsis() string { return "parse an upload and aggregate it into positions" }
func (*processCmd) Usage() string {
	return `tv process <fileId>

  Parse the uploaded file, replay its trades into positions and store the
  result. Processing the same upload again produces the exact same result.
`
}

func (*processCmd) SetFlags(f *flag.FlagSet) {}

func (c *processCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	svc, err := openService()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	result, err := svc.Process(ctx, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Processed %d trades into %d open positions.\n", result.TotalTrades, len(result.Positions))
	return subcommands.ExitSuccess
}

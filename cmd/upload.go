package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// uploadCmd stores a raw trade file in the local store.
type uploadCmd struct{}

func (*uploadCmd) Name() string     { return "upload" }
func (*uploadCmd) Synopsis() string { return "store a trade file and print its file id" }
func (*uploadCmd) Usage() string {
	return `tv upload <file>

  Store a raw trade file (xlsx or csv) in the local store. The file is not
  parsed yet; run 'tv process <fileId>' to turn it into positions.
`
}

func (*uploadCmd) SetFlags(f *flag.FlagSet) {}

func (c *uploadCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	raw, err := os.ReadFile(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}

	svc, err := openService()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	id, err := svc.Upload(ctx, raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Println(id)
	return subcommands.ExitSuccess
}

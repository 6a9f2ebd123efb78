package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"tradeview"
	"tradeview/agent"
	"tradeview/renderer"
)

// reviewCmd renders one trading day of an uploaded file.
type reviewCmd struct {
	date   string
	assist bool
}

func (*reviewCmd) Name() string     { return "review" }
func (*reviewCmd) Synopsis() string { return "review the trades of one day" }
func (*reviewCmd) Usage() string {
	return `tv review [-d <date>] [-assist] <fileId>

  Show the trades, notional and realized P&L of one trading day. With
  -assist the day's facts are narrated by the AI assistant (requires
  GEMINI_API_KEY).
`
}

func (c *reviewCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date to review, like 2024-01-02. Defaults to today.")
	f.BoolVar(&c.assist, "assist", false, "Narrate the review with the AI assistant.")
}

func (c *reviewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}

	on := tradeview.Today()
	if c.date != "" {
		var err error
		on, err = tradeview.ParseDate(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	svc, err := openService()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		return subcommands.ExitFailure
	}
	review, err := svc.Review(ctx, f.Arg(0), on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var b strings.Builder
	renderer.RenderReview(&b, review)
	md := b.String()

	if c.assist && !review.IsEmptyDay {
		if narrated, err := narrate(ctx, md); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: assistant unavailable: %v\n", err)
		} else {
			md = narrated
		}
	}

	printMarkdown(md)
	return subcommands.ExitSuccess
}

// narrate sends the review facts to the narrator and returns its prose.
func narrate(ctx context.Context, facts string) (string, error) {
	client, err := agent.NewClient(ctx)
	if err != nil {
		return "", err
	}
	narrator := agent.NewNarrator()
	if err := narrator.Start(ctx, client); err != nil {
		return "", err
	}
	return narrator.Narrate(ctx, facts)
}

// The tv command ingests trade exports and serves position dashboards and
// daily reviews.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"tradeview/cmd"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion installs shell completion for the subcommands. It is a no-op
// outside of a completion request.
func completion() {
	files := predict.Files("*")
	spec := &complete.Command{
		Sub: map[string]*complete.Command{
			"upload":    {Args: files},
			"process":   {},
			"dashboard": {},
			"review": {Flags: map[string]complete.Predictor{
				"d":      predict.Something,
				"assist": predict.Nothing,
			}},
			"sample": {Flags: map[string]complete.Predictor{"o": files}},
			"serve":  {Flags: map[string]complete.Predictor{"addr": predict.Something}},
			"topic":  {Args: predict.Set{"readme", "formats", "api", "reviews"}},
		},
		Flags: map[string]complete.Predictor{
			"store": predict.Dirs("*"),
		},
	}
	spec.Complete("tv")
}

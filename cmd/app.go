// Package cmd implements the tv CLI application over the trade ledger engine.
package cmd

import (
	"flag"

	"github.com/google/subcommands"

	"tradeview/kvstore"
	"tradeview/service"
)

// Commands lists every subcommand of the application, in display order.
var Commands = []subcommands.Command{
	&uploadCmd{},
	&processCmd{},
	&dashboardCmd{},
	&reviewCmd{},
	&sampleCmd{},
	&serveCmd{},
	&topicCmd{},
}

// Register registers all subcommands on a commander.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var storePath = flag.String("store", ".tradeview", "Path to the local store folder")

// openService opens the file-backed store and wraps it in the ledger service.
func openService() (*service.Service, error) {
	store, err := kvstore.NewDir(*storePath)
	if err != nil {
		return nil, err
	}
	return service.New(store, nil, nil), nil
}

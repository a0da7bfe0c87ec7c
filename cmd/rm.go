package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "permanently delete a trade from the journal" }
func (*rmCmd) Usage() string {
	return `mj rm <trade-id>

  Deletes the trade with the given id. There is no undo: the trade is
  removed from the history and the history is rewritten. Unknown ids are
  ignored.
`
}

func (*rmCmd) SetFlags(_ *flag.FlagSet) {}

func (c *rmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one trade id")
		return subcommands.ExitUsageError
	}
	id := f.Arg(0)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	manager := openManager(cfg, nil)
	before := len(manager.Trades())
	manager.DeleteTrade(id)
	if len(manager.Trades()) == before {
		fmt.Fprintf(os.Stderr, "Warning: no trade with id %q\n", id)
		return subcommands.ExitSuccess
	}
	fmt.Printf("Deleted trade %s\n", id)
	return subcommands.ExitSuccess
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/macrojournal/renderer"
	"github.com/google/subcommands"
)

type logCmd struct {
	limit int
}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "display the trade journal, newest first" }
func (*logCmd) Usage() string {
	return `mj log [-n <count>]

  Displays the recorded trades as a table, newest first, with each trade's
  alignment against the bias that was current when it was opened.
`
}

func (c *logCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 0, "Maximum number of trades to show, 0 for all.")
}

func (c *logCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	manager := openManager(cfg, nil)
	trades := manager.Trades()
	if c.limit > 0 && len(trades) > c.limit {
		trades = trades[:c.limit]
	}
	printMarkdown(renderer.Trades(trades))
	return subcommands.ExitSuccess
}

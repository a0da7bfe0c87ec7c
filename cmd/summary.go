package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/macrojournal/renderer"
	"github.com/google/subcommands"
)

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display win-rate and alignment analytics" }
func (*summaryCmd) Usage() string {
	return `mj summary

  Displays overall analytics on the trade history: trade count, win rate,
  average R, the share of trades aligned with the prevailing bias, and the
  win rate broken down by alignment.
`
}

func (*summaryCmd) SetFlags(_ *flag.FlagSet) {}

func (*summaryCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	manager := openManager(cfg, nil)
	printMarkdown(renderer.Summary(manager.Summary()))
	return subcommands.ExitSuccess
}

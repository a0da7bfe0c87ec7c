package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type feedbackCmd struct{}

func (*feedbackCmd) Name() string     { return "feedback" }
func (*feedbackCmd) Synopsis() string { return "get educational feedback on a recorded trade" }
func (*feedbackCmd) Usage() string {
	return `mj feedback <trade-id>

  Asks the intelligence service for brief educational feedback on a trade,
  judged against the bias snapshot frozen into it at entry time.
`
}

func (*feedbackCmd) SetFlags(_ *flag.FlagSet) {}

func (c *feedbackCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	for _, trade := range manager.Trades() {
		if trade.ID != id {
			continue
		}
		service, err := newIntelligence(ctx, cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		text, err := service.TradeFeedback(ctx, trade)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		printMarkdown(text)
		return subcommands.ExitSuccess
	}
	fmt.Fprintf(os.Stderr, "Error: no trade with id %q\n", id)
	return subcommands.ExitFailure
}

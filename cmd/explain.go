package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/macrojournal"
	"github.com/google/subcommands"
)

type explainCmd struct{}

func (*explainCmd) Name() string     { return "explain" }
func (*explainCmd) Synopsis() string { return "explain the current bias for an asset in plain English" }
func (*explainCmd) Usage() string {
	return `mj explain <asset>

  Asks the intelligence service for a plain-English explanation of the
  current monthly bias for the asset: no price targets, no signals, just
  the directional context.
`
}

func (*explainCmd) SetFlags(_ *flag.FlagSet) {}

func (c *explainCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one asset symbol")
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	service, err := newIntelligence(ctx, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	manager := openManager(cfg, nil)
	bias := manager.BiasFor(macrojournal.Asset(f.Arg(0)))
	text, err := service.ExplainBias(ctx, bias)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	printMarkdown(text)
	return subcommands.ExitSuccess
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/macrojournal/renderer"
	"github.com/google/subcommands"
)

type biasCmd struct {
	sync bool
}

func (*biasCmd) Name() string     { return "bias" }
func (*biasCmd) Synopsis() string { return "display the current monthly bias set" }
func (*biasCmd) Usage() string {
	return `mj bias [-sync]

  Displays the current monthly bias per asset: stance, confidence, macro
  drivers and grounding sources. With -sync, refreshes from the intelligence
  source first; without it, the locally cached snapshot (or the seed set) is
  shown as-is.
`
}

func (c *biasCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.sync, "sync", false, "Refresh the bias set before displaying it.")
}

func (c *biasCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	var manager = openManager(cfg, nil)
	if c.sync {
		manager = openManager(cfg, newBiasSource(ctx, cfg))
		manager.Sync(ctx)
	}
	printMarkdown(renderer.Biases(manager.Biases(), manager.LastSync()))
	return subcommands.ExitSuccess
}

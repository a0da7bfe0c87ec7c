package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
)

type syncCmd struct{}

func (*syncCmd) Name() string     { return "sync" }
func (*syncCmd) Synopsis() string { return "refresh the monthly bias set from the intelligence source" }
func (*syncCmd) Usage() string {
	return `mj sync

  Fetches the latest monthly biases (factory feed first, model synthesis as
  fallback) and replaces the cached set wholesale. On failure the previous
  set stands; the journal is never left without biases.
`
}

func (*syncCmd) SetFlags(_ *flag.FlagSet) {}

func (*syncCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	manager := openManager(cfg, newBiasSource(ctx, cfg))

	before := manager.LastSync()
	manager.Sync(ctx)
	after := manager.LastSync()
	if after.Equal(before) {
		fmt.Fprintln(os.Stderr, "Sync did not refresh the bias set; previous data stands.")
		return subcommands.ExitSuccess
	}
	fmt.Printf("Synced %d biases at %s\n", len(manager.Biases()), after.Format(time.RFC3339))
	return subcommands.ExitSuccess
}

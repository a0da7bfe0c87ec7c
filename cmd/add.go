package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/macrojournal"
	"github.com/etnz/macrojournal/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type addCmd struct {
	asset     string
	direction string
	timeframe string
	entry     string
	exit      string
	resultR   float64
	notes     string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a trade in the journal" }
func (*addCmd) Usage() string {
	return `mj add -asset <symbol> -dir <buy|sell> [-tf <timeframe>] -entry <price> -exit <price> -r <result> [-notes <text>]

  Records a trade. The trade is tagged with the prevailing monthly bias for
  its asset and whether the direction aligned with it; that snapshot is
  frozen into the record and never changes afterwards.

Usage Examples:
$ mj add -asset EURUSD -dir sell -tf swing -entry 1.0850 -exit 1.0720 -r 1.8
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.asset, "asset", "", "Asset symbol, e.g. EURUSD.")
	f.StringVar(&c.direction, "dir", "", "Trade direction: buy or sell.")
	f.StringVar(&c.timeframe, "tf", "swing", "Timeframe: scalp, day, swing or position.")
	f.StringVar(&c.entry, "entry", "", "Entry price.")
	f.StringVar(&c.exit, "exit", "", "Exit price.")
	f.Float64Var(&c.resultR, "r", 0, "Risk-adjusted result in R, e.g. 1.8 or -1.")
	f.StringVar(&c.notes, "notes", "", "Free-form notes.")
}

func (c *addCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.asset == "" {
		fmt.Fprintln(os.Stderr, "Error: -asset is required")
		return subcommands.ExitUsageError
	}
	direction, err := macrojournal.ParseDirection(c.direction)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	timeframe, err := macrojournal.ParseTimeframe(c.timeframe)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	entry, err := decimal.NewFromString(c.entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid entry price %q: %v\n", c.entry, err)
		return subcommands.ExitUsageError
	}
	exit, err := decimal.NewFromString(c.exit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid exit price %q: %v\n", c.exit, err)
		return subcommands.ExitUsageError
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	manager := openManager(cfg, nil)
	trade := manager.AddTrade(macrojournal.TradeDraft{
		Asset:      macrojournal.Asset(c.asset),
		Direction:  direction,
		Timeframe:  timeframe,
		EntryPrice: entry,
		ExitPrice:  exit,
		ResultR:    c.resultR,
		Notes:      c.notes,
	})
	printMarkdown(renderer.Trade(trade))
	return subcommands.ExitSuccess
}

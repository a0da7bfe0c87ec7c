package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/macrojournal/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Handle shell completion requests before anything else.
	completion().Complete("mj")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	timeframes := predict.Set{"scalp", "day", "swing", "position"}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"journal-dir": predict.Dirs("*"),
			"config":      predict.Files("*.yaml"),
		},
		Sub: map[string]*complete.Command{
			"add": {Flags: map[string]complete.Predictor{
				"asset": predict.Something,
				"dir":   predict.Set{"buy", "sell"},
				"tf":    timeframes,
				"entry": predict.Something,
				"exit":  predict.Something,
				"r":     predict.Something,
				"notes": predict.Something,
			}},
			"rm":       {Args: predict.Something},
			"log":      {Flags: map[string]complete.Predictor{"n": predict.Something}},
			"bias":     {Flags: map[string]complete.Predictor{"sync": predict.Nothing}},
			"sync":     {},
			"summary":  {},
			"explain":  {Args: predict.Something},
			"feedback": {Args: predict.Something},
			"topic":    {Args: predict.Set{"readme", "bias", "journal", "alignment", "sync", "config"}},
		},
	}
}

// Package cmd implements the CLI application to manage a macro trading
// journal.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/macrojournal"
	"github.com/etnz/macrojournal/intelligence"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

// Commands is the list of subcommands. A main package registers them on a
// subcommands.Commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&addCmd{},
	&rmCmd{},
	&logCmd{},
	&biasCmd{},
	&syncCmd{},
	&summaryCmd{},
	&explainCmd{},
	&feedbackCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables for the shared flags.

var journalDir = flag.String("journal-dir", ".macrojournal", "Path to the journal directory holding trades and cached biases")
var configFile = flag.String("config", "", "Path to an optional YAML config file (universe, factory URL, model)")

// loadConfig loads the app config from the -config file, env and defaults.
func loadConfig() (*macrojournal.Config, error) {
	return macrojournal.LoadConfig(*configFile)
}

// openManager builds the journal manager on the app's directory store.
// Commands that never sync pass a nil source.
func openManager(cfg *macrojournal.Config, source macrojournal.BiasSource) *macrojournal.Manager {
	store := macrojournal.NewDirStore(*journalDir)
	return macrojournal.NewManager(store, source, macrojournal.WithUniverse(cfg.Universe))
}

// newBiasSource builds the live bias source chain: the factory feed first,
// then model synthesis. When no intelligence client can be built (typically
// a missing API key) the chain degrades to the feed alone.
func newBiasSource(ctx context.Context, cfg *macrojournal.Config) macrojournal.BiasSource {
	source := &macrojournal.FactorySource{URL: cfg.Factory.BaseURL}
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		log.Printf("intelligence synthesis unavailable: %v", err)
		return source
	}
	source.Fallback = intelligence.New(client, cfg.Intelligence.Model, nil)
	return source
}

// newIntelligence builds the intelligence service for the narrative
// commands (explain, feedback), which require a working client.
func newIntelligence(ctx context.Context, cfg *macrojournal.Config) (*intelligence.Service, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not initialize the intelligence client: %w", err)
	}
	return intelligence.New(client, cfg.Intelligence.Model, nil), nil
}

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when styling fails (e.g. no TTY).
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

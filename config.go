package macrojournal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultModel is the generative model used to synthesize biases when the
// configuration does not name one.
const DefaultModel = "gemini-3-flash-preview"

// Config holds the journal's application configuration.
//
// Every field has a usable default, so a missing config file is not an
// error: the zero config plus defaults describes the standard setup.
type Config struct {
	// Universe is the list of assets to track. Defaults to DefaultUniverse.
	Universe []Asset `yaml:"universe"`
	Factory  struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"factory"`
	Intelligence struct {
		Model string `yaml:"model"`
	} `yaml:"intelligence"`
}

// LoadConfig reads the config from a YAML file, then applies environment
// variable overrides (FACTORY_URL, GEMINI_MODEL) and defaults.
//
// An empty path skips the file and yields the default configuration.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("FACTORY_URL"); v != "" {
		cfg.Factory.BaseURL = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.Intelligence.Model = v
	}

	if len(cfg.Universe) == 0 {
		cfg.Universe = DefaultUniverse
	}
	if cfg.Factory.BaseURL == "" {
		cfg.Factory.BaseURL = DefaultFactoryURL
	}
	if cfg.Intelligence.Model == "" {
		cfg.Intelligence.Model = DefaultModel
	}
	return cfg, nil
}

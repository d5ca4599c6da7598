// Package config loads optional user configuration from
// ~/.habitkit/config.toml. A missing file is not an error: everything has a
// sensible default and the file only exists to override it.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the full user-facing configuration.
type Config struct {
	// DataDir is where the SQLite database lives.
	DataDir string `toml:"data_dir"`

	// MaxEntryFetch caps how much entry history is loaded per habit when
	// recomputing streaks.
	MaxEntryFetch int `toml:"max_entry_fetch"`

	Insights InsightsConfig `toml:"insights"`
}

// InsightsConfig tunes the analysis engine.
type InsightsConfig struct {
	// MinEntriesForAnalysis is the completion count below which a habit is
	// excluded from portfolio-wide averages.
	MinEntriesForAnalysis int `toml:"min_entries_for_analysis"`
}

// Default returns the built-in configuration.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DataDir:       filepath.Join(home, ".habitkit"),
		MaxEntryFetch: 1000,
		Insights: InsightsConfig{
			MinEntriesForAnalysis: 5,
		},
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".habitkit", "config.toml")
}

// Load reads the TOML file at path, layered over Default. A missing file
// yields the defaults; a malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if cfg.DataDir == "" {
		cfg.DataDir = Default().DataDir
	}
	if cfg.MaxEntryFetch <= 0 {
		cfg.MaxEntryFetch = Default().MaxEntryFetch
	}
	if cfg.Insights.MinEntriesForAnalysis <= 0 {
		cfg.Insights.MinEntriesForAnalysis = Default().Insights.MinEntriesForAnalysis
	}
	return cfg, nil
}

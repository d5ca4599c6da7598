package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir == "" {
		t.Error("DataDir should default to a non-empty path")
	}
	if cfg.MaxEntryFetch != 1000 {
		t.Errorf("MaxEntryFetch = %d, want 1000", cfg.MaxEntryFetch)
	}
	if cfg.Insights.MinEntriesForAnalysis != 5 {
		t.Errorf("MinEntriesForAnalysis = %d, want 5", cfg.Insights.MinEntriesForAnalysis)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
data_dir = "/tmp/habitkit-test"
max_entry_fetch = 250

[insights]
min_entries_for_analysis = 10
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/tmp/habitkit-test" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.MaxEntryFetch != 250 {
		t.Errorf("MaxEntryFetch = %d, want 250", cfg.MaxEntryFetch)
	}
	if cfg.Insights.MinEntriesForAnalysis != 10 {
		t.Errorf("MinEntriesForAnalysis = %d, want 10", cfg.Insights.MinEntriesForAnalysis)
	}
}

func TestLoad_PartialFileKeepsOtherDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`data_dir = "/tmp/elsewhere"`), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/tmp/elsewhere" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.Insights.MinEntriesForAnalysis != 5 {
		t.Errorf("MinEntriesForAnalysis = %d, want default 5", cfg.Insights.MinEntriesForAnalysis)
	}
}

func TestLoad_MalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`data_dir = [broken`), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected parse error for malformed TOML")
	}
}

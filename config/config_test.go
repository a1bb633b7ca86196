package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Chart.Renderer != "spark" {
		t.Errorf("Chart.Renderer = %q, expected spark", cfg.Chart.Renderer)
	}
	if cfg.Chart.Height != 1 {
		t.Errorf("Chart.Height = %d, expected 1", cfg.Chart.Height)
	}
	if cfg.Chart.MaxLegend != 5 {
		t.Errorf("Chart.MaxLegend = %d, expected 5", cfg.Chart.MaxLegend)
	}
	if cfg.Source.Branch != "HEAD" {
		t.Errorf("Source.Branch = %q, expected HEAD", cfg.Source.Branch)
	}
	if !cfg.Source.NoMerges {
		t.Errorf("Source.NoMerges = false, expected true")
	}
	if len(cfg.Authors.Include) != 0 || len(cfg.Authors.Exclude) != 0 {
		t.Errorf("author filters should default empty")
	}
}

func TestLoadConfig_MergesWithDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gitchart.json")
	content := `{
		"chart": {"renderer": "html", "height": 4, "maxLegend": 5},
		"authors": {"exclude": ["*bot*"]}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("unexpected error writing config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Chart.Renderer != "html" {
		t.Errorf("Chart.Renderer = %q, expected html", cfg.Chart.Renderer)
	}
	if cfg.Chart.Height != 4 {
		t.Errorf("Chart.Height = %d, expected 4", cfg.Chart.Height)
	}
	if len(cfg.Authors.Exclude) != 1 || cfg.Authors.Exclude[0] != "*bot*" {
		t.Errorf("Authors.Exclude = %v, expected [*bot*]", cfg.Authors.Exclude)
	}
	// Untouched sections keep their defaults.
	if cfg.Source.Branch != "HEAD" {
		t.Errorf("Source.Branch = %q, expected default HEAD", cfg.Source.Branch)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Chart.Renderer != "spark" {
		t.Errorf("Chart.Renderer = %q, expected default spark", cfg.Chart.Renderer)
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("unexpected error writing config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the root configuration structure. It is constructed once at
// startup and passed by reference; nothing mutates it afterwards.
type Config struct {
	Chart   ChartConfig  `json:"chart"`
	Source  SourceConfig `json:"source"`
	Authors AuthorConfig `json:"authors"`
}

// ChartConfig holds presentation defaults that flags may override.
type ChartConfig struct {
	Renderer   string `json:"renderer"`   // spark, gnuplot, url, html, json, csv
	Height     int    `json:"height"`     // Rows for the glyph chart
	MaxLegend  int    `json:"maxLegend"`  // Authors shown in legends
	TimeFormat string `json:"timeFormat"` // Go time layout override for labels
	Title      string `json:"title"`
}

// SourceConfig holds commit source defaults.
type SourceConfig struct {
	Branch   string `json:"branch"`
	NoMerges bool   `json:"noMerges"`
	UseCLI   bool   `json:"useCli"` // Shell to the git CLI instead of go-git
	Timezone string `json:"timezone"`
}

// AuthorConfig holds author filtering globs.
type AuthorConfig struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Chart: ChartConfig{
			Renderer:  "spark",
			Height:    1,
			MaxLegend: 5,
		},
		Source: SourceConfig{
			Branch:   "HEAD",
			NoMerges: true,
		},
		Authors: AuthorConfig{
			Include: []string{},
			Exclude: []string{},
		},
	}
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{".gitchart.json"}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, ".gitchart.json"))
		} else if envHome := os.Getenv("HOME"); envHome != "" {
			candidates = append(candidates, filepath.Join(envHome, ".gitchart.json"))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Package config loads on-disk defaults for gosearch invocations, following
// the same "missing file is not an error" pattern as blueman82-conductor's
// internal/config package.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds file-sourced defaults. CLI flags override these, except
// ExcludeDirs, to which --exclude-dir names are added; these in turn override
// the built-in defaults returned by Default().
type Config struct {
	Threads       int      `yaml:"threads"`
	ColorsEnabled bool     `yaml:"colors_enabled"`
	Output        string   `yaml:"output"`
	MaxFileSize   string   `yaml:"max_file_size"`
	ExcludeDirs   []string `yaml:"exclude_dirs"`
}

// Default returns the built-in configuration used when no file is found.
func Default() *Config {
	return &Config{
		Threads:       0, // 0 means "let search.DefaultThreads() decide"
		ColorsEnabled: true,
		Output:        "pretty",
		MaxFileSize:   "64MB",
		ExcludeDirs:   nil,
	}
}

// Load reads a YAML config file at path. A missing file is not an error: it
// returns Default() unmodified.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

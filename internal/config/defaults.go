package config

import (
	"os"
	"path/filepath"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TMPLSTORE_"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		State: StateConfig{
			File:        DefaultStatePath(),
			LockTimeout: 10,
		},
		Source: SourceConfig{
			Timeout:   30,
			UserAgent: "tmplstore",
		},
		Output: OutputConfig{
			Format: "json",
		},
	}
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", "tmplstore", "config.json")
}

// DefaultStatePath returns the default state file path.
func DefaultStatePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "tmplstore-state.json"
	}
	return filepath.Join(homeDir, ".local", "state", "tmplstore", "state.json")
}

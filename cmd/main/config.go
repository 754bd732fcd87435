package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/natefinch/atomic"
)

// MarkovConfig holds the settings for building chains and walking them.
type MarkovConfig struct {
	Order                  int      `json:"order"`
	StopAtSentenceBoundary bool     `json:"stop_at_sentence_boundary"`
	MaxTokens              int      `json:"max_tokens"`
	Corpus                 []string `json:"corpus"`
}

// PublishConfig holds the settings for posting generated text.
type PublishConfig struct {
	Platform    string `json:"platform"`
	Tag         string `json:"tag"`
	MaxAttempts int    `json:"max_attempts"`
	Confirm     bool   `json:"confirm"`
	LedgerPath  string `json:"ledger_path"`
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	LogLevel string         `json:"log_level"`
	Markov   *MarkovConfig  `json:"markov_config"`
	Publish  *PublishConfig `json:"publish_config"`
}

// DefaultConfig creates a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Markov: &MarkovConfig{
			Order:                  2,
			StopAtSentenceBoundary: true,
			MaxTokens:              0,
			Corpus:                 []string{"green-eggs.txt"},
		},
		Publish: &PublishConfig{
			Platform:    "",
			Tag:         "#markov",
			MaxAttempts: 1000,
			Confirm:     true,
			LedgerPath:  "~/.markov/ledger.db",
		},
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	path, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path: %w", err)
	}

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// The defaults are still usable.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// A file may omit whole sections.
	defaults := DefaultConfig()
	if config.Markov == nil {
		config.Markov = defaults.Markov
	}
	if config.Publish == nil {
		config.Publish = defaults.Publish
	}

	return config, nil
}

// parseLogLevel maps a config level name to a slog.Level, defaulting to info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// expandPaths expands a leading ~ in every path.
func expandPaths(paths []string) ([]string, error) {
	expanded := make([]string, 0, len(paths))
	for _, p := range paths {
		e, err := homedir.Expand(p)
		if err != nil {
			return nil, fmt.Errorf("failed to expand path %q: %w", p, err)
		}
		expanded = append(expanded, e)
	}
	return expanded, nil
}

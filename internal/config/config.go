// Package config provides configuration loading for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	APIKey   string `json:"api_key,omitempty"`   // Gemini API key
	Model    string `json:"model,omitempty"`     // Model identifier override
	LogLevel string `json:"log_level,omitempty"` // debug, info, warn, error
}

// Load reads configuration from a JSON file.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns configuration taken from environment variables. A .env
// file loaded by the caller feeds the same variables.
func FromEnv() Config {
	return Config{
		APIKey:   os.Getenv("GEMINI_API_KEY"),
		Model:    os.Getenv("INTERVIEW_COACH_MODEL"),
		LogLevel: os.Getenv("INTERVIEW_COACH_LOG_LEVEL"),
	}
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	return result
}

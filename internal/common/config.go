// Package common provides shared utilities for Finsight
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Finsight
type Config struct {
	Environment string        `toml:"environment"`
	Source      SourceConfig  `toml:"source"`
	Storage     StorageConfig `toml:"storage"`
	Clients     ClientsConfig `toml:"clients"`
	Logging     LoggingConfig `toml:"logging"`
}

// SourceConfig holds the bank statement source configuration
type SourceConfig struct {
	Path  string `toml:"path"`  // Path to the statement workbook (.xlsx)
	Sheet string `toml:"sheet"` // Worksheet name; empty means the first sheet
}

// StorageConfig holds file storage configuration
type StorageConfig struct {
	Path         string `toml:"path"`          // Base directory for reports and charts
	SettingsPath string `toml:"settings_path"` // Path to the user settings JSON file
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	AlphaVantage AlphaVantageConfig `toml:"alphavantage"`
}

// AlphaVantageConfig holds Alpha Vantage API configuration
type AlphaVantageConfig struct {
	BaseURL      string `toml:"base_url"`
	APIKey       string `toml:"api_key"`
	BaseCurrency string `toml:"base_currency"` // Quote currency for exchange rates
	RateLimit    int    `toml:"rate_limit"`
	Timeout      string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *AlphaVantageConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Source: SourceConfig{
			Path: "data/operations.xlsx",
		},
		Storage: StorageConfig{
			Path:         "data",
			SettingsPath: "user_settings.json",
		},
		Clients: ClientsConfig{
			AlphaVantage: AlphaVantageConfig{
				BaseURL:      "https://www.alphavantage.co/query",
				BaseCurrency: "RUB",
				RateLimit:    5,
				Timeout:      "10s",
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FINSIGHT_ENV"); env != "" {
		config.Environment = env
	}

	if level := os.Getenv("FINSIGHT_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("FINSIGHT_SOURCE_PATH"); path != "" {
		config.Source.Path = path
	}

	if path := os.Getenv("FINSIGHT_DATA_PATH"); path != "" {
		config.Storage.Path = path
		config.Storage.SettingsPath = filepath.Join(path, "user_settings.json")
	}

	if path := os.Getenv("FINSIGHT_SETTINGS_PATH"); path != "" {
		config.Storage.SettingsPath = path
	}

	// The API key is never embedded in source; it arrives through config or env
	if key := os.Getenv("FINSIGHT_ALPHAVANTAGE_API_KEY"); key != "" {
		config.Clients.AlphaVantage.APIKey = key
	}

	if cur := os.Getenv("FINSIGHT_BASE_CURRENCY"); cur != "" {
		config.Clients.AlphaVantage.BaseCurrency = cur
	}
}

// ValidateRequired returns the names of required fields that are missing.
// Only the quote client needs credentials; everything else has defaults.
func (c *Config) ValidateRequired() []string {
	var missing []string
	if c.Clients.AlphaVantage.APIKey == "" {
		missing = append(missing, "clients.alphavantage.api_key")
	}
	return missing
}

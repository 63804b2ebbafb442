// Package config manages application configuration.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration for a crawl run.
// Invalid values are a fatal error surfaced before any query is made.
type Config struct {
	// APIKey is the YouTube Data API v3 key.
	APIKey string `mapstructure:"api_key"`

	// Keywords are the seed keywords to crawl.
	Keywords []string `mapstructure:"keywords"`

	// MaxResultsPerKeyword caps the number of results per API call.
	MaxResultsPerKeyword int `mapstructure:"max_results_per_keyword"`

	// RequestsPerSecond budgets the delay between seed keywords (0 = no delay).
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`

	// MaxDepth is the recursion depth limit.
	MaxDepth int `mapstructure:"max_depth"`

	// MaxRetries is the number of attempts per API call.
	MaxRetries int `mapstructure:"max_retries"`

	// DefaultTimeout is the base backoff in seconds between retry attempts.
	DefaultTimeout float64 `mapstructure:"default_timeout"`

	// OutputPath is where crawl results are written, one JSON object per line.
	OutputPath string `mapstructure:"output_path"`

	// LogLevel is the zerolog level name (trace|debug|info|warn|error).
	LogLevel string `mapstructure:"log_level"`

	// LogDir is the directory for rotated log files.
	LogDir string `mapstructure:"log_dir"`
}

// BaseBackoff returns DefaultTimeout as a duration.
func (c *Config) BaseBackoff() time.Duration {
	return time.Duration(c.DefaultTimeout * float64(time.Second))
}

// Load reads configuration from the given file (or config.json in the
// working directory when path is empty), applies VIDCRAWL_* environment
// overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("max_retries", 5)
	v.SetDefault("default_timeout", 1.0)
	v.SetDefault("output_path", "search_results.txt")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_dir", "logs")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("json")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("VIDCRAWL")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file not found: %w", err)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that configuration values are valid and consistent.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api_key must be a non-empty string")
	}
	if len(c.Keywords) == 0 {
		return fmt.Errorf("keywords must be a non-empty list")
	}
	if c.MaxResultsPerKeyword < 1 {
		return fmt.Errorf("max_results_per_keyword must be a positive integer")
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second must be a non-negative number")
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be a positive integer")
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("max_retries must be a positive integer")
	}
	if c.DefaultTimeout < 0 {
		return fmt.Errorf("default_timeout must be a non-negative number")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output_path must be a non-empty string")
	}
	return nil
}

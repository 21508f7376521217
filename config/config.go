// Package config holds process configuration, loaded from defaults, an
// optional YAML file and CRIMESTATS_* environment variables.
package config

import (
	"fmt"

	"github.com/zalepa/crimestats/aggregate"
	"github.com/zalepa/crimestats/incident"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr is the dashboard listen address, e.g. ":8050".
	Addr string `koanf:"addr"`

	// DataPath is the incident CSV read at startup.
	DataPath string `koanf:"data_path"`

	// DataURL is where the download command fetches the CSV from.
	DataURL string `koanf:"data_url"`

	// UnreliableThrough drops records from this year and earlier.
	UnreliableThrough int `koanf:"unreliable_through"`

	// BaseYear and CompareYear are the trend reference years.
	BaseYear    int `koanf:"base_year"`
	CompareYear int `koanf:"compare_year"`

	// ExcludedCategories are labels left out of the trend panel.
	ExcludedCategories []string `koanf:"excluded_categories"`

	// Categories overrides the built-in code to label table when set.
	Categories []incident.LabelEntry `koanf:"categories"`

	// RedisURL enables the shared chart cache, e.g. redis://localhost:6379/0.
	RedisURL string `koanf:"redis_url"`

	// CacheSize and CacheTTLSeconds bound the chart cache.
	CacheSize       int `koanf:"cache_size"`
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`
}

// New returns a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":8050",
		DataPath:           "Criminal_Offences_Map.csv",
		UnreliableThrough:  aggregate.UnreliableThrough,
		BaseYear:           aggregate.DefaultBaseYear,
		CompareYear:        aggregate.DefaultCompareYear,
		ExcludedCategories: append([]string(nil), aggregate.DefaultExcluded...),
		CacheSize:          256,
		CacheTTLSeconds:    3600,
	}
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.BaseYear <= c.UnreliableThrough || c.CompareYear <= c.UnreliableThrough:
		return fmt.Errorf("%w: reference years must be after %d", ErrInvalidConfig, c.UnreliableThrough)
	case c.CacheSize < 0 || c.CacheTTLSeconds < 0:
		return fmt.Errorf("%w: cache size and ttl must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Labels(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Labels returns the configured label table, or the built-in one.
func (c *Config) Labels() (*incident.Labels, error) {
	if len(c.Categories) == 0 {
		return incident.DefaultLabels(), nil
	}
	return incident.NewLabels(c.Categories)
}

// TrendOptions returns the trend settings.
func (c *Config) TrendOptions() aggregate.TrendOptions {
	return aggregate.TrendOptions{
		BaseYear:    c.BaseYear,
		CompareYear: c.CompareYear,
		Excluded:    append([]string(nil), c.ExcludedCategories...),
	}
}

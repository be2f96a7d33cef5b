// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/datalens/linkedscout/internal/browser"
	"github.com/datalens/linkedscout/internal/output"
)

// RateLimitConfig bounds the sustained fetch rate across all workers.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" json:"requests_per_second"`
	Burst             int     `yaml:"burst" json:"burst"`
}

// MetricsConfig controls the optional Prometheus endpoint.
type MetricsConfig struct {
	Enabled       bool   `yaml:"enabled" json:"enabled"`
	ListenAddress string `yaml:"listen_address" json:"listen_address"`
}

// Config is the full scraper configuration. It is threaded explicitly into
// the components that need it; there is no process-wide mutable state.
type Config struct {
	MaxPosts   int             `yaml:"max_posts" json:"max_posts"`
	MaxWorkers int             `yaml:"max_workers" json:"max_workers"`
	Browser    *browser.Config `yaml:"browser,omitempty" json:"browser,omitempty"`
	RateLimit  RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`
	Output     output.Options  `yaml:"output" json:"output"`
	Metrics    MetricsConfig   `yaml:"metrics" json:"metrics"`
}

// Default returns the configuration used when no file is supplied. The
// SQLite backend keeps local runs credential-free; MongoDB is selected via
// config file or the -output flag.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(filename string) (*Config, error) {
	if filename == "" {
		return nil, fmt.Errorf("configuration filename cannot be empty")
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", filename)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %v", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes loads configuration from YAML bytes, expanding environment
// variable references such as ${MONGO_URI}.
func LoadFromBytes(data []byte) (*Config, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("configuration data cannot be empty")
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML configuration: %v", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}
	return &cfg, nil
}

// applyDefaults fills unset fields with working defaults.
func applyDefaults(cfg *Config) {
	if cfg.MaxPosts <= 0 {
		cfg.MaxPosts = 15
	}
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = 5
	}
	if cfg.Browser == nil {
		cfg.Browser = browser.DefaultConfig()
	}
	if cfg.RateLimit.RequestsPerSecond <= 0 {
		cfg.RateLimit.RequestsPerSecond = 0.5
	}
	if cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = 2
	}
	if cfg.Output.Type == "" {
		cfg.Output.Type = output.TypeSQLite
		cfg.Output.SQLite.Path = "linkedscout.db"
	}
	if cfg.Metrics.Enabled && cfg.Metrics.ListenAddress == "" {
		cfg.Metrics.ListenAddress = ":9090"
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.MaxPosts <= 0 {
		return fmt.Errorf("max_posts must be positive")
	}
	if c.MaxWorkers <= 0 {
		return fmt.Errorf("max_workers must be positive")
	}
	if c.Browser.SettleMax < c.Browser.SettleMin {
		return fmt.Errorf("browser settle_max must not be below settle_min")
	}
	if c.Browser.NavigationTimeout <= 0 {
		return fmt.Errorf("browser navigation_timeout must be positive")
	}
	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output: %v", err)
	}
	return nil
}

// Package config loads runtime settings for the BookLog CLI. Sources are
// layered: built-in defaults, then a JSON file, then environment variables,
// then command-line flags, with later sources winning.
package config

import "time"

// Config holds runtime settings for the BookLog CLI.
//
// Fields:
//   - APIBaseURL: base URL of the REST API, including the /api/ prefix.
//   - RequestTimeout: per-request timeout of the HTTP transport.
//   - Verbose: enables debug logging.
type Config struct {
	APIBaseURL     string        `env:"BOOKLOG_API_URL"`
	RequestTimeout time.Duration `env:"BOOKLOG_REQUEST_TIMEOUT"`
	Verbose        bool          `env:"BOOKLOG_VERBOSE"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000/api/"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file was named), environment variables and
// command-line flags, in that order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

package config

import (
	"encoding/json"
	"os"

	"github.com/ameleshko/booklog-cli/internal/flagx"
	"github.com/ameleshko/booklog-cli/internal/timex"
)

// jsonConfig is the DTO for JSON unmarshalling. timex.Duration lets the
// file spell timeouts either as "15s" or as integer nanoseconds.
type jsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	Verbose        bool           `json:"verbose"`
}

// parseJSON overlays cfg with values from the file named by -c/-config.
// No flag means no JSON layer. Read or parse failures panic, because a
// config file that was explicitly named must be usable.
func parseJSON(cfg *Config) {
	path := flagx.ConfigFileFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.Verbose {
		cfg.Verbose = true
	}
}

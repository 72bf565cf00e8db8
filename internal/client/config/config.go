package config

import "time"

// Config holds runtime settings for the storefront CLI.
//
// Fields:
//   - APIBaseURL: base address of the storefront REST API.
//   - ImageBaseURL: base address images are served from.
//   - DataDir: directory holding the local session database.
//   - RequestTimeout: per-request timeout; 0 leaves the transport default.
//   - Debug: verbose, human-readable logging.
type Config struct {
	APIBaseURL     string
	ImageBaseURL   string
	DataDir        string
	RequestTimeout time.Duration
	Debug          bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:5000"
	c.ImageBaseURL = "http://localhost:5000/images"
	c.DataDir = ".artstore"
	c.RequestTimeout = 0
	c.Debug = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

// Package config handles configuration for the reference server,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the Artstore reference server.
//
// Fields:
//   - EndpointAddr: bind address for the REST API.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings.
//   - PresignExpiry: lifetime of presigned upload URLs.
//   - SeedCatalog: load the demo artworks on start.
//   - Debug: log at debug level and run gin in debug mode.
type Config struct {
	EndpointAddr   string
	S3RootUser     string
	S3RootPassword string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	PresignExpiry  time.Duration
	SeedCatalog    bool
	Debug          bool
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":5000"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "artstore"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.PresignExpiry = 15 * time.Minute
	c.SeedCatalog = true
	c.Debug = false
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

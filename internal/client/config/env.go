package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	envAPIBaseURL     = "ARTSTORE_API_BASE_URL"
	envImageBaseURL   = "ARTSTORE_IMAGE_BASE_URL"
	envDataDir        = "ARTSTORE_DATA_DIR"
	envRequestTimeout = "ARTSTORE_REQUEST_TIMEOUT"
	envDebug          = "ARTSTORE_DEBUG"
)

// dotenvFiles are loaded, when present, before the environment is read.
// Variables already set in the process win over the files.
var dotenvFiles = []string{".env"}

// parseEnv overlays Config with ARTSTORE_* environment variables.
// Panics on malformed values, like the other sources.
func parseEnv(cfg *Config) {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	if v, ok := os.LookupEnv(envAPIBaseURL); ok && v != "" {
		cfg.APIBaseURL = v
	}
	if v, ok := os.LookupEnv(envImageBaseURL); ok && v != "" {
		cfg.ImageBaseURL = v
	}
	if v, ok := os.LookupEnv(envDataDir); ok && v != "" {
		cfg.DataDir = v
	}
	if v, ok := os.LookupEnv(envRequestTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
	if v, ok := os.LookupEnv(envDebug); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		cfg.Debug = b
	}
}

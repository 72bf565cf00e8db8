package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/artstore/internal/flagx"
	"github.com/dmitrijs2005/artstore/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// RequestTimeout uses timex.Duration, so it may be written as "10s" or as
// integer nanoseconds. Absent fields leave the current value alone.
type JsonConfig struct {
	APIBaseURL     string          `json:"api_base_url"`
	ImageBaseURL   string          `json:"image_base_url"`
	DataDir        string          `json:"data_dir"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	Debug          *bool           `json:"debug"`
}

// parseJson overlays Config with values from the file named by -c or
// -config. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFile(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.ImageBaseURL != "" {
		cfg.ImageBaseURL = jc.ImageBaseURL
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.Debug != nil {
		cfg.Debug = *jc.Debug
	}
}

package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/artstore/internal/flagx"
	"github.com/dmitrijs2005/artstore/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration. Durations
// use timex.Duration ("15m" or integer nanoseconds); pointer fields
// distinguish "absent" from "false".
type JsonConfig struct {
	EndpointAddr   string          `json:"endpoint_addr"`
	S3RootUser     string          `json:"s3_root_user"`
	S3RootPassword string          `json:"s3_root_password"`
	S3Bucket       string          `json:"s3_bucket"`
	S3Region       string          `json:"s3_region"`
	S3BaseEndpoint string          `json:"s3_base_endpoint"`
	PresignExpiry  *timex.Duration `json:"presign_expiry"`
	SeedCatalog    *bool           `json:"seed_catalog"`
	Debug          *bool           `json:"debug"`
}

// parseJson loads configuration values from the file named by -c or
// -config. If neither is given nothing is loaded. Read and unmarshal
// errors panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigFile(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.EndpointAddr, c.EndpointAddr)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	if c.PresignExpiry != nil {
		config.PresignExpiry = c.PresignExpiry.Duration
	}
	if c.SeedCatalog != nil {
		config.SeedCatalog = *c.SeedCatalog
	}
	if c.Debug != nil {
		config.Debug = *c.Debug
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

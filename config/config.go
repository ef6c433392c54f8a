package config

import "github.com/kelseyhightower/envconfig"

type Config struct {
	// Workers bounds the number of daily files ingested concurrently.
	Workers int `envconfig:"BMRA_INGEST_WORKERS" default:"4"`
	// MaxFailures caps the raw failed messages retained per file. Counts are always exact.
	MaxFailures   int `envconfig:"BMRA_MAX_FAILURES" default:"1000"`
	UnitCacheSize int `envconfig:"BMRA_UNIT_CACHE_SIZE" default:"10000"`
}

func NewConfig() (*Config, error) {
	c := &Config{}
	if err := c.LoadFromEnv(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) LoadFromEnv() error {
	return envconfig.Process("", c)
}

package config

import (
	"fmt"
	"time"
)

// EnvPrefix prefixes every environment variable the loader reads.
const EnvPrefix = "donatello"

// Config holds runtime settings for the DONATello CLI.
//
// Durations are time.Duration values; the flag layer takes the request
// timeout in whole seconds.
type Config struct {
	APIBaseURL     string        `envconfig:"API_BASE_URL"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT"`
	CredentialMode string        `envconfig:"CREDENTIAL_MODE"`
	AuthScheme     string        `envconfig:"AUTH_SCHEME"`

	StorageDriver     string `envconfig:"STORAGE_DRIVER"`
	DatabaseDSN       string `envconfig:"DATABASE_DSN"`
	RedisAddr         string `envconfig:"REDIS_ADDR"`
	RedisPassword     string `envconfig:"REDIS_PASSWORD"`
	RedisDB           int    `envconfig:"REDIS_DB"`
	StoragePassphrase string `envconfig:"STORAGE_PASSPHRASE"`

	S3Region        string        `envconfig:"S3_REGION"`
	S3Bucket        string        `envconfig:"S3_BUCKET"`
	S3BaseEndpoint  string        `envconfig:"S3_BASE_ENDPOINT"`
	S3AccessKey     string        `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey     string        `envconfig:"S3_SECRET_KEY"`
	AvatarURLExpiry time.Duration `envconfig:"AVATAR_URL_EXPIRY"`

	LogFormat string `envconfig:"LOG_FORMAT"`
	LogLevel  string `envconfig:"LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:4500/api/v1/"
	c.RequestTimeout = 5 * time.Second
	c.CredentialMode = "header"
	c.AuthScheme = "Bearer"
	c.StorageDriver = "sqlite"
	c.DatabaseDSN = "donatello.db"
	c.AvatarURLExpiry = 15 * time.Minute
	c.LogFormat = "text"
	c.LogLevel = "info"
}

// AvatarsEnabled reports whether enough S3 settings are present to build an
// avatar store.
func (c *Config) AvatarsEnabled() bool {
	return c.S3Bucket != ""
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, a JSON file and command-line flags, in that order. args
// excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, args); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}

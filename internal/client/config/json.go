package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/donatello/internal/flagx"
	"github.com/dmitrijs2005/donatello/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals use
// timex.Duration so the file may carry "5s" or integer nanoseconds. Absent
// keys keep their zero value and are not copied.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	CredentialMode string         `json:"credential_mode"`
	AuthScheme     string         `json:"auth_scheme"`

	StorageDriver     string `json:"storage_driver"`
	DatabaseDSN       string `json:"database_dsn"`
	RedisAddr         string `json:"redis_addr"`
	RedisPassword     string `json:"redis_password"`
	RedisDB           *int   `json:"redis_db"`
	StoragePassphrase string `json:"storage_passphrase"`

	S3Region        string         `json:"s3_region"`
	S3Bucket        string         `json:"s3_bucket"`
	S3BaseEndpoint  string         `json:"s3_base_endpoint"`
	S3AccessKey     string         `json:"s3_access_key"`
	S3SecretKey     string         `json:"s3_secret_key"`
	AvatarURLExpiry timex.Duration `json:"avatar_url_expiry"`

	LogFormat string `json:"log_format"`
	LogLevel  string `json:"log_level"`
}

// parseJson overlays cfg with the JSON file named by -c/-config. Without the
// flag nothing happens.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return err
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.CredentialMode, jc.CredentialMode)
	setString(&cfg.AuthScheme, jc.AuthScheme)
	setString(&cfg.StorageDriver, jc.StorageDriver)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.RedisPassword, jc.RedisPassword)
	setString(&cfg.StoragePassphrase, jc.StoragePassphrase)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LogLevel, jc.LogLevel)

	if jc.RedisDB != nil {
		cfg.RedisDB = *jc.RedisDB
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.AvatarURLExpiry.Duration != 0 {
		cfg.AvatarURLExpiry = jc.AvatarURLExpiry.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

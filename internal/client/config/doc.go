// Package config loads runtime configuration for the DONATello CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: DONATELLO_* variables, after loading a dotenv file
//     (-e/-env, or ./.env when present).
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   API base URL
//	-t int      request timeout (seconds)
//	-s string   session storage driver: sqlite, memory or redis
//	-d string   sqlite DSN
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be strings like "5s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "https://donatello.example/api/v1/",
//	  "request_timeout": "5s",
//	  "storage_driver": "redis",
//	  "redis_addr": "127.0.0.1:6379",
//	  "avatar_url_expiry": "15m"
//	}
package config

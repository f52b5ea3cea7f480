package config

import (
	"github.com/dmitrijs2005/donatello/internal/flagx"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// parseEnv overlays cfg with DONATELLO_* environment variables.
//
// A dotenv file named by -e/-env is loaded first and must exist. Without the
// flag, ./.env is loaded when present. Variables that are not set leave the
// current value untouched.
func parseEnv(cfg *Config, args []string) error {
	if path := flagx.EnvFileFlag(args); path != "" {
		if err := godotenv.Overload(path); err != nil {
			return err
		}
	} else {
		_ = godotenv.Overload()
	}

	return envconfig.Process(EnvPrefix, cfg)
}

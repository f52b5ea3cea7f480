package devapi

import (
	"flag"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/donatello/internal/flagx"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"golang.org/x/crypto/bcrypt"
)

// EnvPrefix prefixes the dev server's environment variables.
const EnvPrefix = "donatello_devapi"

type Config struct {
	ListenAddr string `envconfig:"LISTEN_ADDR"`
	BasePath   string `envconfig:"BASE_PATH"`
	JWTSecret  string `envconfig:"JWT_SECRET"`

	AccessTTL  time.Duration `envconfig:"ACCESS_TTL"`
	RefreshTTL time.Duration `envconfig:"REFRESH_TTL"`
	// RotateRefresh issues a new refresh token on every refresh. When off,
	// refresh responses carry only an access token.
	RotateRefresh bool `envconfig:"ROTATE_REFRESH"`
	// ExpiredStatus is the status used for an expired access token. Some
	// deployments answer 422 instead of 401.
	ExpiredStatus int `envconfig:"EXPIRED_STATUS"`

	BcryptCost int  `envconfig:"BCRYPT_COST"`
	Seed       bool `envconfig:"SEED"`

	LogFormat string `envconfig:"LOG_FORMAT"`
	LogLevel  string `envconfig:"LOG_LEVEL"`
}

func (c *Config) LoadDefaults() {
	c.ListenAddr = ":4500"
	c.BasePath = "/api/v1"
	c.JWTSecret = "devapi-insecure-secret"
	c.AccessTTL = 5 * time.Minute
	c.RefreshTTL = 24 * time.Hour
	c.RotateRefresh = true
	c.ExpiredStatus = http.StatusUnauthorized
	c.BcryptCost = bcrypt.DefaultCost
	c.Seed = true
	c.LogFormat = "console"
	c.LogLevel = "info"
}

// LoadConfig applies defaults, then DONATELLO_DEVAPI_* variables (after an
// optional .env), then flags:
//
//	-l string   listen address
//	-k string   JWT signing secret
//	-x int      access token TTL (seconds)
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	_ = godotenv.Overload()
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("devapi", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.ListenAddr, "l", cfg.ListenAddr, "listen address")
	fs.StringVar(&cfg.JWTSecret, "k", cfg.JWTSecret, "JWT signing secret")
	accessTTL := fs.Int("x", int(cfg.AccessTTL.Seconds()), "access token TTL (in seconds)")

	if err := fs.Parse(flagx.FilterArgs(args, []string{"-l", "-k", "-x"})); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "x" {
			cfg.AccessTTL = time.Duration(*accessTTL) * time.Second
		}
	})
	return cfg, nil
}

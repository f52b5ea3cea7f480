package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/donatello/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   API base URL
//	-t int      request timeout in seconds
//	-s string   session storage driver (sqlite, memory, redis)
//	-d string   sqlite DSN
//
// args are filtered through flagx.FilterArgs first so flags owned by other
// layers (-c, -e) do not trip the parser.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-s", "-d"})

	fs := flag.NewFlagSet("donatello", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StorageDriver, "s", cfg.StorageDriver, "session storage driver")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "sqlite DSN")

	if err := fs.Parse(args); err != nil {
		return err
	}

	seen := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			seen = true
		}
	})
	if seen {
		cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	}
	return nil
}

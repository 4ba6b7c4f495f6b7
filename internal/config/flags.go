package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-driver string  database driver: postgres or sqlite
//	-d string       database DSN
//	-m int          max open connections
//	-r int          connection attempts at startup
//	-w int          pause between connection attempts, seconds
//	-l string       log format: json, text or zap
//
// Arguments are filtered with flagx.FilterArgs first so -c/-config and
// flags of other components do not collide. Invalid values panic.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-driver", "-d", "-m", "-r", "-w", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Driver, "driver", config.Driver, "database driver (postgres, sqlite)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.IntVar(&config.MaxOpenConns, "m", config.MaxOpenConns, "max open connections")
	fs.IntVar(&config.ConnectRetries, "r", config.ConnectRetries, "connection attempts at startup")
	retryDelay := fs.Int("w", int(config.ConnectRetryDelay.Seconds()), "pause between connection attempts (in seconds)")
	fs.StringVar(&config.LogFormat, "l", config.LogFormat, "log format (json, text, zap)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// only an explicit -w overrides, so sub-second delays from JSON survive
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "w" {
			config.ConnectRetryDelay = time.Duration(*retryDelay) * time.Second
		}
	})
}

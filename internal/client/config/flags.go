package config

import (
	"flag"
	"os"
	"time"

	"github.com/dspolyakov/buildpad/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-f string   local cache database file (default from Config)
//	-b string   remote backend: memory, postgres or dynamo
//	-p string   postgres DSN (postgres backend)
//	-t string   session token the owner id is read from
//	-i int      remote call timeout in seconds
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-f", "-b", "-p", "-t", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.CachePath, "f", cfg.CachePath, "local cache database file")
	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "remote backend (memory, postgres, dynamo)")
	fs.StringVar(&cfg.PostgresDSN, "p", cfg.PostgresDSN, "postgres DSN")
	fs.StringVar(&cfg.SessionToken, "t", cfg.SessionToken, "session token")
	callTimeout := fs.Int("i", int(cfg.CallTimeout.Seconds()), "remote call timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.CallTimeout = time.Duration(*callTimeout) * time.Second
}

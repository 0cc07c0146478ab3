package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/tripmate/internal/flagx"
)

// flagSpec lists the flags parseFlags owns and whether each takes a value.
var flagSpec = flagx.Spec{
	"-a":   true,
	"-s":   true,
	"-d":   false,
	"-dev": false,
}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend API
//	-s string   path of the local SQLite database
//	-d          log network traffic (use -d=false to silence it)
//	-dev        enable the dev login bypass
//
// The function filters args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, flagSpec)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend API")
	fs.StringVar(&cfg.StoragePath, "s", cfg.StoragePath, "path of the local database")
	fs.BoolVar(&cfg.DebugNetwork, "d", cfg.DebugNetwork, "log network requests and responses")
	fs.BoolVar(&cfg.DevMode, "dev", cfg.DevMode, "enable the dev login bypass")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}

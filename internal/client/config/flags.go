package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/artstore/internal/flagx"
)

// parseFlags populates Config from command-line flags.
//
//	-a string    API base URL
//	-img string  image base URL
//	-d string    data directory
//	-t int       request timeout in seconds (0 = none)
//	-debug       verbose logging
//
// os.Args is filtered with flagx.FilterArgs first, so flags owned by other
// loaders (-c/-config) do not break parsing.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-img", "-d", "-t"}, []string{"-debug"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "storefront API base URL")
	fs.StringVar(&cfg.ImageBaseURL, "img", cfg.ImageBaseURL, "image base URL")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "local data directory")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "verbose logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}

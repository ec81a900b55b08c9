package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/fileshare/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Note: The function filters args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-o", "-s"})
	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the fileshare API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DownloadDir, "o", cfg.DownloadDir, "download directory")
	fs.StringVar(&cfg.SessionDB, "s", cfg.SessionDB, "session database file")
	if err := fs.Parse(args); err != nil {
		panic(err)
	}
	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}

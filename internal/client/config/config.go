package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the fileshare CLI.
//
// Fields:
//   - ServerURL: base URL of the fileshare HTTP API.
//   - RequestTimeout: per-request timeout for API calls.
//   - DownloadDir: directory (relative to the working dir) receiving downloads.
//   - SessionDB: SQLite file keeping the login session between runs.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	DownloadDir    string
	SessionDB      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.DownloadDir = "downloads"
	c.SessionDB = "fileshare-session.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}

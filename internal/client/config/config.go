// Package config handles configuration for the CLI client, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the dosetrack CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the sync API (e.g. http://127.0.0.1:8080).
//   - DatabasePath: path of the local SQLite database file.
//   - SyncInterval: period of the background sync loop.
//   - ShutdownSyncTimeout: upper bound on the best-effort shutdown sync.
type Config struct {
	ServerEndpointAddr  string
	DatabasePath        string
	SyncInterval        time.Duration
	ShutdownSyncTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
	c.DatabasePath = "dosetrack.db"
	c.SyncInterval = 30 * time.Second
	c.ShutdownSyncTimeout = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

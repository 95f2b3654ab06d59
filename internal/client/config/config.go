package config

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds runtime settings for the chainvote CLI.
//
// Fields:
//   - ServerURL: base URL of the chainvote HTTP API.
//   - Home: directory holding the local session database.
//   - GatewayURL: IPFS gateway prefix used to print photo links.
//   - RequestTimeout: upper bound for a single API call.
//   - WatchInterval: how often `status --watch` probes the server.
type Config struct {
	ServerURL      string        `env:"CHAINVOTE_SERVER"`
	Home           string        `env:"CHAINVOTE_HOME"`
	GatewayURL     string        `env:"CHAINVOTE_GATEWAY"`
	RequestTimeout time.Duration `env:"CHAINVOTE_REQUEST_TIMEOUT"`
	WatchInterval  time.Duration `env:"CHAINVOTE_WATCH_INTERVAL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5003"
	c.Home = defaultHome()
	c.GatewayURL = "https://gateway.pinata.cloud/ipfs/"
	c.RequestTimeout = 30 * time.Second
	c.WatchInterval = 3 * time.Second
}

// Load constructs a Config from defaults, the JSON file at path (skipped
// when path is empty) and the environment, in that order. Command-line
// flags are applied on top by the caller.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, path); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".chainvote"
	}
	return filepath.Join(home, ".chainvote")
}

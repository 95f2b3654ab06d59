package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/chainvote/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// Durations use timex.Duration so files can say "3s" or integer
// nanoseconds.
type JsonConfig struct {
	ServerURL      string         `json:"server_url"`
	Home           string         `json:"home"`
	GatewayURL     string         `json:"gateway_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	WatchInterval  timex.Duration `json:"watch_interval"`
}

// parseJson overlays cfg with the keys present in the file at path.
// Absent keys keep their current value.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.Home != "" {
		cfg.Home = jc.Home
	}
	if jc.GatewayURL != "" {
		cfg.GatewayURL = jc.GatewayURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.WatchInterval.Duration > 0 {
		cfg.WatchInterval = jc.WatchInterval.Duration
	}
	return nil
}

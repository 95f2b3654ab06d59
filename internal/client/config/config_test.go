package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:5003", c.ServerURL)
	assert.Equal(t, "https://gateway.pinata.cloud/ipfs/", c.GatewayURL)
	assert.Equal(t, ".chainvote", filepath.Base(c.Home))
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, 3*time.Second, c.WatchInterval)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:5003", cfg.ServerURL)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("CHAINVOTE_SERVER", "http://api.example:8080")
	t.Setenv("CHAINVOTE_HOME", "/tmp/cv-home")
	t.Setenv("CHAINVOTE_WATCH_INTERVAL", "15s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://api.example:8080", cfg.ServerURL)
	assert.Equal(t, "/tmp/cv-home", cfg.Home)
	assert.Equal(t, 15*time.Second, cfg.WatchInterval)
	assert.Equal(t, "https://gateway.pinata.cloud/ipfs/", cfg.GatewayURL)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("CHAINVOTE_REQUEST_TIMEOUT", "soon")

	_, err := Load("")
	require.Error(t, err)
}

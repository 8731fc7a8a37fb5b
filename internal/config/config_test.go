package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/abgdnv/catalog/pkg/config/configloader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
server:
  port: 8000
  maxHeaderBytes: 1048576
  timeout:
    read: 10s
    write: 10s
    idle: 60s
    readHeader: 5s
log:
  level: debug
shutdown:
  timeout: 15s
metrics:
  enabled: true
grpc:
  enabled: true
  port: "50051"
  reflection: true
skipseed: true
`

func TestConfig_LoadAndValidate(t *testing.T) {
	// given
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte(testYAML), 0o600))
	t.Setenv("CATALOG_SERVER_PORT", "9090")
	t.Setenv("CATALOG_NATS_ENABLED", "false")

	// when
	cfg, err := configloader.LoadFiles[*Config]("catalog", configFile, filepath.Join(dir, ".env"))

	// then
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTPServer.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTPServer.Timeout.ReadHeader)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 15*time.Second, cfg.Shutdown.Timeout)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.True(t, cfg.GRPC.Enabled)
	assert.Equal(t, "50051", cfg.GRPC.Port)
	assert.False(t, cfg.NATS.Enabled)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.SkipSeed)

	out := cfg.String()
	assert.Contains(t, out, "server.port: 9090")
	assert.Contains(t, out, "--- CORS ---")
	assert.Contains(t, out, "skipseed: true")
}

func TestConfig_ValidateFailsOnFirstBadSection(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "bad port", mutate: func(c *Config) { c.HTTPServer.Port = 0 }, wantErr: "invalid HTTP server port"},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: "invalid log level"},
		{name: "negative shutdown timeout", mutate: func(c *Config) { c.Shutdown.Timeout = -time.Second }, wantErr: "shutdown timeout must not be negative"},
		{name: "nats enabled without url", mutate: func(c *Config) { c.NATS.Enabled = true }, wantErr: "NATS URL"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			c := validConfig()
			tc.mutate(c)
			// when
			err := c.Validate()
			// then
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func validConfig() *Config {
	var c Config
	c.HTTPServer.Port = 8000
	c.HTTPServer.Timeout.Read = time.Second
	c.HTTPServer.Timeout.Write = time.Second
	c.HTTPServer.Timeout.Idle = time.Second
	c.HTTPServer.Timeout.ReadHeader = time.Second
	c.Shutdown.Timeout = time.Second
	return &c
}

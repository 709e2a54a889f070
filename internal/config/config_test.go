package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/abgdnv/productmanager/internal/config/configloader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// given
	t.Chdir(t.TempDir())

	// when
	cfg, err := Load()

	// then
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTPServer.Port)
	assert.Equal(t, 5*time.Second, cfg.HTTPServer.Timeout.Read)
	assert.Equal(t, "9090", cfg.GRPC.Port)
	assert.Equal(t, "Productos", cfg.Store.Path)
	assert.False(t, cfg.Seed.Enabled)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10*time.Second, cfg.Shutdown.Timeout)
}

func TestLoad_Layers(t *testing.T) {
	// given
	dir := t.TempDir()
	t.Chdir(dir)
	yaml := "store:\n  path: from-yaml\nlog:\n  level: debug\nseed:\n  enabled: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PRODUCT_LOG_LEVEL=warn\n"), 0o644))
	t.Setenv("PRODUCT_STORE_PATH", "from-env")
	t.Setenv("PRODUCT_SERVER_PORT", "9999")
	t.Setenv("PRODUCT_SERVER_MAXHEADERBYTES", "4096")
	t.Setenv("PRODUCT_SERVER_TIMEOUT_READHEADER", "7s")

	// when
	cfg, err := Load()

	// then
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Store.Path, "system env has the highest priority")
	assert.Equal(t, "warn", cfg.Log.Level, ".env overrides the yaml file")
	assert.True(t, cfg.Seed.Enabled)
	assert.Equal(t, 9999, cfg.HTTPServer.Port)
	assert.Equal(t, 4096, cfg.HTTPServer.MaxHeaderBytes, "multi-word keys are overridden by env")
	assert.Equal(t, 7*time.Second, cfg.HTTPServer.Timeout.ReadHeader, "multi-word keys are overridden by env")
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PRODUCT_LOG_LEVEL", "verbose")

	_, err := configloader.Load[*Config](ServiceName, configloader.Options{Defaults: Defaults()})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		var cfg Config
		cfg.HTTPServer.Port = 8080
		cfg.HTTPServer.Timeout.Read = time.Second
		cfg.HTTPServer.Timeout.Write = time.Second
		cfg.HTTPServer.Timeout.Idle = time.Second
		cfg.HTTPServer.Timeout.ReadHeader = time.Second
		cfg.GRPC.Port = "9090"
		cfg.Store.Path = "products"
		cfg.Shutdown.Timeout = time.Second
		return &cfg
	}

	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.HTTPServer.Port = 70000 }, wantErr: "invalid HTTP server port"},
		{name: "no grpc port", mutate: func(c *Config) { c.GRPC.Port = "" }, wantErr: "gRPC port is not configured"},
		{name: "no store path", mutate: func(c *Config) { c.Store.Path = " " }, wantErr: "store path is not configured"},
		{name: "store path is a directory", mutate: func(c *Config) { c.Store.Path = "data/" }, wantErr: "must name a file"},
		{name: "no shutdown timeout", mutate: func(c *Config) { c.Shutdown.Timeout = 0 }, wantErr: "shutdown timeout"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)

			err := cfg.Validate()

			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestConfig_String(t *testing.T) {
	cfg := &Config{Store: StoreConfig{Path: "Productos"}}

	s := cfg.String()

	assert.Contains(t, s, "path: Productos")
	assert.Contains(t, s, "--- Server Configuration ---")
}

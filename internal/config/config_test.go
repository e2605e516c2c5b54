package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every search location at an empty temp tree
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(EnvConfigPath, "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", filepath.Join(dir, "home"))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("PWD", dir)
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, path, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, path)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "./netdiagram.db", cfg.Storage.Path)
	assert.True(t, cfg.Canvas.SnapToGrid)
	assert.Equal(t, 120.0, cfg.Canvas.DeviceWidth)
	assert.Equal(t, 80.0, cfg.Canvas.DeviceHeight)
	assert.Equal(t, 5, cfg.Canvas.ImportGridColumns)
	assert.Equal(t, 4000.0, cfg.Canvas.ImportStartX)

	assert.Equal(t, cfg, Default())
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
}

func TestLoadFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, `
server:
  port: 9191
  request_timeout: 5s
logging:
  level: debug
  format: json
storage:
  driver: bolt
  path: /tmp/diagrams.bolt
canvas:
  snap_to_grid: false
  import_grid_columns: 3
`)

	cfg, used, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "bolt", cfg.Storage.Driver)
	assert.False(t, cfg.Canvas.SnapToGrid)
	assert.Equal(t, 3, cfg.Canvas.ImportGridColumns)
	assert.Equal(t, 120.0, cfg.Canvas.DeviceWidth, "unset keys keep defaults")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	isolate(t)

	cfg, used, err := Load("does-not-exist.yaml")
	require.NoError(t, err)
	assert.Empty(t, used)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	writeFile(t, path, "server: [port")

	_, _, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("NETDIAGRAM_SERVER_PORT", "7070")
	t.Setenv("NETDIAGRAM_STORAGE_DRIVER", "none")
	t.Setenv("NETDIAGRAM_CANVAS_DEVICE_WIDTH", "150")

	cfg, _, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "none", cfg.Storage.Driver)
	assert.Equal(t, 150.0, cfg.Canvas.DeviceWidth)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"unknown level", func(c *Config) { c.Logging.Level = "loud" }},
		{"unknown format", func(c *Config) { c.Logging.Format = "xml" }},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "mysql" }},
		{"path required for sqlite", func(c *Config) { c.Storage.Path = "" }},
		{"zero device width", func(c *Config) { c.Canvas.DeviceWidth = 0 }},
		{"zero grid columns", func(c *Config) { c.Canvas.ImportGridColumns = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	t.Run("path optional without storage", func(t *testing.T) {
		cfg := Default()
		cfg.Storage.Driver = "none"
		cfg.Storage.Path = ""
		assert.NoError(t, cfg.Validate())
	})
}

func TestFindConfigPath(t *testing.T) {
	dir := isolate(t)
	assert.Empty(t, FindConfigPath())

	xdg := filepath.Join(dir, "xdg", ConfigDirName, "config.yaml")
	writeFile(t, xdg, "server:\n  port: 1\n")
	assert.Equal(t, xdg, FindConfigPath())

	writeFile(t, filepath.Join(dir, ConfigFileName), "server:\n  port: 2\n")
	assert.Equal(t, filepath.Join(dir, ConfigFileName), FindConfigPath(), "working directory beats XDG")

	t.Setenv(EnvConfigPath, "/nonexistent/path.yaml")
	assert.Equal(t, filepath.Join(dir, ConfigFileName), FindConfigPath(), "missing explicit path falls through")

	explicit := filepath.Join(dir, "explicit.yaml")
	writeFile(t, explicit, "server:\n  port: 3\n")
	t.Setenv(EnvConfigPath, explicit)
	assert.Equal(t, explicit, FindConfigPath())
}

func TestWriteDefault(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "nested", "config.yaml")

	require.NoError(t, WriteDefault(path))
	assert.Error(t, WriteDefault(path), "existing file is not overwritten")

	cfg, used, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, Default(), cfg)
}

func TestDefaultConfigPath(t *testing.T) {
	dir := isolate(t)
	assert.Equal(t, filepath.Join(dir, "xdg", ConfigDirName, "config.yaml"), DefaultConfigPath())

	t.Setenv("XDG_CONFIG_HOME", "")
	assert.Equal(t, filepath.Join(dir, "home", ".config", ConfigDirName, "config.yaml"), DefaultConfigPath())
}

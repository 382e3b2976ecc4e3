package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CHROME_BIN", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 10, cfg.Browser.WaitTimeoutSecs)
	assert.Equal(t, 10*time.Second, cfg.Browser.WaitTimeout())
	assert.Equal(t, 45*time.Second, cfg.Browser.NavigationTimeout())
	assert.Equal(t, "https://www.google.com/maps", cfg.Maps.BaseURL)
	assert.Equal(t, "Aguascalientes, México", cfg.Maps.DefaultLocation)
	assert.Equal(t, 3, cfg.Pipeline.Concurrency)
	assert.Equal(t, 1, cfg.Pipeline.RetryAttempts)
	assert.Equal(t, time.Second, cfg.Pipeline.RetryBaseDelay())
	assert.Empty(t, cfg.Keywords.Path)
	assert.Equal(t, "./output/reviews.csv", cfg.Export.CSVPath)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Empty(t, cfg.Browser.ChromeBin)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
browser:
  headless: false
  wait_timeout_secs: 3
maps:
  default_location: "Ensenada, Baja California"
pipeline:
  concurrency: 8
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, 3*time.Second, cfg.Browser.WaitTimeout())
	assert.Equal(t, "Ensenada, Baja California", cfg.Maps.DefaultLocation)
	assert.Equal(t, 8, cfg.Pipeline.Concurrency)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Defaults still apply for unset values
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server:\n  port: 9000\n"), 0644))
	t.Setenv("TOURISM_SERVER_PORT", "9191")
	t.Setenv("TOURISM_MAPS_DEFAULT_LOCATION", "Querétaro, México")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "Querétaro, México", cfg.Maps.DefaultLocation)
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TOURISM_PIPELINE_CONCURRENCY=5\n"), 0644))
	t.Cleanup(func() { _ = os.Unsetenv("TOURISM_PIPELINE_CONCURRENCY") })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Pipeline.Concurrency)
}

func TestLoadChromeBinFallback(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CHROME_BIN", "/opt/chrome/chrome")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/opt/chrome/chrome", cfg.Browser.ChromeBin)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("browser: [unclosed"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

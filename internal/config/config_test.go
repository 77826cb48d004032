package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Extraction.AIEnabled)
	assert.Equal(t, "now", cfg.Extraction.RelativeAnchor)
	assert.Equal(t, 20, cfg.Extraction.AITimeoutSecs)
	assert.Equal(t, []string{"injury_date", "date_of_injury", "cf_injury_date"}, cfg.Extraction.CustomFieldKeys)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.Model)
	assert.Equal(t, int64(512), cfg.Anthropic.MaxTokens)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "claimdate.db", cfg.Store.DSN)
	assert.Equal(t, 8, cfg.Batch.MaxConcurrent)
	assert.InDelta(t, 2.0, cfg.Batch.AIRatePerSec, 0.001)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("CLAIMDATE_EXTRACTION_AI_ENABLED", "true")
	t.Setenv("CLAIMDATE_EXTRACTION_RELATIVE_ANCHOR", "created")
	t.Setenv("CLAIMDATE_STORE_DRIVER", "postgres")
	t.Setenv("CLAIMDATE_ANTHROPIC_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Extraction.AIEnabled)
	assert.Equal(t, "created", cfg.Extraction.RelativeAnchor)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "sk-test", cfg.Anthropic.Key)
}

func TestLoadConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	content := `
extraction:
  ai_enabled: true
  ai_timeout_secs: 45
server:
  port: 9090
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Extraction.AIEnabled)
	assert.Equal(t, 45, cfg.Extraction.AITimeoutSecs)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Unset keys keep defaults.
	assert.Equal(t, "sqlite", cfg.Store.Driver)
}

func TestInitLoggerBadLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "shouty", Format: "json"})
	assert.Error(t, err)
}

func TestInitLoggerConsole(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
}

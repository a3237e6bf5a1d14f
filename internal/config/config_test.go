package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("TSYNC_INSTALL", "acme")
	t.Setenv("TSYNC_GEO", "au")
	t.Setenv("TSYNC_TOKEN", "secret")
	t.Setenv("TSYNC_SINK_ID", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "acme", cfg.Install)
	assert.Equal(t, "Bearer", cfg.AuthScheme)
	assert.Equal(t, "csv", cfg.SinkKind)
	assert.Equal(t, "Timesheets", cfg.SinkTab)
	assert.Equal(t, 0, cfg.KeyColumn)
	assert.Equal(t, 500, cfg.PageSize)
	assert.Equal(t, "0 6 * * *", cfg.Cron)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadReportsAllMissingOptions(t *testing.T) {
	for _, key := range []string{"TSYNC_INSTALL", "TSYNC_GEO", "TSYNC_TOKEN", "TSYNC_SINK_ID"} {
		t.Setenv(key, "")
	}

	cfg, err := Load("")
	require.Error(t, err)
	require.NotNil(t, cfg, "partial config should still be returned")

	var confErr *ConfigError
	require.True(t, errors.As(err, &confErr))
	assert.ElementsMatch(t,
		[]string{"TSYNC_INSTALL", "TSYNC_GEO", "TSYNC_TOKEN", "TSYNC_SINK_ID"},
		confErr.Missing)
}

func TestBaseURLReplacesInstallAndGeo(t *testing.T) {
	setRequired(t)
	t.Setenv("TSYNC_INSTALL", "")
	t.Setenv("TSYNC_GEO", "")
	t.Setenv("TSYNC_BASE_URL", "http://localhost:8080")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
}

func TestLoadRejectsUnknownSinkKind(t *testing.T) {
	setRequired(t)
	t.Setenv("TSYNC_SINK_KIND", "postgres")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported sink kind")
}

func TestLoadFromEnvFile(t *testing.T) {
	setRequired(t)
	// t.Setenv registers the restore; the variable must be absent for the
	// file value to take effect.
	t.Setenv("TSYNC_SINK_TAB", "")
	os.Unsetenv("TSYNC_SINK_TAB")
	t.Setenv("TSYNC_PAGE_SIZE", "")
	os.Unsetenv("TSYNC_PAGE_SIZE")

	path := filepath.Join(t.TempDir(), "sync.env")
	require.NoError(t, os.WriteFile(path, []byte("TSYNC_SINK_TAB=PayrollExport\nTSYNC_PAGE_SIZE=100\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "PayrollExport", cfg.SinkTab)
	assert.Equal(t, 100, cfg.PageSize)
}

func TestReloadLetsTheFileOverrideEarlierValues(t *testing.T) {
	setRequired(t)
	t.Setenv("TSYNC_SINK_TAB", "Stale")

	path := filepath.Join(t.TempDir(), "sync.env")
	require.NoError(t, os.WriteFile(path, []byte("TSYNC_SINK_TAB=Fresh\n"), 0644))

	cfg, err := Reload(path)
	require.NoError(t, err)
	assert.Equal(t, "Fresh", cfg.SinkTab)
}

func TestEnvironmentWinsOverFile(t *testing.T) {
	setRequired(t)
	t.Setenv("TSYNC_SINK_TAB", "FromEnv")

	path := filepath.Join(t.TempDir(), "sync.env")
	require.NoError(t, os.WriteFile(path, []byte("TSYNC_SINK_TAB=FromFile\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "FromEnv", cfg.SinkTab)
}

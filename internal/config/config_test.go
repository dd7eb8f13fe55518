package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Empty(t, cfg.Database.DSN)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 50, cfg.RateLimit.RequestsPerSecond)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("MEETINGD_PORT", "9000")
	t.Setenv("MEETINGD_DB_DSN", "postgres://localhost/meetingd")
	t.Setenv("MEETINGD_RATELIMIT_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "postgres://localhost/meetingd", cfg.Database.DSN)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestConfigFileOverridesEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meetingd.yaml")
	content := []byte("server:\n  port: 9443\nlogging:\n  level: debug\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("MEETINGD_PORT", "9000")
	t.Setenv("MEETINGD_CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9443, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestConfigFileMustParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: ["), 0o600))

	t.Setenv("MEETINGD_CONFIG_FILE", path)

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Setenv("MEETINGD_PORT", "70000")

	_, err := Load()
	assert.Error(t, err)
}

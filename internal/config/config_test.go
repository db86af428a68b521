package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{envLogLevel, envLogFormat, envTheme, envColor} {
		t.Setenv(k, "")
	}
}

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	p := writeConfig(t, `
log_level = "debug"
theme = "neon"
`)
	cfg, err := LoadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "neon", cfg.Theme)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "auto", cfg.Color)
}

func TestLoadFileMalformed(t *testing.T) {
	p := writeConfig(t, `log_level = `)
	_, err := LoadFile(p)
	assert.Error(t, err)
}

func TestLoadEnvBeatsFile(t *testing.T) {
	clearEnv(t)
	p := writeConfig(t, `
log_level = "info"
color = "always"
`)
	t.Setenv(envConfig, p)
	t.Setenv(envLogLevel, "error")
	t.Setenv(envTheme, "mono")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "mono", cfg.Theme)
	assert.Equal(t, "always", cfg.Color)
}

func TestPathFromEnv(t *testing.T) {
	t.Setenv(envConfig, "/tmp/custom.toml")
	p, err := Path()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom.toml", p)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CORPLINK_CONFIG", "CORPLINK_ENV", "CORPLINK_LOG_LEVEL", "CORPLINK_HTTP_ADDR", "CORPLINK_SERVER", "CORPLINK_VPN_SERVER",
		"CORPLINK_OS", "CORPLINK_OS_VERSION", "CORPLINK_APP_VERSION", "CORPLINK_BRAND",
		"CORPLINK_BUILD_NUMBER", "CORPLINK_CLIENT_SOURCE", "CORPLINK_LANGUAGE", "CORPLINK_MODEL",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corplink.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, ":8090", cfg.HTTPAddr)
	assert.Empty(t, cfg.Server)
	assert.ErrorIs(t, cfg.Validate(), ErrMissingServer)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("CORPLINK_SERVER", " https://vpn.example.com ")
	t.Setenv("CORPLINK_MODEL", "iPhone15%2C3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://vpn.example.com", cfg.Server)
	assert.Equal(t, "iPhone15%2C3", cfg.Fingerprint.Model)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileWithEnvOverride(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
env: prod
log_level: warn
server: https://file.example.com
vpn_server: https://tunnel.example.com:10443
fingerprint:
  os: Android
  language: en
`)
	t.Setenv("CORPLINK_LANGUAGE", "de")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, ":8090", cfg.HTTPAddr)
	assert.Equal(t, "https://file.example.com", cfg.Server)
	assert.Equal(t, "https://tunnel.example.com:10443", cfg.VPNServer)
	assert.Equal(t, "Android", cfg.Fingerprint.OS)
	assert.Equal(t, "de", cfg.Fingerprint.Language)
}

func TestLoadUsesConfigEnvVar(t *testing.T) {
	clearEnv(t)
	t.Setenv("CORPLINK_CONFIG", writeFile(t, "server: https://from-env-path.example.com\n"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://from-env-path.example.com", cfg.Server)
}

func TestLoadFileErrors(t *testing.T) {
	clearEnv(t)

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadFile(writeFile(t, "server: [unterminated\n"))
	assert.Error(t, err)
}

func TestValidateBlankServer(t *testing.T) {
	assert.ErrorIs(t, Config{Server: "   "}.Validate(), ErrMissingServer)
	assert.NoError(t, Config{Server: "https://vpn.example.com"}.Validate())
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:4000/api", config.API.BaseURL)
	assert.Equal(t, 30*time.Second, config.APITimeout())
	assert.Equal(t, 3*time.Minute, config.SafetyBuffer())
	assert.Equal(t, 13*time.Minute, config.RefreshInterval())
	assert.Equal(t, "dashboard", config.Session.NetworkType)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://backoffice.example.com/api
  timeout_seconds: 10
session:
  safety_buffer_seconds: 60
log:
  level: debug
`), 0o600))

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://backoffice.example.com/api", config.API.BaseURL)
	assert.Equal(t, 10*time.Second, config.APITimeout())
	assert.Equal(t, time.Minute, config.SafetyBuffer())
	assert.Equal(t, "debug", config.Log.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, "dashboard", config.Session.NetworkType)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://from-file.example.com
`), 0o600))

	t.Setenv(EnvAPIURL, "https://from-env.example.com")
	t.Setenv(EnvLogLevel, "error")

	config, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://from-env.example.com", config.API.BaseURL)
	assert.Equal(t, "error", config.Log.Level)
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://${MERCHDESK_TEST_HOST}/api
`), 0o600))

	t.Setenv("MERCHDESK_TEST_HOST", "tenant.example.com")

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://tenant.example.com/api", config.API.BaseURL)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [broken"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "empty base url", mutate: func(c *Config) { c.API.BaseURL = "" }, wantErr: true},
		{name: "non-http url", mutate: func(c *Config) { c.API.BaseURL = "ftp://x" }, wantErr: true},
		{name: "negative timeout", mutate: func(c *Config) { c.API.TimeoutSeconds = -1 }, wantErr: true},
		{name: "negative buffer", mutate: func(c *Config) { c.Session.SafetyBufferSeconds = -1 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := Validate(config)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	config := DefaultConfig()
	config.API.BaseURL = "https://saved.example.com/api"
	require.NoError(t, Save(config, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://saved.example.com/api", loaded.API.BaseURL)
}

func TestPaths(t *testing.T) {
	t.Setenv(EnvConfigDir, "/tmp/merchdesk-test")

	dir, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/merchdesk-test", dir)

	path, err := Path()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/merchdesk-test/config.yaml", path)

	creds, err := CredentialsPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/merchdesk-test/credentials.json", creds)
}

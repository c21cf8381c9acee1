// Package config loads the merchdesk configuration file and applies
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/merchdesk/internal/errors"
)

const (
	// EnvAPIURL overrides the backend base URL.
	EnvAPIURL = "MERCHDESK_API_URL"
	// EnvLogLevel overrides the log level.
	EnvLogLevel = "MERCHDESK_LOG_LEVEL"
	// EnvLogFormat overrides the log format.
	EnvLogFormat = "MERCHDESK_LOG_FORMAT"
	// EnvConfigDir overrides the configuration directory.
	EnvConfigDir = "MERCHDESK_CONFIG_DIR"
)

// Config is the complete merchdesk configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session,omitempty"`
	Log     LogConfig     `yaml:"log,omitempty"`
}

// APIConfig configures the backend connection.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	// Timeout applies per request, in seconds.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
}

// SessionConfig tunes the session lifecycle.
type SessionConfig struct {
	// SafetyBufferSeconds is how long before expiry a token is treated
	// as expiring.
	SafetyBufferSeconds int `yaml:"safety_buffer_seconds,omitempty"`
	// RefreshIntervalSeconds is the proactive renewal cadence.
	RefreshIntervalSeconds int `yaml:"refresh_interval_seconds,omitempty"`
	// NetworkType is sent on login to identify this client class.
	NetworkType string `yaml:"network_type,omitempty"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:4000/api",
			TimeoutSeconds: 30,
		},
		Session: SessionConfig{
			SafetyBufferSeconds:    180,
			RefreshIntervalSeconds: 780,
			NetworkType:            "dashboard",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Dir returns the merchdesk configuration directory, honoring the
// MERCHDESK_CONFIG_DIR override.
func Dir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(EnvConfigDir)); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".merchdesk"), nil
}

// Path returns the configuration file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// CredentialsPath returns the path of the persisted session credentials.
func CredentialsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "credentials.json"), nil
}

// Load reads the configuration file at path, applies environment
// overrides, and validates the result. A missing file is not an error:
// defaults plus overrides are returned.
func Load(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults apply.
	case err != nil:
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed,
			fmt.Sprintf("failed to read configuration: %s", path), err)
	default:
		// Expand environment variables in the config
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), config); err != nil {
			return nil, errors.NewConfigInvalidError(path, err)
		}
	}

	applyEnvOverrides(config)

	if err := Validate(config); err != nil {
		return nil, err
	}

	return config, nil
}

func applyEnvOverrides(config *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		config.API.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		config.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		config.Log.Format = v
	}
}

// Validate checks the configuration for values the client cannot run with.
func Validate(config *Config) error {
	if config.API.BaseURL == "" {
		return errors.NewConfigInvalidError("api.base_url is required", nil)
	}
	if !strings.HasPrefix(config.API.BaseURL, "http://") && !strings.HasPrefix(config.API.BaseURL, "https://") {
		return errors.NewConfigInvalidError(
			fmt.Sprintf("api.base_url must be an http(s) URL, got %q", config.API.BaseURL), nil)
	}
	if config.API.TimeoutSeconds < 0 {
		return errors.NewConfigInvalidError("api.timeout_seconds must be non-negative", nil)
	}
	if config.Session.SafetyBufferSeconds < 0 {
		return errors.NewConfigInvalidError("session.safety_buffer_seconds must be non-negative", nil)
	}
	if config.Session.RefreshIntervalSeconds < 0 {
		return errors.NewConfigInvalidError("session.refresh_interval_seconds must be non-negative", nil)
	}
	return nil
}

// Save writes the configuration to a YAML file, creating the parent
// directory if needed.
func Save(config *Config, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return errors.Wrap(errors.ErrCodeConfigInvalid, "failed to marshal configuration", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.NewFileWriteError(path, err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.NewFileWriteError(path, err)
	}

	return nil
}

// APITimeout returns the configured request timeout as a duration.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// SafetyBuffer returns the configured safety buffer as a duration.
func (c *Config) SafetyBuffer() time.Duration {
	return time.Duration(c.Session.SafetyBufferSeconds) * time.Second
}

// RefreshInterval returns the configured renewal cadence as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Session.RefreshIntervalSeconds) * time.Second
}

// Package config loads heartlog configuration from
// ~/.config/heartlog/config.yaml with environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultAPIURL is used when no remote base URL is configured. It
// matches the backend's local development address.
const DefaultAPIURL = "http://localhost:5000"

// Config stores heartlog configuration.
type Config struct {
	Remote RemoteConfig `yaml:"remote"`
	DBPath string       `yaml:"db_path"`
}

// RemoteConfig holds the remote tracker API settings.
type RemoteConfig struct {
	APIURL string `yaml:"api_url"`
}

// APIURL returns the remote base URL: the HEARTLOG_API_URL
// environment variable wins, then the config file, then the local
// default.
func (c *Config) APIURL() string {
	if env := os.Getenv("HEARTLOG_API_URL"); env != "" {
		return env
	}
	if c.Remote.APIURL != "" {
		return c.Remote.APIURL
	}
	return DefaultAPIURL
}

// DatabasePath returns the SQLite path: HEARTLOG_DB wins, then the
// config file, then ~/.heartlog/heartlog.db.
func (c *Config) DatabasePath() (string, error) {
	if env := os.Getenv("HEARTLOG_DB"); env != "" {
		return env, nil
	}
	if c.DBPath != "" {
		return ExpandPath(c.DBPath)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".heartlog", "heartlog.db"), nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "heartlog", "config.yaml"), nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// Load reads config from disk. Returns default config if file doesn't exist.
func Load() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

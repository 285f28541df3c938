// Package config loads user preferences from ~/.easyclip/config.yaml,
// with environment variable overrides for scripting.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds user preferences
type Config struct {
	DatabasePath  string `yaml:"database_path"`  // Override for the clip database location
	ConfirmDelete bool   `yaml:"confirm_delete"` // Require confirmation for delete

	LogLevel   string `yaml:"log_level"`   // DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file"`    // Path to log file
	LogConsole bool   `yaml:"log_console"` // Also log to stderr
}

// dir returns the config directory (~/.easyclip).
func dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".easyclip"), nil
}

// DefaultConfig returns the settings used when no config file exists.
// EASYCLIP_DB, EASYCLIP_LOG_LEVEL, EASYCLIP_LOG_FILE, and
// EASYCLIP_LOG_CONSOLE override individual defaults.
func DefaultConfig() *Config {
	logPath := ""
	if d, err := dir(); err == nil {
		logPath = filepath.Join(d, "logs", "easyclip.log")
	}

	return &Config{
		DatabasePath:  getEnv("EASYCLIP_DB", ""),
		ConfirmDelete: true,
		LogLevel:      getEnv("EASYCLIP_LOG_LEVEL", "INFO"),
		LogFile:       getEnv("EASYCLIP_LOG_FILE", logPath),
		LogConsole:    getEnv("EASYCLIP_LOG_CONSOLE", "false") == "true",
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Load reads the config file, layering it over the defaults. A missing file
// is not an error; the defaults are returned.
func Load() (*Config, error) {
	d, err := dir()
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(filepath.Join(d, "config.yaml"))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the config file, creating the config directory if needed.
func (c *Config) Save() error {
	d, err := dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(d, "config.yaml"), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

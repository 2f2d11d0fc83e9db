// Package config loads the stackwatch configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the runtime settings for stackwatch.
type Config struct {
	// DockerHost overrides the environment's daemon address when set.
	DockerHost string
	// RefreshSeconds is the poll interval. Must be positive.
	RefreshSeconds int
	// LogTail is how many historical lines a log session starts with.
	LogTail int
	// LogBuffer is the ring capacity of the log view.
	LogBuffer int
}

const (
	defaultConfigPath     = "~/.config/stackwatch/config.toml"
	defaultRefreshSeconds = 2
	defaultLogTail        = 100
	defaultLogBuffer      = 500
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		RefreshSeconds: defaultRefreshSeconds,
		LogTail:        defaultLogTail,
		LogBuffer:      defaultLogBuffer,
	}
}

// RefreshInterval returns the poll interval as a duration.
func (c Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshSeconds) * time.Second
}

// Validate checks the configuration for values the monitor cannot run with.
func (c Config) Validate() error {
	if c.RefreshSeconds <= 0 {
		return fmt.Errorf("refresh interval must be positive, got %d", c.RefreshSeconds)
	}
	if c.LogTail < 0 {
		return fmt.Errorf("log tail must not be negative, got %d", c.LogTail)
	}
	if c.LogBuffer <= 0 {
		return fmt.Errorf("log buffer must be positive, got %d", c.LogBuffer)
	}
	return nil
}

// Load reads the config file at path, falling back to defaults when the
// file is missing. An empty path uses the default location.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	bytes, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		DockerHost     string `toml:"docker_host"`
		RefreshSeconds int    `toml:"refresh_seconds"`
		LogTail        int    `toml:"log_tail"`
		LogBuffer      int    `toml:"log_buffer"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.DockerHost = strings.TrimSpace(raw.DockerHost)
	if raw.RefreshSeconds != 0 {
		cfg.RefreshSeconds = raw.RefreshSeconds
	}
	if raw.LogTail != 0 {
		cfg.LogTail = raw.LogTail
	}
	if raw.LogBuffer != 0 {
		cfg.LogBuffer = raw.LogBuffer
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", resolved, err)
	}
	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

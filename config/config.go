package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Config represents the complete application configuration
type Config struct {
	API APIConfig `mapstructure:"api"`
	Log LogConfig `mapstructure:"log"`
	UI  UIConfig  `mapstructure:"ui"`
}

// APIConfig contains Web API connection settings
type APIConfig struct {
	Token             string  `mapstructure:"token"`
	BaseURL           string  `mapstructure:"base_url"`
	PageLimit         int     `mapstructure:"page_limit"`
	HTTPTimeout       int     `mapstructure:"http_timeout"` // in seconds
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
}

// LogConfig contains log output and rotation settings
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Debug      bool   `mapstructure:"debug"`
}

// UIConfig contains user interface settings
type UIConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// GetHTTPTimeout returns the HTTP timeout as a time.Duration
func (a *APIConfig) GetHTTPTimeout() time.Duration {
	return time.Duration(a.HTTPTimeout) * time.Second
}

// ErrMissingToken is returned when no API token was configured
var ErrMissingToken = errors.New("missing required config: api.token")

// Validate checks if all required configuration values are set and in range
func (c *Config) Validate() error {
	if c.API.Token == "" {
		return ErrMissingToken
	}
	if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api.base_url %q", c.API.BaseURL)
	}
	if c.API.PageLimit < 1 || c.API.PageLimit > 50 {
		return fmt.Errorf("api.page_limit must be between 1 and 50, got %d", c.API.PageLimit)
	}
	if c.API.HTTPTimeout <= 0 {
		return fmt.Errorf("api.http_timeout must be positive, got %d", c.API.HTTPTimeout)
	}
	if c.API.RequestsPerSecond < 0 {
		return fmt.Errorf("api.requests_per_second must not be negative, got %v", c.API.RequestsPerSecond)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log.level %q: %w", c.Log.Level, err)
	}
	if c.UI.PageSize < 1 {
		return fmt.Errorf("ui.page_size must be positive, got %d", c.UI.PageSize)
	}
	return nil
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     "https://api.spotify.com/v1",
			PageLimit:   50,
			HTTPTimeout: 15,
		},
		Log: LogConfig{
			Level:      "info",
			File:       defaultLogFile(),
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		UI: UIConfig{
			PageSize: 20,
		},
	}
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "cmusic", "cmusic.log")
}

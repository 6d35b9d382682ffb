package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. CMUSIC_API_TOKEN
const EnvPrefix = "CMUSIC"

// flagKeys maps command line flags onto config keys
var flagKeys = map[string]string{
	"token": "api.token",
	"debug": "log.debug",
}

// Load reads config.toml, then environment variables, then flags, and returns a validated Config.
// path names an explicit config file; when empty the default locations are searched
// and a missing file is not an error.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("$HOME/.config/cmusic/")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults from DefaultConfig
	defaults := DefaultConfig()
	v.SetDefault("api.token", "")
	v.SetDefault("api.base_url", defaults.API.BaseURL)
	v.SetDefault("api.page_limit", defaults.API.PageLimit)
	v.SetDefault("api.http_timeout", defaults.API.HTTPTimeout)
	v.SetDefault("api.requests_per_second", defaults.API.RequestsPerSecond)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("log.max_size_mb", defaults.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", defaults.Log.MaxBackups)
	v.SetDefault("log.max_age_days", defaults.Log.MaxAgeDays)
	v.SetDefault("log.debug", defaults.Log.Debug)
	v.SetDefault("ui.page_size", defaults.UI.PageSize)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	// Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

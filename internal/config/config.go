// Package config builds the launch configuration handed to the viewer.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Compiled-in defaults. The kiosk image ships with these baked in; the
// EPOSTER_* environment variables and an optional config.yaml can override
// them on a per-host basis.
const (
	DefaultToken        = "A999F1E2D3C4B5A697885746352413FE89D"
	DefaultCacheRefresh = 60
	DefaultDisplayTime  = 5
	CacheDirName        = "eposter_cache"
)

// LaunchConfiguration is the immutable set of settings passed to the viewer
// through its environment. Constructed once at process start.
type LaunchConfiguration struct {
	Token        string `mapstructure:"token"`
	CacheRefresh int    `mapstructure:"cache_refresh"`
	DisplayTime  int    `mapstructure:"display_time"`
	BaseDir      string `mapstructure:"base_dir"`
	CacheDir     string `mapstructure:"cache_dir"`
}

// Load assembles the configuration from defaults, an optional
// ~/.config/eposter/config.yaml, and EPOSTER_* environment variables.
func Load() (*LaunchConfiguration, error) {
	v := viper.New()

	v.SetDefault("token", DefaultToken)
	v.SetDefault("cache_refresh", DefaultCacheRefresh)
	v.SetDefault("display_time", DefaultDisplayTime)
	v.SetDefault("base_dir", "")
	v.SetDefault("cache_dir", "")

	if homeDir, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(homeDir, ".config", "eposter"))
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("EPOSTER")
	v.AutomaticEnv()

	// A missing config file is fine; a malformed one is not.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg LaunchConfiguration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.CacheDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home dir: %w", err)
		}
		cfg.CacheDir = filepath.Join(homeDir, CacheDirName)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *LaunchConfiguration) validate() error {
	if c.Token == "" {
		return fmt.Errorf("poster token must not be empty")
	}
	if c.CacheRefresh <= 0 {
		return fmt.Errorf("cache refresh must be a positive number of seconds, got %d", c.CacheRefresh)
	}
	if c.DisplayTime <= 0 {
		return fmt.Errorf("display time must be a positive number of seconds, got %d", c.DisplayTime)
	}
	return nil
}

// Package config provides the configuration types, defaults and loading for
// the ux4g binary.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/goliatone/go-ux4g/internal/logging"
	"github.com/goliatone/go-ux4g/pkg/catalog"
	"github.com/goliatone/go-ux4g/pkg/markup"
)

// EnvPrefix prefixes environment overrides: UX4G_LOG_LEVEL, UX4G_CACHE_TTL...
const EnvPrefix = "UX4G"

// Config holds all configuration options.
type Config struct {
	Log    LogConfig   `mapstructure:"log"`
	Syntax string      `mapstructure:"syntax"` // default output syntax, "html" or "jsx"
	Cache  CacheConfig `mapstructure:"cache"`
	Admin  AdminConfig `mapstructure:"admin"`
	Theme  ThemeConfig `mapstructure:"theme"`
}

// LogConfig controls the global logger.
type LogConfig struct {
	JSON  bool   `mapstructure:"json"`
	Level string `mapstructure:"level"`
}

// CacheConfig controls memoisation of generate and validate results.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
	Cleanup time.Duration `mapstructure:"cleanup"`
}

// AdminConfig controls the HTTP admin surface. An empty Addr disables it.
type AdminConfig struct {
	Addr string `mapstructure:"addr"`
}

// ThemeConfig selects the token variant served by default.
type ThemeConfig struct {
	Variant string `mapstructure:"variant"` // "" (base) or "dark"
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Log:    LogConfig{Level: "info"},
		Syntax: string(markup.HTML),
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
			Cleanup: 15 * time.Minute,
		},
	}
}

// SetDefaults registers Defaults with v so unset keys unmarshal to them.
func SetDefaults(v *viper.Viper) {
	defaults := Defaults()
	v.SetDefault("log.json", defaults.Log.JSON)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("syntax", defaults.Syntax)
	v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	v.SetDefault("cache.ttl", defaults.Cache.TTL)
	v.SetDefault("cache.cleanup", defaults.Cache.Cleanup)
	v.SetDefault("admin.addr", defaults.Admin.Addr)
	v.SetDefault("theme.variant", defaults.Theme.Variant)
}

// Load reads configuration into v and unmarshals it. path names an explicit
// file; otherwise ./.ux4g.yaml and then ~/.config/ux4g/config.yaml are tried.
// A missing file is not an error.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else if _, err := os.Stat(".ux4g.yaml"); err == nil {
		v.SetConfigFile(".ux4g.yaml")
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "ux4g"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the binary cannot honour.
func (c Config) Validate() error {
	if _, err := c.OutputSyntax(); err != nil {
		return fmt.Errorf("config: syntax: %w", err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	if c.Theme.Variant != "" && c.Theme.Variant != catalog.DarkVariant {
		return fmt.Errorf("config: theme.variant %q (want empty or %q)", c.Theme.Variant, catalog.DarkVariant)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("config: cache.ttl must be positive when the cache is enabled")
	}
	return nil
}

// OutputSyntax parses Syntax; empty means HTML.
func (c Config) OutputSyntax() (markup.Syntax, error) {
	if strings.TrimSpace(c.Syntax) == "" {
		return markup.HTML, nil
	}
	return markup.ParseSyntax(c.Syntax)
}

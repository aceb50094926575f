// Package config loads settings for the long-running server.
//
// Values come from, in increasing priority: built-in defaults, an optional
// YAML config file, LABELCRITIC_* environment variables, and command flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dshills/labelcritic/internal/logging"
)

// Default values applied when a setting is absent everywhere.
const (
	DefaultListenAddr   = ":8080"
	DefaultBuiltin      = "sample"
	DefaultLogLevel     = "info"
	DefaultReadTimeout  = 5 * time.Second
	DefaultWriteTimeout = 10 * time.Second

	EnvPrefix = "LABELCRITIC"
)

// Config holds the server settings.
type Config struct {
	// ListenAddr is the host:port the HTTP server binds.
	ListenAddr string `mapstructure:"listen_addr"`

	// Catalog is a product catalog file. When empty, Builtin is served.
	Catalog string `mapstructure:"catalog"`

	// Builtin names an embedded catalog.
	Builtin string `mapstructure:"builtin"`

	// Watch reloads Catalog when the file changes.
	Watch bool `mapstructure:"watch"`

	LogLevel     string        `mapstructure:"log_level"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// flagKeys maps config keys to command flag names.
var flagKeys = map[string]string{
	"listen_addr":   "listen-addr",
	"catalog":       "catalog",
	"builtin":       "builtin",
	"watch":         "watch",
	"log_level":     "log-level",
	"read_timeout":  "read-timeout",
	"write_timeout": "write-timeout",
}

// Load resolves the configuration. path may be empty; flags may be nil.
// Only flags present in the set are bound.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("listen_addr", DefaultListenAddr)
	v.SetDefault("catalog", "")
	v.SetDefault("builtin", DefaultBuiltin)
	v.SetDefault("watch", false)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("read_timeout", DefaultReadTimeout)
	v.SetDefault("write_timeout", DefaultWriteTimeout)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("config: bind flag %s: %w", name, err)
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// Validate checks required fields and structural constraints.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return errors.New("listen_addr is required")
	}
	if c.Catalog == "" && c.Builtin == "" {
		return errors.New("one of catalog or builtin is required")
	}
	if c.Watch && c.Catalog == "" {
		return errors.New("watch requires a catalog file")
	}
	if c.ReadTimeout <= 0 {
		return errors.New("read_timeout must be positive")
	}
	if c.WriteTimeout <= 0 {
		return errors.New("write_timeout must be positive")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Package config loads gophvault settings from defaults, an optional YAML
// file, GOPHVAULT_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"

	EnvPrefix = "GOPHVAULT"
	fileName  = "gophvault"
)

var (
	ErrInvalidBackend  = errors.New("invalid backend")
	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrEmptyPath       = errors.New("path cannot be empty")
)

// Config holds runtime settings.
type Config struct {
	DB       string `mapstructure:"db"`
	KeyFile  string `mapstructure:"key_file"`
	Backend  string `mapstructure:"backend"`
	LogLevel string `mapstructure:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DB:       "gophvault.db",
		KeyFile:  "gophvault.key",
		Backend:  BackendSQLite,
		LogLevel: "info",
	}
}

// flag name -> config key
var flagKeys = map[string]string{
	"db":        "db",
	"key-file":  "key_file",
	"backend":   "backend",
	"log-level": "log_level",
}

// RegisterFlags adds the config flags to fs with the built-in defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	def := Default()
	fs.String("db", def.DB, "path to the credential database")
	fs.String("key-file", def.KeyFile, "path to the encryption key file")
	fs.String("backend", def.Backend, "storage backend: sqlite or bolt")
	fs.String("log-level", def.LogLevel, "log level: debug, info, warn, error")
}

// Load builds the configuration. configFile, when set, must exist; otherwise
// gophvault.yaml is looked up in the user config dir and then in the working
// directory, and a missing file is not an error. flags may be nil.
func Load(flags *pflag.FlagSet, configFile string) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("db", def.DB)
	v.SetDefault("key_file", def.KeyFile)
	v.SetDefault("backend", def.Backend)
	v.SetDefault("log_level", def.LogLevel)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, fileName))
		}
		v.AddConfigPath(".")
		v.SetConfigName(fileName)
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that every setting has a usable value.
func (c *Config) Validate() error {
	if c.DB == "" {
		return fmt.Errorf("db: %w", ErrEmptyPath)
	}
	if c.KeyFile == "" {
		return fmt.Errorf("key_file: %w", ErrEmptyPath)
	}

	switch c.Backend {
	case BackendSQLite, BackendBolt:
	default:
		return fmt.Errorf("%w: %q (use %s or %s)", ErrInvalidBackend, c.Backend, BackendSQLite, BackendBolt)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}

	return nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return level, nil
}

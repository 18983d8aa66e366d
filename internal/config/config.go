// Package config loads the CLI configuration. Precedence follows the
// usual convention: the FREI0R_PATH environment variable beats the
// config file, which beats the built-in search directories.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/ldo/go0r/pkg/plugin"
)

// Config is the full CLI configuration.
type Config struct {
	// Paths is the ordered plugin search path. Empty means the
	// conventional frei0r directories.
	Paths []string `mapstructure:"paths"`
	// Vendor restricts the conventional directories to a vendor
	// subdirectory.
	Vendor  string        `mapstructure:"vendor"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// LoggingConfig controls CLI log output.
type LoggingConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level string `mapstructure:"level"`
	// Format is "text" (console) or "json".
	Format string `mapstructure:"format"`
}

// Load reads the configuration. An explicit cfgFile must exist; the
// default config file (go0r.yaml in the user config directory or the
// working directory) is optional.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	} else {
		v.SetConfigName("go0r")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	// FREI0R_PATH overrides any configured path list.
	if env := os.Getenv(plugin.EnvPath); env != "" {
		cfg.Paths = nil
		for _, d := range strings.Split(env, ":") {
			if d != "" {
				cfg.Paths = append(cfg.Paths, d)
			}
		}
	}
	if len(cfg.Paths) == 0 {
		cfg.Paths = plugin.Directories(cfg.Vendor)
	}
	return &cfg, nil
}

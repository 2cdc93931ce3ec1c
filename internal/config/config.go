// Package config loads application configuration from environment variables
// and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	API   APIConfig   `mapstructure:"api"`
	Token TokenConfig `mapstructure:"token"`
	Debug bool        `mapstructure:"debug"`
}

// APIConfig holds marketplace backend settings.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// TokenConfig holds bearer-token persistence settings.
type TokenConfig struct {
	// Path overrides the default token file location. Empty means the
	// per-user config directory.
	Path string `mapstructure:"path"`
}

// Load reads configuration from WOODSHOP_-prefixed environment variables and
// an optional .env file in the working directory.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// The .env file is optional; environment variables alone are fine.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix("WOODSHOP")
	v.AutomaticEnv()

	setDefaults(v)

	cfg := &Config{}
	bindConfig(v, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_TIMEOUT", "15s")
	v.SetDefault("TOKEN_PATH", "")
	v.SetDefault("DEBUG", false)
}

func bindConfig(v *viper.Viper, cfg *Config) {
	cfg.API.BaseURL = v.GetString("API_BASE_URL")
	cfg.API.Timeout = v.GetDuration("API_TIMEOUT")
	cfg.Token.Path = v.GetString("TOKEN_PATH")
	cfg.Debug = v.GetBool("DEBUG")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base URL is required (WOODSHOP_API_BASE_URL)")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("invalid api timeout: %s", c.API.Timeout)
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	logcfg "github.com/ncobase/pagewalk/logging/logger/config"
	"github.com/ncobase/pagewalk/validator"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. PAGEWALK_API_TOKEN.
const EnvPrefix = "PAGEWALK"

// Config represents the configuration implementation.
type Config struct {
	AppName   string         `json:"app_name"`
	RunMode   string         `json:"run_mode" validate:"oneof=debug release test"`
	API       *API           `json:"api" validate:"required"`
	Paging    *Paging        `json:"paging" validate:"required"`
	Retry     *Retry         `json:"retry"`
	Breaker   *Breaker       `json:"breaker"`
	RateLimit *RateLimit     `json:"rate_limit"`
	Logger    *logcfg.Config `json:"logger"`
	Observes  *Observes      `json:"observes"`
	Metrics   *Metrics       `json:"metrics"`
	Viper     *viper.Viper   `json:"-" validate:"-"`
}

// LoadConfig loads the configuration from configPath, or from config.* in
// the default search paths when configPath is empty. A missing default file
// is not an error; environment variables are always applied.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("api.token", EnvPrefix+"_API_TOKEN", "MASTODON_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind env: %w", err)
	}
	if err := v.BindEnv("api.host", EnvPrefix+"_API_HOST", "MASTODON_INSTANCE"); err != nil {
		return nil, fmt.Errorf("failed to bind env: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.pagewalk")
		v.AddConfigPath("/etc/pagewalk")
		if ex, err := os.Executable(); err == nil {
			v.AddConfigPath(filepath.Dir(ex))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	return FromViper(v), nil
}

// FromViper builds the configuration from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		AppName:   getStringOrDefault(v, "app_name", "pagewalk"),
		RunMode:   getStringOrDefault(v, "run_mode", "release"),
		API:       getAPIConfig(v),
		Paging:    getPagingConfig(v),
		Retry:     getRetryConfig(v),
		Breaker:   getBreakerConfig(v),
		RateLimit: getRateLimitConfig(v),
		Logger:    logcfg.GetConfig(v),
		Observes:  getObservesConfig(v),
		Metrics:   getMetricsConfig(v),
		Viper:     v,
	}
}

// Validate checks the settings needed to talk to the API.
func (c *Config) Validate() error {
	if err := validator.Struct(c); err != nil {
		return err
	}
	_, err := c.Paging.ParsedMode()
	return err
}

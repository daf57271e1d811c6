// ABOUTME: Application configuration via viper: YAML file, env overrides, defaults
// ABOUTME: Controls backend URL, timeouts, token location, and logging

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	API       APIConfig `mapstructure:"api"`
	Log       LogConfig `mapstructure:"log"`
	TokenPath string    `mapstructure:"token_path"`
}

// APIConfig locates the backend.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LogConfig controls the observability sink.
type LogConfig struct {
	Level        string `mapstructure:"level"`         // debug | info | warn | error
	CollectorURL string `mapstructure:"collector_url"` // remote collector for error entries; empty disables
}

// Dir returns the config directory following XDG spec.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bookhaven")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "bookhaven")
}

// Load reads config.yaml from the config directory or the working directory.
// A missing file is fine; defaults and BOOKHAVEN_* env vars still apply
// (e.g. BOOKHAVEN_API_BASE_URL overrides api.base_url).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir := Dir(); dir != "" {
		v.AddConfigPath(dir)
	}
	v.AddConfigPath(".")

	v.SetDefault("api.base_url", "http://localhost:5000/api")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.collector_url", "")
	v.SetDefault("token_path", "")

	v.SetEnvPrefix("BOOKHAVEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api.base_url: %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", cfg.API.Timeout)
	}
	return nil
}

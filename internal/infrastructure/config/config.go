package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	API         APIConfig
	Logging     LogConfig
	Preferences PreferencesConfig
	Pages       PagesConfig
}

// APIConfig holds the waos API client configuration.
type APIConfig struct {
	URL               string        `envconfig:"WAOS_API_URL" default:"http://localhost:3000/api"`
	Timeout           time.Duration `envconfig:"WAOS_API_TIMEOUT" default:"30s"`
	Retries           int           `envconfig:"WAOS_API_RETRIES" default:"3"`
	RequestsPerSecond float64       `envconfig:"WAOS_API_RPS" default:"0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// PreferencesConfig holds the preferences store location.
type PreferencesConfig struct {
	Path string `envconfig:"WAOS_PREFS_PATH" default:""`
}

// PagesConfig holds markdown page rendering configuration.
type PagesConfig struct {
	Style     string `envconfig:"WAOS_PAGE_STYLE" default:"air"`
	ThemeFile string `envconfig:"WAOS_THEME_FILE" default:""`
	Theme     string `envconfig:"WAOS_THEME" default:"waos"`
	BaseURL   string `envconfig:"WAOS_PAGES_URL" default:"https://raw.githubusercontent.com/weareopensource/waosSwift/master/"`
	Changelog string `envconfig:"WAOS_CHANGELOG" default:"CHANGELOG.md"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			URL:     "http://localhost:3000/api",
			Timeout: 30 * time.Second,
			Retries: 3,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		Pages: PagesConfig{
			Style:     "air",
			Theme:     "waos",
			BaseURL:   "https://raw.githubusercontent.com/weareopensource/waosSwift/master/",
			Changelog: "CHANGELOG.md",
		},
	}
}

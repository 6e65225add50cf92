// Package config provides 12-factor configuration management for the waos client.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - API: base URL, timeout, retries and client-side rate limit
//   - Logging: Log level and output format
//   - Preferences: path of the bbolt preferences file (empty keeps them in memory)
//   - Pages: markdown page style and optional YAML theme file
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	theme, err := config.LoadTheme(cfg.Pages.ThemeFile)
//
// Environment Variables:
//   - WAOS_API_URL, WAOS_API_TIMEOUT, WAOS_API_RETRIES, WAOS_API_RPS
//   - LOG_LEVEL, LOG_DEV
//   - WAOS_PREFS_PATH
//   - WAOS_PAGE_STYLE, WAOS_THEME_FILE, WAOS_THEME
package config

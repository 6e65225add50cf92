package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Palette is one named color theme.
type Palette struct {
	Background string `yaml:"background"`
	Primary    string `yaml:"primary"`
	OnPrimary  string `yaml:"onPrimary"`
	Secondary  string `yaml:"secondary"`
	Error      string `yaml:"error"`
}

// Theme mirrors the "theme" section of the application config file:
//
//	theme:
//	  themes:
//	    waos:
//	      background: "#F2F2F7"
type Theme struct {
	Themes map[string]Palette `yaml:"themes"`
}

type themeFile struct {
	Theme Theme `yaml:"theme"`
}

// LoadTheme reads a YAML theme file. An empty path yields an empty theme.
func LoadTheme(path string) (*Theme, error) {
	if path == "" {
		return &Theme{Themes: map[string]Palette{}}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}

	return ParseTheme(data)
}

// ParseTheme decodes theme YAML.
func ParseTheme(data []byte) (*Theme, error) {
	var f themeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse theme: %w", err)
	}
	if f.Theme.Themes == nil {
		f.Theme.Themes = map[string]Palette{}
	}
	return &f.Theme, nil
}

// Palette returns the named palette, or the zero palette when missing.
func (t *Theme) Palette(name string) Palette {
	if t == nil {
		return Palette{}
	}
	return t.Themes[name]
}

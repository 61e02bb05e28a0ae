package project

import (
	"encoding/json"
	"fmt"
	"slices"

	yaml "gopkg.in/yaml.v3"

	"tailgen/common"
	"tailgen/theme"
)

// Resolved is style configuration after tokens were merged over defaults.
// Content and plugins are passed through unchanged.
type Resolved struct {
	Content  []string        `yaml:"content" json:"content"`
	Theme    theme.Theme     `yaml:"theme" json:"theme"`
	Plugins  []string        `yaml:"plugins" json:"plugins"`
	DarkMode common.DarkMode `yaml:"darkMode" json:"darkMode"`
	Prefix   string          `yaml:"prefix,omitempty" json:"prefix,omitempty"`
}

// Resolve merges configured tokens over built-in defaults.
func (c *Config) Resolve() *Resolved {
	return c.ResolveWith(theme.Defaults())
}

// ResolveWith merges configured tokens over provided defaults.
func (c *Config) ResolveWith(defaults theme.Theme) *Resolved {
	plugins := slices.Clone(c.Plugins)
	if plugins == nil {
		plugins = []string{}
	}
	return &Resolved{
		Content:  slices.Clone(c.Content),
		Theme:    theme.Resolve(defaults, c.Theme.Override, c.Theme.Extend),
		Plugins:  plugins,
		DarkMode: c.DarkMode,
		Prefix:   c.Prefix,
	}
}

// Marshal serializes resolved configuration. Output is deterministic: the
// same input always produces the same bytes.
func (r *Resolved) Marshal(format common.ResolveFormat) ([]byte, error) {
	switch format {
	case common.ResolveFormatYaml:
		data, err := yaml.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal resolved configuration to yaml: %w", err)
		}
		return data, nil
	case common.ResolveFormatJson:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal resolved configuration to json: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported output format %s", format)
	}
}

// Package project describes style configuration: what sources to scan for
// class names, how to adjust design tokens and which plugins to enable.
package project

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rupor-github/gencfg"
	yaml "gopkg.in/yaml.v3"

	"tailgen/common"
	"tailgen/theme"
)

var ErrInvalidGlob = errors.New("invalid glob pattern")

// ThemeSpec holds categories which replace defaults and, under "extend",
// categories merged into defaults.
type ThemeSpec struct {
	Override theme.Theme
	Extend   theme.Theme
}

func (ts *ThemeSpec) UnmarshalYAML(node *yaml.Node) error {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: theme must be a mapping", node.Line)
	}
	spec := ThemeSpec{Override: theme.Theme{}, Extend: theme.Theme{}}
	seen := make(map[string]struct{}, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		if _, ok := seen[key]; ok {
			return fmt.Errorf("line %d: theme key %q already defined", node.Content[i].Line, key)
		}
		seen[key] = struct{}{}
		if key == "extend" {
			if err := val.Decode(&spec.Extend); err != nil {
				return err
			}
			continue
		}
		var c theme.Category
		if err := val.Decode(&c); err != nil {
			return err
		}
		spec.Override[key] = c
	}
	*ts = spec
	return nil
}

func (ts ThemeSpec) MarshalYAML() (any, error) {
	out := make(map[string]any, len(ts.Override)+1)
	for k, c := range ts.Override {
		out[k] = c
	}
	if len(ts.Extend) > 0 {
		out["extend"] = ts.Extend
	}
	return out, nil
}

// Config is style configuration as authored.
type Config struct {
	Content  []string        `yaml:"content" validate:"required,min=1,dive,required"`
	Theme    ThemeSpec       `yaml:"theme"`
	Plugins  []string        `yaml:"plugins" validate:"dive,required"`
	DarkMode common.DarkMode `yaml:"darkMode"`
	Prefix   string          `yaml:"prefix"`

	// Dir is base directory for content patterns, normally location of the
	// configuration file.
	Dir string `yaml:"-"`
}

// require('@tailwindcss/forms') form is accepted for plugin names
var requireCall = regexp.MustCompile(`^require\(\s*['"]([^'"]+)['"]\s*\)$`)

// Load reads style configuration from file. JSON is accepted as well as
// YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read style configuration: %w", err)
	}
	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data, dir)
	if err != nil {
		return nil, fmt.Errorf("unable to load style configuration '%s': %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates style configuration, dir is used to resolve
// content patterns.
func Parse(data []byte, dir string) (*Config, error) {
	cfg := &Config{Dir: dir}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("configuration is empty")
		}
		return nil, fmt.Errorf("failed to decode style configuration: %w", err)
	}
	if err := gencfg.Validate(cfg); err != nil {
		return nil, err
	}
	if strings.ContainsAny(cfg.Prefix, " \t:.") {
		return nil, fmt.Errorf("prefix %q may not contain spaces, dots or colons", cfg.Prefix)
	}

	for i, p := range cfg.Plugins {
		if m := requireCall.FindStringSubmatch(strings.TrimSpace(p)); m != nil {
			p = m[1]
		}
		cfg.Plugins[i] = strings.TrimSpace(p)
	}
	for _, p := range cfg.Content {
		if err := ValidatePattern(p); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// ValidatePattern checks glob syntax. Leading "!" marks exclusion pattern.
func ValidatePattern(pattern string) error {
	p := strings.TrimPrefix(pattern, "!")
	if len(strings.TrimSpace(p)) == 0 || !doublestar.ValidatePattern(filepath.ToSlash(p)) {
		return fmt.Errorf("%w: %q", ErrInvalidGlob, pattern)
	}
	return nil
}

// Patterns returns content patterns with duplicates removed, keeping order
// of first occurrence, and the list of dropped duplicates.
func (c *Config) Patterns() (patterns, duplicates []string) {
	seen := make(map[string]struct{}, len(c.Content))
	for _, p := range c.Content {
		key := filepath.ToSlash(p)
		if _, ok := seen[key]; ok {
			duplicates = append(duplicates, p)
			continue
		}
		seen[key] = struct{}{}
		patterns = append(patterns, p)
	}
	return patterns, duplicates
}

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

var validKinds = map[string]bool{
	KindNYT:      true,
	KindGuardian: true,
	KindNewsAPI:  true,
	KindRSS:      true,
}

// Load reads the outlets file. A missing file yields Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Info("Outlets file not found, using built-in outlets", "path", path)
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	slog.Debug("Configuration loaded", "path", path, "outlets", len(c.Outlets), "providers", len(c.Providers))
	return c, nil
}

func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	setDefaults(&c)

	if err := validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func setDefaults(c *Config) {
	if c.Settings.Timeout == 0 {
		c.Settings.Timeout = 30
	}
	if c.Settings.Limit == 0 {
		c.Settings.Limit = 20
	}
}

func validate(c *Config) error {
	if len(c.Outlets) == 0 {
		return fmt.Errorf("at least one outlet is required")
	}

	names := make(map[string]bool, len(c.Outlets))
	urls := make(map[string]bool, len(c.Outlets))
	for i, o := range c.Outlets {
		requiredFields := map[string]string{
			"outlet name": o.Name,
			"outlet URL":  o.URL,
		}
		for fieldName, fieldValue := range requiredFields {
			if fieldValue == "" {
				return fmt.Errorf("%s is required at index %d", fieldName, i)
			}
		}

		if names[o.Name] {
			return fmt.Errorf("duplicate outlet name: %s", o.Name)
		}
		if urls[o.URL] {
			return fmt.Errorf("duplicate outlet URL: %s", o.URL)
		}
		names[o.Name] = true
		urls[o.URL] = true
	}

	nonNegativeFields := map[string]int{
		"timeout": c.Settings.Timeout,
		"limit":   c.Settings.Limit,
	}
	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	for i, p := range c.Providers {
		if !validKinds[p.Kind] {
			return fmt.Errorf("invalid provider kind at index %d: %q", i, p.Kind)
		}
		if !names[p.Outlet] {
			return fmt.Errorf("provider at index %d references unknown outlet %q", i, p.Outlet)
		}
		if p.Kind == KindRSS && p.URL == "" {
			return fmt.Errorf("rss provider at index %d requires url", i)
		}
		if p.Kind == KindNewsAPI && p.Source == "" {
			return fmt.Errorf("newsapi provider at index %d requires source", i)
		}
		if p.Limit < 0 || p.Timeout < 0 {
			return fmt.Errorf("provider at index %d: limit and timeout must be non-negative", i)
		}
	}

	return nil
}

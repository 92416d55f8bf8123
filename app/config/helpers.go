package config

import (
	"cmp"
	"fmt"
	"os"
	"time"

	"github.com/lysyi3m/news-hub/app/story"
)

func (s *Settings) GetTimeout() time.Duration {
	if s.Timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.Timeout) * time.Second
}

// GetTimeout falls back to the file-wide setting.
func (p *Provider) GetTimeout(s Settings) time.Duration {
	if p.Timeout > 0 {
		return time.Duration(p.Timeout) * time.Second
	}
	return s.GetTimeout()
}

func (p *Provider) GetLimit(s Settings) int {
	return cmp.Or(p.Limit, s.Limit, 20)
}

// ResolveAPIKey returns the inline key or the value of the named env variable.
func (p *Provider) ResolveAPIKey() string {
	if p.APIKey != "" {
		return p.APIKey
	}
	if p.APIKeyEnv != "" {
		return os.Getenv(p.APIKeyEnv)
	}
	return ""
}

// Name identifies the provider in logs.
func (p *Provider) Name() string {
	if p.Source != "" {
		return fmt.Sprintf("%s:%s", p.Kind, p.Source)
	}
	return fmt.Sprintf("%s:%s", p.Kind, p.Outlet)
}

func (c *Config) StoryOutlets() []story.Outlet {
	outlets := make([]story.Outlet, 0, len(c.Outlets))
	for _, o := range c.Outlets {
		outlets = append(outlets, story.Outlet{Name: o.Name, URL: o.URL, Color: o.Color})
	}
	return outlets
}

func (c *Config) EnabledProviders() []Provider {
	enabled := make([]Provider, 0, len(c.Providers))
	for _, p := range c.Providers {
		if !p.Disabled {
			enabled = append(enabled, p)
		}
	}
	return enabled
}

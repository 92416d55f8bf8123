package config

const (
	KindNYT      = "nyt"
	KindGuardian = "guardian"
	KindNewsAPI  = "newsapi"
	KindRSS      = "rss"
)

type Config struct {
	Outlets   []Outlet   `yaml:"outlets"`
	Providers []Provider `yaml:"providers"`
	Settings  Settings   `yaml:"settings"`
}

type Outlet struct {
	Name  string `yaml:"name"`
	URL   string `yaml:"url"`
	Color string `yaml:"color"`
}

type Provider struct {
	Kind           string `yaml:"kind"`
	Outlet         string `yaml:"outlet"`
	Source         string `yaml:"source"`  // NewsAPI source id
	URL            string `yaml:"url"`     // feed URL for rss, endpoint override for the JSON APIs
	APIKey         string `yaml:"api_key"` // prefer api_key_env
	APIKeyEnv      string `yaml:"api_key_env"`
	Limit          int    `yaml:"limit"`
	Timeout        int    `yaml:"timeout"` // seconds
	ExtractExcerpt bool   `yaml:"extract_excerpt"`
	Disabled       bool   `yaml:"disabled"`
}

type Settings struct {
	Timeout int `yaml:"timeout"` // seconds
	Limit   int `yaml:"limit"`
}

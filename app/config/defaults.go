package config

// Default mirrors the outlets and providers the hub shipped with.
func Default() *Config {
	c := &Config{
		Outlets: []Outlet{
			{Name: "CNN", URL: "https://cnn.com", Color: "#CC0000"},
			{Name: "Reuters", URL: "https://reuters.com", Color: "#FF6600"},
			{Name: "NPR", URL: "https://npr.org", Color: "#1A1A1A"},
			{Name: "NBC", URL: "https://nbcnews.com", Color: "#FFD700"},
			{Name: "ABC", URL: "https://abcnews.go.com", Color: "#FFD500"},
			{Name: "ESPN", URL: "https://espn.com", Color: "#D50A0A"},
			{Name: "AP News", URL: "https://apnews.com", Color: "#E41E13"},
			{Name: "NY Times", URL: "https://nytimes.com", Color: "#000000"},
			{Name: "WSJ", URL: "https://wsj.com", Color: "#2E2E2E"},
			{Name: "The Guardian", URL: "https://theguardian.com", Color: "#052962"},
		},
		Providers: []Provider{
			{Kind: KindNYT, Outlet: "NY Times", APIKeyEnv: "NYT_API_KEY"},
			{Kind: KindGuardian, Outlet: "The Guardian", APIKeyEnv: "GUARDIAN_API_KEY"},
			{Kind: KindNewsAPI, Outlet: "CNN", Source: "cnn", APIKeyEnv: "NEWS_API_KEY"},
			{Kind: KindNewsAPI, Outlet: "Reuters", Source: "reuters", APIKeyEnv: "NEWS_API_KEY"},
			{Kind: KindNewsAPI, Outlet: "ABC", Source: "abc-news", APIKeyEnv: "NEWS_API_KEY"},
			{Kind: KindNewsAPI, Outlet: "NBC", Source: "nbc-news", APIKeyEnv: "NEWS_API_KEY"},
			{Kind: KindNewsAPI, Outlet: "ESPN", Source: "espn", APIKeyEnv: "NEWS_API_KEY"},
			{Kind: KindNewsAPI, Outlet: "WSJ", Source: "the-wall-street-journal", APIKeyEnv: "NEWS_API_KEY"},
		},
	}
	setDefaults(c)
	return c
}

package provider

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lysyi3m/news-hub/app/story"
)

const nytImageFormat = "Large Thumbnail"

type nytResponse struct {
	Status  string       `json:"status"`
	Results []nytArticle `json:"results"`
}

type nytArticle struct {
	Section       string     `json:"section"`
	Title         string     `json:"title"`
	Abstract      string     `json:"abstract"`
	URL           string     `json:"url"`
	PublishedDate string     `json:"published_date"`
	Multimedia    []nytMedia `json:"multimedia"`
}

type nytMedia struct {
	URL    string `json:"url"`
	Format string `json:"format"`
}

// NYT normalizes the New York Times newswire feed.
type NYT struct {
	Outlet string
	Clock  func() time.Time
}

func (n *NYT) Normalize(data []byte) ([]story.Story, error) {
	return normalize(n, n.Outlet, data, n.Clock)
}

func (n *NYT) bySection() bool { return true }

func (n *NYT) entries(data []byte) ([]entry, error) {
	var resp nytResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode NYT response: %w", err)
	}
	if resp.Results == nil {
		return nil, fmt.Errorf("NYT response has no results")
	}

	entries := make([]entry, 0, len(resp.Results))
	for _, a := range resp.Results {
		e := entry{
			title:       a.Title,
			description: a.Abstract,
			section:     a.Section,
			url:         a.URL,
			published:   parseTime(a.PublishedDate),
		}
		for _, m := range a.Multimedia {
			if m.Format == nytImageFormat {
				e.image = m.URL
				break
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

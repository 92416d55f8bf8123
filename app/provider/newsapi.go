package provider

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/lysyi3m/news-hub/app/story"
)

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Code     string           `json:"code"`
	Message  string           `json:"message"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
}

// NewsAPI normalizes top-headlines for one NewsAPI source. It carries no
// section labels, so the primary category comes from keywords.
type NewsAPI struct {
	Outlet string
	Clock  func() time.Time
}

func (n *NewsAPI) Normalize(data []byte) ([]story.Story, error) {
	return normalize(n, n.Outlet, data, n.Clock)
}

func (n *NewsAPI) bySection() bool { return false }

func (n *NewsAPI) entries(data []byte) ([]entry, error) {
	var resp newsAPIResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode NewsAPI response: %w", err)
	}
	if resp.Status == "error" {
		return nil, fmt.Errorf("NewsAPI error %s: %s", resp.Code, resp.Message)
	}
	if resp.Status != "ok" || resp.Articles == nil {
		return nil, fmt.Errorf("NewsAPI response has no articles")
	}

	entries := make([]entry, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		entries = append(entries, entry{
			title:       a.Title,
			description: a.Description,
			url:         a.URL,
			image:       a.URLToImage,
			published:   parseTime(a.PublishedAt),
		})
	}
	return entries, nil
}

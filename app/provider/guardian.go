package provider

import (
	"cmp"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lysyi3m/news-hub/app/story"
)

type guardianResponse struct {
	Response *struct {
		Status  string            `json:"status"`
		Results []guardianArticle `json:"results"`
	} `json:"response"`
}

type guardianArticle struct {
	SectionName        string `json:"sectionName"`
	WebTitle           string `json:"webTitle"`
	WebURL             string `json:"webUrl"`
	WebPublicationDate string `json:"webPublicationDate"`
	Fields             struct {
		Headline  string `json:"headline"`
		TrailText string `json:"trailText"`
		Thumbnail string `json:"thumbnail"`
	} `json:"fields"`
}

type Guardian struct {
	Outlet string
	Clock  func() time.Time
}

func (g *Guardian) Normalize(data []byte) ([]story.Story, error) {
	return normalize(g, g.Outlet, data, g.Clock)
}

func (g *Guardian) bySection() bool { return true }

func (g *Guardian) entries(data []byte) ([]entry, error) {
	var resp guardianResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode Guardian response: %w", err)
	}
	if resp.Response == nil {
		return nil, fmt.Errorf("guardian response is empty")
	}
	if resp.Response.Status != "ok" {
		return nil, fmt.Errorf("guardian API error: status %q", resp.Response.Status)
	}

	entries := make([]entry, 0, len(resp.Response.Results))
	for _, a := range resp.Response.Results {
		entries = append(entries, entry{
			title:       cmp.Or(a.Fields.Headline, a.WebTitle),
			description: plainText(a.Fields.TrailText),
			section:     a.SectionName,
			url:         a.WebURL,
			image:       a.Fields.Thumbnail,
			published:   parseTime(a.WebPublicationDate),
		})
	}
	return entries, nil
}

package provider

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/lysyi3m/news-hub/app/story"
)

// RSS normalizes RSS and Atom feeds. Item categories act as the section label.
type RSS struct {
	Outlet string
	Limit  int
	Clock  func() time.Time

	gofeedParser *gofeed.Parser
}

func NewRSS(outlet string, limit int, clock func() time.Time) *RSS {
	return &RSS{
		Outlet:       outlet,
		Limit:        limit,
		Clock:        clock,
		gofeedParser: gofeed.NewParser(),
	}
}

func (r *RSS) Normalize(data []byte) ([]story.Story, error) {
	return normalize(r, r.Outlet, data, r.Clock)
}

func (r *RSS) bySection() bool { return true }

func (r *RSS) entries(data []byte) ([]entry, error) {
	parser := r.gofeedParser
	if parser == nil {
		parser = gofeed.NewParser()
	}

	feed, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := feed.Items
	if r.Limit > 0 && len(items) > r.Limit {
		items = items[:r.Limit]
	}

	entries := make([]entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, r.normalizeItem(item))
	}
	return entries, nil
}

func (r *RSS) normalizeItem(item *gofeed.Item) entry {
	e := entry{
		title:       strings.TrimSpace(item.Title),
		description: plainText(item.Description),
		section:     strings.Join(item.Categories, " "),
		url:         strings.TrimSpace(item.Link),
		image:       itemImage(item),
	}

	if item.PublishedParsed != nil {
		e.published = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		e.published = *item.UpdatedParsed
	}

	return e
}

func itemImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}

	for _, enclosure := range item.Enclosures {
		if enclosure != nil && strings.HasPrefix(enclosure.Type, "image/") {
			return enclosure.URL
		}
	}

	if media, ok := item.Extensions["media"]; ok {
		for _, name := range []string{"thumbnail", "content"} {
			for _, ext := range media[name] {
				if u := ext.Attrs["url"]; u != "" {
					return u
				}
			}
		}
	}

	return ""
}

package provider

import (
	"errors"
	"time"

	"github.com/lysyi3m/news-hub/app/classify"
	"github.com/lysyi3m/news-hub/app/story"
)

var ErrProviderUnavailable = errors.New("provider unavailable")

// Normalizer converts one provider payload into stories for a single outlet.
type Normalizer interface {
	Normalize(data []byte) ([]story.Story, error)
}

// entry is a provider item before classification.
type entry struct {
	title       string
	description string
	section     string
	url         string
	image       string
	published   time.Time
}

type entryParser interface {
	entries(data []byte) ([]entry, error)
	bySection() bool
}

func buildStories(source string, entries []entry, bySection bool, fetchedAt time.Time) []story.Story {
	stories := make([]story.Story, 0, len(entries))
	for _, e := range entries {
		if e.title == "" || e.url == "" {
			continue
		}

		var primary story.Category
		var cats []story.Category
		if bySection && e.section != "" {
			primary, cats = classify.BySection(e.section, e.title, e.description)
		} else {
			primary, cats = classify.ByKeywords(e.title, e.description)
		}
		if len(cats) == 0 {
			cats = []story.Category{primary}
		}

		published := e.published
		if published.IsZero() {
			published = fetchedAt
		}

		stories = append(stories, story.Story{
			Source:      source,
			Title:       e.title,
			Description: e.description,
			Timestamp:   published.UnixMilli(),
			Category:    primary,
			Categories:  cats,
			URL:         e.url,
			Image:       e.image,
			ReadTime:    story.EstimateReadTime(e.description, e.title),
		})
	}
	return stories
}

func normalize(p entryParser, source string, data []byte, clock func() time.Time) ([]story.Story, error) {
	entries, err := p.entries(data)
	if err != nil {
		return nil, err
	}
	return buildStories(source, entries, p.bySection(), now(clock)), nil
}

func now(clock func() time.Time) time.Time {
	if clock == nil {
		return time.Now()
	}
	return clock()
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

package aggregate

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/lysyi3m/news-hub/app/story"
)

var ErrAggregation = errors.New("aggregation failed")

var placeholderHeadlines = [...]string{
	"Major Policy Announcement Expected This Week",
	"Technology Sector Sees Unprecedented Growth",
	"Global Markets Respond to Economic Shifts",
	"Championship Game Breaks Viewership Records",
	"International Leaders Convene for Summit",
}

var placeholderDescriptions = [...]string{
	"Officials are preparing to unveil changes that could significantly impact the industry.",
	"Analysts point to sustained innovation as the key driver behind recent developments.",
	"Investors are closely monitoring the situation as it continues to evolve.",
	"The historic event captured the attention of audiences worldwide.",
	"Delegates from numerous countries gathered to address pressing global issues.",
}

const placeholderReadTime = "3 min read"

// Placeholders synthesizes stand-in stories for an outlet that produced nothing.
// All of them share the outlet homepage as URL.
func Placeholders(o story.Outlet, now time.Time) []story.Story {
	stories := make([]story.Story, 0, len(placeholderHeadlines))
	for i, title := range placeholderHeadlines {
		stories = append(stories, story.Story{
			Source:      o.Name,
			Title:       title,
			Description: placeholderDescriptions[i],
			Timestamp:   now.Add(-time.Duration(i) * time.Minute).UnixMilli(),
			Category:    story.World,
			Categories:  []story.Category{story.World},
			URL:         o.URL,
			ReadTime:    placeholderReadTime,
		})
	}
	return stories
}

// Aggregate merges per-provider results (in provider order), fills silent
// outlets with placeholders, removes duplicate URLs and sorts newest first.
func Aggregate(results [][]story.Story, outlets []story.Outlet, now time.Time) []story.Story {
	var merged []story.Story
	produced := make(map[string]bool)
	for _, stories := range results {
		for _, s := range stories {
			produced[s.Source] = true
		}
		merged = append(merged, stories...)
	}

	for _, o := range outlets {
		if !produced[o.Name] {
			merged = append(merged, Placeholders(o, now)...)
		}
	}

	merged = Dedupe(merged)
	SortByTime(merged)
	return merged
}

// Dedupe keeps the first story seen for each URL.
func Dedupe(stories []story.Story) []story.Story {
	seen := make(map[string]bool, len(stories))
	unique := make([]story.Story, 0, len(stories))
	for _, s := range stories {
		if seen[s.URL] {
			continue
		}
		seen[s.URL] = true
		unique = append(unique, s)
	}
	return unique
}

// SortByTime orders newest first, keeping the input order of equal timestamps.
func SortByTime(stories []story.Story) {
	slices.SortStableFunc(stories, func(a, b story.Story) int {
		switch {
		case a.Timestamp > b.Timestamp:
			return -1
		case a.Timestamp < b.Timestamp:
			return 1
		}
		return 0
	})
}

// Fallback is the collection served when aggregation itself fails: every
// outlet's placeholders, sorted, without deduplication.
func Fallback(outlets []story.Outlet, now time.Time) []story.Story {
	var stories []story.Story
	for _, o := range outlets {
		stories = append(stories, Placeholders(o, now)...)
	}
	SortByTime(stories)
	return stories
}

// Run is Aggregate behind a recover boundary. On failure it returns the
// Fallback collection together with an error wrapping ErrAggregation.
func Run(results [][]story.Story, outlets []story.Outlet, now time.Time) ([]story.Story, error) {
	return guard(func() []story.Story {
		return Aggregate(results, outlets, now)
	}, outlets, now)
}

func guard(aggregate func() []story.Story, outlets []story.Outlet, now time.Time) (stories []story.Story, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Aggregation failed, serving placeholders", "panic", r)
			stories = Fallback(outlets, now)
			err = fmt.Errorf("%w: %v", ErrAggregation, r)
		}
	}()

	return aggregate(), nil
}

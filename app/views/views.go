package views

import (
	"slices"

	"github.com/lysyi3m/news-hub/app/story"
)

const (
	LatestLimit   = 5
	BiggestLimit  = 4
	SectionLimit  = 8
	BriefingLimit = 10
	RelatedLimit  = 3
	TrendingLimit = 8
)

func head(stories []story.Story, n int) []story.Story {
	if len(stories) > n {
		stories = stories[:n]
	}
	return slices.Clone(stories)
}

func sortedByTime(stories []story.Story) []story.Story {
	sorted := slices.Clone(stories)
	slices.SortStableFunc(sorted, func(a, b story.Story) int {
		switch {
		case a.Timestamp > b.Timestamp:
			return -1
		case a.Timestamp < b.Timestamp:
			return 1
		}
		return 0
	})
	return sorted
}

func Latest(stories []story.Story) []story.Story {
	return head(stories, LatestLimit)
}

// Biggest returns the newest image-bearing stories.
func Biggest(stories []story.Story) []story.Story {
	var withImage []story.Story
	for _, s := range stories {
		if s.HasImage() {
			withImage = append(withImage, s)
		}
	}
	return head(sortedByTime(withImage), BiggestLimit)
}

// Section returns up to SectionLimit stories belonging to c, in collection order.
func Section(stories []story.Story, c story.Category) []story.Story {
	var matched []story.Story
	for _, s := range stories {
		if s.HasCategory(c) {
			matched = append(matched, s)
			if len(matched) == SectionLimit {
				break
			}
		}
	}
	return matched
}

type CategorySection struct {
	Category story.Category
	Title    string
	Stories  []story.Story
}

// Sections lists the non-empty category sections in display order, skipping hidden ones.
func Sections(stories []story.Story, hidden []story.Category) []CategorySection {
	var sections []CategorySection
	for _, c := range story.AllCategories() {
		if slices.Contains(hidden, c) {
			continue
		}
		matched := Section(stories, c)
		if len(matched) == 0 {
			continue
		}
		sections = append(sections, CategorySection{Category: c, Title: c.Title(), Stories: matched})
	}
	return sections
}

// Briefing picks the newest story of each category in display order, fills
// the remaining slots with the newest stories not yet picked, and returns at
// most BriefingLimit stories newest first. A multi-category story that is the
// newest in several categories is picked once per category.
func Briefing(stories []story.Story) []story.Story {
	byTime := sortedByTime(stories)
	used := make(map[string]bool)
	var picked []story.Story

	for _, c := range story.AllCategories() {
		for _, s := range byTime {
			if s.HasCategory(c) {
				picked = append(picked, s)
				used[s.URL] = true
				break
			}
		}
	}

	for _, s := range byTime {
		if len(picked) >= BriefingLimit {
			break
		}
		if !used[s.URL] {
			picked = append(picked, s)
			used[s.URL] = true
		}
	}

	return head(sortedByTime(picked), BriefingLimit)
}

// Related returns other stories sharing a category or the source with target.
func Related(stories []story.Story, target story.Story) []story.Story {
	var related []story.Story
	for _, s := range stories {
		if s.URL == target.URL {
			continue
		}
		if s.Source == target.Source || sharesCategory(s, target) {
			related = append(related, s)
			if len(related) == RelatedLimit {
				break
			}
		}
	}
	return related
}

func sharesCategory(a, b story.Story) bool {
	for _, c := range a.Categories {
		if slices.Contains(b.Categories, c) {
			return true
		}
	}
	return false
}

func Find(stories []story.Story, url string) (story.Story, bool) {
	for _, s := range stories {
		if s.URL == url {
			return s, true
		}
	}
	return story.Story{}, false
}

type Topic struct {
	Category story.Category `json:"category"`
	Count    int            `json:"count"`
}

// Trending counts category memberships across the collection. Ties keep display order.
func Trending(stories []story.Story) []Topic {
	counts := make(map[story.Category]int)
	for _, s := range stories {
		for _, c := range s.Categories {
			counts[c]++
		}
	}

	var topics []Topic
	for _, c := range story.AllCategories() {
		if n := counts[c]; n > 0 {
			topics = append(topics, Topic{Category: c, Count: n})
		}
	}
	slices.SortStableFunc(topics, func(a, b Topic) int {
		return b.Count - a.Count
	})

	if len(topics) > TrendingLimit {
		topics = topics[:TrendingLimit]
	}
	return topics
}

// Saved returns the bookmarked stories still present in the collection.
func Saved(stories []story.Story, marks Marker) []story.Story {
	var saved []story.Story
	for _, s := range stories {
		if marks.IsBookmarked(s.URL) {
			saved = append(saved, s)
		}
	}
	return saved
}

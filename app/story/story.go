package story

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

type Category string

const (
	Politics      Category = "politics"
	Business      Category = "business"
	Technology    Category = "technology"
	Sports        Category = "sports"
	World         Category = "world"
	Health        Category = "health"
	Science       Category = "science"
	Entertainment Category = "entertainment"
	Lifestyle     Category = "lifestyle"
)

var displayOrder = []Category{
	Politics, Business, Technology, Sports, World,
	Health, Science, Entertainment, Lifestyle,
}

// AllCategories returns every category in display order.
func AllCategories() []Category {
	return slices.Clone(displayOrder)
}

func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(displayOrder, c) {
		return c, true
	}
	return "", false
}

// Title returns the category name with its first letter upper-cased.
func (c Category) Title() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// Story is a single normalized news item. URL is its identity.
type Story struct {
	Source      string     `json:"source"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Timestamp   int64      `json:"timestamp"`
	Category    Category   `json:"category"`
	Categories  []Category `json:"categories"`
	URL         string     `json:"url"`
	Image       string     `json:"image,omitempty"`
	ReadTime    string     `json:"readTime"`
}

func (s Story) HasImage() bool {
	return s.Image != ""
}

// HasCategory reports whether c is the primary category or one of the secondary ones.
func (s Story) HasCategory(c Category) bool {
	return s.Category == c || slices.Contains(s.Categories, c)
}

func (s Story) Published() time.Time {
	return time.UnixMilli(s.Timestamp)
}

type Outlet struct {
	Name  string `json:"name"`
	URL   string `json:"url"`
	Color string `json:"color"`
}

const wordsPerMinute = 200

// EstimateReadTime counts the words of the first non-blank text and
// renders "<n> min read" at 200 words per minute, never less than one.
func EstimateReadTime(texts ...string) string {
	words := 0
	for _, text := range texts {
		if strings.TrimSpace(text) != "" {
			words = len(strings.Fields(text))
			break
		}
	}

	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

package views

import (
	"github.com/lysyi3m/news-hub/app/story"
)

type Marker interface {
	IsRead(url string) bool
	IsBookmarked(url string) bool
}

// Card is a story decorated for display. The story itself is never modified.
type Card struct {
	Source       string           `json:"source"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	Timestamp    int64            `json:"timestamp"`
	Category     story.Category   `json:"category"`
	Categories   []story.Category `json:"categories"`
	URL          string           `json:"url"`
	Image        *string          `json:"image"`
	ReadTime     string           `json:"readTime"`
	IsRead       bool             `json:"isRead"`
	IsBookmarked bool             `json:"isBookmarked"`
	Color        string           `json:"color"`
	Initials     string           `json:"initials"`
	Related      []Card           `json:"related,omitempty"`
}

type SectionCards struct {
	Category story.Category `json:"category"`
	Title    string         `json:"title"`
	Stories  []Card         `json:"stories"`
}

type Front struct {
	Latest   []Card         `json:"latest"`
	Biggest  []Card         `json:"biggest"`
	Sections []SectionCards `json:"sections"`
	Trending []Topic        `json:"trending"`
}

type Decorator struct {
	outlets story.OutletIndex
	marks   Marker
}

func NewDecorator(outlets []story.Outlet, marks Marker) *Decorator {
	return &Decorator{outlets: story.IndexOutlets(outlets), marks: marks}
}

func (d *Decorator) Card(s story.Story) Card {
	c := Card{
		Source:      s.Source,
		Title:       s.Title,
		Description: s.Description,
		Timestamp:   s.Timestamp,
		Category:    s.Category,
		Categories:  s.Categories,
		URL:         s.URL,
		ReadTime:    s.ReadTime,
		Color:       d.outlets.Color(s.Source),
		Initials:    story.Initials(s.Source),
	}
	if s.HasImage() {
		image := s.Image
		c.Image = &image
	}
	if d.marks != nil {
		c.IsRead = d.marks.IsRead(s.URL)
		c.IsBookmarked = d.marks.IsBookmarked(s.URL)
	}
	return c
}

func (d *Decorator) Decorate(stories []story.Story) []Card {
	cards := make([]Card, 0, len(stories))
	for _, s := range stories {
		cards = append(cards, d.Card(s))
	}
	return cards
}

// WithRelated decorates target and attaches its related stories.
func (d *Decorator) WithRelated(stories []story.Story, target story.Story) Card {
	c := d.Card(target)
	c.Related = d.Decorate(Related(stories, target))
	return c
}

// Front assembles the home surface.
func (d *Decorator) Front(stories []story.Story, hidden []story.Category) Front {
	front := Front{
		Latest:   d.Decorate(Latest(stories)),
		Trending: Trending(stories),
	}

	for _, s := range Biggest(stories) {
		front.Biggest = append(front.Biggest, d.WithRelated(stories, s))
	}

	for _, section := range Sections(stories, hidden) {
		front.Sections = append(front.Sections, SectionCards{
			Category: section.Category,
			Title:    section.Title,
			Stories:  d.Decorate(section.Stories),
		})
	}

	return front
}

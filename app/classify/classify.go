package classify

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lysyi3m/news-hub/app/story"
)

type rule struct {
	category story.Category
	patterns []string
}

// Evaluated top to bottom; the first matching rule wins.
var sectionRules = []rule{
	{story.Politics, []string{"politic", "us-news", "government", "election"}},
	{story.Business, []string{"business", "economy", "finance", "market"}},
	{story.Technology, []string{"technolog", "tech"}},
	{story.Sports, []string{"sport"}},
	{story.Health, []string{"health", "medical", "wellness"}},
	{story.Science, []string{"science", "environment"}},
	{story.Entertainment, []string{"entertainment", "arts", "culture", "movies", "music", "film", "television", "books"}},
	{story.Lifestyle, []string{"lifestyle", "travel", "food", "fashion", "style"}},
}

// Keyword rules follow the category enumeration order so that the first
// match is the primary category.
var keywordRules = []rule{
	{story.Politics, []string{"election", "congress", "president", "senate", "vote", "political", "government", "trump", "biden"}},
	{story.Business, []string{"stock", "market", "economy", "business", "company", "earnings", "trade", "finance", "investor"}},
	{story.Technology, []string{"tech", "ai", "app", "software", "google", "apple", "digital", "computer", "microsoft"}},
	{story.Sports, []string{"game", "sport", "nba", "nfl", "team", "player", "football", "basketball", "soccer"}},
	{story.Health, []string{"health", "medical", "vaccine", "doctor", "hospital", "disease", "treatment", "drug", "patient"}},
	{story.Science, []string{"science", "research", "climate", "scientist", "study", "discovery", "space", "environment", "nasa"}},
	{story.Entertainment, []string{"movie", "music", "celebrity", "film", "actor", "entertainment", "concert", "album", "hollywood", "television", "tv show", "series"}},
	{story.Lifestyle, []string{"travel", "food", "fashion", "restaurant", "recipe", "style", "cooking", "wellness", "fitness"}},
}

// A cases.Caser is stateful, so each call gets its own.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

func (r rule) matches(text string) bool {
	for _, p := range r.patterns {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}

// Section maps a provider-supplied section label to a category.
// Matching is case-insensitive substring containment; unmatched labels map to world.
func Section(label string) story.Category {
	s := lower(label)
	for _, r := range sectionRules {
		if r.matches(s) {
			return r.category
		}
	}
	return story.World
}

// Categories returns every category whose keywords occur in text, in
// enumeration order. It never returns an empty set.
func Categories(text string) []story.Category {
	c := lower(text)

	var matched []story.Category
	for _, r := range keywordRules {
		if r.matches(c) {
			matched = append(matched, r.category)
		}
	}

	if len(matched) == 0 {
		return []story.Category{story.World}
	}
	return matched
}

func Primary(text string) story.Category {
	return Categories(text)[0]
}

// ByKeywords classifies a story from its own text.
func ByKeywords(title, description string) (story.Category, []story.Category) {
	cats := Categories(title + " " + description)
	return cats[0], cats
}

// BySection takes the primary category from the provider's section label
// while the secondary set still comes from the story text.
func BySection(section, title, description string) (story.Category, []story.Category) {
	return Section(section), Categories(title + " " + description)
}

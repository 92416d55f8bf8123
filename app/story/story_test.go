package story

import (
	"strings"
	"testing"
)

func TestEstimateReadTime(t *testing.T) {
	tests := []struct {
		name     string
		texts    []string
		expected string
	}{
		{"empty", []string{"", ""}, "1 min read"},
		{"short description", []string{"a few words here"}, "1 min read"},
		{"exactly 200 words", []string{strings.Repeat("word ", 200)}, "1 min read"},
		{"201 words", []string{strings.Repeat("word ", 201)}, "2 min read"},
		{"falls back to title", []string{"   ", strings.Repeat("w ", 450)}, "3 min read"},
		{"description wins over title", []string{"one two", strings.Repeat("w ", 450)}, "1 min read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EstimateReadTime(tt.texts...)
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestInitials(t *testing.T) {
	tests := map[string]string{
		"NY Times":     "NYT",
		"The Guardian": "TG",
		"AP News":      "AP",
		"CNN":          "CNN",
		"Reuters":      "REU",
		"Fox News":     "FN",
		"ab":           "AB",
		"":             "",
	}

	for name, expected := range tests {
		if got := Initials(name); got != expected {
			t.Errorf("Initials(%q): expected %q, got %q", name, expected, got)
		}
	}
}

func TestOutletIndexColor(t *testing.T) {
	idx := IndexOutlets([]Outlet{{Name: "CNN", URL: "https://cnn.com", Color: "#CC0000"}})

	if got := idx.Color("CNN"); got != "#CC0000" {
		t.Errorf("Expected #CC0000, got %s", got)
	}
	if got := idx.Color("Unknown"); got != DefaultColor {
		t.Errorf("Expected default color, got %s", got)
	}
}

func TestStoryHasCategory(t *testing.T) {
	s := Story{Category: Politics, Categories: []Category{World, Business}}

	if !s.HasCategory(Politics) {
		t.Error("Expected primary category to match")
	}
	if !s.HasCategory(Business) {
		t.Error("Expected secondary category to match")
	}
	if s.HasCategory(Sports) {
		t.Error("Expected sports not to match")
	}
}

func TestParseCategory(t *testing.T) {
	if c, ok := ParseCategory(" Technology "); !ok || c != Technology {
		t.Errorf("Expected technology, got %q (%v)", c, ok)
	}
	if _, ok := ParseCategory("weather"); ok {
		t.Error("Expected unknown category to be rejected")
	}
	if AllCategories()[4] != World {
		t.Errorf("Expected world in fifth display position, got %s", AllCategories()[4])
	}
}

package views

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/lysyi3m/news-hub/app/story"
)

func mk(url string, ts int64, source string, cats ...story.Category) story.Story {
	if len(cats) == 0 {
		cats = []story.Category{story.World}
	}
	return story.Story{
		Source:     source,
		Title:      "Story " + url,
		Timestamp:  ts,
		Category:   cats[0],
		Categories: cats,
		URL:        url,
		ReadTime:   "1 min read",
	}
}

type marks struct {
	read       map[string]bool
	bookmarked map[string]bool
}

func (m marks) IsRead(url string) bool       { return m.read[url] }
func (m marks) IsBookmarked(url string) bool { return m.bookmarked[url] }

func collection(n int) []story.Story {
	stories := make([]story.Story, 0, n)
	for i := 0; i < n; i++ {
		stories = append(stories, mk(fmt.Sprintf("https://x/%d", i), int64(1000-i), "CNN"))
	}
	return stories
}

func TestLatest(t *testing.T) {
	got := Latest(collection(12))
	if len(got) != 5 {
		t.Fatalf("Expected 5 stories, got %d", len(got))
	}
	if got[0].URL != "https://x/0" {
		t.Errorf("Expected collection order, got %s first", got[0].URL)
	}

	if got := Latest(collection(2)); len(got) != 2 {
		t.Errorf("Expected 2 stories for a short collection, got %d", len(got))
	}
}

func TestBiggest(t *testing.T) {
	stories := collection(10)
	for i := range stories {
		if i%2 == 1 {
			stories[i].Image = "https://img/" + stories[i].URL
		}
	}

	got := Biggest(stories)
	if len(got) != 4 {
		t.Fatalf("Expected 4 stories, got %d", len(got))
	}
	for i, s := range got {
		if !s.HasImage() {
			t.Errorf("Expected image-bearing story at %d", i)
		}
		if i > 0 && got[i-1].Timestamp < s.Timestamp {
			t.Errorf("Expected newest first")
		}
	}
	if stories[0].Image != "" {
		t.Error("Expected input to be untouched")
	}
}

func TestSection(t *testing.T) {
	var stories []story.Story
	for i := 0; i < 10; i++ {
		stories = append(stories, mk(fmt.Sprintf("https://t/%d", i), int64(100-i), "CNN", story.Business, story.Technology))
	}
	stories = append(stories, mk("https://p/1", 1, "CNN", story.Politics))

	got := Section(stories, story.Technology)
	if len(got) != 8 {
		t.Fatalf("Expected cap of 8, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Timestamp < got[i].Timestamp {
			t.Errorf("Expected section to keep collection order")
		}
	}

	if got := Section(stories, story.Politics); len(got) != 1 {
		t.Errorf("Expected 1 politics story, got %d", len(got))
	}
	if got := Section(stories, story.Sports); len(got) != 0 {
		t.Errorf("Expected empty sports section, got %d", len(got))
	}
}

func TestSections(t *testing.T) {
	stories := []story.Story{
		mk("https://a", 5, "CNN", story.Sports),
		mk("https://b", 4, "CNN", story.Politics),
		mk("https://c", 3, "CNN", story.World),
		mk("https://d", 2, "CNN", story.Lifestyle),
	}

	got := Sections(stories, []story.Category{story.Lifestyle})

	var order []string
	for _, s := range got {
		order = append(order, string(s.Category))
	}
	if strings.Join(order, ",") != "politics,sports,world" {
		t.Errorf("Expected politics,sports,world, got %s", strings.Join(order, ","))
	}
	if got[0].Title != "Politics" {
		t.Errorf("Expected title Politics, got %s", got[0].Title)
	}
}

func TestBriefing_OnePerCategory(t *testing.T) {
	stories := []story.Story{
		mk("https://p1", 100, "CNN", story.Politics),
		mk("https://p2", 99, "CNN", story.Politics),
		mk("https://b1", 98, "CNN", story.Business),
		mk("https://s1", 97, "CNN", story.Sports),
	}

	got := Briefing(stories)
	if len(got) != 4 {
		t.Fatalf("Expected all 4 stories via fill, got %d", len(got))
	}
	if got[0].URL != "https://p1" || got[1].URL != "https://p2" {
		t.Errorf("Expected newest-first ordering, got %s, %s", got[0].URL, got[1].URL)
	}
}

func TestBriefing_Cap(t *testing.T) {
	var stories []story.Story
	ts := int64(1000)
	for _, c := range story.AllCategories() {
		for i := 0; i < 3; i++ {
			stories = append(stories, mk(fmt.Sprintf("https://%s/%d", c, i), ts, "CNN", c))
			ts--
		}
	}

	got := Briefing(stories)
	if len(got) != 10 {
		t.Fatalf("Expected 10 stories, got %d", len(got))
	}

	seen := make(map[string]bool)
	perCategory := make(map[story.Category]int)
	for i, s := range got {
		if seen[s.URL] {
			t.Errorf("Expected unique stories, %s repeated", s.URL)
		}
		seen[s.URL] = true
		perCategory[s.Category]++
		if i > 0 && got[i-1].Timestamp < s.Timestamp {
			t.Errorf("Expected newest first")
		}
	}

	for _, c := range story.AllCategories() {
		if perCategory[c] == 0 {
			t.Errorf("Expected a story for %s", c)
		}
	}
}

func TestBriefing_NewestPerCategoryEvenIfAlreadyPicked(t *testing.T) {
	stories := []story.Story{mk("https://both", 100, "CNN", story.Politics, story.Business)}
	for i := 0; i < 9; i++ {
		stories = append(stories, mk(fmt.Sprintf("https://world/%d", i), int64(90-i), "CNN", story.World))
	}
	stories = append(stories, mk("https://old-biz", 1, "CNN", story.Business))

	got := Briefing(stories)
	if len(got) != BriefingLimit {
		t.Fatalf("Expected %d stories, got %d", BriefingLimit, len(got))
	}

	expected := []string{"https://both", "https://both"}
	for i := 0; i < 8; i++ {
		expected = append(expected, fmt.Sprintf("https://world/%d", i))
	}
	for i, s := range got {
		if s.URL != expected[i] {
			t.Errorf("Expected %s at %d, got %s", expected[i], i, s.URL)
		}
	}
}

func TestBriefing_FillSkipsPickedStories(t *testing.T) {
	stories := []story.Story{
		mk("https://both", 10, "CNN", story.Politics, story.Business),
		mk("https://biz", 9, "CNN", story.Business),
	}

	got := Briefing(stories)
	if len(got) != 3 {
		t.Fatalf("Expected 3 stories, got %d", len(got))
	}
	if got[0].URL != "https://both" || got[1].URL != "https://both" || got[2].URL != "https://biz" {
		t.Errorf("Unexpected briefing: %s, %s, %s", got[0].URL, got[1].URL, got[2].URL)
	}
}

func TestRelated(t *testing.T) {
	target := mk("https://t", 10, "CNN", story.Sports)
	stories := []story.Story{
		target,
		mk("https://other-source-sports", 9, "ESPN", story.Health, story.Sports),
		mk("https://same-source", 8, "CNN", story.Politics),
		mk("https://unrelated", 7, "ESPN", story.Politics),
		mk("https://sports-2", 6, "NPR", story.Sports),
		mk("https://sports-3", 5, "NPR", story.Sports),
	}

	got := Related(stories, target)
	if len(got) != 3 {
		t.Fatalf("Expected 3 related stories, got %d", len(got))
	}

	expected := []string{"https://other-source-sports", "https://same-source", "https://sports-2"}
	for i, url := range expected {
		if got[i].URL != url {
			t.Errorf("Expected %s at %d, got %s", url, i, got[i].URL)
		}
	}
}

func TestTrending(t *testing.T) {
	stories := []story.Story{
		mk("https://1", 3, "CNN", story.Business, story.Technology),
		mk("https://2", 2, "CNN", story.Technology),
		mk("https://3", 1, "CNN", story.Politics),
	}

	got := Trending(stories)
	if len(got) != 3 {
		t.Fatalf("Expected 3 topics, got %d", len(got))
	}
	if got[0].Category != story.Technology || got[0].Count != 2 {
		t.Errorf("Expected technology first with 2, got %+v", got[0])
	}
	// politics and business tie at 1; display order puts politics first
	if got[1].Category != story.Politics || got[2].Category != story.Business {
		t.Errorf("Expected politics then business, got %+v", got[1:])
	}
}

func TestSaved(t *testing.T) {
	stories := collection(3)
	m := marks{bookmarked: map[string]bool{"https://x/1": true, "https://gone": true}}

	got := Saved(stories, m)
	if len(got) != 1 || got[0].URL != "https://x/1" {
		t.Errorf("Expected only the present bookmark, got %+v", got)
	}
}

func TestDecorate(t *testing.T) {
	outlets := []story.Outlet{{Name: "CNN", URL: "https://cnn.com", Color: "#CC0000"}}
	stories := []story.Story{
		mk("https://a", 2, "CNN"),
		mk("https://b", 1, "Unknown Paper"),
	}
	stories[0].Image = "https://img/a.jpg"
	m := marks{read: map[string]bool{"https://a": true}, bookmarked: map[string]bool{"https://b": true}}

	cards := NewDecorator(outlets, m).Decorate(stories)

	if !cards[0].IsRead || cards[0].IsBookmarked {
		t.Errorf("Expected first card read and not bookmarked, got %+v", cards[0])
	}
	if cards[1].IsRead || !cards[1].IsBookmarked {
		t.Errorf("Expected second card bookmarked and unread, got %+v", cards[1])
	}
	if cards[0].Color != "#CC0000" || cards[1].Color != story.DefaultColor {
		t.Errorf("Unexpected colors %s, %s", cards[0].Color, cards[1].Color)
	}
	if cards[1].Initials != "UP" {
		t.Errorf("Expected initials UP, got %s", cards[1].Initials)
	}

	data, err := json.Marshal(cards[1])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"image":null`) {
		t.Errorf("Expected explicit null image, got %s", data)
	}
	if cards[0].Image == nil || *cards[0].Image != "https://img/a.jpg" {
		t.Errorf("Expected image on first card")
	}
}

func TestFront(t *testing.T) {
	stories := collection(6)
	stories[0].Image = "https://img/0.jpg"

	front := NewDecorator(nil, marks{}).Front(stories, nil)

	if len(front.Latest) != 5 {
		t.Errorf("Expected 5 latest, got %d", len(front.Latest))
	}
	if len(front.Biggest) != 1 {
		t.Fatalf("Expected 1 biggest, got %d", len(front.Biggest))
	}
	if len(front.Biggest[0].Related) != 3 {
		t.Errorf("Expected 3 related on the biggest story, got %d", len(front.Biggest[0].Related))
	}
	if len(front.Sections) != 1 || front.Sections[0].Category != story.World {
		t.Errorf("Expected a single world section, got %+v", front.Sections)
	}
}

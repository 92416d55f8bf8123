package userstate

import (
	"context"
	"time"

	"github.com/lysyi3m/news-hub/app/story"
)

const (
	KeySettings    = "newsHubSettings"
	KeyReadStories = "readStories"
	KeyBookmarks   = "bookmarkedStories"
	KeyHistory     = "readingHistory"
	KeyStreak      = "readingStreak"
	KeyDigestEmail = "digestEmail"
)

const (
	DefaultDailyGoal = 10
	HistoryLimit     = 50
)

// Store is a string key/value store. Get reports whether the key exists.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type Settings struct {
	DailyGoal        int              `json:"dailyGoal"`
	HiddenCategories []story.Category `json:"hiddenCategories"`
	LayoutMode       string           `json:"layoutMode"`
	FontSize         string           `json:"fontSize"`
	DarkMode         bool             `json:"darkMode"`
}

func DefaultSettings() Settings {
	return Settings{
		DailyGoal:        DefaultDailyGoal,
		HiddenCategories: []story.Category{},
		LayoutMode:       "grid",
		FontSize:         "medium",
	}
}

type HistoryEntry struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Source    string `json:"source"`
	Timestamp int64  `json:"timestamp"`
}

type Progress struct {
	Read   int `json:"read"`
	Goal   int `json:"goal"`
	Streak int `json:"streak"`
}

// dailyTally is the persisted shape of today's read set.
type dailyTally struct {
	Date    string   `json:"date"`
	Stories []string `json:"stories"`
	Goal    int      `json:"goal"`
}

// Marks is a point-in-time copy of read and bookmarked URLs.
type Marks struct {
	read       map[string]struct{}
	bookmarked map[string]struct{}
}

func (m Marks) IsRead(url string) bool {
	_, ok := m.read[url]
	return ok
}

func (m Marks) IsBookmarked(url string) bool {
	_, ok := m.bookmarked[url]
	return ok
}

// Same format as JavaScript's Date.toDateString.
const dayLayout = "Mon Jan 02 2006"

func dayKey(t time.Time) string {
	return t.Format(dayLayout)
}

package userstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/lysyi3m/news-hub/app/story"
)

var ErrInvalidEmail = errors.New("invalid email address")

// Tracker owns the reader's state: today's reads, bookmarks, history,
// streak and settings. Every mutation is persisted before it returns.
type Tracker struct {
	store Store
	clock func() time.Time

	mu          sync.Mutex
	settings    Settings
	tally       dailyTally
	read        map[string]struct{}
	bookmarks   []string
	bookmarked  map[string]struct{}
	history     []HistoryEntry
	streak      int
	digestEmail string
}

func NewTracker(store Store, clock func() time.Time) *Tracker {
	if clock == nil {
		clock = time.Now
	}
	return &Tracker{
		store:      store,
		clock:      clock,
		settings:   DefaultSettings(),
		read:       make(map[string]struct{}),
		bookmarked: make(map[string]struct{}),
	}
}

func (t *Tracker) Load(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	settings := DefaultSettings()
	if _, err := t.getJSON(ctx, KeySettings, &settings); err != nil {
		return err
	}
	t.settings = normalizeSettings(settings)

	var streak int
	if _, err := t.getJSON(ctx, KeyStreak, &streak); err != nil {
		return err
	}
	t.streak = streak

	var bookmarks []string
	if _, err := t.getJSON(ctx, KeyBookmarks, &bookmarks); err != nil {
		return err
	}
	t.bookmarks = nil
	t.bookmarked = make(map[string]struct{}, len(bookmarks))
	for _, url := range bookmarks {
		if _, ok := t.bookmarked[url]; ok {
			continue
		}
		t.bookmarked[url] = struct{}{}
		t.bookmarks = append(t.bookmarks, url)
	}

	var history []HistoryEntry
	if _, err := t.getJSON(ctx, KeyHistory, &history); err != nil {
		return err
	}
	if len(history) > HistoryLimit {
		history = history[:HistoryLimit]
	}
	t.history = history

	var email string
	if _, err := t.getJSON(ctx, KeyDigestEmail, &email); err != nil {
		return err
	}
	t.digestEmail = email

	var tally dailyTally
	if _, err := t.getJSON(ctx, KeyReadStories, &tally); err != nil {
		return err
	}
	t.tally = tally
	t.read = make(map[string]struct{}, len(tally.Stories))
	for _, url := range tally.Stories {
		t.read[url] = struct{}{}
	}

	if err := t.rollover(ctx, t.clock()); err != nil {
		return err
	}

	slog.Debug("Reader state loaded",
		"read_today", len(t.read),
		"bookmarks", len(t.bookmarks),
		"history", len(t.history),
		"streak", t.streak)

	return nil
}

// rollover closes out a tally from an earlier day. Callers hold t.mu.
func (t *Tracker) rollover(ctx context.Context, now time.Time) error {
	if t.tally.Date == "" || t.tally.Date == dayKey(now) {
		return nil
	}

	streak := carryStreak(t.streak, t.tally, now)

	if err := t.store.Set(ctx, KeyStreak, strconv.Itoa(streak)); err != nil {
		return fmt.Errorf("failed to save streak: %w", err)
	}
	t.streak = streak

	if err := t.store.Delete(ctx, KeyReadStories); err != nil {
		return fmt.Errorf("failed to clear read stories: %w", err)
	}
	t.tally = dailyTally{}
	t.read = make(map[string]struct{})
	return nil
}

func (t *Tracker) MarkRead(ctx context.Context, url, title, source string) (Progress, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock()
	if err := t.rollover(ctx, now); err != nil {
		return Progress{}, err
	}

	tally := dailyTally{
		Date:    dayKey(now),
		Stories: slices.Clone(t.tally.Stories),
		Goal:    t.settings.DailyGoal,
	}
	_, seen := t.read[url]
	if !seen {
		tally.Stories = append(tally.Stories, url)
	}

	history := make([]HistoryEntry, 0, len(t.history)+1)
	history = append(history, HistoryEntry{
		URL:       url,
		Title:     title,
		Source:    source,
		Timestamp: now.UnixMilli(),
	})
	history = append(history, t.history...)
	if len(history) > HistoryLimit {
		history = history[:HistoryLimit]
	}

	// Memory follows the store only once both writes succeed.
	if err := t.setJSON(ctx, KeyReadStories, tally); err != nil {
		return Progress{}, err
	}
	if err := t.setJSON(ctx, KeyHistory, history); err != nil {
		return Progress{}, err
	}

	if !seen {
		t.read[url] = struct{}{}
	}
	t.tally = tally
	t.history = history

	return t.progress(now), nil
}

// ToggleBookmark flips the bookmark for url and returns the new state.
// On a store failure nothing changes and the current state is returned.
func (t *Tracker) ToggleBookmark(ctx context.Context, url string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, bookmarked := t.bookmarked[url]

	var bookmarks []string
	if bookmarked {
		bookmarks = slices.DeleteFunc(slices.Clone(t.bookmarks), func(u string) bool { return u == url })
	} else {
		bookmarks = append(slices.Clone(t.bookmarks), url)
	}

	if err := t.setJSON(ctx, KeyBookmarks, bookmarks); err != nil {
		return bookmarked, err
	}

	if bookmarked {
		delete(t.bookmarked, url)
	} else {
		t.bookmarked[url] = struct{}{}
	}
	t.bookmarks = bookmarks

	return !bookmarked, nil
}

func (t *Tracker) Progress() Progress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress(t.clock())
}

// progress reports what a rollover at now would leave behind. Callers hold t.mu.
func (t *Tracker) progress(now time.Time) Progress {
	if t.tally.Date != "" && t.tally.Date != dayKey(now) {
		return Progress{Read: 0, Goal: t.settings.DailyGoal, Streak: carryStreak(t.streak, t.tally, now)}
	}
	return Progress{Read: len(t.read), Goal: t.settings.DailyGoal, Streak: t.streak}
}

func (t *Tracker) Marks() Marks {
	t.mu.Lock()
	defer t.mu.Unlock()

	m := Marks{
		read:       make(map[string]struct{}, len(t.read)),
		bookmarked: make(map[string]struct{}, len(t.bookmarked)),
	}
	if t.tally.Date == dayKey(t.clock()) {
		for url := range t.read {
			m.read[url] = struct{}{}
		}
	}
	for url := range t.bookmarked {
		m.bookmarked[url] = struct{}{}
	}
	return m
}

func (t *Tracker) Bookmarks() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.bookmarks)
}

func (t *Tracker) History() []HistoryEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.history)
}

func (t *Tracker) Settings() Settings {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.settings
	s.HiddenCategories = slices.Clone(s.HiddenCategories)
	return s
}

func (t *Tracker) UpdateSettings(ctx context.Context, s Settings) (Settings, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s = normalizeSettings(s)
	if err := t.setJSON(ctx, KeySettings, s); err != nil {
		return t.settings, err
	}
	t.settings = s
	return s, nil
}

func (t *Tracker) SubscribeDigest(ctx context.Context, email string) (string, error) {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidEmail, email)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.setJSON(ctx, KeyDigestEmail, addr.Address); err != nil {
		return "", err
	}
	t.digestEmail = addr.Address
	return addr.Address, nil
}

func (t *Tracker) DigestEmail() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.digestEmail
}

func normalizeSettings(s Settings) Settings {
	if s.DailyGoal <= 0 {
		s.DailyGoal = DefaultDailyGoal
	}

	switch s.LayoutMode {
	case "grid", "list":
	default:
		s.LayoutMode = "grid"
	}

	switch s.FontSize {
	case "small", "medium", "large":
	default:
		s.FontSize = "medium"
	}

	hidden := make([]story.Category, 0, len(s.HiddenCategories))
	for _, c := range s.HiddenCategories {
		parsed, ok := story.ParseCategory(string(c))
		if ok && !slices.Contains(hidden, parsed) {
			hidden = append(hidden, parsed)
		}
	}
	s.HiddenCategories = hidden

	return s
}

// getJSON decodes key into v. Unreadable values are logged and left at their defaults.
func (t *Tracker) getJSON(ctx context.Context, key string, v any) (bool, error) {
	value, ok, err := t.store.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal([]byte(value), v); err != nil {
		slog.Warn("Ignoring unreadable stored value", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

func (t *Tracker) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := t.store.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

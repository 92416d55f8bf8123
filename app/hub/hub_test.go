package hub

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lysyi3m/news-hub/app/provider"
	"github.com/lysyi3m/news-hub/app/story"
)

type fakeFetcher struct {
	name    string
	stories []story.Story
	err     error
	delay   time.Duration
	started chan struct{}
	release chan struct{}
}

func (f *fakeFetcher) Name() string { return f.name }

func (f *fakeFetcher) Fetch(ctx context.Context) ([]story.Story, error) {
	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.stories, f.err
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type memorySnapshots struct {
	mu      sync.Mutex
	passID  string
	stories []story.Story
	err     error
}

func (m *memorySnapshots) ReplaceAll(ctx context.Context, passID string, stories []story.Story) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.passID = passID
	m.stories = stories
	return nil
}

func (m *memorySnapshots) LoadAll(ctx context.Context) (string, []story.Story, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.passID, m.stories, m.err
}

var outlets = []story.Outlet{
	{Name: "CNN", URL: "https://cnn.com", Color: "#CC0000"},
	{Name: "NPR", URL: "https://npr.org", Color: "#1A1A1A"},
}

func mk(source, url string, ts int64) story.Story {
	return story.Story{
		Source:     source,
		Title:      url,
		Timestamp:  ts,
		Category:   story.World,
		Categories: []story.Category{story.World},
		URL:        url,
		ReadTime:   "1 min read",
	}
}

func TestRefresh_AggregatesProviders(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	snapshots := &memorySnapshots{}

	h := New(Options{
		Outlets: outlets,
		Providers: []provider.Fetcher{
			&fakeFetcher{name: "cnn", stories: []story.Story{mk("CNN", "https://cnn.com/a", 2)}},
			&fakeFetcher{name: "npr", err: errors.New("HTTP error: 500")},
		},
		Snapshots:   snapshots,
		WorkerCount: 2,
		Clock:       clock.Now,
	})

	state, err := h.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	// CNN's story plus one surviving NPR placeholder
	if len(state.Stories) != 2 {
		t.Fatalf("Expected 2 stories, got %d", len(state.Stories))
	}
	if state.PassID == "" {
		t.Error("Expected a pass ID")
	}
	if !state.RefreshedAt.Equal(clock.Now()) {
		t.Errorf("Expected RefreshedAt %v, got %v", clock.Now(), state.RefreshedAt)
	}
	if h.Current().PassID != state.PassID {
		t.Error("Expected the current state to be the new pass")
	}
	if snapshots.passID != state.PassID || len(snapshots.stories) != 2 {
		t.Errorf("Expected snapshot of the pass, got %s with %d stories", snapshots.passID, len(snapshots.stories))
	}
}

func TestRefresh_ProviderOrderDecidesCollisions(t *testing.T) {
	h := New(Options{
		Outlets: outlets,
		Providers: []provider.Fetcher{
			&fakeFetcher{name: "slow", delay: 50 * time.Millisecond, stories: []story.Story{mk("CNN", "https://shared", 5)}},
			&fakeFetcher{name: "fast", stories: []story.Story{mk("NPR", "https://shared", 5)}},
		},
		WorkerCount: 2,
	})

	state, err := h.Refresh(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	for _, s := range state.Stories {
		if s.URL == "https://shared" && s.Source != "CNN" {
			t.Errorf("Expected the first provider to win regardless of completion order, got %s", s.Source)
		}
	}
}

func TestRefresh_RejectsWhileInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	h := New(Options{
		Outlets: outlets,
		Providers: []provider.Fetcher{
			&fakeFetcher{name: "blocking", started: started, release: release},
		},
	})

	done := make(chan error, 1)
	go func() {
		_, err := h.Refresh(context.Background())
		done <- err
	}()

	<-started

	before := h.Current()
	if _, err := h.Refresh(context.Background()); !errors.Is(err, ErrRefreshInFlight) {
		t.Errorf("Expected ErrRefreshInFlight, got %v", err)
	}
	if h.Current().PassID != before.PassID {
		t.Error("Expected no state change on rejection")
	}

	close(release)
	if err := <-done; err != nil {
		t.Errorf("Expected the first refresh to succeed, got %v", err)
	}
}

func TestRefresh_RateLimited(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	h := New(Options{
		Outlets:     outlets,
		MinInterval: time.Minute,
		Clock:       clock.Now,
	})

	first, err := h.Refresh(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	clock.Advance(30*time.Second - 200*time.Millisecond)

	_, err = h.Refresh(context.Background())
	var rateErr *RateLimitedError
	if !errors.As(err, &rateErr) {
		t.Fatalf("Expected RateLimitedError, got %v", err)
	}
	if rateErr.Seconds() != 31 {
		t.Errorf("Expected 31 seconds to wait, got %d", rateErr.Seconds())
	}
	if h.Current().PassID != first.PassID {
		t.Error("Expected no state change on rejection")
	}

	clock.Advance(31 * time.Second)
	if _, err := h.Refresh(context.Background()); err != nil {
		t.Errorf("Expected refresh after the gap, got %v", err)
	}
}

func TestRestore(t *testing.T) {
	snapshots := &memorySnapshots{passID: "stored", stories: []story.Story{mk("CNN", "https://cnn.com/s", 1)}}
	h := New(Options{Outlets: outlets, Snapshots: snapshots})

	h.Restore(context.Background())

	state := h.Current()
	if state.PassID != "stored" || len(state.Stories) != 1 || !state.Cached {
		t.Errorf("Expected stored snapshot, got %+v", state)
	}
}

func TestRestore_NothingStoredServesPlaceholders(t *testing.T) {
	h := New(Options{Outlets: outlets, Snapshots: &memorySnapshots{err: errors.New("no such table")}})

	h.Restore(context.Background())

	state := h.Current()
	if len(state.Stories) != len(outlets) {
		t.Errorf("Expected one placeholder per outlet, got %d", len(state.Stories))
	}
}

func TestStartStop(t *testing.T) {
	h := New(Options{
		Outlets: outlets,
		Providers: []provider.Fetcher{
			&fakeFetcher{name: "cnn", stories: []story.Story{mk("CNN", "https://cnn.com/a", 2)}},
		},
	})

	h.Start()
	h.Stop()

	if h.Current().PassID == "" {
		t.Error("Expected the startup pass to complete before Stop returns")
	}
}

func TestRateLimitedErrorMessage(t *testing.T) {
	err := &RateLimitedError{Wait: 1500 * time.Millisecond}
	if err.Error() != "please wait 2 seconds before refreshing again" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}

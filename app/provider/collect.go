package provider

import (
	"context"
	"log/slog"

	"github.com/lysyi3m/news-hub/app/story"
)

type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) ([]story.Story, error)
}

// Collect never fails: any provider error or panic becomes an empty result.
func Collect(ctx context.Context, f Fetcher) (stories []story.Story) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Provider panicked", "provider", f.Name(), "panic", r)
			stories = nil
		}
	}()

	stories, err := f.Fetch(ctx)
	if err != nil {
		slog.Warn("Could not load provider", "provider", f.Name(), "error", err)
		return nil
	}

	slog.Debug("Provider loaded", "provider", f.Name(), "stories", len(stories))
	return stories
}

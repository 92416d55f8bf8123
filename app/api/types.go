package api

import (
	"context"

	"github.com/lysyi3m/news-hub/app/hub"
	"github.com/lysyi3m/news-hub/app/story"
	"github.com/lysyi3m/news-hub/app/userstate"
)

type StoryHub interface {
	Current() hub.AppState
	Refresh(ctx context.Context) (hub.AppState, error)
	Outlets() []story.Outlet
}

type ReadingTracker interface {
	MarkRead(ctx context.Context, url, title, source string) (userstate.Progress, error)
	ToggleBookmark(ctx context.Context, url string) (bool, error)
	Progress() userstate.Progress
	Marks() userstate.Marks
	Bookmarks() []string
	History() []userstate.HistoryEntry
	Settings() userstate.Settings
	UpdateSettings(ctx context.Context, s userstate.Settings) (userstate.Settings, error)
	SubscribeDigest(ctx context.Context, email string) (string, error)
}

var (
	_ StoryHub       = (*hub.Hub)(nil)
	_ ReadingTracker = (*userstate.Tracker)(nil)
)

type Handler struct {
	hub     StoryHub
	tracker ReadingTracker
	version string
}

type readRequest struct {
	URL    string `json:"url" binding:"required"`
	Title  string `json:"title"`
	Source string `json:"source"`
}

type bookmarkRequest struct {
	URL string `json:"url" binding:"required"`
}

type digestRequest struct {
	Email string `json:"email" binding:"required"`
}

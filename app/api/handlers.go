package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/news-hub/app/hub"
	"github.com/lysyi3m/news-hub/app/story"
	"github.com/lysyi3m/news-hub/app/userstate"
	"github.com/lysyi3m/news-hub/app/views"
)

func NewHandler(storyHub StoryHub, tracker ReadingTracker, version string) *Handler {
	return &Handler{
		hub:     storyHub,
		tracker: tracker,
		version: version,
	}
}

func (h *Handler) decorator() *views.Decorator {
	return views.NewDecorator(h.hub.Outlets(), h.tracker.Marks())
}

func (h *Handler) GetHealth(c *gin.Context) {
	state := h.hub.Current()

	health := gin.H{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"stories":   len(state.Stories),
		"pass_id":   state.PassID,
		"cached":    state.Cached,
	}
	if !state.RefreshedAt.IsZero() {
		health["refreshed_at"] = state.RefreshedAt.Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetFront(c *gin.Context) {
	stories := h.hub.Current().Stories
	settings := h.tracker.Settings()

	c.JSON(http.StatusOK, gin.H{
		"front":    h.decorator().Front(stories, settings.HiddenCategories),
		"progress": h.tracker.Progress(),
		"settings": settings,
	})
}

func (h *Handler) GetStories(c *gin.Context) {
	stories := h.hub.Current().Stories

	if name := c.Query("category"); name != "" {
		category, ok := story.ParseCategory(name)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown category", "category": name})
			return
		}
		stories = views.Section(stories, category)
	}

	c.JSON(http.StatusOK, gin.H{
		"stories": h.decorator().Decorate(stories),
		"total":   len(stories),
	})
}

func (h *Handler) GetBriefing(c *gin.Context) {
	briefing := views.Briefing(h.hub.Current().Stories)

	c.JSON(http.StatusOK, gin.H{
		"stories": h.decorator().Decorate(briefing),
		"total":   len(briefing),
	})
}

func (h *Handler) GetRelated(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing url parameter"})
		return
	}

	stories := h.hub.Current().Stories
	target, ok := views.Find(stories, url)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Story not found"})
		return
	}

	c.JSON(http.StatusOK, h.decorator().WithRelated(stories, target))
}

func (h *Handler) GetTrending(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"topics": views.Trending(h.hub.Current().Stories)})
}

func (h *Handler) GetSaved(c *gin.Context) {
	marks := h.tracker.Marks()
	saved := views.Saved(h.hub.Current().Stories, marks)

	c.JSON(http.StatusOK, gin.H{
		"stories":   views.NewDecorator(h.hub.Outlets(), marks).Decorate(saved),
		"bookmarks": h.tracker.Bookmarks(),
	})
}

func (h *Handler) GetHistory(c *gin.Context) {
	stories := h.hub.Current().Stories
	decorator := h.decorator()

	history := h.tracker.History()
	entries := make([]gin.H, 0, len(history))
	for _, entry := range history {
		item := gin.H{
			"url":       entry.URL,
			"title":     entry.Title,
			"source":    entry.Source,
			"timestamp": entry.Timestamp,
		}
		if s, ok := views.Find(stories, entry.URL); ok {
			item["story"] = decorator.Card(s)
		}
		entries = append(entries, item)
	}

	c.JSON(http.StatusOK, gin.H{"history": entries, "total": len(entries)})
}

func (h *Handler) GetProgress(c *gin.Context) {
	c.JSON(http.StatusOK, h.tracker.Progress())
}

func (h *Handler) GetOutlets(c *gin.Context) {
	outlets := h.hub.Outlets()

	items := make([]gin.H, 0, len(outlets))
	for _, o := range outlets {
		items = append(items, gin.H{
			"name":     o.Name,
			"url":      o.URL,
			"color":    o.Color,
			"initials": o.Initials(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"outlets": items, "total": len(items)})
}

func (h *Handler) PostRefresh(c *gin.Context) {
	state, err := h.hub.Refresh(c.Request.Context())
	if err != nil {
		var rateErr *hub.RateLimitedError
		switch {
		case errors.As(err, &rateErr):
			c.Header("Retry-After", strconv.Itoa(rateErr.Seconds()))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       rateErr.Error(),
				"retry_after": rateErr.Seconds(),
			})
		case errors.Is(err, hub.ErrRefreshInFlight):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			slog.Error("Refresh failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Refresh failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"pass_id":      state.PassID,
		"stories":      len(state.Stories),
		"refreshed_at": state.RefreshedAt.Format(time.RFC3339),
	})
}

func (h *Handler) PostRead(c *gin.Context) {
	var req readRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	progress, err := h.tracker.MarkRead(c.Request.Context(), req.URL, req.Title, req.Source)
	if err != nil {
		slog.Error("Failed to mark story read", "url", req.URL, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save reading state"})
		return
	}

	c.JSON(http.StatusOK, progress)
}

func (h *Handler) PostBookmark(c *gin.Context) {
	var req bookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	bookmarked, err := h.tracker.ToggleBookmark(c.Request.Context(), req.URL)
	if err != nil {
		slog.Error("Failed to toggle bookmark", "url", req.URL, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save bookmark"})
		return
	}

	message := "Removed from bookmarks"
	if bookmarked {
		message = "Added to bookmarks"
	}

	c.JSON(http.StatusOK, gin.H{"bookmarked": bookmarked, "message": message})
}

func (h *Handler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.tracker.Settings())
}

func (h *Handler) PutSettings(c *gin.Context) {
	var req userstate.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	settings, err := h.tracker.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		slog.Error("Failed to save settings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *Handler) PostDigest(c *gin.Context) {
	var req digestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	email, err := h.tracker.SubscribeDigest(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, userstate.ErrInvalidEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter a valid email address"})
			return
		}
		slog.Error("Failed to save digest subscription", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":   email,
		"message": "Subscribed to the daily digest",
	})
}

package hub

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lysyi3m/news-hub/app/story"
)

var ErrRefreshInFlight = errors.New("refresh already in progress")

// RateLimitedError rejects a manual refresh requested too soon after the previous pass.
type RateLimitedError struct {
	Wait time.Duration
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("please wait %d seconds before refreshing again", e.Seconds())
}

// Seconds is the wait rounded up to whole seconds.
func (e *RateLimitedError) Seconds() int {
	return int(math.Ceil(e.Wait.Seconds()))
}

// AppState is the result of one completed pass. It is replaced, never modified.
type AppState struct {
	Stories     []story.Story
	PassID      string
	RefreshedAt time.Time
	Cached      bool // restored from storage, no pass has completed yet
}

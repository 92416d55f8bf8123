package hub

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lysyi3m/news-hub/app/aggregate"
	"github.com/lysyi3m/news-hub/app/provider"
	"github.com/lysyi3m/news-hub/app/story"
)

const DefaultMinInterval = 60 * time.Second

type SnapshotStore interface {
	ReplaceAll(ctx context.Context, passID string, stories []story.Story) error
	LoadAll(ctx context.Context) (string, []story.Story, error)
}

type Options struct {
	Outlets     []story.Outlet
	Providers   []provider.Fetcher
	Snapshots   SnapshotStore // optional
	WorkerCount int
	Interval    time.Duration // background refresh, 0 disables the ticker
	MinInterval time.Duration
	Clock       func() time.Time
}

// Hub owns the current AppState and runs aggregation passes.
type Hub struct {
	outlets     []story.Outlet
	providers   []provider.Fetcher
	snapshots   SnapshotStore
	workerCount int
	interval    time.Duration
	minInterval time.Duration
	clock       func() time.Time

	mu         sync.RWMutex
	state      AppState
	refreshing bool
	lastDone   time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(opts Options) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	h := &Hub{
		outlets:     opts.Outlets,
		providers:   opts.Providers,
		snapshots:   opts.Snapshots,
		workerCount: opts.WorkerCount,
		interval:    opts.Interval,
		minInterval: opts.MinInterval,
		clock:       opts.Clock,
		ctx:         ctx,
		cancel:      cancel,
	}
	if h.workerCount < 1 {
		h.workerCount = 1
	}
	if h.minInterval <= 0 {
		h.minInterval = DefaultMinInterval
	}
	if h.clock == nil {
		h.clock = time.Now
	}
	return h
}

func (h *Hub) Current() AppState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

func (h *Hub) Outlets() []story.Outlet {
	return h.outlets
}

// Restore seeds the hub with the last stored collection, or with
// placeholders when nothing is stored.
func (h *Hub) Restore(ctx context.Context) {
	state := AppState{Cached: true}

	if h.snapshots != nil {
		passID, stories, err := h.snapshots.LoadAll(ctx)
		if err != nil {
			slog.Warn("Failed to load story snapshot", "error", err)
		} else {
			state.PassID = passID
			state.Stories = stories
		}
	}

	if len(state.Stories) == 0 {
		state.PassID = ""
		state.Stories = aggregate.Aggregate(nil, h.outlets, h.clock())
	}

	h.mu.Lock()
	h.state = state
	h.mu.Unlock()

	slog.Info("Stories restored", "stories", len(state.Stories), "pass_id", state.PassID)
}

// Refresh runs a pass on demand. It fails with ErrRefreshInFlight while
// another pass runs and with *RateLimitedError within MinInterval of the
// previous pass's completion. The pass is not bound to ctx's cancellation.
func (h *Hub) Refresh(ctx context.Context) (AppState, error) {
	if err := h.begin(true); err != nil {
		return AppState{}, err
	}
	return h.run(context.WithoutCancel(ctx), "manual"), nil
}

func (h *Hub) begin(manual bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.refreshing {
		return ErrRefreshInFlight
	}
	if manual && !h.lastDone.IsZero() {
		if wait := h.minInterval - h.clock().Sub(h.lastDone); wait > 0 {
			return &RateLimitedError{Wait: wait}
		}
	}

	h.refreshing = true
	return nil
}

// run performs one pass. The caller must have won begin.
func (h *Hub) run(ctx context.Context, trigger string) AppState {
	passID := uuid.NewString()
	started := h.clock()

	results := make([][]story.Story, len(h.providers))

	var g errgroup.Group
	g.SetLimit(h.workerCount)
	for i, p := range h.providers {
		g.Go(func() error {
			results[i] = provider.Collect(ctx, p)
			return nil
		})
	}
	_ = g.Wait()

	stories, err := aggregate.Run(results, h.outlets, h.clock())
	if err != nil {
		slog.Error("Aggregation failed", "pass_id", passID, "error", err)
	}

	state := AppState{
		Stories:     stories,
		PassID:      passID,
		RefreshedAt: h.clock(),
	}

	h.mu.Lock()
	h.state = state
	h.lastDone = state.RefreshedAt
	h.refreshing = false
	h.mu.Unlock()

	if h.snapshots != nil {
		if err := h.snapshots.ReplaceAll(ctx, passID, stories); err != nil {
			slog.Warn("Failed to persist story snapshot", "pass_id", passID, "error", err)
		}
	}

	empty := 0
	for _, r := range results {
		if len(r) == 0 {
			empty++
		}
	}

	slog.Info("Refresh completed",
		"trigger", trigger,
		"pass_id", passID,
		"providers", len(h.providers),
		"empty_providers", empty,
		"stories", len(stories),
		"duration", state.RefreshedAt.Sub(started).String())

	return state
}

// Start runs an initial pass and then one pass per interval until Stop.
func (h *Hub) Start() {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()

		h.tick("startup")

		if h.interval <= 0 {
			return
		}

		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()

		for {
			select {
			case <-h.ctx.Done():
				return
			case <-ticker.C:
				h.tick("scheduled")
			}
		}
	}()
}

func (h *Hub) tick(trigger string) {
	if err := h.begin(false); err != nil {
		slog.Debug("Skipping refresh", "trigger", trigger, "reason", err)
		return
	}
	h.run(h.ctx, trigger)
}

func (h *Hub) Stop() {
	h.cancel()
	h.wg.Wait()
}

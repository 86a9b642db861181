package console

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/hrms-lite-console/pkg/errors"
)

// LoadStatus is the lifecycle position of a collection load.
type LoadStatus string

const (
	StatusIdle    LoadStatus = "idle"
	StatusLoading LoadStatus = "loading"
	StatusReady   LoadStatus = "ready"
	StatusFailed  LoadStatus = "failed"
)

// Loader fetches a collection for the given filter.
type Loader[T any, F any] func(ctx context.Context, filter F) ([]T, error)

// ListState is an immutable snapshot of a ListController.
type ListState[T any, F any] struct {
	Status     LoadStatus
	Items      []T
	Filter     F
	Err        string
	Generation uint64
	LoadedAt   time.Time
}

// Loading reports whether a load is in flight.
func (s ListState[T, F]) Loading() bool { return s.Status == StatusLoading }

// Failed reports whether the latest load failed.
func (s ListState[T, F]) Failed() bool { return s.Status == StatusFailed }

// Empty reports a successful load that returned nothing.
func (s ListState[T, F]) Empty() bool { return s.Status == StatusReady && len(s.Items) == 0 }

// ListOptions configures a ListController.
type ListOptions struct {
	Name     string
	Fallback string
	Logger   *zap.Logger
	Now      func() time.Time
}

// ListController loads a collection and tracks loading, failure, empty and
// populated states. A failed load keeps the items of the last successful
// one visible. Loads are ordered by generation: only the latest issued
// load may change the state. Settled and Await expose the state of the
// latest finished load for callers that cannot show a loading state.
type ListController[T any, F any] struct {
	load     Loader[T, F]
	name     string
	fallback string
	logger   *zap.Logger
	now      func() time.Time

	mu       sync.Mutex
	gen      generation
	state    ListState[T, F]
	settled  ListState[T, F]
	inflight chan struct{} // closed when the latest issued load finishes
}

// NewListController constructs an idle ListController.
func NewListController[T any, F any](load Loader[T, F], opts ListOptions) *ListController[T, F] {
	if opts.Fallback == "" {
		opts.Fallback = "Failed to load data"
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &ListController[T, F]{
		load:     load,
		name:     opts.Name,
		fallback: opts.Fallback,
		logger:   opts.Logger,
		now:      opts.Now,
		state:    ListState[T, F]{Status: StatusIdle},
		settled:  ListState[T, F]{Status: StatusIdle},
	}
}

// Load fetches the collection for filter. If a newer load starts before this
// one resolves, this one is cancelled and returns ErrSuperseded together with
// the last finished state, leaving the state untouched.
func (c *ListController[T, F]) Load(ctx context.Context, filter F) (ListState[T, F], error) {
	c.mu.Lock()
	runCtx, token := c.gen.begin(ctx)
	if c.inflight == nil {
		c.inflight = make(chan struct{})
	}
	c.state.Status = StatusLoading
	c.state.Filter = filter
	c.state.Generation = token
	c.mu.Unlock()

	items, err := c.load(runCtx, filter)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.gen.finish(token) {
		c.logger.Debug("discarding superseded load", zap.String("list", c.name), zap.Uint64("generation", token))
		return copyState(c.settled), appErrors.ErrSuperseded
	}
	defer c.settleLocked()
	if err != nil {
		c.state.Status = StatusFailed
		c.state.Err = appErrors.MessageOr(err, c.fallback)
		c.logger.Warn("list load failed", zap.String("list", c.name), zap.Error(err))
		return c.snapshotLocked(), err
	}
	if items == nil {
		items = []T{}
	}
	c.state.Status = StatusReady
	c.state.Items = items
	c.state.Err = ""
	c.state.LoadedAt = c.now()
	return c.snapshotLocked(), nil
}

// settleLocked records the finished state and releases Await callers.
func (c *ListController[T, F]) settleLocked() {
	c.settled = c.snapshotLocked()
	if c.inflight != nil {
		close(c.inflight)
		c.inflight = nil
	}
}

// Reload repeats the load with the most recent filter.
func (c *ListController[T, F]) Reload(ctx context.Context) (ListState[T, F], error) {
	c.mu.Lock()
	filter := c.state.Filter
	c.mu.Unlock()
	return c.Load(ctx, filter)
}

// Filter returns the filter of the most recent load.
func (c *ListController[T, F]) Filter() F {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Filter
}

// Snapshot returns a copy of the current state.
func (c *ListController[T, F]) Snapshot() ListState[T, F] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Settled returns the state of the latest finished load. It never reports
// StatusLoading; before the first load finishes it is idle.
func (c *ListController[T, F]) Settled() ListState[T, F] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyState(c.settled)
}

// Await blocks while a load is in flight and then returns Settled. When ctx
// ends first the last finished state is returned with ctx's error.
func (c *ListController[T, F]) Await(ctx context.Context) (ListState[T, F], error) {
	c.mu.Lock()
	done := c.inflight
	c.mu.Unlock()
	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return c.Settled(), ctx.Err()
		}
	}
	return c.Settled(), nil
}

func (c *ListController[T, F]) snapshotLocked() ListState[T, F] {
	return copyState(c.state)
}

func copyState[T any, F any](state ListState[T, F]) ListState[T, F] {
	if state.Items != nil {
		items := make([]T, len(state.Items))
		copy(items, state.Items)
		state.Items = items
	}
	return state
}

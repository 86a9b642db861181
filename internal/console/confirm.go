package console

import (
	"context"
	"sync"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/hrms-lite-console/pkg/errors"
)

// ConfirmState is an immutable snapshot of a Confirmation.
type ConfirmState[K comparable] struct {
	Pending  K
	Awaiting bool
	InFlight bool
	Err      string
}

// ConfirmOptions configures a Confirmation.
type ConfirmOptions struct {
	Name      string
	Fallback  string
	OnSuccess func(ctx context.Context)
	Logger    *zap.Logger
}

// Confirmation gates a destructive action behind an explicit request/confirm
// pair. Confirm only acts on the key that was requested.
type Confirmation[K comparable] struct {
	action    func(ctx context.Context, key K) error
	name      string
	fallback  string
	onSuccess func(ctx context.Context)
	logger    *zap.Logger

	mu    sync.Mutex
	state ConfirmState[K]
}

// NewConfirmation constructs a Confirmation with nothing pending.
func NewConfirmation[K comparable](action func(ctx context.Context, key K) error, opts ConfirmOptions) *Confirmation[K] {
	if opts.Fallback == "" {
		opts.Fallback = "Failed to delete"
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Confirmation[K]{
		action:    action,
		name:      opts.Name,
		fallback:  opts.Fallback,
		onSuccess: opts.OnSuccess,
		logger:    opts.Logger,
	}
}

// Request marks key as awaiting confirmation.
func (c *Confirmation[K]) Request(key K) ConfirmState[K] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Pending = key
	c.state.Awaiting = true
	c.state.Err = ""
	return c.state
}

// Cancel drops the pending request.
func (c *Confirmation[K]) Cancel() ConfirmState[K] {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero K
	c.state.Pending = zero
	c.state.Awaiting = false
	return c.state
}

// Pending returns the key awaiting confirmation. ok is false when nothing is
// pending.
func (c *Confirmation[K]) Pending() (key K, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Pending, c.state.Awaiting
}

// Confirm runs the action for key. Without a matching prior Request it
// returns ErrNotConfirmed and the action is never invoked. The request is
// consumed whatever the outcome.
func (c *Confirmation[K]) Confirm(ctx context.Context, key K) (ConfirmState[K], error) {
	c.mu.Lock()
	if c.state.InFlight {
		snap := c.state
		c.mu.Unlock()
		return snap, appErrors.ErrSubmitInFlight
	}
	if !c.state.Awaiting || c.state.Pending != key {
		snap := c.state
		c.mu.Unlock()
		return snap, appErrors.ErrNotConfirmed
	}
	c.state.InFlight = true
	c.mu.Unlock()

	err := c.action(ctx, key)

	c.mu.Lock()
	var zero K
	c.state.InFlight = false
	c.state.Awaiting = false
	c.state.Pending = zero
	if err != nil {
		c.state.Err = appErrors.MessageOr(err, c.fallback)
		c.logger.Warn("confirmed action failed", zap.String("action", c.name), zap.Error(err))
		snap := c.state
		c.mu.Unlock()
		return snap, err
	}
	c.state.Err = ""
	snap := c.state
	c.mu.Unlock()

	if c.onSuccess != nil {
		c.onSuccess(ctx)
	}
	return snap, nil
}

// Snapshot returns the current state.
func (c *Confirmation[K]) Snapshot() ConfirmState[K] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

package console

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/hrms-lite-console/pkg/errors"
)

// Submitter persists a draft.
type Submitter[D any] func(ctx context.Context, draft D) error

// FormState is an immutable snapshot of a FormController.
type FormState[D any] struct {
	Draft       D
	Visible     bool
	Submitting  bool
	Err         string
	FieldErrors map[string]string
}

// FieldError returns the message recorded for one field.
func (s FormState[D]) FieldError(field string) string {
	return s.FieldErrors[field]
}

// FormOptions configures a FormController.
type FormOptions[D any] struct {
	Name string
	// Blank produces the initial draft; nil means the zero value.
	Blank    func() D
	Validate func(D) error
	Fallback string
	// OnSuccess runs after a successful submission, outside the lock.
	OnSuccess func(ctx context.Context)
	Logger    *zap.Logger
}

// FormController owns a draft and its submission lifecycle. A successful
// submission resets the draft and hides the form; a failed one keeps both so
// the administrator can correct and resubmit. Only one submission may be in
// flight at a time.
type FormController[D any] struct {
	submit    Submitter[D]
	name      string
	blank     func() D
	validate  func(D) error
	fallback  string
	onSuccess func(ctx context.Context)
	logger    *zap.Logger

	mu    sync.Mutex
	state FormState[D]
}

// NewFormController constructs a hidden form holding a blank draft.
func NewFormController[D any](submit Submitter[D], opts FormOptions[D]) *FormController[D] {
	if opts.Blank == nil {
		opts.Blank = func() D {
			var zero D
			return zero
		}
	}
	if opts.Fallback == "" {
		opts.Fallback = "Failed to save"
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &FormController[D]{
		submit:    submit,
		name:      opts.Name,
		blank:     opts.Blank,
		validate:  opts.Validate,
		fallback:  opts.Fallback,
		onSuccess: opts.OnSuccess,
		logger:    opts.Logger,
		state:     FormState[D]{Draft: opts.Blank()},
	}
}

// Open shows the form.
func (c *FormController[D]) Open() FormState[D] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Visible = true
	return c.snapshotLocked()
}

// Close hides the form and clears its error. The draft is kept.
func (c *FormController[D]) Close() FormState[D] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Visible = false
	c.state.Err = ""
	c.state.FieldErrors = nil
	return c.snapshotLocked()
}

// Update replaces the draft without submitting it.
func (c *FormController[D]) Update(draft D) FormState[D] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Draft = draft
	return c.snapshotLocked()
}

// Submit validates and submits draft. ErrSubmitInFlight is returned without
// side effects while another submission is pending.
func (c *FormController[D]) Submit(ctx context.Context, draft D) (FormState[D], error) {
	c.mu.Lock()
	if c.state.Submitting {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, appErrors.ErrSubmitInFlight
	}
	c.state.Draft = draft
	c.state.Visible = true
	if c.validate != nil {
		if err := c.validate(draft); err != nil {
			c.failLocked(err)
			snap := c.snapshotLocked()
			c.mu.Unlock()
			return snap, err
		}
	}
	c.state.Submitting = true
	c.state.Err = ""
	c.state.FieldErrors = nil
	c.mu.Unlock()

	err := c.submit(ctx, draft)

	c.mu.Lock()
	c.state.Submitting = false
	if err != nil {
		c.failLocked(err)
		c.logger.Warn("form submission failed", zap.String("form", c.name), zap.Error(err))
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, err
	}
	c.state.Draft = c.blank()
	c.state.Visible = false
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if c.onSuccess != nil {
		c.onSuccess(ctx)
	}
	return snap, nil
}

// Snapshot returns a copy of the current state.
func (c *FormController[D]) Snapshot() FormState[D] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *FormController[D]) failLocked(err error) {
	c.state.Err = appErrors.MessageOr(err, c.fallback)
	c.state.FieldErrors = nil
	var appErr *appErrors.Error
	if errors.As(err, &appErr) && len(appErr.Fields) > 0 {
		c.state.FieldErrors = make(map[string]string, len(appErr.Fields))
		for k, v := range appErr.Fields {
			c.state.FieldErrors[k] = v
		}
	}
}

func (c *FormController[D]) snapshotLocked() FormState[D] {
	snap := c.state
	if c.state.FieldErrors != nil {
		snap.FieldErrors = make(map[string]string, len(c.state.FieldErrors))
		for k, v := range c.state.FieldErrors {
			snap.FieldErrors[k] = v
		}
	}
	return snap
}

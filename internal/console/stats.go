package console

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/hrms-lite-console/internal/dto"
	"github.com/noah-isme/hrms-lite-console/internal/models"
	appErrors "github.com/noah-isme/hrms-lite-console/pkg/errors"
)

// DashboardState is an immutable snapshot of a StatsAggregator.
type DashboardState struct {
	Status     LoadStatus
	Stats      dto.DashboardStats
	Err        string
	Generation uint64
	LoadedAt   time.Time
}

// Loading reports whether a computation is in flight.
func (s DashboardState) Loading() bool { return s.Status == StatusLoading }

// Failed reports whether the latest computation failed.
func (s DashboardState) Failed() bool { return s.Status == StatusFailed }

// StatsOptions configures a StatsAggregator.
type StatsOptions struct {
	Fallback string
	Logger   *zap.Logger
	Now      func() time.Time
}

// StatsAggregator fetches employees and attendance stats together and
// derives the dashboard summary. Either fetch failing fails the whole
// computation.
type StatsAggregator struct {
	employees func(ctx context.Context) ([]models.Employee, error)
	stats     func(ctx context.Context) ([]models.AttendanceStat, error)
	fallback  string
	logger    *zap.Logger
	now       func() time.Time

	mu       sync.Mutex
	gen      generation
	state    DashboardState
	settled  DashboardState
	inflight chan struct{} // closed when the latest issued computation finishes
}

// NewStatsAggregator constructs an idle StatsAggregator.
func NewStatsAggregator(
	employees func(ctx context.Context) ([]models.Employee, error),
	stats func(ctx context.Context) ([]models.AttendanceStat, error),
	opts StatsOptions,
) *StatsAggregator {
	if opts.Fallback == "" {
		opts.Fallback = "Failed to load dashboard data"
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &StatsAggregator{
		employees: employees,
		stats:     stats,
		fallback:  opts.Fallback,
		logger:    opts.Logger,
		now:       opts.Now,
		state:     DashboardState{Status: StatusIdle},
		settled:   DashboardState{Status: StatusIdle},
	}
}

// Compute refreshes the dashboard. A computation overtaken by a newer one
// returns ErrSuperseded with the last finished state and does not touch the
// state.
func (a *StatsAggregator) Compute(ctx context.Context) (DashboardState, error) {
	a.mu.Lock()
	runCtx, token := a.gen.begin(ctx)
	if a.inflight == nil {
		a.inflight = make(chan struct{})
	}
	a.state.Status = StatusLoading
	a.state.Generation = token
	a.mu.Unlock()

	var (
		employees []models.Employee
		stats     []models.AttendanceStat
	)
	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		var err error
		employees, err = a.employees(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = a.stats(gctx)
		return err
	})
	err := g.Wait()

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.gen.finish(token) {
		return a.settled, appErrors.ErrSuperseded
	}
	defer a.settleLocked()
	if err != nil {
		a.state.Status = StatusFailed
		a.state.Stats = dto.DashboardStats{}
		a.state.Err = appErrors.MessageOr(err, a.fallback)
		a.logger.Warn("dashboard computation failed", zap.Error(err))
		return a.state, err
	}
	a.state.Status = StatusReady
	a.state.Stats = BuildDashboard(employees, stats)
	a.state.Err = ""
	a.state.LoadedAt = a.now()
	return a.state, nil
}

func (a *StatsAggregator) settleLocked() {
	a.settled = a.state
	if a.inflight != nil {
		close(a.inflight)
		a.inflight = nil
	}
}

// Snapshot returns the current state.
func (a *StatsAggregator) Snapshot() DashboardState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Settled returns the state of the latest finished computation.
func (a *StatsAggregator) Settled() DashboardState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settled
}

// Await blocks while a computation is in flight and then returns Settled.
func (a *StatsAggregator) Await(ctx context.Context) (DashboardState, error) {
	a.mu.Lock()
	done := a.inflight
	a.mu.Unlock()
	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return a.Settled(), ctx.Err()
		}
	}
	return a.Settled(), nil
}

// BuildDashboard derives the summary counters and per-employee rows.
func BuildDashboard(employees []models.Employee, stats []models.AttendanceStat) dto.DashboardStats {
	summary := dto.DashboardStats{
		TotalEmployees: len(employees),
		Rows:           make([]dto.AttendanceStatRow, 0, len(stats)),
	}
	for _, stat := range stats {
		stat = stat.Normalize()
		summary.TotalPresent += stat.TotalPresent
		summary.TotalAbsent += stat.TotalAbsent
		rate := stat.AttendanceRate()
		summary.Rows = append(summary.Rows, dto.AttendanceStatRow{
			AttendanceStat: stat,
			AttendanceRate: rate,
			Tier:           dto.TierFor(rate),
		})
	}
	summary.OverallRate = models.Rate(summary.TotalPresent, summary.TotalPresent+summary.TotalAbsent)
	return summary
}

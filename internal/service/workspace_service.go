package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/hrms-lite-console/internal/console"
)

type workspaceGauge interface {
	SetActiveWorkspaces(n int)
}

// WorkspaceConfig tunes workspace retention.
type WorkspaceConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

// WorkspaceService keeps one console.Workspace per administrator session and
// forgets sessions that stay idle longer than the TTL.
type WorkspaceService struct {
	employees  console.EmployeeSource
	attendance console.AttendanceSource
	cfg        WorkspaceConfig
	gauge      workspaceGauge
	logger     *zap.Logger
	now        func() time.Time

	mu      sync.Mutex
	entries map[string]*workspaceEntry
}

type workspaceEntry struct {
	workspace *console.Workspace
	lastSeen  time.Time
}

// NewWorkspaceService constructs an empty workspace store.
func NewWorkspaceService(employees console.EmployeeSource, attendance console.AttendanceSource, cfg WorkspaceConfig, gauge workspaceGauge, logger *zap.Logger) *WorkspaceService {
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Minute
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkspaceService{
		employees:  employees,
		attendance: attendance,
		cfg:        cfg,
		gauge:      gauge,
		logger:     logger,
		now:        time.Now,
		entries:    make(map[string]*workspaceEntry),
	}
}

// Resolve returns the live workspace for id, or a new one under a fresh id
// when id is unknown or expired. created reports the latter.
func (s *WorkspaceService) Resolve(id string) (ws *console.Workspace, created bool) {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[id]; ok && now.Sub(entry.lastSeen) <= s.cfg.TTL {
		entry.lastSeen = now
		return entry.workspace, false
	}
	delete(s.entries, id)

	newID := uuid.NewString()
	ws = console.NewWorkspace(newID, s.employees, s.attendance, s.logger)
	s.entries[newID] = &workspaceEntry{workspace: ws, lastSeen: now}
	s.publishLocked()
	s.logger.Debug("workspace created", zap.String("workspace", newID))
	return ws, true
}

// Len reports how many workspaces are held.
func (s *WorkspaceService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep drops workspaces idle for longer than the TTL and returns how many
// were removed.
func (s *WorkspaceService) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, entry := range s.entries {
		if now.Sub(entry.lastSeen) > s.cfg.TTL {
			delete(s.entries, id)
			removed++
		}
	}
	if removed > 0 {
		s.publishLocked()
		s.logger.Info("expired workspaces swept", zap.Int("removed", removed), zap.Int("remaining", len(s.entries)))
	}
	return removed
}

// Run sweeps on every interval until ctx is cancelled.
func (s *WorkspaceService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *WorkspaceService) publishLocked() {
	if s.gauge != nil {
		s.gauge.SetActiveWorkspaces(len(s.entries))
	}
}

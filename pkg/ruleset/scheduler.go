package ruleset

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler reloads the manager's rule set on a cron schedule. It
// complements the fsnotify watcher for deployments where file events are
// unreliable (network filesystems, bind mounts).
type Scheduler struct {
	manager  *Manager
	schedule string
	cron     *cron.Cron
	mu       sync.Mutex
	logger   *slog.Logger
	running  bool
}

// NewScheduler creates a reload scheduler. The schedule uses standard cron
// syntax, e.g. "*/5 * * * *" for every five minutes.
func NewScheduler(manager *Manager, schedule string, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		manager:  manager,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "ruleset.scheduler"),
	}
}

// Start begins scheduled reloading. An empty schedule is a no-op: the
// scheduler logs and returns without starting anything.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == "" {
		s.logger.Info("reload schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.schedule, err)
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		s.runReload(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule rule reload: %w", err)
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("rule reload scheduler started",
		"schedule", s.schedule,
	)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// runReload executes one scheduled reload cycle.
func (s *Scheduler) runReload(ctx context.Context) {
	s.logger.Debug("starting scheduled rule reload")

	if err := s.manager.Reload(ctx); err != nil {
		s.logger.Error("scheduled rule reload failed",
			"error", err,
		)
		return
	}

	s.logger.Debug("scheduled rule reload completed")
}

// Stop stops the scheduler and waits for a running reload to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done()
		s.running = false
		s.logger.Info("rule reload scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// NextRun returns the next scheduled reload time, or nil when nothing is
// scheduled.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return nil
	}
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}
	next := entries[0].Next
	return &next
}

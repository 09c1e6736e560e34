package scheduler

import (
	"context"
	"log/slog"
	"time"

	"signal_monitor/internal/domain"
)

// Runner defines the interface for one ingestion run.
type Runner interface {
	Run(ctx context.Context) (*domain.RunStats, error)
}

// AfterRun is called with the result of every run, e.g. to push metrics.
type AfterRun func(ctx context.Context, stats *domain.RunStats, err error)

type Scheduler struct {
	runner     Runner
	interval   time.Duration
	runTimeout time.Duration
	afterRun   AfterRun
	logger     *slog.Logger
}

func NewScheduler(runner Runner, interval, runTimeout time.Duration, afterRun AfterRun, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:     runner,
		interval:   interval,
		runTimeout: runTimeout,
		afterRun:   afterRun,
		logger:     logger,
	}
}

// Start runs once immediately. With a zero interval it then returns; otherwise
// it keeps running on every tick until ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		s.runOnce(ctx)
		return ctx.Err()
	}

	s.logger.Info("scheduler started", "interval", s.interval)

	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	stats, err := s.runner.Run(runCtx)
	if err != nil {
		s.logger.Error("run aborted", "error", err)
	}
	if s.afterRun != nil {
		s.afterRun(ctx, stats, err)
	}
}

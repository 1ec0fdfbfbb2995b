package services

import (
	"context"
	"errors"
	"time"

	"github.com/dsemenov/dosetrack/internal/client/repositories/metadata"
	"github.com/dsemenov/dosetrack/internal/common"
	"github.com/dsemenov/dosetrack/internal/logging"
)

// Scheduler triggers sync cycles: once at startup, on a fixed interval in
// the background, and once at shutdown. Every trigger is best-effort: cycle
// errors are logged and swallowed so sync never crashes the host application,
// and triggers skip silently while no auth token is stored.
type Scheduler struct {
	syncer          *Syncer
	meta            metadata.Repository
	log             logging.Logger
	interval        time.Duration
	shutdownTimeout time.Duration
}

func NewScheduler(syncer *Syncer, meta metadata.Repository, log logging.Logger, interval, shutdownTimeout time.Duration) *Scheduler {
	return &Scheduler{
		syncer:          syncer,
		meta:            meta,
		log:             log.With("component", "scheduler"),
		interval:        interval,
		shutdownTimeout: shutdownTimeout,
	}
}

// RunAtStartup performs the startup sync. It never blocks startup on
// failure.
func (s *Scheduler) RunAtStartup(ctx context.Context) {
	s.runOnce(ctx, "startup")
}

// Start runs the background interval loop until ctx is cancelled. Call it on
// its own goroutine. A cycle in flight is abandoned at the next checkpoint
// when ctx is cancelled; each applied pull row and each outbox clear is
// independently atomic, so local state stays consistent.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Debug(ctx, "background sync stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx, "interval")
		}
	}
}

// RunAtShutdown performs the final best-effort sync, bounded by the
// configured timeout so process exit is never blocked by a stalled call.
func (s *Scheduler) RunAtShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	s.runOnce(ctx, "shutdown")
}

func (s *Scheduler) runOnce(ctx context.Context, trigger string) {
	token, err := s.meta.Get(ctx, metadata.KeyAuthToken)
	if err != nil {
		s.log.Error(ctx, "failed to read auth token", "trigger", trigger, "error", err)
		return
	}
	if token == "" {
		return
	}

	if err := s.syncer.RunCycle(ctx); err != nil {
		// Logged out between the check and the cycle; not an error.
		if errors.Is(err, common.ErrorUnauthorized) {
			return
		}
		s.log.Warn(ctx, "sync cycle failed", "trigger", trigger, "error", err)
		return
	}

	s.log.Debug(ctx, "sync cycle finished", "trigger", trigger)
}

package service

import (
	"context"
	"log/slog"
	"time"
)

// HousekeepingService periodically prunes expired invitation codes and runs
// the removal sweep so the roster never depends on an external cron to stay
// correct.
type HousekeepingService struct {
	Invitations *InvitationService
	Compliance  *ComplianceService
	Logger      *slog.Logger
	Interval    time.Duration

	// Internal channels for lifecycle management
	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(invitations *InvitationService, compliance *ComplianceService, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = 1 * time.Hour
	}

	return &HousekeepingService{
		Invitations: invitations,
		Compliance:  compliance,
		Logger:      logger,
		Interval:    interval,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}
}

// Start begins the background worker that periodically runs cleanup.
// This is non-blocking and should be called after the database is ready.
// Call Stop() to gracefully shutdown the worker.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop gracefully shuts down the background worker.
// Blocks until the worker has finished any in-progress cleanup.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

// run is the main background worker loop.
func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	// Run cleanup immediately on startup
	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup prunes expired invitations and sweeps members past their grace
// period. Each task is independent; a failure in one won't stop the other.
func (s *HousekeepingService) cleanup() {
	ctx := context.Background()
	s.Logger.Info("starting housekeeping cleanup")

	if n, err := s.Invitations.Store.Invitations().DeleteExpiredInvitations(ctx); err != nil {
		s.Logger.Error("failed to delete expired invitations", "error", err)
	} else if n > 0 {
		s.Logger.Info("deleted expired invitations", "count", n)
	}

	if result, err := s.Compliance.SweepExpired(ctx, false); err != nil {
		s.Logger.Error("removal sweep failed", "error", err)
	} else if len(result.Removed) > 0 {
		s.Logger.Info("removal sweep removed members", "count", len(result.Removed))
	}

	s.Logger.Info("housekeeping cleanup completed")
}

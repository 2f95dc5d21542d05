package core

// scheduler.go runs the idle-session sweeper. Datasets live only in memory,
// so a session nobody has touched for the TTL is dropped with its dataset.

import (
	"context"
	"log/slog"
	"time"
)

// SweepConfig holds settings for the session sweeper.
type SweepConfig struct {
	IdleTTL  time.Duration // Sessions idle longer than this are evicted
	Interval time.Duration // How often to sweep
}

// StartSessionSweeper evicts idle sessions every cfg.Interval until ctx is
// cancelled. Run it in its own goroutine.
func (s *Service) StartSessionSweeper(ctx context.Context, cfg SweepConfig) {
	slog.Info("session sweeper started",
		"idle_ttl", cfg.IdleTTL,
		"interval", cfg.Interval,
	)

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session sweeper stopped")
			return
		case <-ticker.C:
			s.runSweep(cfg.IdleTTL)
		}
	}
}

func (s *Service) runSweep(ttl time.Duration) {
	evicted := s.sessions.Sweep(ttl)
	if evicted > 0 {
		slog.Info("idle sessions evicted",
			"evicted", evicted,
			"remaining", s.sessions.Len(),
		)
	}
}

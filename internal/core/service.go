package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/JonMunkholm/streamgraph/internal/config"
	"github.com/JonMunkholm/streamgraph/internal/logging"
)

// Service is the entry point for uploads and dataset lookups.
type Service struct {
	entities    EntitySet
	sessions    *SessionStore
	limiter     *ReadLimiter
	readTimeout time.Duration
}

// NewService builds a Service from configuration.
func NewService(cfg *config.Config) (*Service, error) {
	entities, err := ParseEntitySet(cfg.Chart.Entities)
	if err != nil {
		return nil, fmt.Errorf("chart entities: %w", err)
	}

	return &Service{
		entities:    entities,
		sessions:    NewSessionStore(),
		limiter:     NewReadLimiter(cfg.Upload.MaxConcurrent, cfg.Upload.MaxWaitTime),
		readTimeout: cfg.Upload.Timeout,
	}, nil
}

// Entities returns the configured EntitySet.
func (s *Service) Entities() EntitySet {
	return s.entities
}

// Upload reads r into a Dataset and makes it the session's current dataset.
//
// A newer Upload for the same session cancels this one; the loser returns
// ErrStaleUpload and never replaces the dataset. Any failure leaves the
// previous dataset in place.
func (s *Service) Upload(ctx context.Context, sessionID, fileName string, r io.Reader) (*Dataset, error) {
	logger := logging.WithFields(ctx, "file", fileName)
	if o := OriginFromContext(ctx); o.IP != "" {
		logger = logger.With("ip", o.IP, "user_agent", o.UserAgent)
	}

	ticket, readCtx := s.sessions.BeginUpload(ctx, sessionID)
	defer s.sessions.Finish(ticket)

	logger = logger.With("generation", ticket.Generation)
	logger.Debug("upload read started")

	if err := s.limiter.Acquire(readCtx); err != nil {
		return nil, s.uploadError(ticket, err)
	}
	defer s.limiter.Release()

	readCtx, cancel := context.WithTimeout(readCtx, s.readTimeout)
	defer cancel()

	start := time.Now()
	ds, err := Ingest(readCtx, r, s.entities, IngestOptions{FileName: fileName})
	if err != nil {
		err = s.uploadError(ticket, err)
		logger.Warn("upload read failed", "error", err)
		return nil, err
	}

	if err := s.sessions.Commit(ticket, ds); err != nil {
		logger.Info("upload discarded", "reason", err)
		return nil, err
	}

	logger.Info("dataset replaced",
		"dataset_id", ds.ID,
		"rows", ds.Stats.Rows,
		"invalid_dates", ds.Stats.InvalidDates,
		"nan_cells", ds.Stats.NaNCells,
		"missing_columns", ds.Stats.MissingColumns,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return ds, nil
}

// uploadError reports a cancellation caused by a newer upload as ErrStaleUpload.
func (s *Service) uploadError(t UploadTicket, err error) error {
	if errors.Is(err, context.Canceled) && !s.sessions.IsCurrent(t) {
		return fmt.Errorf("%w: %v", ErrStaleUpload, err)
	}
	return err
}

// Dataset returns the session's current dataset or ErrNoDataset.
func (s *Service) Dataset(sessionID string) (*Dataset, error) {
	ds, ok := s.sessions.Dataset(sessionID)
	if !ok {
		return nil, ErrNoDataset
	}
	return ds, nil
}

// ReadStatus reports reads in flight.
func (s *Service) ReadStatus() ReadLimiterStatus {
	return s.limiter.Status()
}

// WaitForReads blocks until in-flight reads finish or ctx ends.
func (s *Service) WaitForReads(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// SessionCount returns the number of live sessions.
func (s *Service) SessionCount() int {
	return s.sessions.Len()
}

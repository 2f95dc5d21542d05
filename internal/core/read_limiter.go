package core

// read_limiter.go caps how many uploads are parsed at once across all
// sessions. Each slot holds a whole file in flight, so the cap bounds memory.
// Shutdown uses WaitForDrain to let in-flight reads finish.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

// ErrTooManyReads is returned when no read slot frees up within the wait time.
var ErrTooManyReads = errors.New("too many uploads in progress")

const (
	defaultMaxConcurrentReads = 5
	defaultReadWait           = 10 * time.Second
	drainPollInterval         = 50 * time.Millisecond
)

// ReadLimiter is a counting semaphore for upload reads.
type ReadLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
	active  atomic.Int32
}

// NewReadLimiter allows maxConcurrent simultaneous reads; callers wait up to
// maxWait for a slot. Non-positive arguments fall back to defaults.
func NewReadLimiter(maxConcurrent int, maxWait time.Duration) *ReadLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = defaultMaxConcurrentReads
	}
	if maxWait <= 0 {
		maxWait = defaultReadWait
	}
	return &ReadLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire takes a slot. The caller must Release it (use defer).
// Returns ctx.Err() if ctx ends first, ErrTooManyReads if the wait expires.
func (l *ReadLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTooManyReads
	}
}

// Release frees a slot taken by Acquire.
func (l *ReadLimiter) Release() {
	l.active.Add(-1)
	<-l.slots
}

// ReadLimiterStatus is a snapshot for the health endpoint and shutdown logs.
type ReadLimiterStatus struct {
	Active        int `json:"active"`
	MaxConcurrent int `json:"maxConcurrent"`
}

// Status returns the current number of reads in flight.
func (l *ReadLimiter) Status() ReadLimiterStatus {
	return ReadLimiterStatus{
		Active:        int(l.active.Load()),
		MaxConcurrent: cap(l.slots),
	}
}

// WaitForDrain blocks until no reads are in flight or ctx ends.
func (l *ReadLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(drainPollInterval)
	defer ticker.Stop()

	for l.active.Load() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

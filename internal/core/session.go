package core

// session.go keeps one dataset slot per browser session.
//
// Uploads are ordered by a per-session generation counter. BeginUpload bumps
// the counter and cancels whatever read was still in flight, so only the
// newest upload can ever commit. This replaces "last write wins" between two
// overlapping file reads with "last started wins".

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrStaleUpload is returned when a newer upload started before this one committed.
var ErrStaleUpload = errors.New("upload superseded by a newer upload")

// ErrNoDataset is returned when a session has not loaded a file yet.
var ErrNoDataset = errors.New("no dataset loaded")

// UploadTicket identifies one upload attempt within a session.
type UploadTicket struct {
	SessionID  string
	Generation uint64
}

type session struct {
	dataset    *Dataset
	generation uint64
	cancel     context.CancelFunc
	lastSeen   time.Time
}

// SessionStore maps session IDs to their current Dataset.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	now      func() time.Time
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// get returns the session, creating it if needed. Caller holds mu.
func (s *SessionStore) get(id string) *session {
	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{}
		s.sessions[id] = sess
	}
	sess.lastSeen = s.now()
	return sess
}

// BeginUpload starts a new generation for the session and returns a context
// that is cancelled as soon as a newer upload begins.
// Callers must call Finish with the ticket when the read is over.
func (s *SessionStore) BeginUpload(parent context.Context, sessionID string) (UploadTicket, context.Context) {
	ctx, cancel := context.WithCancel(parent)

	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.get(sessionID)
	if sess.cancel != nil {
		sess.cancel()
	}
	sess.generation++
	sess.cancel = cancel

	return UploadTicket{SessionID: sessionID, Generation: sess.generation}, ctx
}

// Commit stores ds as the session's dataset if the ticket is still current.
func (s *SessionStore) Commit(t UploadTicket, ds *Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[t.SessionID]
	if !ok || sess.generation != t.Generation {
		return ErrStaleUpload
	}
	sess.dataset = ds
	sess.lastSeen = s.now()
	return nil
}

// IsCurrent reports whether t is the newest upload for its session.
func (s *SessionStore) IsCurrent(t UploadTicket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[t.SessionID]
	return ok && sess.generation == t.Generation
}

// Finish releases the ticket's context. A superseded ticket leaves the newer
// upload's cancel func alone.
func (s *SessionStore) Finish(t UploadTicket) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[t.SessionID]
	if !ok || sess.generation != t.Generation || sess.cancel == nil {
		return
	}
	sess.cancel()
	sess.cancel = nil
}

// Dataset returns the session's current dataset.
func (s *SessionStore) Dataset(sessionID string) (*Dataset, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok || sess.dataset == nil {
		return nil, false
	}
	sess.lastSeen = s.now()
	return sess.dataset, true
}

// Sweep evicts sessions idle for longer than ttl that have no read in flight.
// Returns the number evicted.
func (s *SessionStore) Sweep(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	evicted := 0
	for id, sess := range s.sessions {
		if sess.cancel == nil && sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of tracked sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

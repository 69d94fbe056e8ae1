package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/slidelab/pathclient/internal/domain"
)

// SessionRepo is the slice of the backend contract the session store
// consumes.
type SessionRepo interface {
	Current(ctx context.Context) (*domain.Session, error)
	Revoke(ctx context.Context, id string) error
}

// Session tracks the authenticated session for the running client.
type Session struct {
	mu   sync.Mutex
	log  *slog.Logger
	repo SessionRepo

	current *domain.Session
}

// NewSession creates a session store over the given repository.
func NewSession(log *slog.Logger, repo SessionRepo) *Session {
	return &Session{
		log:  log.With("store", "session"),
		repo: repo,
	}
}

// Refresh fetches the current session from the backend.
func (s *Session) Refresh(ctx context.Context) (*domain.Session, error) {
	sess, err := s.repo.Current(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()
	return sess, nil
}

// Current returns the last fetched session, or nil before the first Refresh.
func (s *Session) Current() *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Expired reports whether the cached session has passed its expiry. An
// absent session counts as expired.
func (s *Session) Expired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current == nil || s.current.IsExpired(time.Now())
}

// Revoke ends the cached session backend-side and clears it locally.
func (s *Session) Revoke(ctx context.Context) error {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()
	if current == nil {
		return nil
	}
	if err := s.repo.Revoke(ctx, current.ID); err != nil {
		return err
	}
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	s.log.InfoContext(ctx, "session revoked", slog.String("session_id", current.ID))
	return nil
}

package domain

import (
	"fmt"
	"time"
)

// Session is a pure value holder for an authenticated backend session.
// Token issuance and verification belong to the auth collaborator; the
// domain only carries the identifiers and timestamps.
type Session struct {
	ID         string
	UserID     string
	CreatedAt  time.Time
	ExpiresAt  time.Time
	LastUsedAt time.Time
}

// RawSession mirrors the wire format. session_id predates id and wins when
// both are present. access_token, when present, lets the adapter backfill a
// missing expires_at from the token's exp claim.
type RawSession struct {
	SessionID   string     `json:"session_id"`
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	AccessToken string     `json:"access_token"`
	CreatedAt   *Timestamp `json:"created_at"`
	ExpiresAt   *Timestamp `json:"expires_at"`
	LastUsedAt  *Timestamp `json:"last_used_at"`
}

// NewSession validates and normalizes a raw session record. All three
// timestamps go through Timestamp coercion, so a malformed value fails with
// ErrInvalidTimestamp at decode rather than producing an invalid date here.
func NewSession(raw RawSession) (*Session, error) {
	id := firstNonEmpty(raw.SessionID, raw.ID)
	if id == "" {
		return nil, fmt.Errorf("session: %w", NewValidationError("session_id", "required"))
	}

	createdAt := raw.CreatedAt.OrElse(time.Time{})

	return &Session{
		ID:         id,
		UserID:     raw.UserID,
		CreatedAt:  createdAt,
		ExpiresAt:  raw.ExpiresAt.OrElse(time.Time{}),
		LastUsedAt: raw.LastUsedAt.OrElse(createdAt),
	}, nil
}

// WithExpiresAt returns a copy carrying the given expiry; used by the
// adapter when the payload omits expires_at but carries a token.
func (s *Session) WithExpiresAt(t time.Time) *Session {
	out := *s
	out.ExpiresAt = t.UTC()
	return &out
}

// IsExpired reports whether the session has expired relative to now. A
// session with no known expiry never reports expired.
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && s.ExpiresAt.Before(now)
}

// ToRaw serializes the session back to the canonical record.
func (s *Session) ToRaw() RawSession {
	raw := RawSession{
		SessionID: s.ID,
		UserID:    s.UserID,
	}
	if !s.CreatedAt.IsZero() {
		ts := NewTimestamp(s.CreatedAt)
		raw.CreatedAt = &ts
	}
	if !s.ExpiresAt.IsZero() {
		ts := NewTimestamp(s.ExpiresAt)
		raw.ExpiresAt = &ts
	}
	if !s.LastUsedAt.IsZero() {
		ts := NewTimestamp(s.LastUsedAt)
		raw.LastUsedAt = &ts
	}
	return raw
}

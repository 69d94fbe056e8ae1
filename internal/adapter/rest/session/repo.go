// Package session implements the session repository over the REST backend.
// Token issuance belongs to the auth collaborator; this repo only fetches
// and revokes session records.
package session

import (
	"context"
	"fmt"

	"github.com/slidelab/pathclient/internal/adapter/rest"
	"github.com/slidelab/pathclient/internal/auth"
	"github.com/slidelab/pathclient/internal/domain"
)

// Repo provides session queries against the backend.
type Repo struct {
	client *rest.Client
}

// New creates a new session repository.
func New(client *rest.Client) *Repo {
	return &Repo{client: client}
}

type itemEnvelope struct {
	Data domain.RawSession `json:"data"`
}

// Current fetches the caller's active session. When the payload omits
// expires_at but carries the access token, the expiry is backfilled from
// the token's exp claim (unverified parse; verification is the backend's).
func (r *Repo) Current(ctx context.Context) (*domain.Session, error) {
	var env itemEnvelope
	if err := r.client.Get(ctx, "/sessions/current", nil, &env); err != nil {
		return nil, fmt.Errorf("get current session: %w", err)
	}

	s, err := domain.NewSession(env.Data)
	if err != nil {
		return nil, fmt.Errorf("get current session: %w", err)
	}

	if s.ExpiresAt.IsZero() && env.Data.AccessToken != "" {
		expiry, err := auth.TokenExpiry(env.Data.AccessToken)
		if err == nil {
			s = s.WithExpiresAt(expiry)
		}
	}
	return s, nil
}

// Revoke invalidates a session by id.
func (r *Repo) Revoke(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, "/sessions/"+id, nil); err != nil {
		return fmt.Errorf("revoke session %s: %w", id, err)
	}
	return nil
}

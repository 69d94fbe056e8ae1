// Package user implements the user repository over the REST backend.
package user

import (
	"context"
	"fmt"

	"github.com/slidelab/pathclient/internal/adapter/rest"
	"github.com/slidelab/pathclient/internal/domain"
)

// Repo provides user queries and admin actions against the backend.
type Repo struct {
	client *rest.Client
}

// New creates a new user repository.
func New(client *rest.Client) *Repo {
	return &Repo{client: client}
}

type listEnvelope struct {
	Data       []domain.RawUser  `json:"data"`
	Pagination *rest.RawPageInfo `json:"pagination"`
}

type itemEnvelope struct {
	Data domain.RawUser `json:"data"`
}

// List returns one page of users.
func (r *Repo) List(ctx context.Context, page rest.Page, sort rest.Sort) ([]*domain.User, rest.PageInfo, error) {
	var env listEnvelope
	if err := r.client.Get(ctx, "/users", page.Query(sort), &env); err != nil {
		return nil, rest.PageInfo{}, fmt.Errorf("list users: %w", err)
	}

	users := make([]*domain.User, 0, len(env.Data))
	for _, raw := range env.Data {
		u, err := domain.NewUser(raw)
		if err != nil {
			return nil, rest.PageInfo{}, fmt.Errorf("list users: %w", err)
		}
		users = append(users, u)
	}
	return users, rest.NewPageInfo(env.Pagination, page, len(users)), nil
}

// GetByID fetches one user. A missing id yields domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var env itemEnvelope
	if err := r.client.Get(ctx, "/users/"+id, nil, &env); err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	u, err := domain.NewUser(env.Data)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return u, nil
}

// Approve marks a pending account as admin-approved.
func (r *Repo) Approve(ctx context.Context, id string) error {
	if err := r.client.Post(ctx, "/users/"+id+"/approve", nil, nil); err != nil {
		return fmt.Errorf("approve user %s: %w", id, err)
	}
	return nil
}

// UpdateRole assigns a role. The role is checked against the closed set
// before anything is sent.
func (r *Repo) UpdateRole(ctx context.Context, id string, role domain.UserRole) error {
	if !role.IsValid() {
		return fmt.Errorf("update role of user %s: %w: %q", id, domain.ErrInvalidUserRole, role)
	}
	body := struct {
		Role string `json:"role"`
	}{Role: role.String()}
	if err := r.client.Patch(ctx, "/users/"+id+"/role", body, nil); err != nil {
		return fmt.Errorf("update role of user %s: %w", id, err)
	}
	return nil
}

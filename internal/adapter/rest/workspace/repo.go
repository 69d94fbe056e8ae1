// Package workspace implements the workspace repository over the REST
// backend.
package workspace

import (
	"context"
	"fmt"

	"github.com/slidelab/pathclient/internal/adapter/rest"
	"github.com/slidelab/pathclient/internal/domain"
)

// Repo provides workspace CRUD against the backend.
type Repo struct {
	client *rest.Client
}

// New creates a new workspace repository.
func New(client *rest.Client) *Repo {
	return &Repo{client: client}
}

// CreateRequest is the canonical (snake_case) create payload. The legacy
// camelCase form submission is gone; this is the single request-shape
// contract.
type CreateRequest struct {
	Name              string   `json:"name"                validate:"required,max=200"`
	OrganType         string   `json:"organ_type"          validate:"required"`
	Organization      string   `json:"organization"        validate:"max=200"`
	Description       string   `json:"description"         validate:"max=2000"`
	License           string   `json:"license"             validate:"max=200"`
	ResourceURL       *string  `json:"resource_url,omitempty"  validate:"omitempty,url"`
	ReleaseYear       *int     `json:"release_year,omitempty"  validate:"omitempty,gte=1900,lte=2100"`
	AnnotationTypeIDs []string `json:"annotation_type_ids"`
}

// UpdateRequest is a partial update; nil fields are left untouched by the
// backend.
type UpdateRequest struct {
	Name              *string  `json:"name,omitempty"         validate:"omitempty,max=200"`
	Organization      *string  `json:"organization,omitempty" validate:"omitempty,max=200"`
	Description       *string  `json:"description,omitempty"  validate:"omitempty,max=2000"`
	License           *string  `json:"license,omitempty"      validate:"omitempty,max=200"`
	ResourceURL       *string  `json:"resource_url,omitempty" validate:"omitempty,url"`
	ReleaseYear       *int     `json:"release_year,omitempty" validate:"omitempty,gte=1900,lte=2100"`
	AnnotationTypeIDs []string `json:"annotation_type_ids,omitempty"`
}

type listEnvelope struct {
	Data       []domain.RawWorkspace `json:"data"`
	Pagination *rest.RawPageInfo     `json:"pagination"`
}

type itemEnvelope struct {
	Data domain.RawWorkspace `json:"data"`
}

// List returns one page of workspaces.
func (r *Repo) List(ctx context.Context, page rest.Page, sort rest.Sort) ([]*domain.Workspace, rest.PageInfo, error) {
	var env listEnvelope
	if err := r.client.Get(ctx, "/workspaces", page.Query(sort), &env); err != nil {
		return nil, rest.PageInfo{}, fmt.Errorf("list workspaces: %w", err)
	}

	workspaces := make([]*domain.Workspace, 0, len(env.Data))
	for _, raw := range env.Data {
		w, err := domain.NewWorkspace(raw)
		if err != nil {
			return nil, rest.PageInfo{}, fmt.Errorf("list workspaces: %w", err)
		}
		workspaces = append(workspaces, w)
	}
	return workspaces, rest.NewPageInfo(env.Pagination, page, len(workspaces)), nil
}

// GetByID fetches one workspace. A missing id yields domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Workspace, error) {
	var env itemEnvelope
	if err := r.client.Get(ctx, "/workspaces/"+id, nil, &env); err != nil {
		return nil, fmt.Errorf("get workspace %s: %w", id, err)
	}
	w, err := domain.NewWorkspace(env.Data)
	if err != nil {
		return nil, fmt.Errorf("get workspace %s: %w", id, err)
	}
	return w, nil
}

// Create validates the request client-side and persists a new workspace.
func (r *Repo) Create(ctx context.Context, req CreateRequest) (*domain.Workspace, error) {
	if err := rest.ValidateRequest(req); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	if !domain.OrganTypeFromString(req.OrganType).IsValid() {
		return nil, fmt.Errorf("create workspace: %w: %q", domain.ErrInvalidOrganType, req.OrganType)
	}

	var env itemEnvelope
	if err := r.client.Post(ctx, "/workspaces", req, &env); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	w, err := domain.NewWorkspace(env.Data)
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return w, nil
}

// Update applies a partial update. The backend returns no body; callers
// re-fetch to observe the effect.
func (r *Repo) Update(ctx context.Context, id string, req UpdateRequest) error {
	if err := rest.ValidateRequest(req); err != nil {
		return fmt.Errorf("update workspace %s: %w", id, err)
	}
	if err := r.client.Patch(ctx, "/workspaces/"+id, req, nil); err != nil {
		return fmt.Errorf("update workspace %s: %w", id, err)
	}
	return nil
}

// Delete removes a workspace.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, "/workspaces/"+id, nil); err != nil {
		return fmt.Errorf("delete workspace %s: %w", id, err)
	}
	return nil
}

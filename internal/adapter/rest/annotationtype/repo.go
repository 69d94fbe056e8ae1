// Package annotationtype implements the annotation-type repository over the
// REST backend. The local badger-backed repository in
// internal/adapter/local/annotationtype implements the same contract for
// offline/demo use.
package annotationtype

import (
	"context"
	"fmt"
	"net/url"

	"github.com/slidelab/pathclient/internal/adapter/rest"
	"github.com/slidelab/pathclient/internal/domain"
)

// Repo provides annotation-type CRUD against the backend.
type Repo struct {
	client *rest.Client
}

// New creates a new annotation-type repository.
func New(client *rest.Client) *Repo {
	return &Repo{client: client}
}

// CreateRequest is the canonical create payload.
type CreateRequest struct {
	Name        string               `json:"name"  validate:"required,max=200"`
	Parent      *domain.RawParentRef `json:"parent,omitempty"`
	Type        string               `json:"type"  validate:"required"`
	Description *string              `json:"description,omitempty" validate:"omitempty,max=2000"`
	Options     []string             `json:"options,omitempty"`
	Global      bool                 `json:"global"`
	Required    bool                 `json:"required"`
	Min         *float64             `json:"min,omitempty"`
	Max         *float64             `json:"max,omitempty"`
	Color       *string              `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// UpdateRequest is a partial update; nil fields are left untouched.
type UpdateRequest struct {
	Name        *string  `json:"name,omitempty"        validate:"omitempty,max=200"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
	Options     []string `json:"options,omitempty"`
	Required    *bool    `json:"required,omitempty"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	Color       *string  `json:"color,omitempty"       validate:"omitempty,hexcolor"`
}

type listEnvelope struct {
	Data       []domain.RawAnnotationType `json:"data"`
	Pagination *rest.RawPageInfo          `json:"pagination"`
}

type itemEnvelope struct {
	Data domain.RawAnnotationType `json:"data"`
}

type countEnvelope struct {
	Data struct {
		Count int `json:"count"`
	} `json:"data"`
}

// List returns one page of annotation types.
func (r *Repo) List(ctx context.Context, page rest.Page, sort rest.Sort) ([]*domain.AnnotationType, rest.PageInfo, error) {
	var env listEnvelope
	if err := r.client.Get(ctx, "/annotation_types", page.Query(sort), &env); err != nil {
		return nil, rest.PageInfo{}, fmt.Errorf("list annotation types: %w", err)
	}
	types, err := mapList(env.Data)
	if err != nil {
		return nil, rest.PageInfo{}, fmt.Errorf("list annotation types: %w", err)
	}
	return types, rest.NewPageInfo(env.Pagination, page, len(types)), nil
}

// GetByParentID returns every annotation type registered under a parent id.
func (r *Repo) GetByParentID(ctx context.Context, parentID string) ([]*domain.AnnotationType, error) {
	query := url.Values{}
	query.Set("parent_id", parentID)
	var env listEnvelope
	if err := r.client.Get(ctx, "/annotation_types", query, &env); err != nil {
		return nil, fmt.Errorf("list annotation types of parent %s: %w", parentID, err)
	}
	types, err := mapList(env.Data)
	if err != nil {
		return nil, fmt.Errorf("list annotation types of parent %s: %w", parentID, err)
	}
	return types, nil
}

// GetByID fetches one annotation type. A missing id yields domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.AnnotationType, error) {
	var env itemEnvelope
	if err := r.client.Get(ctx, "/annotation_types/"+id, nil, &env); err != nil {
		return nil, fmt.Errorf("get annotation type %s: %w", id, err)
	}
	t, err := domain.NewAnnotationType(env.Data)
	if err != nil {
		return nil, fmt.Errorf("get annotation type %s: %w", id, err)
	}
	return t, nil
}

// Create validates the request client-side and persists a new annotation type.
func (r *Repo) Create(ctx context.Context, req CreateRequest) (*domain.AnnotationType, error) {
	if err := rest.ValidateRequest(req); err != nil {
		return nil, fmt.Errorf("create annotation type: %w", err)
	}
	if _, ok := domain.TagTypeFromString(req.Type); !ok {
		return nil, fmt.Errorf("create annotation type: %w", domain.NewValidationError("type", "unknown tag type"))
	}

	var env itemEnvelope
	if err := r.client.Post(ctx, "/annotation_types", req, &env); err != nil {
		return nil, fmt.Errorf("create annotation type: %w", err)
	}
	t, err := domain.NewAnnotationType(env.Data)
	if err != nil {
		return nil, fmt.Errorf("create annotation type: %w", err)
	}
	return t, nil
}

// Update applies a partial update. No body is returned; callers re-fetch.
func (r *Repo) Update(ctx context.Context, id string, req UpdateRequest) error {
	if err := rest.ValidateRequest(req); err != nil {
		return fmt.Errorf("update annotation type %s: %w", id, err)
	}
	if err := r.client.Patch(ctx, "/annotation_types/"+id, req, nil); err != nil {
		return fmt.Errorf("update annotation type %s: %w", id, err)
	}
	return nil
}

// Delete removes an annotation type.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, "/annotation_types/"+id, nil); err != nil {
		return fmt.Errorf("delete annotation type %s: %w", id, err)
	}
	return nil
}

// BatchDelete removes a set of annotation types in one call.
func (r *Repo) BatchDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	body := struct {
		IDs []string `json:"ids"`
	}{IDs: ids}
	if err := r.client.Delete(ctx, "/annotation_types", body); err != nil {
		return fmt.Errorf("batch delete %d annotation types: %w", len(ids), err)
	}
	return nil
}

// Count returns the total number of annotation types.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var env countEnvelope
	if err := r.client.Get(ctx, "/annotation_types/count", nil, &env); err != nil {
		return 0, fmt.Errorf("count annotation types: %w", err)
	}
	return env.Data.Count, nil
}

func mapList(rawTypes []domain.RawAnnotationType) ([]*domain.AnnotationType, error) {
	types := make([]*domain.AnnotationType, 0, len(rawTypes))
	for _, raw := range rawTypes {
		t, err := domain.NewAnnotationType(raw)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// Package annotation implements the annotation repository over the REST
// backend. The backend has no reliable in-place polygon update; the store
// layer compensates with delete-then-recreate, so this repo only exposes
// list, create, and delete.
package annotation

import (
	"context"
	"fmt"

	"github.com/slidelab/pathclient/internal/adapter/rest"
	"github.com/slidelab/pathclient/internal/domain"
)

// Repo provides annotation persistence against the backend.
type Repo struct {
	client *rest.Client
}

// New creates a new annotation repository.
func New(client *rest.Client) *Repo {
	return &Repo{client: client}
}

// CreateRequest is the canonical create payload.
type CreateRequest struct {
	Parent      domain.RawParentRef  `json:"parent"  validate:"required"`
	Polygon     []domain.RawPoint    `json:"polygon" validate:"required,min=3"`
	Data        []domain.RawTagValue `json:"data"`
	Description *string              `json:"description,omitempty"`
}

type listEnvelope struct {
	Data       []domain.RawAnnotation `json:"data"`
	Pagination *rest.RawPageInfo      `json:"pagination"`
}

type itemEnvelope struct {
	Data domain.RawAnnotation `json:"data"`
}

// ListByImage returns one page of an image's annotations.
func (r *Repo) ListByImage(ctx context.Context, imageID string, page rest.Page) ([]*domain.Annotation, rest.PageInfo, error) {
	var env listEnvelope
	path := "/images/" + imageID + "/annotations"
	if err := r.client.Get(ctx, path, page.Query(rest.Sort{}), &env); err != nil {
		return nil, rest.PageInfo{}, fmt.Errorf("list annotations of image %s: %w", imageID, err)
	}

	annotations := make([]*domain.Annotation, 0, len(env.Data))
	for _, raw := range env.Data {
		a, err := domain.NewAnnotation(raw)
		if err != nil {
			return nil, rest.PageInfo{}, fmt.Errorf("list annotations of image %s: %w", imageID, err)
		}
		annotations = append(annotations, a)
	}
	return annotations, rest.NewPageInfo(env.Pagination, page, len(annotations)), nil
}

// GetByID fetches one annotation. A missing id yields domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Annotation, error) {
	var env itemEnvelope
	if err := r.client.Get(ctx, "/annotations/"+id, nil, &env); err != nil {
		return nil, fmt.Errorf("get annotation %s: %w", id, err)
	}
	a, err := domain.NewAnnotation(env.Data)
	if err != nil {
		return nil, fmt.Errorf("get annotation %s: %w", id, err)
	}
	return a, nil
}

// Create validates the request client-side and persists a new annotation.
// Polygon coordinates are checked through the Point constructor before the
// request leaves the client.
func (r *Repo) Create(ctx context.Context, req CreateRequest) (*domain.Annotation, error) {
	if err := rest.ValidateRequest(req); err != nil {
		return nil, fmt.Errorf("create annotation: %w", err)
	}
	if !domain.NewParentRef(&req.Parent).IsValid() {
		return nil, fmt.Errorf("create annotation: %w", domain.ErrInvalidParentRef)
	}
	if _, err := domain.NewPolygon(req.Polygon); err != nil {
		return nil, fmt.Errorf("create annotation: %w", err)
	}

	var env itemEnvelope
	if err := r.client.Post(ctx, "/annotations", req, &env); err != nil {
		return nil, fmt.Errorf("create annotation: %w", err)
	}
	a, err := domain.NewAnnotation(env.Data)
	if err != nil {
		return nil, fmt.Errorf("create annotation: %w", err)
	}
	return a, nil
}

// Delete removes an annotation.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, "/annotations/"+id, nil); err != nil {
		return fmt.Errorf("delete annotation %s: %w", id, err)
	}
	return nil
}

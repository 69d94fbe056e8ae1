// Package image implements the whole-slide-image repository over the REST
// backend.
package image

import (
	"context"
	"fmt"

	"github.com/slidelab/pathclient/internal/adapter/rest"
	"github.com/slidelab/pathclient/internal/domain"
)

// Repo provides image CRUD and patient-scoped queries.
type Repo struct {
	client *rest.Client
}

// New creates a new image repository.
func New(client *rest.Client) *Repo {
	return &Repo{client: client}
}

// CreateRequest registers an uploaded image with its patient. Processing
// state starts at UPLOADED backend-side.
type CreateRequest struct {
	PatientID     string `json:"patient_id" validate:"required"`
	Name          string `json:"name"       validate:"required,max=300"`
	Format        string `json:"format"     validate:"required,max=20"`
	Magnification *int   `json:"magnification,omitempty"`
	OriginPath    string `json:"originpath,omitempty"`
}

type listEnvelope struct {
	Data       []domain.RawImage `json:"data"`
	Pagination *rest.RawPageInfo `json:"pagination"`
}

type itemEnvelope struct {
	Data domain.RawImage `json:"data"`
}

// ListByPatient returns one page of a patient's images.
func (r *Repo) ListByPatient(ctx context.Context, patientID string, page rest.Page, sort rest.Sort) ([]*domain.Image, rest.PageInfo, error) {
	var env listEnvelope
	path := "/patients/" + patientID + "/images"
	if err := r.client.Get(ctx, path, page.Query(sort), &env); err != nil {
		return nil, rest.PageInfo{}, fmt.Errorf("list images of patient %s: %w", patientID, err)
	}

	images := make([]*domain.Image, 0, len(env.Data))
	for _, raw := range env.Data {
		img, err := domain.NewImage(raw)
		if err != nil {
			return nil, rest.PageInfo{}, fmt.Errorf("list images of patient %s: %w", patientID, err)
		}
		images = append(images, img)
	}
	return images, rest.NewPageInfo(env.Pagination, page, len(images)), nil
}

// GetByID fetches one image. A missing id yields domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Image, error) {
	var env itemEnvelope
	if err := r.client.Get(ctx, "/images/"+id, nil, &env); err != nil {
		return nil, fmt.Errorf("get image %s: %w", id, err)
	}
	img, err := domain.NewImage(env.Data)
	if err != nil {
		return nil, fmt.Errorf("get image %s: %w", id, err)
	}
	return img, nil
}

// Create registers a new image record.
func (r *Repo) Create(ctx context.Context, req CreateRequest) (*domain.Image, error) {
	if err := rest.ValidateRequest(req); err != nil {
		return nil, fmt.Errorf("create image: %w", err)
	}
	if req.Magnification != nil && !domain.Magnification(*req.Magnification).IsValid() {
		return nil, fmt.Errorf("create image: %w", domain.NewValidationError("magnification", "not a supported objective"))
	}

	var env itemEnvelope
	if err := r.client.Post(ctx, "/images", req, &env); err != nil {
		return nil, fmt.Errorf("create image: %w", err)
	}
	img, err := domain.NewImage(env.Data)
	if err != nil {
		return nil, fmt.Errorf("create image: %w", err)
	}
	return img, nil
}

// Delete removes an image.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, "/images/"+id, nil); err != nil {
		return fmt.Errorf("delete image %s: %w", id, err)
	}
	return nil
}

// BatchDelete removes a set of images in one call.
func (r *Repo) BatchDelete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	body := struct {
		IDs []string `json:"ids"`
	}{IDs: ids}
	if err := r.client.Delete(ctx, "/images", body); err != nil {
		return fmt.Errorf("batch delete %d images: %w", len(ids), err)
	}
	return nil
}

// RequestReprocess asks the backend to retry a failed image. Only FAILED
// images signal retry; the check is advisory here, authoritative backend-side.
func (r *Repo) RequestReprocess(ctx context.Context, img *domain.Image) error {
	if !img.Status.CanRetry() {
		return fmt.Errorf("reprocess image %s: %w", img.ID, domain.NewValidationError("status", "only failed images can be reprocessed"))
	}
	if err := r.client.Post(ctx, "/images/"+img.ID+"/reprocess", nil, nil); err != nil {
		return fmt.Errorf("reprocess image %s: %w", img.ID, err)
	}
	return nil
}

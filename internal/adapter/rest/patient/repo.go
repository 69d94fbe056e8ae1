// Package patient implements the patient repository over the REST backend.
package patient

import (
	"context"
	"fmt"

	"github.com/slidelab/pathclient/internal/adapter/rest"
	"github.com/slidelab/pathclient/internal/domain"
)

// Repo provides patient CRUD and workspace-scoped queries.
type Repo struct {
	client *rest.Client
}

// New creates a new patient repository.
func New(client *rest.Client) *Repo {
	return &Repo{client: client}
}

// CreateRequest is the canonical create payload. The parent is required and
// is always the nested {id, type} shape on the way out.
type CreateRequest struct {
	Name    string               `json:"name"    validate:"required,max=200"`
	Parent  domain.RawParentRef  `json:"parent"  validate:"required"`
	Gender  *string              `json:"gender,omitempty"`
	Age     *int                 `json:"age,omitempty"     validate:"omitempty,gte=0,lte=150"`
	Race    *string              `json:"race,omitempty"`
	Disease *string              `json:"disease,omitempty"`
	Subtype *string              `json:"subtype,omitempty"`
	Grade   *string              `json:"grade,omitempty"`
	History *string              `json:"history,omitempty"`
}

// UpdateRequest is a partial update; nil fields are left untouched.
type UpdateRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Gender  *string `json:"gender,omitempty"`
	Age     *int    `json:"age,omitempty"  validate:"omitempty,gte=0,lte=150"`
	Race    *string `json:"race,omitempty"`
	Disease *string `json:"disease,omitempty"`
	Subtype *string `json:"subtype,omitempty"`
	Grade   *string `json:"grade,omitempty"`
	History *string `json:"history,omitempty"`
}

type listEnvelope struct {
	Data       []domain.RawPatient `json:"data"`
	Pagination *rest.RawPageInfo   `json:"pagination"`
}

type itemEnvelope struct {
	Data domain.RawPatient `json:"data"`
}

// ListByWorkspace returns one page of a workspace's patients.
func (r *Repo) ListByWorkspace(ctx context.Context, workspaceID string, page rest.Page, sort rest.Sort) ([]*domain.Patient, rest.PageInfo, error) {
	var env listEnvelope
	path := "/workspaces/" + workspaceID + "/patients"
	if err := r.client.Get(ctx, path, page.Query(sort), &env); err != nil {
		return nil, rest.PageInfo{}, fmt.Errorf("list patients of workspace %s: %w", workspaceID, err)
	}

	patients := make([]*domain.Patient, 0, len(env.Data))
	for _, raw := range env.Data {
		p, err := domain.NewPatient(raw)
		if err != nil {
			return nil, rest.PageInfo{}, fmt.Errorf("list patients of workspace %s: %w", workspaceID, err)
		}
		patients = append(patients, p)
	}
	return patients, rest.NewPageInfo(env.Pagination, page, len(patients)), nil
}

// GetByID fetches one patient. A missing id yields domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Patient, error) {
	var env itemEnvelope
	if err := r.client.Get(ctx, "/patients/"+id, nil, &env); err != nil {
		return nil, fmt.Errorf("get patient %s: %w", id, err)
	}
	p, err := domain.NewPatient(env.Data)
	if err != nil {
		return nil, fmt.Errorf("get patient %s: %w", id, err)
	}
	return p, nil
}

// Create validates the request client-side and persists a new patient. A
// request whose parent would not survive ParentRef validation is rejected
// before anything is sent.
func (r *Repo) Create(ctx context.Context, req CreateRequest) (*domain.Patient, error) {
	if err := rest.ValidateRequest(req); err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	if !domain.NewParentRef(&req.Parent).IsValid() {
		return nil, fmt.Errorf("create patient: %w", domain.ErrInvalidParentRef)
	}

	var env itemEnvelope
	if err := r.client.Post(ctx, "/patients", req, &env); err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	p, err := domain.NewPatient(env.Data)
	if err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	return p, nil
}

// Update applies a partial update. No body is returned; callers re-fetch.
func (r *Repo) Update(ctx context.Context, id string, req UpdateRequest) error {
	if err := rest.ValidateRequest(req); err != nil {
		return fmt.Errorf("update patient %s: %w", id, err)
	}
	if err := r.client.Patch(ctx, "/patients/"+id, req, nil); err != nil {
		return fmt.Errorf("update patient %s: %w", id, err)
	}
	return nil
}

// Delete removes a patient.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, "/patients/"+id, nil); err != nil {
		return fmt.Errorf("delete patient %s: %w", id, err)
	}
	return nil
}

// Transfer moves a patient into another workspace.
func (r *Repo) Transfer(ctx context.Context, id, targetWorkspaceID string) error {
	body := struct {
		WorkspaceID string `json:"workspace_id"`
	}{WorkspaceID: targetWorkspaceID}
	if err := r.client.Post(ctx, "/patients/"+id+"/transfer", body, nil); err != nil {
		return fmt.Errorf("transfer patient %s: %w", id, err)
	}
	return nil
}

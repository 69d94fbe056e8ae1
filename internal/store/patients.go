package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/slidelab/pathclient/internal/adapter/rest"
	"github.com/slidelab/pathclient/internal/adapter/rest/patient"
	"github.com/slidelab/pathclient/internal/domain"
)

// PatientRepo is the slice of the backend contract the patient store
// consumes.
type PatientRepo interface {
	ListByWorkspace(ctx context.Context, workspaceID string, page rest.Page, sort rest.Sort) ([]*domain.Patient, rest.PageInfo, error)
	GetByID(ctx context.Context, id string) (*domain.Patient, error)
	Create(ctx context.Context, req patient.CreateRequest) (*domain.Patient, error)
	Update(ctx context.Context, id string, req patient.UpdateRequest) error
	Delete(ctx context.Context, id string) error
	Transfer(ctx context.Context, id, targetWorkspaceID string) error
}

// Patients holds per-workspace patient collections.
type Patients struct {
	mu   sync.Mutex
	log  *slog.Logger
	repo PatientRepo

	byWorkspace map[string][]*domain.Patient
	pages       map[string]rest.PageInfo
	loading     map[string]bool
	pageSize    int
}

// NewPatients creates a patient store over the given repository.
func NewPatients(log *slog.Logger, repo PatientRepo, pageSize int) *Patients {
	if pageSize <= 0 {
		pageSize = rest.DefaultLimit
	}
	return &Patients{
		log:         log.With("store", "patients"),
		repo:        repo,
		byWorkspace: map[string][]*domain.Patient{},
		pages:       map[string]rest.PageInfo{},
		loading:     map[string]bool{},
		pageSize:    pageSize,
	}
}

// Load replaces a workspace's patient collection with the first page.
func (s *Patients) Load(ctx context.Context, workspaceID string) error {
	if !s.begin(workspaceID) {
		return nil
	}
	defer s.end(workspaceID)

	items, info, err := s.repo.ListByWorkspace(ctx, workspaceID, rest.Page{Limit: s.pageSize}, rest.Sort{})
	if err != nil {
		return fmt.Errorf("load patients: %w", err)
	}

	s.mu.Lock()
	s.byWorkspace[workspaceID] = items
	s.pages[workspaceID] = info
	s.mu.Unlock()
	return nil
}

// LoadMore appends the next page of a workspace's patients. A no-op while
// a load for the same workspace is in flight or when no more pages remain.
func (s *Patients) LoadMore(ctx context.Context, workspaceID string) error {
	s.mu.Lock()
	info, seen := s.pages[workspaceID]
	s.mu.Unlock()
	if seen && !info.HasMore {
		return nil
	}
	if !s.begin(workspaceID) {
		return nil
	}
	defer s.end(workspaceID)

	page := rest.Page{Limit: s.pageSize}
	if seen {
		page = info.Next()
	}
	items, next, err := s.repo.ListByWorkspace(ctx, workspaceID, page, rest.Sort{})
	if err != nil {
		return fmt.Errorf("load more patients: %w", err)
	}

	s.mu.Lock()
	s.byWorkspace[workspaceID] = append(s.byWorkspace[workspaceID], items...)
	s.pages[workspaceID] = next
	s.mu.Unlock()
	return nil
}

// ByWorkspace returns a workspace's loaded patients. The slice is a copy.
func (s *Patients) ByWorkspace(workspaceID string) []*domain.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Patient, len(s.byWorkspace[workspaceID]))
	copy(out, s.byWorkspace[workspaceID])
	return out
}

// Create persists a patient and appends it to its workspace collection.
func (s *Patients) Create(ctx context.Context, req patient.CreateRequest) (*domain.Patient, error) {
	created, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	workspaceID := created.WorkspaceID()
	s.byWorkspace[workspaceID] = append(s.byWorkspace[workspaceID], created)
	s.mu.Unlock()

	s.log.InfoContext(ctx, "patient created",
		slog.String("patient_id", created.ID),
		slog.String("workspace_id", created.WorkspaceID()),
	)
	return created, nil
}

// Update persists a partial update, then re-fetches to observe the effect.
func (s *Patients) Update(ctx context.Context, id string, req patient.UpdateRequest) error {
	if err := s.repo.Update(ctx, id, req); err != nil {
		return err
	}
	fresh, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("refresh patient %s: %w", id, err)
	}
	s.replace(fresh)
	return nil
}

// Delete removes a patient from the backend and its workspace collection.
func (s *Patients) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	s.removeLocked(id)
	s.mu.Unlock()
	return nil
}

// Transfer moves a patient to another workspace and drops it from the
// source collection; the target collection picks it up on its next load.
func (s *Patients) Transfer(ctx context.Context, id, targetWorkspaceID string) error {
	if err := s.repo.Transfer(ctx, id, targetWorkspaceID); err != nil {
		return err
	}
	s.mu.Lock()
	s.removeLocked(id)
	s.mu.Unlock()

	s.log.InfoContext(ctx, "patient transferred",
		slog.String("patient_id", id),
		slog.String("target_workspace_id", targetWorkspaceID),
	)
	return nil
}

// SetAnnotationStats replaces the stored patient with a copy carrying
// recomputed image counters. The single sanctioned way counters change.
func (s *Patients) SetAnnotationStats(patientID string, imageCount, annotatedImageCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for workspaceID, patients := range s.byWorkspace {
		for i, p := range patients {
			if p.ID == patientID {
				s.byWorkspace[workspaceID][i] = p.WithAnnotationStats(imageCount, annotatedImageCount)
				return
			}
		}
	}
}

func (s *Patients) replace(fresh *domain.Patient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for workspaceID, patients := range s.byWorkspace {
		for i, p := range patients {
			if p.ID == fresh.ID {
				s.byWorkspace[workspaceID][i] = fresh
				return
			}
		}
	}
}

func (s *Patients) removeLocked(id string) {
	for workspaceID, patients := range s.byWorkspace {
		for i, p := range patients {
			if p.ID == id {
				s.byWorkspace[workspaceID] = append(patients[:i], patients[i+1:]...)
				return
			}
		}
	}
}

func (s *Patients) begin(workspaceID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading[workspaceID] {
		return false
	}
	s.loading[workspaceID] = true
	return true
}

func (s *Patients) end(workspaceID string) {
	s.mu.Lock()
	delete(s.loading, workspaceID)
	s.mu.Unlock()
}

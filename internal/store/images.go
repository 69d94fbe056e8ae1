package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/slidelab/pathclient/internal/adapter/rest"
	"github.com/slidelab/pathclient/internal/adapter/rest/image"
	"github.com/slidelab/pathclient/internal/domain"
)

// ImageRepo is the slice of the backend contract the image store consumes.
type ImageRepo interface {
	ListByPatient(ctx context.Context, patientID string, page rest.Page, sort rest.Sort) ([]*domain.Image, rest.PageInfo, error)
	GetByID(ctx context.Context, id string) (*domain.Image, error)
	Create(ctx context.Context, req image.CreateRequest) (*domain.Image, error)
	Delete(ctx context.Context, id string) error
	BatchDelete(ctx context.Context, ids []string) error
	RequestReprocess(ctx context.Context, img *domain.Image) error
}

// Images holds per-patient image collections.
type Images struct {
	mu   sync.Mutex
	log  *slog.Logger
	repo ImageRepo

	byPatient map[string][]*domain.Image
	pages     map[string]rest.PageInfo
	loading   map[string]bool
	pageSize  int
}

// NewImages creates an image store over the given repository.
func NewImages(log *slog.Logger, repo ImageRepo, pageSize int) *Images {
	if pageSize <= 0 {
		pageSize = rest.DefaultLimit
	}
	return &Images{
		log:       log.With("store", "images"),
		repo:      repo,
		byPatient: map[string][]*domain.Image{},
		pages:     map[string]rest.PageInfo{},
		loading:   map[string]bool{},
		pageSize:  pageSize,
	}
}

// Load replaces a patient's image collection with the first page.
func (s *Images) Load(ctx context.Context, patientID string) error {
	if !s.begin(patientID) {
		return nil
	}
	defer s.end(patientID)

	items, info, err := s.repo.ListByPatient(ctx, patientID, rest.Page{Limit: s.pageSize}, rest.Sort{})
	if err != nil {
		return fmt.Errorf("load images: %w", err)
	}

	s.mu.Lock()
	s.byPatient[patientID] = items
	s.pages[patientID] = info
	s.mu.Unlock()
	return nil
}

// LoadMore appends the next page of a patient's images. A no-op while a
// load for the same patient is in flight or when no more pages remain.
func (s *Images) LoadMore(ctx context.Context, patientID string) error {
	s.mu.Lock()
	info, seen := s.pages[patientID]
	s.mu.Unlock()
	if seen && !info.HasMore {
		return nil
	}
	if !s.begin(patientID) {
		return nil
	}
	defer s.end(patientID)

	page := rest.Page{Limit: s.pageSize}
	if seen {
		page = info.Next()
	}
	items, next, err := s.repo.ListByPatient(ctx, patientID, page, rest.Sort{})
	if err != nil {
		return fmt.Errorf("load more images: %w", err)
	}

	s.mu.Lock()
	s.byPatient[patientID] = append(s.byPatient[patientID], items...)
	s.pages[patientID] = next
	s.mu.Unlock()
	return nil
}

// ByPatient returns a patient's loaded images. The slice is a copy.
func (s *Images) ByPatient(patientID string) []*domain.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Image, len(s.byPatient[patientID]))
	copy(out, s.byPatient[patientID])
	return out
}

// Processed returns the subset of a patient's images ready for annotation.
func (s *Images) Processed(patientID string) []*domain.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Image
	for _, img := range s.byPatient[patientID] {
		if img.IsProcessed() {
			out = append(out, img)
		}
	}
	return out
}

// Create registers an image and appends it to its patient collection.
func (s *Images) Create(ctx context.Context, req image.CreateRequest) (*domain.Image, error) {
	created, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.byPatient[created.PatientID] = append(s.byPatient[created.PatientID], created)
	s.mu.Unlock()

	s.log.InfoContext(ctx, "image created",
		slog.String("image_id", created.ID),
		slog.String("patient_id", created.PatientID),
	)
	return created, nil
}

// Refresh re-fetches one image, picking up server-side status transitions.
func (s *Images) Refresh(ctx context.Context, id string) (*domain.Image, error) {
	fresh, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("refresh image %s: %w", id, err)
	}

	s.mu.Lock()
	for i, img := range s.byPatient[fresh.PatientID] {
		if img.ID == id {
			s.byPatient[fresh.PatientID][i] = fresh
			break
		}
	}
	s.mu.Unlock()
	return fresh, nil
}

// Delete removes an image from the backend and its patient collection.
func (s *Images) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	s.removeLocked(id)
	s.mu.Unlock()
	return nil
}

// BatchDelete removes a set of images in one backend call, then drops them
// locally.
func (s *Images) BatchDelete(ctx context.Context, ids []string) error {
	if err := s.repo.BatchDelete(ctx, ids); err != nil {
		return err
	}
	s.mu.Lock()
	for _, id := range ids {
		s.removeLocked(id)
	}
	s.mu.Unlock()

	s.log.InfoContext(ctx, "images batch deleted", slog.Int("count", len(ids)))
	return nil
}

// RequestReprocess asks the backend to retry a failed image by id, then
// refreshes the local record to pick up the PROCESSING transition.
func (s *Images) RequestReprocess(ctx context.Context, id string) (*domain.Image, error) {
	s.mu.Lock()
	img := s.findLocked(id)
	s.mu.Unlock()
	if img == nil {
		return nil, fmt.Errorf("reprocess image %s: %w", id, domain.ErrNotFound)
	}
	if err := s.repo.RequestReprocess(ctx, img); err != nil {
		return nil, err
	}
	return s.Refresh(ctx, id)
}

func (s *Images) findLocked(id string) *domain.Image {
	for _, images := range s.byPatient {
		for _, img := range images {
			if img.ID == id {
				return img
			}
		}
	}
	return nil
}

func (s *Images) removeLocked(id string) {
	for patientID, images := range s.byPatient {
		for i, img := range images {
			if img.ID == id {
				s.byPatient[patientID] = append(images[:i], images[i+1:]...)
				return
			}
		}
	}
}

func (s *Images) begin(patientID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading[patientID] {
		return false
	}
	s.loading[patientID] = true
	return true
}

func (s *Images) end(patientID string) {
	s.mu.Lock()
	delete(s.loading, patientID)
	s.mu.Unlock()
}

package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/slidelab/pathclient/internal/adapter/rest"
	"github.com/slidelab/pathclient/internal/adapter/rest/annotationtype"
	"github.com/slidelab/pathclient/internal/domain"
)

// AnnotationTypeRepo is the annotation-type contract. Both the REST
// repository and the badger-backed local repository satisfy it, so the store
// works the same online and offline.
type AnnotationTypeRepo interface {
	List(ctx context.Context, page rest.Page, sort rest.Sort) ([]*domain.AnnotationType, rest.PageInfo, error)
	GetByParentID(ctx context.Context, parentID string) ([]*domain.AnnotationType, error)
	GetByID(ctx context.Context, id string) (*domain.AnnotationType, error)
	Create(ctx context.Context, req annotationtype.CreateRequest) (*domain.AnnotationType, error)
	Update(ctx context.Context, id string, req annotationtype.UpdateRequest) error
	Delete(ctx context.Context, id string) error
	BatchDelete(ctx context.Context, ids []string) error
	Count(ctx context.Context) (int, error)
}

// AnnotationTypes caches the annotation-type catalog and a per-parent index.
type AnnotationTypes struct {
	mu   sync.Mutex
	log  *slog.Logger
	repo AnnotationTypeRepo

	all      []*domain.AnnotationType
	byParent map[string][]*domain.AnnotationType
	page     rest.PageInfo
	loaded   bool
	loading  bool
	pageSize int
}

// NewAnnotationTypes creates an annotation-type store over the given
// repository.
func NewAnnotationTypes(log *slog.Logger, repo AnnotationTypeRepo, pageSize int) *AnnotationTypes {
	if pageSize <= 0 {
		pageSize = rest.DefaultLimit
	}
	return &AnnotationTypes{
		log:      log.With("store", "annotation_types"),
		repo:     repo,
		byParent: map[string][]*domain.AnnotationType{},
		pageSize: pageSize,
	}
}

// Load replaces the catalog with the first page.
func (s *AnnotationTypes) Load(ctx context.Context) error {
	if !s.begin() {
		return nil
	}
	defer s.end()

	types, info, err := s.repo.List(ctx, rest.Page{Limit: s.pageSize}, rest.Sort{})
	if err != nil {
		return fmt.Errorf("load annotation types: %w", err)
	}

	s.mu.Lock()
	s.all = types
	s.page = info
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// LoadMore appends the next catalog page.
func (s *AnnotationTypes) LoadMore(ctx context.Context) error {
	s.mu.Lock()
	loaded, info := s.loaded, s.page
	s.mu.Unlock()
	if loaded && !info.HasMore {
		return nil
	}
	if !s.begin() {
		return nil
	}
	defer s.end()

	page := rest.Page{Limit: s.pageSize}
	if loaded {
		page = info.Next()
	}
	types, next, err := s.repo.List(ctx, page, rest.Sort{})
	if err != nil {
		return fmt.Errorf("load more annotation types: %w", err)
	}

	s.mu.Lock()
	s.all = append(s.all, types...)
	s.page = next
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// All returns the loaded catalog. The slice is a copy.
func (s *AnnotationTypes) All() []*domain.AnnotationType {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.AnnotationType, len(s.all))
	copy(out, s.all)
	return out
}

// Get returns a cached annotation type, falling back to the repository when
// the catalog misses.
func (s *AnnotationTypes) Get(ctx context.Context, id string) (*domain.AnnotationType, error) {
	s.mu.Lock()
	for _, t := range s.all {
		if t.ID == id {
			s.mu.Unlock()
			return t, nil
		}
	}
	s.mu.Unlock()
	return s.repo.GetByID(ctx, id)
}

// ByParent returns the annotation types registered under a parent id,
// fetching and caching per parent.
func (s *AnnotationTypes) ByParent(ctx context.Context, parentID string) ([]*domain.AnnotationType, error) {
	s.mu.Lock()
	cached, ok := s.byParent[parentID]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	types, err := s.repo.GetByParentID(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("annotation types of parent %s: %w", parentID, err)
	}
	s.mu.Lock()
	s.byParent[parentID] = types
	s.mu.Unlock()
	return types, nil
}

// Create persists a new annotation type and appends it to the catalog.
func (s *AnnotationTypes) Create(ctx context.Context, req annotationtype.CreateRequest) (*domain.AnnotationType, error) {
	created, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.all = append(s.all, created)
	s.byParent = map[string][]*domain.AnnotationType{}
	s.mu.Unlock()

	s.log.InfoContext(ctx, "annotation type created", slog.String("type_id", created.ID))
	return created, nil
}

// Update applies a partial update, then re-fetches the record since the
// backend returns no body on update.
func (s *AnnotationTypes) Update(ctx context.Context, id string, req annotationtype.UpdateRequest) (*domain.AnnotationType, error) {
	if err := s.repo.Update(ctx, id, req); err != nil {
		return nil, err
	}
	fresh, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("refresh annotation type %s: %w", id, err)
	}

	s.mu.Lock()
	for i, t := range s.all {
		if t.ID == id {
			s.all[i] = fresh
			break
		}
	}
	s.byParent = map[string][]*domain.AnnotationType{}
	s.mu.Unlock()
	return fresh, nil
}

// Delete removes one annotation type.
func (s *AnnotationTypes) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	s.removeLocked(id)
	s.byParent = map[string][]*domain.AnnotationType{}
	s.mu.Unlock()
	return nil
}

// BatchDelete removes a set of annotation types in one call.
func (s *AnnotationTypes) BatchDelete(ctx context.Context, ids []string) error {
	if err := s.repo.BatchDelete(ctx, ids); err != nil {
		return err
	}
	s.mu.Lock()
	for _, id := range ids {
		s.removeLocked(id)
	}
	s.byParent = map[string][]*domain.AnnotationType{}
	s.mu.Unlock()

	s.log.InfoContext(ctx, "annotation types batch deleted", slog.Int("count", len(ids)))
	return nil
}

// Count returns the backend-side catalog size.
func (s *AnnotationTypes) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *AnnotationTypes) removeLocked(id string) {
	for i, t := range s.all {
		if t.ID == id {
			s.all = append(s.all[:i], s.all[i+1:]...)
			return
		}
	}
}

func (s *AnnotationTypes) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return false
	}
	s.loading = true
	return true
}

func (s *AnnotationTypes) end() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

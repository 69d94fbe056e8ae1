// Package store holds the client-side collections that sit between the
// repositories and the UI: per-parent entity collections, and the
// optimistic pending/dirty queues for annotations.
//
// Stores are explicit instances, never package-level state, so tests and
// embedded tools can run several side by side. A mutex keeps the internal
// maps consistent, but two concurrent saves against the same annotation id
// are not serialized here; callers gate the triggering action on the
// matching loading flag.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/slidelab/pathclient/internal/adapter/rest"
	"github.com/slidelab/pathclient/internal/adapter/rest/annotation"
	"github.com/slidelab/pathclient/internal/config"
	"github.com/slidelab/pathclient/internal/domain"
)

// AnnotationRepo is the slice of the backend contract the annotation store
// consumes. The backend cannot update a polygon in place, so there is no
// update operation; dirty saves go through delete-then-recreate.
type AnnotationRepo interface {
	ListByImage(ctx context.Context, imageID string, page rest.Page) ([]*domain.Annotation, rest.PageInfo, error)
	Create(ctx context.Context, req annotation.CreateRequest) (*domain.Annotation, error)
	Delete(ctx context.Context, id string) error
}

// PendingAnnotation is a client-drawn shape not yet persisted, tracked
// under a temporary local id.
type PendingAnnotation struct {
	TempID      string
	ImageID     string
	Polygon     []domain.Point
	Data        []domain.TagValue
	Description *string
}

// BatchResult reports a partial-success batch outcome. Partial success is a
// first-class expected outcome, never an all-or-nothing transaction.
type BatchResult struct {
	Saved  int
	Failed int
}

// Annotations reconciles three parallel collections per image: committed
// annotations from the backend, pending client-side creations, and dirty
// local polygon edits awaiting an explicit save.
type Annotations struct {
	mu   sync.Mutex
	log  *slog.Logger
	repo AnnotationRepo

	pageSize   int
	maxPending int

	committed map[string][]*domain.Annotation
	pages     map[string]rest.PageInfo
	loading   map[string]bool

	pending []*PendingAnnotation
	dirty   map[string][]domain.Point
	orphans map[string]*domain.Annotation

	selected  map[string]struct{}
	currentID string
}

// NewAnnotations creates an annotation store over the given repository.
func NewAnnotations(log *slog.Logger, repo AnnotationRepo, cfg config.AnnotationsConfig) *Annotations {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = rest.DefaultLimit
	}
	maxPending := cfg.MaxPending
	if maxPending <= 0 {
		maxPending = 500
	}
	return &Annotations{
		log:        log.With("store", "annotations"),
		repo:       repo,
		pageSize:   pageSize,
		maxPending: maxPending,
		committed:  map[string][]*domain.Annotation{},
		pages:      map[string]rest.PageInfo{},
		loading:    map[string]bool{},
		dirty:      map[string][]domain.Point{},
		orphans:    map[string]*domain.Annotation{},
		selected:   map[string]struct{}{},
	}
}

// Load replaces the committed collection for an image with the first page.
// A response landing after a newer one overwrites state: last write wins.
func (s *Annotations) Load(ctx context.Context, imageID string) error {
	if !s.beginLoad(imageID) {
		return nil
	}
	defer s.endLoad(imageID)

	annotations, info, err := s.repo.ListByImage(ctx, imageID, rest.Page{Limit: s.pageSize})
	if err != nil {
		return fmt.Errorf("load annotations: %w", err)
	}

	s.mu.Lock()
	s.committed[imageID] = annotations
	s.pages[imageID] = info
	s.mu.Unlock()
	return nil
}

// LoadMore appends the next page for an image. A no-op while a load for the
// same image is already in flight, or when the last page reported no more.
func (s *Annotations) LoadMore(ctx context.Context, imageID string) error {
	s.mu.Lock()
	info, seen := s.pages[imageID]
	s.mu.Unlock()
	if seen && !info.HasMore {
		return nil
	}
	if !s.beginLoad(imageID) {
		return nil
	}
	defer s.endLoad(imageID)

	page := rest.Page{Limit: s.pageSize}
	if seen {
		page = info.Next()
	}
	annotations, next, err := s.repo.ListByImage(ctx, imageID, page)
	if err != nil {
		return fmt.Errorf("load more annotations: %w", err)
	}

	s.mu.Lock()
	s.committed[imageID] = append(s.committed[imageID], annotations...)
	s.pages[imageID] = next
	s.mu.Unlock()
	return nil
}

func (s *Annotations) beginLoad(imageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading[imageID] {
		return false
	}
	s.loading[imageID] = true
	return true
}

func (s *Annotations) endLoad(imageID string) {
	s.mu.Lock()
	delete(s.loading, imageID)
	s.mu.Unlock()
}

// Committed returns the committed annotations of an image. The slice is a
// copy; the entities are shared and must not be mutated.
func (s *Annotations) Committed(imageID string) []*domain.Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Annotation, len(s.committed[imageID]))
	copy(out, s.committed[imageID])
	return out
}

// Visible returns what the viewer should render for an image: the committed
// annotations with any queued dirty polygon applied on top.
func (s *Annotations) Visible(imageID string) []*domain.Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Annotation, 0, len(s.committed[imageID]))
	for _, a := range s.committed[imageID] {
		if polygon, edited := s.dirty[a.ID]; edited {
			out = append(out, a.WithPolygon(polygon))
			continue
		}
		out = append(out, a)
	}
	return out
}

// Pending returns the not-yet-persisted annotations of an image.
func (s *Annotations) Pending(imageID string) []*PendingAnnotation {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*PendingAnnotation
	for _, p := range s.pending {
		if p.ImageID == imageID {
			out = append(out, p)
		}
	}
	return out
}

// AddPending queues a freshly drawn shape under a temporary id. Nothing is
// sent until SavePending.
func (s *Annotations) AddPending(imageID string, polygon []domain.Point, data []domain.TagValue, description *string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.pending) >= s.maxPending {
		return "", domain.NewValidationError("pending", "too many unsaved annotations")
	}
	tempID := "pending-" + uuid.NewString()
	s.pending = append(s.pending, &PendingAnnotation{
		TempID:      tempID,
		ImageID:     imageID,
		Polygon:     domain.ClonePolygon(polygon),
		Data:        data,
		Description: description,
	})
	return tempID, nil
}

// DiscardPending drops a queued shape by its temporary id.
func (s *Annotations) DiscardPending(tempID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.pending {
		if p.TempID == tempID {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

// UpdatePolygon records a local polygon edit. An edit to a pending shape
// mutates the pending record in place (nothing has round-tripped yet); an
// edit to a committed annotation queues a dirty entry holding only the new
// polygon, persisted later by SaveDirty.
func (s *Annotations) UpdatePolygon(id string, polygon []domain.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.pending {
		if p.TempID == id {
			p.Polygon = domain.ClonePolygon(polygon)
			return nil
		}
	}

	if s.findCommitted(id) != nil {
		s.dirty[id] = domain.ClonePolygon(polygon)
		return nil
	}
	return fmt.Errorf("update polygon of %s: %w", id, domain.ErrNotFound)
}

// SavePending attempts a create for every pending annotation independently.
// Successes are spliced into the committed collection and cleared from
// pending; the number removed from pending always equals the number of
// reported successes.
func (s *Annotations) SavePending(ctx context.Context) BatchResult {
	s.mu.Lock()
	queue := make([]*PendingAnnotation, len(s.pending))
	copy(queue, s.pending)
	s.mu.Unlock()

	var result BatchResult
	for _, p := range queue {
		created, err := s.repo.Create(ctx, annotation.CreateRequest{
			Parent:      domain.RawParentRef{ID: p.ImageID, Type: domain.ParentTypeImage.String()},
			Polygon:     domain.PolygonToRaw(p.Polygon),
			Data:        rawTagValues(p.Data),
			Description: p.Description,
		})
		if err != nil {
			result.Failed++
			s.log.WarnContext(ctx, "pending annotation save failed",
				slog.String("temp_id", p.TempID),
				slog.String("image_id", p.ImageID),
				slog.String("error", err.Error()),
			)
			continue
		}
		result.Saved++

		s.mu.Lock()
		s.committed[p.ImageID] = append(s.committed[p.ImageID], created)
		s.removePendingLocked(p.TempID)
		s.mu.Unlock()
	}

	s.log.InfoContext(ctx, "pending annotations saved",
		slog.Int("saved", result.Saved),
		slog.Int("failed", result.Failed),
	)
	return result
}

// SaveDirty persists every queued polygon edit. The backend cannot update a
// polygon in place, so each edit is a delete of the old annotation followed
// by a create carrying the new polygon and the original's other fields; on
// success the new id replaces the old one across the committed collection,
// the selection set, and the current pointer.
//
// When the delete succeeds but the create fails, the annotation is gone
// from the committed collection; it is parked in the orphan map for
// RetryOrphan and the returned error wraps ErrAnnotationOrphaned so callers
// can tell this apart from an ordinary failed update.
func (s *Annotations) SaveDirty(ctx context.Context) (BatchResult, error) {
	s.mu.Lock()
	edits := make(map[string][]domain.Point, len(s.dirty))
	for id, polygon := range s.dirty {
		edits[id] = polygon
	}
	s.mu.Unlock()

	var result BatchResult
	var orphanErrs []error
	for id, polygon := range edits {
		s.mu.Lock()
		old := s.findCommitted(id)
		s.mu.Unlock()
		if old == nil {
			// Already swapped or removed by a competing action.
			s.mu.Lock()
			delete(s.dirty, id)
			s.mu.Unlock()
			continue
		}

		if err := s.repo.Delete(ctx, id); err != nil {
			// The old annotation is still committed; the edit stays queued.
			result.Failed++
			s.log.WarnContext(ctx, "dirty annotation delete failed",
				slog.String("annotation_id", id),
				slog.String("error", err.Error()),
			)
			continue
		}

		created, err := s.repo.Create(ctx, recreateRequest(old, polygon))
		if err != nil {
			result.Failed++
			s.orphan(ctx, old, polygon)
			orphanErrs = append(orphanErrs, fmt.Errorf("annotation %s: %w", id, domain.ErrAnnotationOrphaned))
			continue
		}

		result.Saved++
		s.swap(old, created)
	}

	s.log.InfoContext(ctx, "dirty annotations saved",
		slog.Int("saved", result.Saved),
		slog.Int("failed", result.Failed),
		slog.Int("orphaned", len(orphanErrs)),
	)
	return result, errors.Join(orphanErrs...)
}

// RetryOrphan re-attempts only the create step for an annotation whose
// delete went through but whose recreate failed.
func (s *Annotations) RetryOrphan(ctx context.Context, id string) (*domain.Annotation, error) {
	s.mu.Lock()
	old, ok := s.orphans[id]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("retry orphan %s: %w", id, domain.ErrNotFound)
	}

	created, err := s.repo.Create(ctx, recreateRequest(old, old.Polygon))
	if err != nil {
		return nil, fmt.Errorf("retry orphan %s: %w", id, err)
	}

	s.mu.Lock()
	delete(s.orphans, id)
	imageID := created.ImageID()
	s.committed[imageID] = append(s.committed[imageID], created)
	s.mu.Unlock()

	s.log.InfoContext(ctx, "orphaned annotation recovered",
		slog.String("old_id", id),
		slog.String("new_id", created.ID),
	)
	return created, nil
}

// Orphans lists annotations awaiting recovery after a failed recreate.
func (s *Annotations) Orphans() []*domain.Annotation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Annotation, 0, len(s.orphans))
	for _, a := range s.orphans {
		out = append(out, a)
	}
	return out
}

// Delete removes a committed annotation and scrubs every local trace of its
// id: the dirty queue, the selection set, and the current pointer.
func (s *Annotations) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete annotation %s: %w", id, err)
	}

	s.mu.Lock()
	s.removeCommittedLocked(id)
	delete(s.dirty, id)
	delete(s.selected, id)
	if s.currentID == id {
		s.currentID = ""
	}
	s.mu.Unlock()
	return nil
}

// HasUnsaved reports whether any pending or dirty work would be lost on
// navigation.
func (s *Annotations) HasUnsaved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending) > 0 || len(s.dirty) > 0
}

// Select adds an annotation id to the selection set.
func (s *Annotations) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected[id] = struct{}{}
}

// Deselect removes an annotation id from the selection set.
func (s *Annotations) Deselect(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selected, id)
}

// ClearSelection empties the selection set and the current pointer.
func (s *Annotations) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = map[string]struct{}{}
	s.currentID = ""
}

// IsSelected reports whether the id is in the selection set.
func (s *Annotations) IsSelected(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.selected[id]
	return ok
}

// SetCurrent points the editor at one annotation.
func (s *Annotations) SetCurrent(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentID = id
}

// Current returns the current annotation pointer, empty when none.
func (s *Annotations) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentID
}

// swap atomically (from the client's view) replaces the old id with the new
// annotation across the committed collection, the selection set, and the
// current pointer. No stale id survives.
func (s *Annotations) swap(old, created *domain.Annotation) {
	s.mu.Lock()
	defer s.mu.Unlock()

	imageID := old.ImageID()
	for i, a := range s.committed[imageID] {
		if a.ID == old.ID {
			s.committed[imageID][i] = created
			break
		}
	}
	if _, wasSelected := s.selected[old.ID]; wasSelected {
		delete(s.selected, old.ID)
		s.selected[created.ID] = struct{}{}
	}
	if s.currentID == old.ID {
		s.currentID = created.ID
	}
	delete(s.dirty, old.ID)
}

// orphan removes the lost annotation from committed state and parks a copy
// carrying the unsaved polygon for recovery.
func (s *Annotations) orphan(ctx context.Context, old *domain.Annotation, polygon []domain.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeCommittedLocked(old.ID)
	delete(s.dirty, old.ID)
	delete(s.selected, old.ID)
	if s.currentID == old.ID {
		s.currentID = ""
	}
	s.orphans[old.ID] = old.WithPolygon(polygon)

	s.log.ErrorContext(ctx, "annotation orphaned: delete succeeded, recreate failed",
		slog.String("annotation_id", old.ID),
		slog.String("image_id", old.ImageID()),
	)
}

func (s *Annotations) findCommitted(id string) *domain.Annotation {
	for _, annotations := range s.committed {
		for _, a := range annotations {
			if a.ID == id {
				return a
			}
		}
	}
	return nil
}

func (s *Annotations) removeCommittedLocked(id string) {
	for imageID, annotations := range s.committed {
		for i, a := range annotations {
			if a.ID == id {
				s.committed[imageID] = append(annotations[:i], annotations[i+1:]...)
				return
			}
		}
	}
}

func (s *Annotations) removePendingLocked(tempID string) {
	for i, p := range s.pending {
		if p.TempID == tempID {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

func recreateRequest(old *domain.Annotation, polygon []domain.Point) annotation.CreateRequest {
	parent := old.Parent.ToRaw()
	return annotation.CreateRequest{
		Parent:      parent,
		Polygon:     domain.PolygonToRaw(polygon),
		Data:        rawTagValues(old.Data),
		Description: old.Description,
	}
}

func rawTagValues(data []domain.TagValue) []domain.RawTagValue {
	out := make([]domain.RawTagValue, 0, len(data))
	for _, tv := range data {
		out = append(out, domain.RawTagValue{
			TagName: tv.TagName,
			TagType: tv.TagType.String(),
			Value:   tv.Value,
		})
	}
	return out
}

package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/slidelab/pathclient/internal/adapter/rest"
	"github.com/slidelab/pathclient/internal/adapter/rest/workspace"
	"github.com/slidelab/pathclient/internal/domain"
)

// WorkspaceRepo is the slice of the backend contract the workspace store
// consumes.
type WorkspaceRepo interface {
	List(ctx context.Context, page rest.Page, sort rest.Sort) ([]*domain.Workspace, rest.PageInfo, error)
	GetByID(ctx context.Context, id string) (*domain.Workspace, error)
	Create(ctx context.Context, req workspace.CreateRequest) (*domain.Workspace, error)
	Update(ctx context.Context, id string, req workspace.UpdateRequest) error
	Delete(ctx context.Context, id string) error
}

// Workspaces holds the loaded workspace collection.
type Workspaces struct {
	mu   sync.Mutex
	log  *slog.Logger
	repo WorkspaceRepo

	items    []*domain.Workspace
	page     rest.PageInfo
	loaded   bool
	loading  bool
	pageSize int
	sort     rest.Sort
}

// NewWorkspaces creates a workspace store over the given repository.
func NewWorkspaces(log *slog.Logger, repo WorkspaceRepo, pageSize int) *Workspaces {
	if pageSize <= 0 {
		pageSize = rest.DefaultLimit
	}
	return &Workspaces{
		log:      log.With("store", "workspaces"),
		repo:     repo,
		pageSize: pageSize,
		sort:     rest.Sort{Field: "created_at", Desc: true},
	}
}

// Load replaces the collection with the first page.
func (s *Workspaces) Load(ctx context.Context) error {
	if !s.begin() {
		return nil
	}
	defer s.end()

	items, info, err := s.repo.List(ctx, rest.Page{Limit: s.pageSize}, s.sort)
	if err != nil {
		return fmt.Errorf("load workspaces: %w", err)
	}

	s.mu.Lock()
	s.items = items
	s.page = info
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// LoadMore appends the next page. A no-op while a load is already in
// flight or when the last page reported no more.
func (s *Workspaces) LoadMore(ctx context.Context) error {
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
	items, next, err := s.repo.List(ctx, page, s.sort)
	if err != nil {
		return fmt.Errorf("load more workspaces: %w", err)
	}

	s.mu.Lock()
	s.items = append(s.items, items...)
	s.page = next
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// All returns the loaded workspaces. The slice is a copy.
func (s *Workspaces) All() []*domain.Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.Workspace, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns a loaded workspace by id, nil when not loaded.
func (s *Workspaces) Get(id string) *domain.Workspace {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.items {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// Create persists a workspace and prepends it to the collection.
func (s *Workspaces) Create(ctx context.Context, req workspace.CreateRequest) (*domain.Workspace, error) {
	created, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.items = append([]*domain.Workspace{created}, s.items...)
	s.mu.Unlock()

	s.log.InfoContext(ctx, "workspace created", slog.String("workspace_id", created.ID))
	return created, nil
}

// Update persists a partial update, then re-fetches the workspace to
// observe the effect (the update endpoint returns no body).
func (s *Workspaces) Update(ctx context.Context, id string, req workspace.UpdateRequest) error {
	if err := s.repo.Update(ctx, id, req); err != nil {
		return err
	}
	fresh, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("refresh workspace %s: %w", id, err)
	}

	s.mu.Lock()
	for i, w := range s.items {
		if w.ID == id {
			s.items[i] = fresh
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// Delete removes a workspace from the backend and the collection.
func (s *Workspaces) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.mu.Lock()
	for i, w := range s.items {
		if w.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	s.log.InfoContext(ctx, "workspace deleted", slog.String("workspace_id", id))
	return nil
}

func (s *Workspaces) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return false
	}
	s.loading = true
	return true
}

func (s *Workspaces) end() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/slidelab/pathclient/internal/adapter/rest"
	"github.com/slidelab/pathclient/internal/domain"
)

// UserRepo is the slice of the backend contract the user store consumes.
type UserRepo interface {
	List(ctx context.Context, page rest.Page, sort rest.Sort) ([]*domain.User, rest.PageInfo, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Approve(ctx context.Context, id string) error
	UpdateRole(ctx context.Context, id string, role domain.UserRole) error
}

// Users holds the admin-facing user roster.
type Users struct {
	mu   sync.Mutex
	log  *slog.Logger
	repo UserRepo

	all      []*domain.User
	page     rest.PageInfo
	loaded   bool
	loading  bool
	pageSize int
}

// NewUsers creates a user store over the given repository.
func NewUsers(log *slog.Logger, repo UserRepo, pageSize int) *Users {
	if pageSize <= 0 {
		pageSize = rest.DefaultLimit
	}
	return &Users{
		log:      log.With("store", "users"),
		repo:     repo,
		pageSize: pageSize,
	}
}

// Load replaces the roster with the first page.
func (s *Users) Load(ctx context.Context) error {
	if !s.begin() {
		return nil
	}
	defer s.end()

	users, info, err := s.repo.List(ctx, rest.Page{Limit: s.pageSize}, rest.Sort{})
	if err != nil {
		return fmt.Errorf("load users: %w", err)
	}

	s.mu.Lock()
	s.all = users
	s.page = info
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// LoadMore appends the next roster page.
func (s *Users) LoadMore(ctx context.Context) error {
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
	users, next, err := s.repo.List(ctx, page, rest.Sort{})
	if err != nil {
		return fmt.Errorf("load more users: %w", err)
	}

	s.mu.Lock()
	s.all = append(s.all, users...)
	s.page = next
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// All returns the loaded roster. The slice is a copy.
func (s *Users) All() []*domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.User, len(s.all))
	copy(out, s.all)
	return out
}

// PendingApproval returns users waiting on admin approval.
func (s *Users) PendingApproval() []*domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.User
	for _, u := range s.all {
		if u.NeedsApproval() {
			out = append(out, u)
		}
	}
	return out
}

// Approve grants a user access, then re-fetches the record.
func (s *Users) Approve(ctx context.Context, id string) (*domain.User, error) {
	if err := s.repo.Approve(ctx, id); err != nil {
		return nil, err
	}
	fresh, err := s.refresh(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "user approved", slog.String("user_id", id))
	return fresh, nil
}

// UpdateRole changes a user's role, then re-fetches the record.
func (s *Users) UpdateRole(ctx context.Context, id string, role domain.UserRole) (*domain.User, error) {
	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}
	fresh, err := s.refresh(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "user role updated",
		slog.String("user_id", id),
		slog.String("role", role.String()),
	)
	return fresh, nil
}

func (s *Users) refresh(ctx context.Context, id string) (*domain.User, error) {
	fresh, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("refresh user %s: %w", id, err)
	}
	s.mu.Lock()
	for i, u := range s.all {
		if u.UserID == id {
			s.all[i] = fresh
			break
		}
	}
	s.mu.Unlock()
	return fresh, nil
}

func (s *Users) begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return false
	}
	s.loading = true
	return true
}

func (s *Users) end() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

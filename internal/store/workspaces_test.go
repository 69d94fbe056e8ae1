package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidelab/pathclient/internal/adapter/rest"
	"github.com/slidelab/pathclient/internal/adapter/rest/workspace"
	"github.com/slidelab/pathclient/internal/domain"
)

type workspaceRepoMock struct {
	ListFunc    func(ctx context.Context, page rest.Page, sort rest.Sort) ([]*domain.Workspace, rest.PageInfo, error)
	GetByIDFunc func(ctx context.Context, id string) (*domain.Workspace, error)
	CreateFunc  func(ctx context.Context, req workspace.CreateRequest) (*domain.Workspace, error)
	UpdateFunc  func(ctx context.Context, id string, req workspace.UpdateRequest) error
	DeleteFunc  func(ctx context.Context, id string) error
}

func (m *workspaceRepoMock) List(ctx context.Context, page rest.Page, sort rest.Sort) ([]*domain.Workspace, rest.PageInfo, error) {
	return m.ListFunc(ctx, page, sort)
}
func (m *workspaceRepoMock) GetByID(ctx context.Context, id string) (*domain.Workspace, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *workspaceRepoMock) Create(ctx context.Context, req workspace.CreateRequest) (*domain.Workspace, error) {
	return m.CreateFunc(ctx, req)
}
func (m *workspaceRepoMock) Update(ctx context.Context, id string, req workspace.UpdateRequest) error {
	return m.UpdateFunc(ctx, id, req)
}
func (m *workspaceRepoMock) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

func testWorkspace(t *testing.T, id, name string) *domain.Workspace {
	t.Helper()
	ws, err := domain.NewWorkspace(domain.RawWorkspace{ID: id, Name: name, OrganType: "lung"})
	require.NoError(t, err)
	return ws
}

func TestWorkspaces_LoadAndGet(t *testing.T) {
	t.Parallel()

	repo := &workspaceRepoMock{
		ListFunc: func(ctx context.Context, page rest.Page, sort rest.Sort) ([]*domain.Workspace, rest.PageInfo, error) {
			assert.Equal(t, rest.Sort{Field: "created_at", Desc: true}, sort)
			return []*domain.Workspace{testWorkspace(t, "ws-1", "First")}, rest.PageInfo{}, nil
		},
	}
	s := NewWorkspaces(testLogger(), repo, 10)

	require.NoError(t, s.Load(context.Background()))
	require.Len(t, s.All(), 1)
	assert.Equal(t, "First", s.Get("ws-1").Name)
	assert.Nil(t, s.Get("missing"))
}

func TestWorkspaces_CreatePrepends(t *testing.T) {
	t.Parallel()

	repo := &workspaceRepoMock{
		ListFunc: func(ctx context.Context, page rest.Page, sort rest.Sort) ([]*domain.Workspace, rest.PageInfo, error) {
			return []*domain.Workspace{testWorkspace(t, "ws-1", "Existing")}, rest.PageInfo{}, nil
		},
		CreateFunc: func(ctx context.Context, req workspace.CreateRequest) (*domain.Workspace, error) {
			return testWorkspace(t, "ws-2", req.Name), nil
		},
	}
	s := NewWorkspaces(testLogger(), repo, 10)
	require.NoError(t, s.Load(context.Background()))

	created, err := s.Create(context.Background(), workspace.CreateRequest{Name: "Newest", OrganType: "lung"})
	require.NoError(t, err)
	assert.Equal(t, "ws-2", created.ID)

	all := s.All()
	require.Len(t, all, 2)
	assert.Equal(t, "ws-2", all[0].ID)
	assert.Equal(t, "ws-1", all[1].ID)
}

func TestWorkspaces_UpdateRefreshes(t *testing.T) {
	t.Parallel()

	updated := false
	repo := &workspaceRepoMock{
		ListFunc: func(ctx context.Context, page rest.Page, sort rest.Sort) ([]*domain.Workspace, rest.PageInfo, error) {
			return []*domain.Workspace{testWorkspace(t, "ws-1", "Old name")}, rest.PageInfo{}, nil
		},
		UpdateFunc: func(ctx context.Context, id string, req workspace.UpdateRequest) error {
			updated = true
			return nil
		},
		GetByIDFunc: func(ctx context.Context, id string) (*domain.Workspace, error) {
			return testWorkspace(t, id, "New name"), nil
		},
	}
	s := NewWorkspaces(testLogger(), repo, 10)
	require.NoError(t, s.Load(context.Background()))

	name := "New name"
	require.NoError(t, s.Update(context.Background(), "ws-1", workspace.UpdateRequest{Name: &name}))

	assert.True(t, updated)
	assert.Equal(t, "New name", s.Get("ws-1").Name)
}

func TestWorkspaces_Delete(t *testing.T) {
	t.Parallel()

	repo := &workspaceRepoMock{
		ListFunc: func(ctx context.Context, page rest.Page, sort rest.Sort) ([]*domain.Workspace, rest.PageInfo, error) {
			return []*domain.Workspace{testWorkspace(t, "ws-1", "Doomed")}, rest.PageInfo{}, nil
		},
		DeleteFunc: func(ctx context.Context, id string) error { return nil },
	}
	s := NewWorkspaces(testLogger(), repo, 10)
	require.NoError(t, s.Load(context.Background()))

	require.NoError(t, s.Delete(context.Background(), "ws-1"))
	assert.Empty(t, s.All())
}

func TestWorkspaces_DeleteBackendFailureKeepsState(t *testing.T) {
	t.Parallel()

	repo := &workspaceRepoMock{
		ListFunc: func(ctx context.Context, page rest.Page, sort rest.Sort) ([]*domain.Workspace, rest.PageInfo, error) {
			return []*domain.Workspace{testWorkspace(t, "ws-1", "Kept")}, rest.PageInfo{}, nil
		},
		DeleteFunc: func(ctx context.Context, id string) error { return errors.New("boom") },
	}
	s := NewWorkspaces(testLogger(), repo, 10)
	require.NoError(t, s.Load(context.Background()))

	require.Error(t, s.Delete(context.Background(), "ws-1"))
	assert.Len(t, s.All(), 1)
}

func TestWorkspaces_LoadMoreStopsWhenExhausted(t *testing.T) {
	t.Parallel()

	calls := 0
	repo := &workspaceRepoMock{
		ListFunc: func(ctx context.Context, page rest.Page, sort rest.Sort) ([]*domain.Workspace, rest.PageInfo, error) {
			calls++
			return []*domain.Workspace{testWorkspace(t, "ws-1", "Only")}, rest.PageInfo{Limit: 10, HasMore: false}, nil
		},
	}
	s := NewWorkspaces(testLogger(), repo, 10)

	require.NoError(t, s.Load(context.Background()))
	require.NoError(t, s.LoadMore(context.Background()))
	assert.Equal(t, 1, calls)
}

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slidelab/pathclient/internal/adapter/rest"
	"github.com/slidelab/pathclient/internal/adapter/rest/annotationtype"
	"github.com/slidelab/pathclient/internal/domain"
)

type annotationTypeRepoMock struct {
	ListFunc          func(ctx context.Context, page rest.Page, sort rest.Sort) ([]*domain.AnnotationType, rest.PageInfo, error)
	GetByParentIDFunc func(ctx context.Context, parentID string) ([]*domain.AnnotationType, error)
	GetByIDFunc       func(ctx context.Context, id string) (*domain.AnnotationType, error)
	CreateFunc        func(ctx context.Context, req annotationtype.CreateRequest) (*domain.AnnotationType, error)
	UpdateFunc        func(ctx context.Context, id string, req annotationtype.UpdateRequest) error
	DeleteFunc        func(ctx context.Context, id string) error
	BatchDeleteFunc   func(ctx context.Context, ids []string) error
	CountFunc         func(ctx context.Context) (int, error)

	parentCalls int
}

func (m *annotationTypeRepoMock) List(ctx context.Context, page rest.Page, sort rest.Sort) ([]*domain.AnnotationType, rest.PageInfo, error) {
	return m.ListFunc(ctx, page, sort)
}
func (m *annotationTypeRepoMock) GetByParentID(ctx context.Context, parentID string) ([]*domain.AnnotationType, error) {
	m.parentCalls++
	return m.GetByParentIDFunc(ctx, parentID)
}
func (m *annotationTypeRepoMock) GetByID(ctx context.Context, id string) (*domain.AnnotationType, error) {
	return m.GetByIDFunc(ctx, id)
}
func (m *annotationTypeRepoMock) Create(ctx context.Context, req annotationtype.CreateRequest) (*domain.AnnotationType, error) {
	return m.CreateFunc(ctx, req)
}
func (m *annotationTypeRepoMock) Update(ctx context.Context, id string, req annotationtype.UpdateRequest) error {
	return m.UpdateFunc(ctx, id, req)
}
func (m *annotationTypeRepoMock) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}
func (m *annotationTypeRepoMock) BatchDelete(ctx context.Context, ids []string) error {
	return m.BatchDeleteFunc(ctx, ids)
}
func (m *annotationTypeRepoMock) Count(ctx context.Context) (int, error) {
	return m.CountFunc(ctx)
}

func testAnnotationType(t *testing.T, id, name string) *domain.AnnotationType {
	t.Helper()
	at, err := domain.NewAnnotationType(domain.RawAnnotationType{ID: id, Name: name, Type: "boolean"})
	require.NoError(t, err)
	return at
}

func TestAnnotationTypes_GetFallsBackToRepo(t *testing.T) {
	t.Parallel()

	repo := &annotationTypeRepoMock{
		ListFunc: func(ctx context.Context, page rest.Page, sort rest.Sort) ([]*domain.AnnotationType, rest.PageInfo, error) {
			return []*domain.AnnotationType{testAnnotationType(t, "at-1", "Tumor")}, rest.PageInfo{}, nil
		},
		GetByIDFunc: func(ctx context.Context, id string) (*domain.AnnotationType, error) {
			return testAnnotationType(t, id, "Fetched"), nil
		},
	}
	s := NewAnnotationTypes(testLogger(), repo, 10)
	require.NoError(t, s.Load(context.Background()))

	cached, err := s.Get(context.Background(), "at-1")
	require.NoError(t, err)
	assert.Equal(t, "Tumor", cached.Name)

	fetched, err := s.Get(context.Background(), "at-2")
	require.NoError(t, err)
	assert.Equal(t, "Fetched", fetched.Name)
}

func TestAnnotationTypes_ByParentCaches(t *testing.T) {
	t.Parallel()

	repo := &annotationTypeRepoMock{
		GetByParentIDFunc: func(ctx context.Context, parentID string) ([]*domain.AnnotationType, error) {
			return []*domain.AnnotationType{testAnnotationType(t, "at-1", "Tumor")}, nil
		},
	}
	s := NewAnnotationTypes(testLogger(), repo, 10)

	first, err := s.ByParent(context.Background(), "ws-1")
	require.NoError(t, err)
	second, err := s.ByParent(context.Background(), "ws-1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.parentCalls)
}

func TestAnnotationTypes_CreateInvalidatesParentCache(t *testing.T) {
	t.Parallel()

	repo := &annotationTypeRepoMock{
		GetByParentIDFunc: func(ctx context.Context, parentID string) ([]*domain.AnnotationType, error) {
			return []*domain.AnnotationType{testAnnotationType(t, "at-1", "Tumor")}, nil
		},
		CreateFunc: func(ctx context.Context, req annotationtype.CreateRequest) (*domain.AnnotationType, error) {
			return testAnnotationType(t, "at-2", req.Name), nil
		},
	}
	s := NewAnnotationTypes(testLogger(), repo, 10)

	_, err := s.ByParent(context.Background(), "ws-1")
	require.NoError(t, err)
	require.Equal(t, 1, repo.parentCalls)

	created, err := s.Create(context.Background(), annotationtype.CreateRequest{Name: "Grade", Type: "select", Options: []string{"G1", "G2"}})
	require.NoError(t, err)
	assert.Equal(t, "at-2", created.ID)

	// cache dropped: the next per-parent query goes back to the repo
	_, err = s.ByParent(context.Background(), "ws-1")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.parentCalls)
}

func TestAnnotationTypes_UpdateRefreshes(t *testing.T) {
	t.Parallel()

	repo := &annotationTypeRepoMock{
		ListFunc: func(ctx context.Context, page rest.Page, sort rest.Sort) ([]*domain.AnnotationType, rest.PageInfo, error) {
			return []*domain.AnnotationType{testAnnotationType(t, "at-1", "Old name")}, rest.PageInfo{}, nil
		},
		UpdateFunc: func(ctx context.Context, id string, req annotationtype.UpdateRequest) error { return nil },
		GetByIDFunc: func(ctx context.Context, id string) (*domain.AnnotationType, error) {
			return testAnnotationType(t, id, "New name"), nil
		},
	}
	s := NewAnnotationTypes(testLogger(), repo, 10)
	require.NoError(t, s.Load(context.Background()))

	name := "New name"
	fresh, err := s.Update(context.Background(), "at-1", annotationtype.UpdateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "New name", fresh.Name)
	assert.Equal(t, "New name", s.All()[0].Name)
}

func TestAnnotationTypes_BatchDelete(t *testing.T) {
	t.Parallel()

	repo := &annotationTypeRepoMock{
		ListFunc: func(ctx context.Context, page rest.Page, sort rest.Sort) ([]*domain.AnnotationType, rest.PageInfo, error) {
			return []*domain.AnnotationType{
				testAnnotationType(t, "at-1", "Tumor"),
				testAnnotationType(t, "at-2", "Necrosis"),
			}, rest.PageInfo{}, nil
		},
		BatchDeleteFunc: func(ctx context.Context, ids []string) error { return nil },
	}
	s := NewAnnotationTypes(testLogger(), repo, 10)
	require.NoError(t, s.Load(context.Background()))

	require.NoError(t, s.BatchDelete(context.Background(), []string{"at-1", "at-2"}))
	assert.Empty(t, s.All())
}

func TestAnnotationTypes_CountPassesThrough(t *testing.T) {
	t.Parallel()

	repo := &annotationTypeRepoMock{
		CountFunc: func(ctx context.Context) (int, error) { return 42, nil },
	}
	s := NewAnnotationTypes(testLogger(), repo, 10)

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, n)
}

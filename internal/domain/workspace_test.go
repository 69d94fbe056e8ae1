package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorkspace_SnakeCaseWins(t *testing.T) {
	t.Parallel()

	created := NewTimestamp(time.Date(2023, 1, 10, 9, 0, 0, 0, time.UTC))
	updated := NewTimestamp(time.Date(2023, 2, 20, 9, 0, 0, 0, time.UTC))

	ws, err := NewWorkspace(RawWorkspace{
		ID:               "ws-1",
		CreatorID:        "user-1",
		CreatorIDCamel:   "user-legacy",
		Name:             "TCGA lung cohort",
		OrganType:        "lung",
		OrganTypeCamel:   "brain",
		Organization:     "Example Hospital",
		License:          "CC-BY-4.0",
		ResourceURL:      "https://example.org/cohort",
		ResourceURLCamel: "https://legacy.example.org",
		ReleaseYear:      ptr(2021),
		ReleaseYearCamel: ptr(1999),
		AnnotationTypeIDs: []string{
			"at-1", "at-2",
		},
		AnnTypeIDsCamel: []string{"at-legacy"},
		CreatedAt:       &created,
		UpdatedAt:       &updated,
	})
	require.NoError(t, err)

	assert.Equal(t, "user-1", ws.CreatorID)
	assert.Equal(t, OrganTypeLung, ws.OrganType)
	assert.Equal(t, ptr("https://example.org/cohort"), ws.ResourceURL)
	assert.Equal(t, ptr(2021), ws.ReleaseYear)
	assert.Equal(t, []string{"at-1", "at-2"}, ws.AnnotationTypeIDs)
	assert.Equal(t, created.Time, ws.CreatedAt)
	assert.Equal(t, updated.Time, ws.UpdatedAt)
}

func TestNewWorkspace_CamelCaseFallback(t *testing.T) {
	t.Parallel()

	ws, err := NewWorkspace(RawWorkspace{
		ID:               "ws-2",
		CreatorIDCamel:   "user-legacy",
		Name:             "Legacy form",
		OrganTypeCamel:   "breast",
		ResourceURLCamel: "https://legacy.example.org",
		ReleaseYearCamel: ptr(2018),
		AnnTypeIDsCamel:  []string{"at-legacy"},
	})
	require.NoError(t, err)

	assert.Equal(t, "user-legacy", ws.CreatorID)
	assert.Equal(t, OrganTypeBreast, ws.OrganType)
	assert.Equal(t, ptr("https://legacy.example.org"), ws.ResourceURL)
	assert.Equal(t, ptr(2018), ws.ReleaseYear)
	assert.Equal(t, []string{"at-legacy"}, ws.AnnotationTypeIDs)
}

func TestNewWorkspace_InvalidOrgan(t *testing.T) {
	t.Parallel()

	_, err := NewWorkspace(RawWorkspace{ID: "ws-3", OrganType: "spine"})
	require.ErrorIs(t, err, ErrInvalidOrganType)

	_, err = NewWorkspace(RawWorkspace{ID: "ws-4"})
	require.ErrorIs(t, err, ErrInvalidOrganType)
}

func TestNewWorkspace_MissingUpdatedAtFallsBackToCreatedAt(t *testing.T) {
	t.Parallel()

	created := NewTimestamp(time.Date(2023, 1, 10, 9, 0, 0, 0, time.UTC))
	ws, err := NewWorkspace(RawWorkspace{ID: "ws-5", OrganType: "colon", CreatedAt: &created})
	require.NoError(t, err)

	assert.Equal(t, created.Time, ws.CreatedAt)
	assert.Equal(t, created.Time, ws.UpdatedAt)
}

func TestWorkspace_CanCreatePatient(t *testing.T) {
	t.Parallel()

	with, err := NewWorkspace(RawWorkspace{ID: "ws-6", OrganType: "liver", AnnotationTypeIDs: []string{"at-1"}})
	require.NoError(t, err)
	assert.True(t, with.CanCreatePatient())

	without, err := NewWorkspace(RawWorkspace{ID: "ws-7", OrganType: "liver"})
	require.NoError(t, err)
	assert.False(t, without.CanCreatePatient())
}

func TestWorkspace_ToRaw(t *testing.T) {
	t.Parallel()

	ws, err := NewWorkspace(RawWorkspace{
		ID:          "ws-8",
		CreatorID:   "user-1",
		Name:        "Round trip",
		OrganType:   "kidney",
		ResourceURL: "https://example.org",
	})
	require.NoError(t, err)

	raw := ws.ToRaw()
	assert.Equal(t, "kidney", raw.OrganType)
	assert.Empty(t, raw.OrganTypeCamel)
	assert.Equal(t, "https://example.org", raw.ResourceURL)
	assert.Empty(t, raw.ResourceURLCamel)

	again, err := NewWorkspace(raw)
	require.NoError(t, err)
	assert.Equal(t, ws, again)
}

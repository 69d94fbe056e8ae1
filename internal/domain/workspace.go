package domain

import (
	"fmt"
	"time"
)

// Workspace is a dataset grouping patients under a shared organ type,
// licensing, and the annotation-type schemas that apply inside it.
// Root-level in the current model: the parent is always the none placeholder.
type Workspace struct {
	ID                string
	CreatorID         string
	Parent            ParentRef
	Name              string
	OrganType         OrganType
	Organization      string
	Description       string
	License           string
	ResourceURL       *string
	ReleaseYear       *int
	AnnotationTypeIDs []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RawWorkspace mirrors the wire format. The legacy workspace form submitted
// camelCase keys; both spellings are accepted, snake_case winning when both
// are present.
type RawWorkspace struct {
	ID                string        `json:"id"`
	CreatorID         string        `json:"creator_id"`
	CreatorIDCamel    string        `json:"creatorId"`
	Parent            *RawParentRef `json:"parent"`
	Name              string        `json:"name"`
	OrganType         string        `json:"organ_type"`
	OrganTypeCamel    string        `json:"organType"`
	Organization      string        `json:"organization"`
	Description       string        `json:"description"`
	License           string        `json:"license"`
	ResourceURL       string        `json:"resource_url"`
	ResourceURLCamel  string        `json:"resourceUrl"`
	ReleaseYear       *int          `json:"release_year"`
	ReleaseYearCamel  *int          `json:"releaseYear"`
	AnnotationTypeIDs []string      `json:"annotation_type_ids"`
	AnnTypeIDsCamel   []string      `json:"annotationTypeIds"`
	CreatedAt         *Timestamp    `json:"created_at"`
	CreatedAtCamel    *Timestamp    `json:"createdAt"`
	UpdatedAt         *Timestamp    `json:"updated_at"`
	UpdatedAtCamel    *Timestamp    `json:"updatedAt"`
}

// NewWorkspace validates and normalizes a raw workspace record. The organ
// type must be one of the defined variants; anything else fails with
// ErrInvalidOrganType.
func NewWorkspace(raw RawWorkspace) (*Workspace, error) {
	rawOrgan := firstNonEmpty(raw.OrganType, raw.OrganTypeCamel)
	organ := OrganTypeFromString(rawOrgan)
	if !organ.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOrganType, rawOrgan)
	}

	typeIDs := raw.AnnotationTypeIDs
	if typeIDs == nil {
		typeIDs = raw.AnnTypeIDsCamel
	}

	releaseYear := raw.ReleaseYear
	if releaseYear == nil {
		releaseYear = raw.ReleaseYearCamel
	}

	createdAt, updatedAt := timestampPair(
		firstTimestamp(raw.CreatedAt, raw.CreatedAtCamel),
		firstTimestamp(raw.UpdatedAt, raw.UpdatedAtCamel),
	)

	return &Workspace{
		ID:                raw.ID,
		CreatorID:         firstNonEmpty(raw.CreatorID, raw.CreatorIDCamel),
		Parent:            NewParentRef(raw.Parent),
		Name:              raw.Name,
		OrganType:         organ,
		Organization:      raw.Organization,
		Description:       raw.Description,
		License:           raw.License,
		ResourceURL:       strOrNil(firstNonEmpty(raw.ResourceURL, raw.ResourceURLCamel)),
		ReleaseYear:       releaseYear,
		AnnotationTypeIDs: cloneStrings(typeIDs),
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}, nil
}

// CanCreatePatient reports whether the workspace is ready to hold patients:
// at least one annotation-type schema must apply.
func (w *Workspace) CanCreatePatient() bool {
	return len(w.AnnotationTypeIDs) > 0
}

// ToRaw serializes the workspace back to the canonical snake_case record.
func (w *Workspace) ToRaw() RawWorkspace {
	parent := w.Parent.ToRaw()
	raw := RawWorkspace{
		ID:                w.ID,
		CreatorID:         w.CreatorID,
		Parent:            &parent,
		Name:              w.Name,
		OrganType:         w.OrganType.String(),
		Organization:      w.Organization,
		Description:       w.Description,
		License:           w.License,
		ReleaseYear:       w.ReleaseYear,
		AnnotationTypeIDs: cloneStrings(w.AnnotationTypeIDs),
	}
	if w.ResourceURL != nil {
		raw.ResourceURL = *w.ResourceURL
	}
	if !w.CreatedAt.IsZero() {
		ts := NewTimestamp(w.CreatedAt)
		raw.CreatedAt = &ts
	}
	if !w.UpdatedAt.IsZero() {
		ts := NewTimestamp(w.UpdatedAt)
		raw.UpdatedAt = &ts
	}
	return raw
}

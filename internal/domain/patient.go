package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Patient is a case record grouping the whole-slide images of one subject.
// The parent reference is required: a patient always belongs to a workspace
// (or, historically, another container), and construction fails closed when
// the reference is absent or malformed.
type Patient struct {
	ID        string
	Parent    ParentRef
	CreatorID string
	Name      string

	// Demographics; all optional on the wire.
	Gender  *string
	Age     *int
	Race    *string
	Disease *string
	Subtype *string
	Grade   *string
	History *string

	// Metadata collects payload fields the client does not model, so they
	// survive a round trip untouched.
	Metadata map[string]any

	// Derived counters, recomputed after annotation saves.
	ImageCount          int
	AnnotatedImageCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RawPatient mirrors the wire format. Older endpoints flatten the parent to
// a bare workspace_id; the nested parent object wins when both are present.
type RawPatient struct {
	ID          string        `json:"id"`
	Parent      *RawParentRef `json:"parent"`
	WorkspaceID string        `json:"workspace_id"`
	CreatorID   string        `json:"creator_id"`
	Name        string        `json:"name"`
	Gender      string        `json:"gender"`
	Age         *int          `json:"age"`
	Race        string        `json:"race"`
	Disease     string        `json:"disease"`
	Subtype     string        `json:"subtype"`
	Grade       string        `json:"grade"`
	History     string        `json:"history"`
	ImageCount  int           `json:"image_count"`
	Annotated   int           `json:"annotated_image_count"`
	CreatedAt   *Timestamp    `json:"created_at"`
	UpdatedAt   *Timestamp    `json:"updated_at"`

	// Metadata holds every key not modeled above; populated by UnmarshalJSON.
	Metadata map[string]any `json:"-"`
}

// rawPatientKeys are the modeled wire keys, excluded from the metadata
// catch-all.
var rawPatientKeys = map[string]struct{}{
	"id": {}, "parent": {}, "workspace_id": {}, "creator_id": {}, "name": {},
	"gender": {}, "age": {}, "race": {}, "disease": {}, "subtype": {},
	"grade": {}, "history": {}, "image_count": {}, "annotated_image_count": {},
	"created_at": {}, "updated_at": {},
}

func (r *RawPatient) UnmarshalJSON(data []byte) error {
	type plain RawPatient
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var extra map[string]any
	if err := json.Unmarshal(data, &extra); err != nil {
		return err
	}
	for key := range rawPatientKeys {
		delete(extra, key)
	}
	p.Metadata = extra

	*r = RawPatient(p)
	return nil
}

// NewPatient validates and normalizes a raw patient record. A missing parent
// fails with ErrMissingParentRef; a parent that does not pass ParentRef
// validity fails with ErrInvalidParentRef.
func NewPatient(raw RawPatient) (*Patient, error) {
	parent, err := resolvePatientParent(raw)
	if err != nil {
		return nil, err
	}

	createdAt, updatedAt := timestampPair(raw.CreatedAt, raw.UpdatedAt)

	metadata := raw.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	return &Patient{
		ID:                  raw.ID,
		Parent:              parent,
		CreatorID:           raw.CreatorID,
		Name:                raw.Name,
		Gender:              strOrNil(raw.Gender),
		Age:                 raw.Age,
		Race:                strOrNil(raw.Race),
		Disease:             strOrNil(raw.Disease),
		Subtype:             strOrNil(raw.Subtype),
		Grade:               strOrNil(raw.Grade),
		History:             strOrNil(raw.History),
		Metadata:            metadata,
		ImageCount:          raw.ImageCount,
		AnnotatedImageCount: raw.Annotated,
		CreatedAt:           createdAt,
		UpdatedAt:           updatedAt,
	}, nil
}

func resolvePatientParent(raw RawPatient) (ParentRef, error) {
	if raw.Parent == nil {
		// Legacy flattened form.
		if raw.WorkspaceID != "" {
			return ParentRef{ID: raw.WorkspaceID, Type: ParentTypeWorkspace}, nil
		}
		return ParentRef{}, fmt.Errorf("patient %q: %w", raw.ID, ErrMissingParentRef)
	}
	parent := NewParentRef(raw.Parent)
	if !parent.IsValid() {
		return ParentRef{}, fmt.Errorf("patient %q: %w: %s", raw.ID, ErrInvalidParentRef, parent)
	}
	return parent, nil
}

// WorkspaceID is a narrowing alias for the parent id, empty when the parent
// is not a workspace.
func (p *Patient) WorkspaceID() string {
	if p.Parent.Is(ParentTypeWorkspace) {
		return p.Parent.ID
	}
	return ""
}

// WithAnnotationStats returns a copy with recomputed image counters. The
// patient itself stays immutable; callers replace the stored instance.
func (p *Patient) WithAnnotationStats(imageCount, annotatedImageCount int) *Patient {
	out := *p
	out.ImageCount = imageCount
	out.AnnotatedImageCount = annotatedImageCount
	return &out
}

// ToRaw serializes the patient back to the canonical snake_case record.
// Unmodeled metadata fields are not re-flattened; they ride along in the
// Metadata map.
func (p *Patient) ToRaw() RawPatient {
	parent := p.Parent.ToRaw()
	raw := RawPatient{
		ID:         p.ID,
		Parent:     &parent,
		CreatorID:  p.CreatorID,
		Name:       p.Name,
		Age:        p.Age,
		ImageCount: p.ImageCount,
		Annotated:  p.AnnotatedImageCount,
		Metadata:   p.Metadata,
	}
	if p.Gender != nil {
		raw.Gender = *p.Gender
	}
	if p.Race != nil {
		raw.Race = *p.Race
	}
	if p.Disease != nil {
		raw.Disease = *p.Disease
	}
	if p.Subtype != nil {
		raw.Subtype = *p.Subtype
	}
	if p.Grade != nil {
		raw.Grade = *p.Grade
	}
	if p.History != nil {
		raw.History = *p.History
	}
	if !p.CreatedAt.IsZero() {
		ts := NewTimestamp(p.CreatedAt)
		raw.CreatedAt = &ts
	}
	if !p.UpdatedAt.IsZero() {
		ts := NewTimestamp(p.UpdatedAt)
		raw.UpdatedAt = &ts
	}
	return raw
}

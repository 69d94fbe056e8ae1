package domain

import (
	"fmt"
	"time"
)

// annotationTypePlaceholderParentID is the literal id the web client has
// always stored for annotation-type parents.
const annotationTypePlaceholderParentID = "None"

// AnnotationType is a tag/label schema: its value type, allowed options,
// numeric bounds, and whether it applies globally or to one workspace.
type AnnotationType struct {
	ID          string
	Name        string
	Parent      ParentRef
	CreatorID   string
	Description *string
	Type        TagType
	Options     []string
	Global      bool
	Required    bool
	Min         *float64
	Max         *float64
	Color       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RawAnnotationType mirrors the wire format.
type RawAnnotationType struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Parent      *RawParentRef `json:"parent"`
	CreatorID   string        `json:"creator_id"`
	Description string        `json:"description"`
	Type        string        `json:"type"`
	Options     []string      `json:"options"`
	Global      bool          `json:"global"`
	Required    bool          `json:"required"`
	Min         *float64      `json:"min"`
	Max         *float64      `json:"max"`
	Color       string        `json:"color"`
	CreatedAt   *Timestamp    `json:"created_at"`
	UpdatedAt   *Timestamp    `json:"updated_at"`
}

// NewAnnotationType validates and normalizes a raw annotation-type record.
//
// The incoming parent is deliberately ignored: the stored reference is
// always the {"None", none} placeholder, matching what every existing
// record already carries. Honoring a real parent here would change what
// downstream comparisons observe.
func NewAnnotationType(raw RawAnnotationType) (*AnnotationType, error) {
	tagType := TagTypeText
	if raw.Type != "" {
		parsed, ok := TagTypeFromString(raw.Type)
		if !ok {
			return nil, fmt.Errorf("annotation type %q: %w: type %q", raw.ID, ErrValidation, raw.Type)
		}
		tagType = parsed
	}

	options := cloneStrings(raw.Options)
	if !tagType.HasOptions() {
		options = []string{}
	}

	createdAt, updatedAt := timestampPair(raw.CreatedAt, raw.UpdatedAt)

	return &AnnotationType{
		ID:          raw.ID,
		Name:        raw.Name,
		Parent:      ParentRef{ID: annotationTypePlaceholderParentID, Type: ParentTypeNone},
		CreatorID:   raw.CreatorID,
		Description: strOrNil(raw.Description),
		Type:        tagType,
		Options:     options,
		Global:      raw.Global,
		Required:    raw.Required,
		Min:         raw.Min,
		Max:         raw.Max,
		Color:       strOrNil(raw.Color),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// AllowsValue reports whether a raw select value is allowed by the schema.
// Non-select types always allow.
func (t *AnnotationType) AllowsValue(value string) bool {
	if !t.Type.HasOptions() {
		return true
	}
	for _, opt := range t.Options {
		if opt == value {
			return true
		}
	}
	return false
}

// InBounds reports whether a numeric value satisfies the min/max bounds.
// Non-number types always pass.
func (t *AnnotationType) InBounds(value float64) bool {
	if !t.Type.HasBounds() {
		return true
	}
	if t.Min != nil && value < *t.Min {
		return false
	}
	if t.Max != nil && value > *t.Max {
		return false
	}
	return true
}

// ToRaw serializes the annotation type back to the canonical record.
func (t *AnnotationType) ToRaw() RawAnnotationType {
	parent := t.Parent.ToRaw()
	raw := RawAnnotationType{
		ID:        t.ID,
		Name:      t.Name,
		Parent:    &parent,
		CreatorID: t.CreatorID,
		Type:      t.Type.String(),
		Options:   cloneStrings(t.Options),
		Global:    t.Global,
		Required:  t.Required,
		Min:       t.Min,
		Max:       t.Max,
	}
	if t.Description != nil {
		raw.Description = *t.Description
	}
	if t.Color != nil {
		raw.Color = *t.Color
	}
	if !t.CreatedAt.IsZero() {
		ts := NewTimestamp(t.CreatedAt)
		raw.CreatedAt = &ts
	}
	if !t.UpdatedAt.IsZero() {
		ts := NewTimestamp(t.UpdatedAt)
		raw.UpdatedAt = &ts
	}
	return raw
}

package domain

import (
	"fmt"
	"time"
)

// TagValue is one tag/value entry attached to an annotation. Value stays
// server-typed: a number, string, bool, or list depending on the tag type.
type TagValue struct {
	TagName string
	TagType TagType
	Value   any
}

// RawTagValue mirrors the wire shape of a tag entry.
type RawTagValue struct {
	TagName string `json:"tag_name"`
	TagType string `json:"tag_type"`
	Value   any    `json:"value"`
}

// Annotation is a polygon drawn on a whole-slide image, carrying the tag
// values its annotation-type schemas define.
type Annotation struct {
	ID          string
	Parent      ParentRef
	AnnotatorID string
	Polygon     []Point
	Data        []TagValue
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RawAnnotation mirrors the wire format. creator_id predates annotator_id
// and wins when both are present. A singular `tag` object is an older wire
// shape for a one-entry data list.
type RawAnnotation struct {
	ID          string        `json:"id"`
	Parent      *RawParentRef `json:"parent"`
	CreatorID   string        `json:"creator_id"`
	AnnotatorID string        `json:"annotator_id"`
	Polygon     []RawPoint    `json:"polygon"`
	Data        []RawTagValue `json:"data"`
	Tag         *RawTagValue  `json:"tag"`
	Description string        `json:"description"`
	CreatedAt   *Timestamp    `json:"created_at"`
	UpdatedAt   *Timestamp    `json:"updated_at"`
}

// NewAnnotation validates and normalizes a raw annotation record. Polygon
// vertices go through the Point constructor, so non-finite coordinates fail
// with ErrInvalidCoordinates.
func NewAnnotation(raw RawAnnotation) (*Annotation, error) {
	polygon, err := NewPolygon(raw.Polygon)
	if err != nil {
		return nil, fmt.Errorf("annotation %q: %w", raw.ID, err)
	}

	data := make([]TagValue, 0, len(raw.Data)+1)
	for _, rt := range raw.Data {
		data = append(data, newTagValue(rt))
	}
	// The singular tag shape collapses into the data list.
	if raw.Tag != nil {
		data = append(data, newTagValue(*raw.Tag))
	}

	createdAt, updatedAt := timestampPair(raw.CreatedAt, raw.UpdatedAt)

	return &Annotation{
		ID:          raw.ID,
		Parent:      NewParentRef(raw.Parent),
		AnnotatorID: firstNonEmpty(raw.CreatorID, raw.AnnotatorID),
		Polygon:     polygon,
		Data:        data,
		Description: strOrNil(raw.Description),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func newTagValue(raw RawTagValue) TagValue {
	tagType, _ := TagTypeFromString(raw.TagType)
	return TagValue{TagName: raw.TagName, TagType: tagType, Value: raw.Value}
}

// ImageID narrows the parent reference to an image id: the parent id when
// the parent is an image, else the empty string. A projection, not a stored
// field.
func (a *Annotation) ImageID() string {
	if a.Parent.Is(ParentTypeImage) {
		return a.Parent.ID
	}
	return ""
}

// WithPolygon returns a copy carrying the given polygon. The polygon is
// cloned; the original annotation is untouched.
func (a *Annotation) WithPolygon(polygon []Point) *Annotation {
	out := *a
	out.Polygon = ClonePolygon(polygon)
	return &out
}

// ToRaw serializes the annotation back to the canonical record. The polygon
// is re-serialized point by point, never by aliasing internal state.
func (a *Annotation) ToRaw() RawAnnotation {
	parent := a.Parent.ToRaw()
	data := make([]RawTagValue, 0, len(a.Data))
	for _, tv := range a.Data {
		data = append(data, RawTagValue{
			TagName: tv.TagName,
			TagType: tv.TagType.String(),
			Value:   tv.Value,
		})
	}
	raw := RawAnnotation{
		ID:        a.ID,
		Parent:    &parent,
		CreatorID: a.AnnotatorID,
		Polygon:   PolygonToRaw(a.Polygon),
		Data:      data,
	}
	if a.Description != nil {
		raw.Description = *a.Description
	}
	if !a.CreatedAt.IsZero() {
		ts := NewTimestamp(a.CreatedAt)
		raw.CreatedAt = &ts
	}
	if !a.UpdatedAt.IsZero() {
		ts := NewTimestamp(a.UpdatedAt)
		raw.UpdatedAt = &ts
	}
	return raw
}

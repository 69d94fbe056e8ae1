package domain

import (
	"fmt"
	"time"
)

// Image is a whole-slide image belonging to a patient. Processing state is
// owned by the backend; the client only classifies it.
type Image struct {
	ID            string
	PatientID     string
	CreatorID     string
	Name          string
	Format        string
	Width         *int
	Height        *int
	Status        ImageStatus
	Magnification *Magnification
	OriginPath    *string
	ProcessedPath *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RawImage mirrors the wire format.
type RawImage struct {
	ID            string     `json:"id"`
	PatientID     string     `json:"patient_id"`
	CreatorID     string     `json:"creator_id"`
	Name          string     `json:"name"`
	Format        string     `json:"format"`
	Width         *int       `json:"width"`
	Height        *int       `json:"height"`
	Status        string     `json:"status"`
	Magnification *int       `json:"magnification"`
	OriginPath    string     `json:"originpath"`
	ProcessedPath string     `json:"processedpath"`
	CreatedAt     *Timestamp `json:"created_at"`
	UpdatedAt     *Timestamp `json:"updated_at"`
}

// NewImage validates and normalizes a raw image record. An unrecognized
// status fails with ErrInvalidImageStatus; a missing status defaults to
// UPLOADED (the state every image starts in).
func NewImage(raw RawImage) (*Image, error) {
	status := ImageStatusUploaded
	if raw.Status != "" {
		parsed, err := ParseImageStatus(raw.Status)
		if err != nil {
			return nil, fmt.Errorf("image %q: %w", raw.ID, err)
		}
		status = parsed
	}

	var magnification *Magnification
	if raw.Magnification != nil {
		m := Magnification(*raw.Magnification)
		if !m.IsValid() {
			return nil, fmt.Errorf("image %q: %w: magnification %d", raw.ID, ErrValidation, *raw.Magnification)
		}
		magnification = &m
	}

	createdAt, updatedAt := timestampPair(raw.CreatedAt, raw.UpdatedAt)

	return &Image{
		ID:            raw.ID,
		PatientID:     raw.PatientID,
		CreatorID:     raw.CreatorID,
		Name:          raw.Name,
		Format:        raw.Format,
		Width:         raw.Width,
		Height:        raw.Height,
		Status:        status,
		Magnification: magnification,
		OriginPath:    strOrNil(raw.OriginPath),
		ProcessedPath: strOrNil(raw.ProcessedPath),
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}, nil
}

// IsProcessed reports whether the image can be viewed and annotated.
func (i *Image) IsProcessed() bool {
	return i.Status.IsProcessed()
}

// ContentType infers the content classification from the image name.
func (i *Image) ContentType() ContentType {
	return ContentTypeFromFilename(i.Name)
}

// ToRaw serializes the image back to the canonical snake_case record.
func (i *Image) ToRaw() RawImage {
	raw := RawImage{
		ID:        i.ID,
		PatientID: i.PatientID,
		CreatorID: i.CreatorID,
		Name:      i.Name,
		Format:    i.Format,
		Width:     i.Width,
		Height:    i.Height,
		Status:    i.Status.String(),
	}
	if i.Magnification != nil {
		m := int(*i.Magnification)
		raw.Magnification = &m
	}
	if i.OriginPath != nil {
		raw.OriginPath = *i.OriginPath
	}
	if i.ProcessedPath != nil {
		raw.ProcessedPath = *i.ProcessedPath
	}
	if !i.CreatedAt.IsZero() {
		ts := NewTimestamp(i.CreatedAt)
		raw.CreatedAt = &ts
	}
	if !i.UpdatedAt.IsZero() {
		ts := NewTimestamp(i.UpdatedAt)
		raw.UpdatedAt = &ts
	}
	return raw
}

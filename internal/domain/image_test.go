package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewImage_StatusDefaultsToUploaded(t *testing.T) {
	t.Parallel()

	img, err := NewImage(RawImage{ID: "img-1", PatientID: "p-1", Name: "slide.svs"})
	require.NoError(t, err)
	assert.Equal(t, ImageStatusUploaded, img.Status)
	assert.False(t, img.IsProcessed())
}

func TestNewImage_InvalidStatus(t *testing.T) {
	t.Parallel()

	_, err := NewImage(RawImage{ID: "img-2", Status: "uploaded"})
	require.ErrorIs(t, err, ErrInvalidImageStatus)
}

func TestNewImage_MagnificationValidated(t *testing.T) {
	t.Parallel()

	img, err := NewImage(RawImage{ID: "img-3", Magnification: ptr(40)})
	require.NoError(t, err)
	require.NotNil(t, img.Magnification)
	assert.Equal(t, Magnification40x, *img.Magnification)

	_, err = NewImage(RawImage{ID: "img-4", Magnification: ptr(25)})
	require.ErrorIs(t, err, ErrValidation)

	img, err = NewImage(RawImage{ID: "img-5"})
	require.NoError(t, err)
	assert.Nil(t, img.Magnification)
}

func TestImage_ContentTypeFromName(t *testing.T) {
	t.Parallel()

	img, err := NewImage(RawImage{ID: "img-6", Name: "case_001.ndpi"})
	require.NoError(t, err)
	assert.Equal(t, ContentTypeWSI, img.ContentType())
}

func TestImage_ToRaw(t *testing.T) {
	t.Parallel()

	img, err := NewImage(RawImage{
		ID:            "img-7",
		PatientID:     "p-1",
		Name:          "slide.svs",
		Format:        "svs",
		Status:        "PROCESSED",
		Magnification: ptr(20),
		OriginPath:    "/uploads/slide.svs",
	})
	require.NoError(t, err)

	raw := img.ToRaw()
	assert.Equal(t, "PROCESSED", raw.Status)
	assert.Equal(t, ptr(20), raw.Magnification)
	assert.Equal(t, "/uploads/slide.svs", raw.OriginPath)
	assert.Empty(t, raw.ProcessedPath)

	again, err := NewImage(raw)
	require.NoError(t, err)
	assert.Equal(t, img, again)
}

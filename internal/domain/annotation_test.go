package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRawAnnotation() RawAnnotation {
	return RawAnnotation{
		ID:     "ann-1",
		Parent: &RawParentRef{ID: "img-1", Type: "image"},
		Polygon: []RawPoint{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10},
		},
		Data: []RawTagValue{
			{TagName: "Grade", TagType: "select", Value: "G2"},
		},
	}
}

func TestNewAnnotation_CreatorIDWins(t *testing.T) {
	t.Parallel()

	raw := testRawAnnotation()
	raw.CreatorID = "user-new"
	raw.AnnotatorID = "user-old"

	ann, err := NewAnnotation(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-new", ann.AnnotatorID)

	raw.CreatorID = ""
	ann, err = NewAnnotation(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-old", ann.AnnotatorID)
}

func TestNewAnnotation_SingularTagCollapses(t *testing.T) {
	t.Parallel()

	raw := testRawAnnotation()
	raw.Tag = &RawTagValue{TagName: "Notes", TagType: "text", Value: "mitotic figures"}

	ann, err := NewAnnotation(raw)
	require.NoError(t, err)
	require.Len(t, ann.Data, 2)
	assert.Equal(t, "Grade", ann.Data[0].TagName)
	assert.Equal(t, TagValue{TagName: "Notes", TagType: TagTypeText, Value: "mitotic figures"}, ann.Data[1])
}

func TestNewAnnotation_InvalidPolygon(t *testing.T) {
	t.Parallel()

	raw := testRawAnnotation()
	raw.Polygon = []RawPoint{{X: 0, Y: 0}, {X: math.Inf(1), Y: 0}}

	_, err := NewAnnotation(raw)
	require.ErrorIs(t, err, ErrInvalidCoordinates)
}

func TestAnnotation_ImageIDProjection(t *testing.T) {
	t.Parallel()

	ann, err := NewAnnotation(testRawAnnotation())
	require.NoError(t, err)
	assert.Equal(t, "img-1", ann.ImageID())

	raw := testRawAnnotation()
	raw.Parent = &RawParentRef{ID: "p-1", Type: "patient"}
	ann, err = NewAnnotation(raw)
	require.NoError(t, err)
	assert.Empty(t, ann.ImageID())
}

func TestAnnotation_WithPolygonClones(t *testing.T) {
	t.Parallel()

	ann, err := NewAnnotation(testRawAnnotation())
	require.NoError(t, err)

	replacement, err := NewPolygon([]RawPoint{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 2, Y: 2}})
	require.NoError(t, err)

	edited := ann.WithPolygon(replacement)
	assert.Equal(t, replacement, edited.Polygon)
	assert.Equal(t, 0.0, ann.Polygon[0].X())

	p, err := NewPoint(500, 500)
	require.NoError(t, err)
	replacement[0] = p
	assert.Equal(t, 1.0, edited.Polygon[0].X())
}

func TestAnnotation_ToRaw(t *testing.T) {
	t.Parallel()

	raw := testRawAnnotation()
	raw.AnnotatorID = "user-1"
	raw.Description = "tumor margin"

	ann, err := NewAnnotation(raw)
	require.NoError(t, err)

	out := ann.ToRaw()
	assert.Equal(t, "user-1", out.CreatorID)
	assert.Equal(t, raw.Polygon, out.Polygon)
	assert.Equal(t, "tumor margin", out.Description)
	assert.Nil(t, out.Tag)
}

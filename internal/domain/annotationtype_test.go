package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnnotationType_ParentAlwaysPlaceholder(t *testing.T) {
	t.Parallel()

	placeholder := ParentRef{ID: "None", Type: ParentTypeNone}

	tests := []struct {
		name   string
		parent *RawParentRef
	}{
		{"absent parent", nil},
		{"placeholder parent", &RawParentRef{ID: "None", Type: "none"}},
		{"real workspace parent", &RawParentRef{ID: "ws-1", Type: "workspace"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			at, err := NewAnnotationType(RawAnnotationType{ID: "at-1", Name: "Tumor", Parent: tt.parent})
			require.NoError(t, err)
			assert.Equal(t, placeholder, at.Parent)
		})
	}
}

func TestNewAnnotationType_TypeDefaultsToText(t *testing.T) {
	t.Parallel()

	at, err := NewAnnotationType(RawAnnotationType{ID: "at-2", Name: "Notes"})
	require.NoError(t, err)
	assert.Equal(t, TagTypeText, at.Type)

	_, err = NewAnnotationType(RawAnnotationType{ID: "at-3", Type: "polygon"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestNewAnnotationType_OptionsClearedForNonSelect(t *testing.T) {
	t.Parallel()

	at, err := NewAnnotationType(RawAnnotationType{
		ID:      "at-4",
		Type:    "number",
		Options: []string{"low", "high"},
	})
	require.NoError(t, err)
	assert.Empty(t, at.Options)

	at, err = NewAnnotationType(RawAnnotationType{
		ID:      "at-5",
		Type:    "select",
		Options: []string{"G1", "G2", "G3"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"G1", "G2", "G3"}, at.Options)
}

func TestAnnotationType_AllowsValue(t *testing.T) {
	t.Parallel()

	sel, err := NewAnnotationType(RawAnnotationType{
		ID:      "at-6",
		Type:    "select",
		Options: []string{"G1", "G2"},
	})
	require.NoError(t, err)
	assert.True(t, sel.AllowsValue("G1"))
	assert.False(t, sel.AllowsValue("G3"))

	text, err := NewAnnotationType(RawAnnotationType{ID: "at-7", Type: "text"})
	require.NoError(t, err)
	assert.True(t, text.AllowsValue("anything"))
}

func TestAnnotationType_InBounds(t *testing.T) {
	t.Parallel()

	num, err := NewAnnotationType(RawAnnotationType{
		ID:   "at-8",
		Type: "number",
		Min:  ptr(0.0),
		Max:  ptr(100.0),
	})
	require.NoError(t, err)
	assert.True(t, num.InBounds(50))
	assert.True(t, num.InBounds(0))
	assert.True(t, num.InBounds(100))
	assert.False(t, num.InBounds(-1))
	assert.False(t, num.InBounds(101))

	open, err := NewAnnotationType(RawAnnotationType{ID: "at-9", Type: "number"})
	require.NoError(t, err)
	assert.True(t, open.InBounds(1e9))

	text, err := NewAnnotationType(RawAnnotationType{ID: "at-10", Type: "text"})
	require.NoError(t, err)
	assert.True(t, text.InBounds(-1e9))
}

func TestAnnotationType_ToRawKeepsPlaceholder(t *testing.T) {
	t.Parallel()

	at, err := NewAnnotationType(RawAnnotationType{
		ID:     "at-11",
		Name:   "Grade",
		Parent: &RawParentRef{ID: "ws-1", Type: "workspace"},
		Type:   "select",
		Color:  "#ff0000",
	})
	require.NoError(t, err)

	raw := at.ToRaw()
	require.NotNil(t, raw.Parent)
	assert.Equal(t, RawParentRef{ID: "None", Type: "none"}, *raw.Parent)
	assert.Equal(t, "#ff0000", raw.Color)
}

package domain

import "strconv"

// EntityType identifies the kind of domain entity.
type EntityType string

const (
	EntityTypeWorkspace      EntityType = "workspace"
	EntityTypePatient        EntityType = "patient"
	EntityTypeImage          EntityType = "image"
	EntityTypeAnnotation     EntityType = "annotation"
	EntityTypeAnnotationType EntityType = "annotation_type"
	EntityTypeUser           EntityType = "user"
	EntityTypeSession        EntityType = "session"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeWorkspace, EntityTypePatient, EntityTypeImage,
		EntityTypeAnnotation, EntityTypeAnnotationType, EntityTypeUser, EntityTypeSession:
		return true
	}
	return false
}

// EntityTypeFromString parses a raw entity-type string. Unrecognized input
// returns the zero value and false.
func EntityTypeFromString(raw string) (EntityType, bool) {
	e := EntityType(raw)
	return e, e.IsValid()
}

// ParentType identifies the kind of entity a ParentRef points at.
type ParentType string

const (
	ParentTypeNone           ParentType = "none"
	ParentTypeWorkspace      ParentType = "workspace"
	ParentTypePatient        ParentType = "patient"
	ParentTypeImage          ParentType = "image"
	ParentTypeAnnotationType ParentType = "annotation_type"
	ParentTypeAnnotation     ParentType = "annotation"
	ParentTypeContent        ParentType = "content"
)

func (p ParentType) String() string { return string(p) }

func (p ParentType) IsValid() bool {
	switch p {
	case ParentTypeNone, ParentTypeWorkspace, ParentTypePatient, ParentTypeImage,
		ParentTypeAnnotationType, ParentTypeAnnotation, ParentTypeContent:
		return true
	}
	return false
}

// ParentTypeFromString parses a raw parent-type string. Unrecognized input
// falls back to ParentTypeNone rather than failing; malformed parents are
// caught by ParentRef validity checks, not here.
func ParentTypeFromString(raw string) ParentType {
	if p := ParentType(raw); p.IsValid() {
		return p
	}
	return ParentTypeNone
}

// AllParentTypes returns every parent type in declaration order.
func AllParentTypes() []ParentType {
	return []ParentType{
		ParentTypeNone, ParentTypeWorkspace, ParentTypePatient, ParentTypeImage,
		ParentTypeAnnotationType, ParentTypeAnnotation, ParentTypeContent,
	}
}

// TagType is the value type of an annotation-type schema.
type TagType string

const (
	TagTypeNumber      TagType = "number"
	TagTypeText        TagType = "text"
	TagTypeBoolean     TagType = "boolean"
	TagTypeSelect      TagType = "select"
	TagTypeMultiSelect TagType = "multi_select"
)

func (t TagType) String() string { return string(t) }

func (t TagType) IsValid() bool {
	switch t {
	case TagTypeNumber, TagTypeText, TagTypeBoolean, TagTypeSelect, TagTypeMultiSelect:
		return true
	}
	return false
}

// TagTypeFromString parses a raw tag-type string. Unrecognized input returns
// the zero value and false.
func TagTypeFromString(raw string) (TagType, bool) {
	t := TagType(raw)
	return t, t.IsValid()
}

// HasOptions reports whether the tag type carries an options list.
func (t TagType) HasOptions() bool {
	return t == TagTypeSelect || t == TagTypeMultiSelect
}

// HasBounds reports whether the tag type carries min/max bounds.
func (t TagType) HasBounds() bool {
	return t == TagTypeNumber
}

// AllTagTypes returns every tag type in declaration order.
func AllTagTypes() []TagType {
	return []TagType{TagTypeNumber, TagTypeText, TagTypeBoolean, TagTypeSelect, TagTypeMultiSelect}
}

// ContentProvider identifies where image content is served from.
type ContentProvider string

const (
	ContentProviderUpload ContentProvider = "upload"
	ContentProviderS3     ContentProvider = "s3"
	ContentProviderURL    ContentProvider = "url"
)

func (p ContentProvider) String() string { return string(p) }

func (p ContentProvider) IsValid() bool {
	switch p {
	case ContentProviderUpload, ContentProviderS3, ContentProviderURL:
		return true
	}
	return false
}

// ContentProviderFromString parses a raw provider string. Unrecognized input
// returns the zero value and false.
func ContentProviderFromString(raw string) (ContentProvider, bool) {
	p := ContentProvider(raw)
	return p, p.IsValid()
}

// Magnification is an optical objective magnification for a slide scan.
type Magnification int

const (
	Magnification2x   Magnification = 2
	Magnification4x   Magnification = 4
	Magnification10x  Magnification = 10
	Magnification20x  Magnification = 20
	Magnification40x  Magnification = 40
	Magnification100x Magnification = 100
)

func (m Magnification) IsValid() bool {
	switch m {
	case Magnification2x, Magnification4x, Magnification10x,
		Magnification20x, Magnification40x, Magnification100x:
		return true
	}
	return false
}

// Label returns the display form, e.g. "40x".
func (m Magnification) Label() string {
	return strconv.Itoa(int(m)) + "x"
}

// AllMagnifications returns every magnification in ascending order.
func AllMagnifications() []Magnification {
	return []Magnification{
		Magnification2x, Magnification4x, Magnification10x,
		Magnification20x, Magnification40x, Magnification100x,
	}
}

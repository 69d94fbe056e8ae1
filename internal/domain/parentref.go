package domain

import "fmt"

// ParentRef is a typed polymorphic pointer naming the owning entity of a
// child record. It is a lookup key, never a live reference: resolving it is
// always a collection or repository lookup.
type ParentRef struct {
	ID   string
	Type ParentType
}

// NoParent is the placeholder reference for root-level entities.
func NoParent() ParentRef {
	return ParentRef{ID: "", Type: ParentTypeNone}
}

// IsValid reports whether the ref actually names an owner: both id and type
// must be non-empty and the type must not be the none sentinel.
func (r ParentRef) IsValid() bool {
	return r.ID != "" && r.Type != "" && r.Type != ParentTypeNone
}

// IsNone reports whether the ref is the root-level placeholder.
func (r ParentRef) IsNone() bool {
	return r.Type == ParentTypeNone || r.Type == ""
}

// Is reports whether the ref names a parent of the given kind.
func (r ParentRef) Is(t ParentType) bool {
	return r.IsValid() && r.Type == t
}

func (r ParentRef) String() string {
	return fmt.Sprintf("%s/%s", r.Type, r.ID)
}

// RawParentRef mirrors the wire shape of a parent reference.
type RawParentRef struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// NewParentRef builds a ParentRef from its wire shape. A nil raw yields the
// none placeholder; an unrecognized type string degrades to none and is then
// rejected by validity checks in factories that require a real parent.
func NewParentRef(raw *RawParentRef) ParentRef {
	if raw == nil {
		return NoParent()
	}
	return ParentRef{ID: raw.ID, Type: ParentTypeFromString(raw.Type)}
}

// ToRaw serializes the ref back to its wire shape.
func (r ParentRef) ToRaw() RawParentRef {
	return RawParentRef{ID: r.ID, Type: r.Type.String()}
}

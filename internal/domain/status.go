package domain

import "fmt"

// ImageStatus is the server-driven processing state of a whole-slide image.
// The client only classifies the current state; transitions happen backend-side:
// UPLOADED → PROCESSING → PROCESSED | FAILED.
type ImageStatus string

const (
	ImageStatusUploaded   ImageStatus = "UPLOADED"
	ImageStatusProcessing ImageStatus = "PROCESSING"
	ImageStatusProcessed  ImageStatus = "PROCESSED"
	ImageStatusFailed     ImageStatus = "FAILED"
)

func (s ImageStatus) String() string { return string(s) }

func (s ImageStatus) IsValid() bool {
	switch s {
	case ImageStatusUploaded, ImageStatusProcessing, ImageStatusProcessed, ImageStatusFailed:
		return true
	}
	return false
}

// ParseImageStatus fails with ErrInvalidImageStatus on anything outside the
// closed set.
func ParseImageStatus(raw string) (ImageStatus, error) {
	s := ImageStatus(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidImageStatus, raw)
	}
	return s, nil
}

// IsProcessed reports whether the image is ready for viewing and annotation.
func (s ImageStatus) IsProcessed() bool { return s == ImageStatusProcessed }

// IsTerminal reports whether the backend will not move the image further.
func (s ImageStatus) IsTerminal() bool {
	return s == ImageStatusProcessed || s == ImageStatusFailed
}

// CanRetry reports whether re-processing may be requested. Only FAILED
// signals retry.
func (s ImageStatus) CanRetry() bool { return s == ImageStatusFailed }

// Label returns the locale-ready display string. Total over the enum.
func (s ImageStatus) Label() string {
	switch s {
	case ImageStatusUploaded:
		return "Uploaded"
	case ImageStatusProcessing:
		return "Processing"
	case ImageStatusProcessed:
		return "Processed"
	case ImageStatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// StyleClass returns the UI style class for the status badge.
func (s ImageStatus) StyleClass() string {
	switch s {
	case ImageStatusUploaded:
		return "status-neutral"
	case ImageStatusProcessing:
		return "status-pending"
	case ImageStatusProcessed:
		return "status-success"
	case ImageStatusFailed:
		return "status-error"
	default:
		return "status-neutral"
	}
}

// UserStatus is the account state of a platform user.
type UserStatus string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
)

// userStatusLegacySuspended is the pre-migration wire value for suspended
// accounts. It is accepted on input and never produced on output.
const userStatusLegacySuspended = "deactivated"

func (s UserStatus) String() string { return string(s) }

func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusPending, UserStatusActive, UserStatusSuspended:
		return true
	}
	return false
}

// ParseUserStatus maps the legacy "deactivated" value onto suspended and
// fails with ErrInvalidUserStatus on anything else outside the closed set.
func ParseUserStatus(raw string) (UserStatus, error) {
	if raw == userStatusLegacySuspended {
		return UserStatusSuspended, nil
	}
	s := UserStatus(raw)
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidUserStatus, raw)
	}
	return s, nil
}

func (s UserStatus) IsActive() bool    { return s == UserStatusActive }
func (s UserStatus) IsPending() bool   { return s == UserStatusPending }
func (s UserStatus) IsSuspended() bool { return s == UserStatusSuspended }

// Label returns the locale-ready display string. Total over the enum.
func (s UserStatus) Label() string {
	switch s {
	case UserStatusPending:
		return "Pending approval"
	case UserStatusActive:
		return "Active"
	case UserStatusSuspended:
		return "Suspended"
	default:
		return "Unknown"
	}
}

// StyleClass returns the UI style class for the status badge.
func (s UserStatus) StyleClass() string {
	switch s {
	case UserStatusPending:
		return "status-pending"
	case UserStatusActive:
		return "status-success"
	case UserStatusSuspended:
		return "status-error"
	default:
		return "status-neutral"
	}
}

// UserRole is the authorization level of a platform user.
type UserRole string

const (
	UserRoleAdmin      UserRole = "admin"
	UserRoleUser       UserRole = "user"
	UserRoleViewer     UserRole = "viewer"
	UserRoleUnassigned UserRole = "unassigned"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleUser, UserRoleViewer, UserRoleUnassigned:
		return true
	}
	return false
}

// ParseUserRole fails with ErrInvalidUserRole on anything outside the
// closed set.
func ParseUserRole(raw string) (UserRole, error) {
	r := UserRole(raw)
	if !r.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidUserRole, raw)
	}
	return r, nil
}

func (r UserRole) IsAdmin() bool { return r == UserRoleAdmin }

// Label returns the locale-ready display string. Total over the enum.
func (r UserRole) Label() string {
	switch r {
	case UserRoleAdmin:
		return "Administrator"
	case UserRoleUser:
		return "Annotator"
	case UserRoleViewer:
		return "Viewer"
	case UserRoleUnassigned:
		return "Unassigned"
	default:
		return "Unknown"
	}
}

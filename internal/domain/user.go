package domain

import (
	"fmt"
	"time"
)

// User is a platform account. The user endpoint is the one strictly
// snake_case contract in the API; no aliases are accepted.
type User struct {
	UserID        string
	Email         string
	DisplayName   string
	Status        UserStatus
	Role          UserRole
	AdminApproved bool
	ApprovalDate  *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RawUser mirrors the wire format.
type RawUser struct {
	UserID        string     `json:"user_id"`
	Email         string     `json:"email"`
	DisplayName   string     `json:"display_name"`
	Status        string     `json:"status"`
	Role          string     `json:"role"`
	AdminApproved bool       `json:"admin_approved"`
	ApprovalDate  *Timestamp `json:"approval_date"`
	CreatedAt     *Timestamp `json:"created_at"`
	UpdatedAt     *Timestamp `json:"updated_at"`
}

// NewUser validates and normalizes a raw user record. Status and role are
// strict closed-set parses, except the legacy "deactivated" status which
// maps onto suspended. A missing role defaults to unassigned.
func NewUser(raw RawUser) (*User, error) {
	status := UserStatusPending
	if raw.Status != "" {
		parsed, err := ParseUserStatus(raw.Status)
		if err != nil {
			return nil, fmt.Errorf("user %q: %w", raw.UserID, err)
		}
		status = parsed
	}

	role := UserRoleUnassigned
	if raw.Role != "" {
		parsed, err := ParseUserRole(raw.Role)
		if err != nil {
			return nil, fmt.Errorf("user %q: %w", raw.UserID, err)
		}
		role = parsed
	}

	var approvalDate *time.Time
	if raw.ApprovalDate != nil && !raw.ApprovalDate.IsZero() {
		t := raw.ApprovalDate.Time
		approvalDate = &t
	}

	createdAt, updatedAt := timestampPair(raw.CreatedAt, raw.UpdatedAt)

	return &User{
		UserID:        raw.UserID,
		Email:         raw.Email,
		DisplayName:   raw.DisplayName,
		Status:        status,
		Role:          role,
		AdminApproved: raw.AdminApproved,
		ApprovalDate:  approvalDate,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}, nil
}

// CanAccessSystem reports whether the user may use the platform: an active
// status alone is not enough, the admin must also have approved the account.
func (u *User) CanAccessSystem() bool {
	return u.Status.IsActive() && u.AdminApproved
}

// NeedsApproval reports whether the account is waiting on an admin.
func (u *User) NeedsApproval() bool {
	return u.Status.IsPending() && !u.AdminApproved
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role.IsAdmin()
}

// ToRaw serializes the user back to the canonical snake_case record. The
// legacy "deactivated" status value is never produced.
func (u *User) ToRaw() RawUser {
	raw := RawUser{
		UserID:        u.UserID,
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		Status:        u.Status.String(),
		Role:          u.Role.String(),
		AdminApproved: u.AdminApproved,
	}
	if u.ApprovalDate != nil {
		ts := NewTimestamp(*u.ApprovalDate)
		raw.ApprovalDate = &ts
	}
	if !u.CreatedAt.IsZero() {
		ts := NewTimestamp(u.CreatedAt)
		raw.CreatedAt = &ts
	}
	if !u.UpdatedAt.IsZero() {
		ts := NewTimestamp(u.UpdatedAt)
		raw.UpdatedAt = &ts
	}
	return raw
}

// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Role is the flat access role assigned to a user.
type Role string

const (
	// RoleUser is the default role for self-registered accounts.
	RoleUser Role = "user"

	// RoleAdmin grants access to administrative endpoints.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered user in the system.
// It contains authentication credentials and metadata for user management.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey" json:"id"`

	// Name is the user's display name.
	Name string `gorm:"size:50;not null" json:"name"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users and is stored lower-cased.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`

	// Password is the bcrypt hash for the user.
	// This should never store plaintext passwords and is never serialized.
	Password string `gorm:"size:255;not null" json:"-"`

	// Role controls access to role-guarded endpoints.
	Role Role `gorm:"size:16;not null;default:user" json:"role"`

	// Active is false for deactivated (soft-deleted) accounts.
	// The auth middleware rejects deactivated accounts on every request.
	Active bool `gorm:"not null;default:true" json:"active"`

	// Avatar is an optional URL to the user's avatar image.
	Avatar string `gorm:"size:512" json:"avatar,omitempty"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}

package dto

import (
	"time"

	"taskhub_backend/internal/feature/auth/domain/entity"
)

// UserItem is the outward-facing projection of a user.
// The password hash is structurally absent, not merely tagged away.
type UserItem struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUserItem maps a domain user to its response projection.
func NewUserItem(u *entity.User) UserItem {
	return UserItem{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Active:    u.Active,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// AuthResp is returned by /signup and /login: the sanitized user plus a
// freshly issued bearer token.
type AuthResp struct {
	User  UserItem `json:"user"`
	Token string   `json:"token"`
}

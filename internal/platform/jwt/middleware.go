package jwtmw

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskhub_backend/internal/feature/auth/domain/entity"
	authusecase "taskhub_backend/internal/feature/auth/usecase"
)

// ContextIdentity is the context key under which the authenticated identity is stored.
const ContextIdentity = "identity"

// Identity is the request-scoped view of the authenticated user that is
// attached to the Gin context. It never carries the password hash.
type Identity struct {
	ID     uint        `json:"id"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   entity.Role `json:"role"`
	Active bool        `json:"active"`
}

// TokenVerifier verifies a bearer token and returns its claims.
// Following Go convention: interfaces are defined by the consumer (middleware), not the provider (Service).
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// UserLoader loads the user bound to a verified token subject.
// Loading on every request guards against tokens outliving account deletion
// or deactivation.
type UserLoader interface {
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// IdentityFrom extracts the authenticated identity attached by AuthRequired.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// AuthRequired returns a Gin middleware function that validates bearer tokens
// and restricts access to active, existing users.
// Checks run in order and short-circuit on the first failure:
// missing token, token verification, user lookup, active flag.
// The middleware never mutates the store; its only effect is attaching the
// identity to the request context.
func AuthRequired(tokens TokenVerifier, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. Verify signature and expiry
		claims, err := tokens.Verify(tokenStr)
		if err != nil {
			// Message distinguishes the failure kind; the behavior is identical.
			msg := "invalid token"
			switch {
			case errors.Is(err, ErrTokenExpired):
				msg = "token expired"
			case errors.Is(err, ErrTokenMalformed):
				msg = "malformed token"
			case errors.Is(err, ErrMissingSecret):
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		// 3. Load the user bound to the token subject.
		// Only a confirmed missing user is an auth failure; a store error
		// says nothing about the token and must not force a client logout.
		user, err := users.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, authusecase.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
				return
			}
			slog.Error("user lookup failed", "error", err, "user_id", claims.UserID)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		// 4. Reject deactivated accounts even when the token is still unexpired
		if !user.Active {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account deactivated"})
			return
		}

		// 5. Attach the identity (no password hash) and pass control on
		c.Set(ContextIdentity, Identity{
			ID:     user.ID,
			Name:   user.Name,
			Email:  user.Email,
			Role:   user.Role,
			Active: user.Active,
		})
		c.Next()
	}
}

// RequireRoles returns a Gin middleware that allows only identities whose
// role is in the given set. It must run after AuthRequired.
func RequireRoles(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
			return
		}
		for _, r := range roles {
			if id.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
	}
}

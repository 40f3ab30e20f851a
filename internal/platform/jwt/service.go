// Package jwtmw provides the stateless bearer-token service and the Gin
// middleware that enforces authentication and role-based authorization.
package jwtmw

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the token lifetime used when none is configured.
const DefaultTTL = 7 * 24 * time.Hour

var (
	// ErrMissingSecret is returned when a Service is constructed without a signing secret.
	// Verification must never succeed with an empty secret, so construction fails closed.
	ErrMissingSecret = errors.New("jwt signing secret is empty")

	// ErrTokenMalformed is returned when a token is structurally invalid.
	ErrTokenMalformed = errors.New("token is malformed")

	// ErrTokenExpired is returned when a token is past its expiry.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenInvalidSignature is returned when the signature does not match the secret.
	ErrTokenInvalidSignature = errors.New("token signature is invalid")
)

// Claims is the payload carried by issued tokens.
// UserID uses a custom key because RegisteredClaims already owns "sub".
type Claims struct {
	UserID uint   `json:"uid"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Service issues and verifies signed, time-limited bearer tokens.
// The secret is injected at construction and never mutated, which keeps the
// service safe for concurrent use and testable with distinct secrets.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a token Service. An empty secret is rejected.
// A non-positive ttl falls back to DefaultTTL.
func NewService(secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl}, nil
}

// Issue creates a signed HS256 token binding the given user identity.
func (s *Service) Issue(userID uint, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning its claims on success.
// Failures map to exactly one of ErrTokenMalformed, ErrTokenExpired or
// ErrTokenInvalidSignature. Verification is a pure function of the token
// and the injected secret.
func (s *Service) Verify(tokenStr string) (*Claims, error) {
	if len(s.secret) == 0 {
		return nil, ErrMissingSecret
	}
	if tokenStr == "" {
		return nil, ErrTokenMalformed
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is accepted to block algorithm-confusion attacks.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid) || errors.Is(err, jwt.ErrSignatureInvalid):
			return nil, ErrTokenInvalidSignature
		default:
			return nil, ErrTokenMalformed
		}
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

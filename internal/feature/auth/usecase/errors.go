// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned during login when email or password is incorrect.
	// The same error is used for both cases so callers cannot probe which emails are registered.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountDeactivated is returned when a deactivated account attempts to log in.
	ErrAccountDeactivated = errors.New("account is deactivated")
)

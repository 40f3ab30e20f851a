// Package usecase implements the business logic for the users feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when the profile owner cannot be found.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when a profile update would take an
	// email address already used by another account.
	ErrEmailAlreadyExists = errors.New("email already in use")

	// ErrWrongPassword is returned when the current password given during a
	// password change does not match.
	ErrWrongPassword = errors.New("current password is incorrect")

	// ErrEmptyPatch is returned when a profile update carries no fields.
	ErrEmptyPatch = errors.New("update requires at least one field")
)

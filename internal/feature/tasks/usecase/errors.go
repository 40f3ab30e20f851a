// Package usecase implements the business logic for the tasks feature.
package usecase

import "errors"

var (
	// ErrTaskNotFound is returned when no task matches the compound
	// {id, owner} predicate. An absent id and another tenant's id produce
	// this same error, so callers cannot probe for other users' tasks.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidQuery is returned when a filter or sort parameter falls
	// outside the allowed value set.
	ErrInvalidQuery = errors.New("invalid query parameter")

	// ErrEmptyPatch is returned when an update carries no fields.
	ErrEmptyPatch = errors.New("update requires at least one field")
)

// Package entity defines the domain entities for the tasks feature.
package entity

import "time"

// Status is the workflow state of a task.
// It is a free enum: any value may transition to any other value.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the defined priorities.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task represents a single task owned by exactly one user.
// OwnerID is immutable after creation and every store access is scoped by it.
type Task struct {
	// ID is the unique identifier for the task.
	ID uint `json:"id"`

	// Title is the short task title (3-100 characters).
	Title string `json:"title"`

	// Description is an optional longer description (up to 500 characters).
	Description string `json:"description"`

	// Status is the workflow state. Defaults to pending.
	Status Status `json:"status"`

	// Priority is the urgency level. Defaults to medium.
	Priority Priority `json:"priority"`

	// DueDate is the optional due date. Nil means no due date.
	DueDate *time.Time `json:"dueDate"`

	// OwnerID references the user who owns this task.
	OwnerID uint `json:"ownerId"`

	// CreatedAt is the timestamp when the task was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is the timestamp when the task was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}

package dto

import (
	"time"

	"taskhub_backend/internal/feature/tasks/domain/entity"
)

// TaskItem is the outward-facing projection of a task.
type TaskItem struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	OwnerID     uint       `json:"ownerId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// NewTaskItem maps a domain task to its response projection.
func NewTaskItem(t *entity.Task) TaskItem {
	return TaskItem{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		DueDate:     t.DueDate,
		OwnerID:     t.OwnerID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// TaskListResp is returned by GET /tasks.
type TaskListResp struct {
	Count int        `json:"count"`
	Data  []TaskItem `json:"data"`
}

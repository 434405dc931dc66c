package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	ProjectID   uuid.UUID  `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	Labels      []string   `json:"labels"`
}

// UpdateTaskRequest is a merge-patch: absent fields leave the task unchanged.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	Labels      []string   `json:"labels"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

type AssignTaskRequest struct {
	AssigneeID uuid.UUID `json:"assignee_id"`
}

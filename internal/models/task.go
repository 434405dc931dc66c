package models

import (
	"time"

	"github.com/google/uuid"
)

// Task statuses. Transitions between them are unrestricted: a board card can
// move from any column to any other, including done back to todo.
const (
	StatusTodo       = "todo"
	StatusInProgress = "inprogress"
	StatusDone       = "done"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

const (
	LabelBug           = "Bug"
	LabelFeature       = "Feature"
	LabelEnhancement   = "Enhancement"
	LabelDocumentation = "Documentation"
	LabelDesign        = "Design"
)

var Labels = []string{LabelBug, LabelFeature, LabelEnhancement, LabelDocumentation, LabelDesign}

type Task struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Labels      []string   `json:"labels"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty"`
	Assignee    *User      `json:"assignee,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func ValidStatus(s string) bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusDone
}

func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

func ValidLabel(l string) bool {
	for _, known := range Labels {
		if l == known {
			return true
		}
	}
	return false
}

// Overdue reports whether the task has a due date in the past and is not
// finished yet.
func (t *Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != StatusDone
}

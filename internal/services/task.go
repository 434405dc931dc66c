package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jshn22/jira-clone/internal/database"
	"github.com/jshn22/jira-clone/internal/models"
)

const taskColumns = `id, project_id, title, description, status, priority, labels, assignee_id, due_date, created_at, updated_at`

type TaskService struct {
	db *database.DB
}

func NewTaskService(db *database.DB) *TaskService {
	return &TaskService{db: db}
}

// TaskPatch carries a merge-patch for Update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Priority    *string
	DueDate     *time.Time
	Labels      []string
}

func validateLabels(labels []string) error {
	for _, l := range labels {
		if !models.ValidLabel(l) {
			return fmt.Errorf("%w: unknown label %q", models.ErrValidation, l)
		}
	}
	return nil
}

// Create inserts a new task. The project must exist at creation time;
// priority defaults to medium, status always starts at todo.
func (s *TaskService) Create(ctx context.Context, projectID uuid.UUID, title, description, priority string, dueDate *time.Time, labels []string) (*models.Task, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: task title is required", models.ErrValidation)
	}
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return nil, fmt.Errorf("%w: invalid priority %q", models.ErrValidation, priority)
	}
	if err := validateLabels(labels); err != nil {
		return nil, err
	}
	if labels == nil {
		labels = []string{}
	}

	var exists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM projects WHERE id = $1)
	`, projectID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: project %s", models.ErrNotFound, projectID)
	}

	var task models.Task
	err = s.db.Pool.QueryRow(ctx, `
		INSERT INTO tasks (project_id, title, description, status, priority, labels, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+taskColumns+`
	`, projectID, title, description, models.StatusTodo, priority, labels, dueDate).Scan(
		&task.ID, &task.ProjectID, &task.Title, &task.Description,
		&task.Status, &task.Priority, &task.Labels, &task.AssigneeID,
		&task.DueDate, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return &task, nil
}

// CreateGenerated persists AI proposals through the normal creation path.
// Status is forced to todo no matter what the proposal carried.
func (s *TaskService) CreateGenerated(ctx context.Context, projectID uuid.UUID, proposals []models.TaskProposal) ([]models.Task, error) {
	tasks := make([]models.Task, 0, len(proposals))
	for _, p := range proposals {
		task, err := s.Create(ctx, projectID, p.Title, p.Description, p.Priority, nil, p.Labels)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, nil
}

func (s *TaskService) GetByID(ctx context.Context, taskID uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := s.db.Pool.QueryRow(ctx, `
		SELECT `+taskColumns+` FROM tasks WHERE id = $1
	`, taskID).Scan(
		&task.ID, &task.ProjectID, &task.Title, &task.Description,
		&task.Status, &task.Priority, &task.Labels, &task.AssigneeID,
		&task.DueDate, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: task %s", models.ErrNotFound, taskID)
		}
		return nil, err
	}
	return &task, nil
}

func (s *TaskService) GetByProject(ctx context.Context, projectID uuid.UUID) ([]models.Task, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+taskColumns+` FROM tasks
		WHERE project_id = $1
		ORDER BY created_at DESC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(
			&t.ID, &t.ProjectID, &t.Title, &t.Description,
			&t.Status, &t.Priority, &t.Labels, &t.AssigneeID,
			&t.DueDate, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// UpdateStatus overwrites the status unconditionally. Any current status may
// move to any valid status; the board is free-form, not a workflow machine.
func (s *TaskService) UpdateStatus(ctx context.Context, taskID uuid.UUID, status string) (*models.Task, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: invalid status %q", models.ErrValidation, status)
	}

	var task models.Task
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE tasks SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+taskColumns+`
	`, status, taskID).Scan(
		&task.ID, &task.ProjectID, &task.Title, &task.Description,
		&task.Status, &task.Priority, &task.Labels, &task.AssigneeID,
		&task.DueDate, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: task %s", models.ErrNotFound, taskID)
		}
		return nil, err
	}
	return &task, nil
}

// Update applies a merge-patch over the mutable fields.
func (s *TaskService) Update(ctx context.Context, taskID uuid.UUID, patch TaskPatch) (*models.Task, error) {
	if patch.Title != nil && *patch.Title == "" {
		return nil, fmt.Errorf("%w: task title is required", models.ErrValidation)
	}
	if patch.Priority != nil && !models.ValidPriority(*patch.Priority) {
		return nil, fmt.Errorf("%w: invalid priority %q", models.ErrValidation, *patch.Priority)
	}
	if err := validateLabels(patch.Labels); err != nil {
		return nil, err
	}

	var task models.Task
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE tasks SET
			title = COALESCE($1, title),
			description = COALESCE($2, description),
			priority = COALESCE($3, priority),
			due_date = COALESCE($4, due_date),
			labels = COALESCE($5, labels),
			updated_at = NOW()
		WHERE id = $6
		RETURNING `+taskColumns+`
	`, patch.Title, patch.Description, patch.Priority, patch.DueDate, patch.Labels, taskID).Scan(
		&task.ID, &task.ProjectID, &task.Title, &task.Description,
		&task.Status, &task.Priority, &task.Labels, &task.AssigneeID,
		&task.DueDate, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: task %s", models.ErrNotFound, taskID)
		}
		return nil, err
	}
	return &task, nil
}

// Assign sets the assignee. Membership of the assignee in the task's project
// is deliberately not checked.
func (s *TaskService) Assign(ctx context.Context, taskID, assigneeID uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := s.db.Pool.QueryRow(ctx, `
		UPDATE tasks SET assignee_id = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+taskColumns+`
	`, assigneeID, taskID).Scan(
		&task.ID, &task.ProjectID, &task.Title, &task.Description,
		&task.Status, &task.Priority, &task.Labels, &task.AssigneeID,
		&task.DueDate, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: task %s", models.ErrNotFound, taskID)
		}
		return nil, err
	}
	return &task, nil
}

// Delete removes the task. A second delete of the same id finds no row and
// reports not-found.
func (s *TaskService) Delete(ctx context.Context, taskID uuid.UUID) error {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, taskID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: task %s", models.ErrNotFound, taskID)
	}
	return nil
}

// Stats aggregates the project's board statistics.
func (s *TaskService) Stats(ctx context.Context, projectID uuid.UUID) (*models.TaskStats, error) {
	tasks, err := s.GetByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	stats := models.ComputeStats(tasks, time.Now())
	return &stats, nil
}

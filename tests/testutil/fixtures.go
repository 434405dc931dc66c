package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jshn22/jira-clone/internal/database"
	"github.com/jshn22/jira-clone/internal/models"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// DefaultPassword is the plaintext password of every fixture user.
const DefaultPassword = "password123"

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Name:  fmt.Sprintf("Test User %d", f.counter),
		Email: fmt.Sprintf("user%d@example.com", f.counter),
	}

	for _, opt := range opts {
		opt(user)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash fixture password: %v", err)
	}

	ctx := context.Background()
	err = f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, name, email, password_hash, created_at, updated_at
	`, user.Name, user.Email, string(hash)).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) { u.Email = email }
}

// CreateProject creates a project owned by the given user, with the owner
// membership row in place.
func (f *Fixtures) CreateProject(t *testing.T, ownerID uuid.UUID, name string) *models.Project {
	t.Helper()

	project := &models.Project{}
	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO projects (name, description, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, description, owner_id, created_at, updated_at
	`, name, "fixture project", ownerID).Scan(
		&project.ID, &project.Name, &project.Description,
		&project.OwnerID, &project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	_, err = f.db.Pool.Exec(ctx, `
		INSERT INTO project_members (project_id, user_id, role)
		VALUES ($1, $2, $3)
	`, project.ID, ownerID, models.RoleOwner)
	if err != nil {
		t.Fatalf("failed to create owner membership: %v", err)
	}

	return project
}

// CreateTask creates a task in the given project
func (f *Fixtures) CreateTask(t *testing.T, projectID uuid.UUID, title, status string) *models.Task {
	t.Helper()

	task := &models.Task{}
	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO tasks (project_id, title, description, status, priority, labels)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, project_id, title, description, status, priority, labels, assignee_id, due_date, created_at, updated_at
	`, projectID, title, "fixture task", status, models.PriorityMedium, []string{}).Scan(
		&task.ID, &task.ProjectID, &task.Title, &task.Description,
		&task.Status, &task.Priority, &task.Labels, &task.AssigneeID,
		&task.DueDate, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	return task
}

// CreateOverdueTask creates a task whose due date is in the past
func (f *Fixtures) CreateOverdueTask(t *testing.T, projectID uuid.UUID, status string) *models.Task {
	t.Helper()

	task := f.CreateTask(t, projectID, "overdue task", status)
	yesterday := time.Now().Add(-24 * time.Hour)

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		UPDATE tasks SET due_date = $1 WHERE id = $2
		RETURNING due_date
	`, yesterday, task.ID).Scan(&task.DueDate)
	if err != nil {
		t.Fatalf("failed to set due date: %v", err)
	}

	return task
}

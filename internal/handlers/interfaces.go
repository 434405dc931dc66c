package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jshn22/jira-clone/internal/models"
	"github.com/jshn22/jira-clone/internal/services"
)

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// ProjectServiceInterface defines the methods used by handlers from ProjectService
type ProjectServiceInterface interface {
	Create(ctx context.Context, name, description string, ownerID uuid.UUID) (*models.Project, error)
	GetByID(ctx context.Context, projectID uuid.UUID) (*models.Project, error)
	GetUserProjects(ctx context.Context, userID uuid.UUID) ([]models.Project, error)
	Update(ctx context.Context, projectID uuid.UUID, name, description string) (*models.Project, error)
	Delete(ctx context.Context, projectID uuid.UUID) error
	IsOwner(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
	IsMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error)
	GetMembers(ctx context.Context, projectID uuid.UUID) ([]models.ProjectMember, error)
	AddMember(ctx context.Context, projectID, userID uuid.UUID) error
}

// TaskServiceInterface defines the methods used by handlers from TaskService
type TaskServiceInterface interface {
	Create(ctx context.Context, projectID uuid.UUID, title, description, priority string, dueDate *time.Time, labels []string) (*models.Task, error)
	CreateGenerated(ctx context.Context, projectID uuid.UUID, proposals []models.TaskProposal) ([]models.Task, error)
	GetByID(ctx context.Context, taskID uuid.UUID) (*models.Task, error)
	GetByProject(ctx context.Context, projectID uuid.UUID) ([]models.Task, error)
	UpdateStatus(ctx context.Context, taskID uuid.UUID, status string) (*models.Task, error)
	Update(ctx context.Context, taskID uuid.UUID, patch services.TaskPatch) (*models.Task, error)
	Assign(ctx context.Context, taskID, assigneeID uuid.UUID) (*models.Task, error)
	Delete(ctx context.Context, taskID uuid.UUID) error
	Stats(ctx context.Context, projectID uuid.UUID) (*models.TaskStats, error)
}

// AIServiceInterface defines the methods used by handlers from AIService
type AIServiceInterface interface {
	Configured() bool
	GenerateTasks(ctx context.Context, projectName, description string, count int) ([]models.TaskProposal, error)
	BreakdownTask(ctx context.Context, title, description string) ([]models.TaskProposal, error)
}

// TokenServiceInterface defines the methods used by handlers from TokenService
type TokenServiceInterface interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	Rotate(ctx context.Context, userID uuid.UUID, oldHash, newHash string, expiresAt time.Time) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/jshn22/jira-clone/internal/models"
	"github.com/jshn22/jira-clone/internal/services"
)

// MockUserService is a testify mock of handlers.UserServiceInterface
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockProjectService is a testify mock of handlers.ProjectServiceInterface
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) Create(ctx context.Context, name, description string, ownerID uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, name, description, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) GetByID(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) GetUserProjects(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *MockProjectService) Update(ctx context.Context, projectID uuid.UUID, name, description string) (*models.Project, error) {
	args := m.Called(ctx, projectID, name, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockProjectService) Delete(ctx context.Context, projectID uuid.UUID) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

func (m *MockProjectService) IsOwner(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, projectID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProjectService) IsMember(ctx context.Context, projectID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, projectID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProjectService) GetMembers(ctx context.Context, projectID uuid.UUID) ([]models.ProjectMember, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).([]models.ProjectMember), args.Error(1)
}

func (m *MockProjectService) AddMember(ctx context.Context, projectID, userID uuid.UUID) error {
	args := m.Called(ctx, projectID, userID)
	return args.Error(0)
}

// MockTaskService is a testify mock of handlers.TaskServiceInterface
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, projectID uuid.UUID, title, description, priority string, dueDate *time.Time, labels []string) (*models.Task, error) {
	args := m.Called(ctx, projectID, title, description, priority, dueDate, labels)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) CreateGenerated(ctx context.Context, projectID uuid.UUID, proposals []models.TaskProposal) ([]models.Task, error) {
	args := m.Called(ctx, projectID, proposals)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskService) GetByID(ctx context.Context, taskID uuid.UUID) (*models.Task, error) {
	args := m.Called(ctx, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) GetByProject(ctx context.Context, projectID uuid.UUID) ([]models.Task, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Task), args.Error(1)
}

func (m *MockTaskService) UpdateStatus(ctx context.Context, taskID uuid.UUID, status string) (*models.Task, error) {
	args := m.Called(ctx, taskID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, taskID uuid.UUID, patch services.TaskPatch) (*models.Task, error) {
	args := m.Called(ctx, taskID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) Assign(ctx context.Context, taskID, assigneeID uuid.UUID) (*models.Task, error) {
	args := m.Called(ctx, taskID, assigneeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, taskID uuid.UUID) error {
	args := m.Called(ctx, taskID)
	return args.Error(0)
}

func (m *MockTaskService) Stats(ctx context.Context, projectID uuid.UUID) (*models.TaskStats, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TaskStats), args.Error(1)
}

// MockAIService is a testify mock of handlers.AIServiceInterface
type MockAIService struct {
	mock.Mock
}

func (m *MockAIService) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockAIService) GenerateTasks(ctx context.Context, projectName, description string, count int) ([]models.TaskProposal, error) {
	args := m.Called(ctx, projectName, description, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TaskProposal), args.Error(1)
}

func (m *MockAIService) BreakdownTask(ctx context.Context, title, description string) ([]models.TaskProposal, error) {
	args := m.Called(ctx, title, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TaskProposal), args.Error(1)
}

// MockTokenService is a testify mock of handlers.TokenServiceInterface
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) StoreRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) Rotate(ctx context.Context, userID uuid.UUID, oldHash, newHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, oldHash, newHash, expiresAt)
	return args.Error(0)
}

func (m *MockTokenService) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

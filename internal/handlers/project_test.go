package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jshn22/jira-clone/internal/middleware"
	"github.com/jshn22/jira-clone/internal/models"
	"github.com/jshn22/jira-clone/pkg/dto"
	"github.com/jshn22/jira-clone/tests/testutil"
)

func setupProjectTest(t *testing.T) (*testutil.MockProjectService, *testutil.MockTaskService, *ProjectHandler) {
	t.Helper()
	mockProjectService := new(testutil.MockProjectService)
	mockTaskService := new(testutil.MockTaskService)
	handler := NewProjectHandler(mockProjectService, mockTaskService)
	return mockProjectService, mockTaskService, handler
}

func authedRequest(t *testing.T, method, target string, body any, userID uuid.UUID) *http.Request {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(jsonBody)
	} else {
		reader = bytes.NewReader(nil)
	}

	token := generateTestToken(t, newTestJWTService(), userID, "test@example.com")
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestProjectHandler_Create_Success(t *testing.T) {
	mockProjectService, _, handler := setupProjectTest(t)

	userID := uuid.New()
	project := &models.Project{
		ID:        uuid.New(),
		Name:      "Website",
		OwnerID:   userID,
		CreatedAt: time.Now(),
	}

	mockProjectService.On("Create", mock.Anything, "Website", "company site", userID).Return(project, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(newTestJWTService()))
	app.Post("/projects", handler.Create)

	req := authedRequest(t, http.MethodPost, "/projects",
		dto.CreateProjectRequest{Name: "Website", Description: "company site"}, userID)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var response dto.ProjectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, project.ID, response.ID)
	assert.Equal(t, "Website", response.Name)
	assert.Equal(t, models.RoleOwner, response.Role)

	mockProjectService.AssertExpectations(t)
}

func TestProjectHandler_Create_EmptyName(t *testing.T) {
	mockProjectService, _, handler := setupProjectTest(t)

	userID := uuid.New()
	mockProjectService.On("Create", mock.Anything, "", "", userID).
		Return(nil, models.ErrValidation)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(newTestJWTService()))
	app.Post("/projects", handler.Create)

	req := authedRequest(t, http.MethodPost, "/projects", dto.CreateProjectRequest{}, userID)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	mockProjectService.AssertExpectations(t)
}

// The name goes through untouched, whitespace and all.
func TestProjectHandler_Create_NameVerbatim(t *testing.T) {
	mockProjectService, _, handler := setupProjectTest(t)

	userID := uuid.New()
	project := &models.Project{
		ID:      uuid.New(),
		Name:    " Website ",
		OwnerID: userID,
	}

	mockProjectService.On("Create", mock.Anything, " Website ", "", userID).Return(project, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(newTestJWTService()))
	app.Post("/projects", handler.Create)

	req := authedRequest(t, http.MethodPost, "/projects",
		dto.CreateProjectRequest{Name: " Website "}, userID)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var response dto.ProjectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, " Website ", response.Name)

	mockProjectService.AssertExpectations(t)
}

func TestProjectHandler_List_Success(t *testing.T) {
	mockProjectService, _, handler := setupProjectTest(t)

	userID := uuid.New()
	projects := []models.Project{
		{ID: uuid.New(), Name: "Mine", OwnerID: userID},
		{ID: uuid.New(), Name: "Shared", OwnerID: uuid.New()},
	}

	mockProjectService.On("GetUserProjects", mock.Anything, userID).Return(projects, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(newTestJWTService()))
	app.Get("/projects", handler.List)

	req := authedRequest(t, http.MethodGet, "/projects", nil, userID)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []dto.ProjectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 2)
	assert.Equal(t, models.RoleOwner, response[0].Role)
	assert.Equal(t, models.RoleMember, response[1].Role)

	mockProjectService.AssertExpectations(t)
}

func TestProjectHandler_Get_Success(t *testing.T) {
	mockProjectService, _, handler := setupProjectTest(t)

	userID := uuid.New()
	project := &models.Project{ID: uuid.New(), Name: "Website", OwnerID: userID}

	mockProjectService.On("IsMember", mock.Anything, project.ID, userID).Return(true, nil)
	mockProjectService.On("GetByID", mock.Anything, project.ID).Return(project, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(newTestJWTService()))
	app.Get("/projects/:id", handler.Get)

	req := authedRequest(t, http.MethodGet, "/projects/"+project.ID.String(), nil, userID)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockProjectService.AssertExpectations(t)
}

// Non-members get 404, not 403, so project ids cannot be probed.
func TestProjectHandler_Get_NotMember(t *testing.T) {
	mockProjectService, _, handler := setupProjectTest(t)

	userID := uuid.New()
	projectID := uuid.New()

	mockProjectService.On("IsMember", mock.Anything, projectID, userID).Return(false, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(newTestJWTService()))
	app.Get("/projects/:id", handler.Get)

	req := authedRequest(t, http.MethodGet, "/projects/"+projectID.String(), nil, userID)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockProjectService.AssertExpectations(t)
}

func TestProjectHandler_Get_InvalidID(t *testing.T) {
	_, _, handler := setupProjectTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(newTestJWTService()))
	app.Get("/projects/:id", handler.Get)

	req := authedRequest(t, http.MethodGet, "/projects/not-a-uuid", nil, uuid.New())
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProjectHandler_Update_Success(t *testing.T) {
	mockProjectService, _, handler := setupProjectTest(t)

	userID := uuid.New()
	project := &models.Project{ID: uuid.New(), Name: "Renamed", OwnerID: userID}

	mockProjectService.On("IsOwner", mock.Anything, project.ID, userID).Return(true, nil)
	mockProjectService.On("Update", mock.Anything, project.ID, "Renamed", "").Return(project, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(newTestJWTService()))
	app.Put("/projects/:id", handler.Update)

	req := authedRequest(t, http.MethodPut, "/projects/"+project.ID.String(),
		dto.UpdateProjectRequest{Name: "Renamed"}, userID)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockProjectService.AssertExpectations(t)
}

func TestProjectHandler_Update_NotOwner(t *testing.T) {
	mockProjectService, _, handler := setupProjectTest(t)

	userID := uuid.New()
	projectID := uuid.New()

	mockProjectService.On("IsOwner", mock.Anything, projectID, userID).Return(false, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(newTestJWTService()))
	app.Put("/projects/:id", handler.Update)

	req := authedRequest(t, http.MethodPut, "/projects/"+projectID.String(),
		dto.UpdateProjectRequest{Name: "Renamed"}, userID)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	mockProjectService.AssertExpectations(t)
}

func TestProjectHandler_Delete_Success(t *testing.T) {
	mockProjectService, _, handler := setupProjectTest(t)

	userID := uuid.New()
	projectID := uuid.New()

	mockProjectService.On("IsOwner", mock.Anything, projectID, userID).Return(true, nil)
	mockProjectService.On("Delete", mock.Anything, projectID).Return(nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(newTestJWTService()))
	app.Delete("/projects/:id", handler.Delete)

	req := authedRequest(t, http.MethodDelete, "/projects/"+projectID.String(), nil, userID)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockProjectService.AssertExpectations(t)
}

func TestProjectHandler_Delete_NotOwner(t *testing.T) {
	mockProjectService, _, handler := setupProjectTest(t)

	userID := uuid.New()
	projectID := uuid.New()

	mockProjectService.On("IsOwner", mock.Anything, projectID, userID).Return(false, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(newTestJWTService()))
	app.Delete("/projects/:id", handler.Delete)

	req := authedRequest(t, http.MethodDelete, "/projects/"+projectID.String(), nil, userID)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	mockProjectService.AssertExpectations(t)
}

func TestProjectHandler_GetMembers_Success(t *testing.T) {
	mockProjectService, _, handler := setupProjectTest(t)

	userID := uuid.New()
	projectID := uuid.New()
	memberUserID := uuid.New()

	members := []models.ProjectMember{
		{
			ID:        uuid.New(),
			ProjectID: projectID,
			UserID:    memberUserID,
			Role:      models.RoleMember,
			User:      &models.User{ID: memberUserID, Name: "Bob", Email: "bob@example.com"},
		},
	}

	mockProjectService.On("IsMember", mock.Anything, projectID, userID).Return(true, nil)
	mockProjectService.On("GetMembers", mock.Anything, projectID).Return(members, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(newTestJWTService()))
	app.Get("/projects/:id/members", handler.GetMembers)

	req := authedRequest(t, http.MethodGet, "/projects/"+projectID.String()+"/members", nil, userID)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response []dto.ProjectMemberResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	require.Len(t, response, 1)
	assert.Equal(t, "bob@example.com", response[0].User.Email)

	mockProjectService.AssertExpectations(t)
}

func TestProjectHandler_AddMember_Success(t *testing.T) {
	mockProjectService, _, handler := setupProjectTest(t)

	userID := uuid.New()
	memberID := uuid.New()
	project := &models.Project{ID: uuid.New(), Name: "Website", OwnerID: userID}

	mockProjectService.On("IsOwner", mock.Anything, project.ID, userID).Return(true, nil)
	mockProjectService.On("AddMember", mock.Anything, project.ID, memberID).Return(nil)
	mockProjectService.On("GetByID", mock.Anything, project.ID).Return(project, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(newTestJWTService()))
	app.Post("/projects/:id/members", handler.AddMember)

	req := authedRequest(t, http.MethodPost, "/projects/"+project.ID.String()+"/members",
		dto.AddMemberRequest{MemberID: memberID}, userID)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	mockProjectService.AssertExpectations(t)
}

func TestProjectHandler_AddMember_NotOwner(t *testing.T) {
	mockProjectService, _, handler := setupProjectTest(t)

	userID := uuid.New()
	projectID := uuid.New()

	mockProjectService.On("IsOwner", mock.Anything, projectID, userID).Return(false, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(newTestJWTService()))
	app.Post("/projects/:id/members", handler.AddMember)

	req := authedRequest(t, http.MethodPost, "/projects/"+projectID.String()+"/members",
		dto.AddMemberRequest{MemberID: uuid.New()}, userID)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	mockProjectService.AssertExpectations(t)
}

func TestProjectHandler_Stats_Success(t *testing.T) {
	mockProjectService, mockTaskService, handler := setupProjectTest(t)

	userID := uuid.New()
	projectID := uuid.New()
	stats := &models.TaskStats{TotalTasks: 10, Completed: 3, CompletionRate: 30}

	mockProjectService.On("IsMember", mock.Anything, projectID, userID).Return(true, nil)
	mockTaskService.On("Stats", mock.Anything, projectID).Return(stats, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(newTestJWTService()))
	app.Get("/projects/:id/stats", handler.Stats)

	req := authedRequest(t, http.MethodGet, "/projects/"+projectID.String()+"/stats", nil, userID)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var response models.TaskStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 10, response.TotalTasks)
	assert.Equal(t, 30, response.CompletionRate)

	mockProjectService.AssertExpectations(t)
	mockTaskService.AssertExpectations(t)
}

func TestProjectHandler_Stats_NotMember(t *testing.T) {
	mockProjectService, _, handler := setupProjectTest(t)

	userID := uuid.New()
	projectID := uuid.New()

	mockProjectService.On("IsMember", mock.Anything, projectID, userID).Return(false, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(newTestJWTService()))
	app.Get("/projects/:id/stats", handler.Stats)

	req := authedRequest(t, http.MethodGet, "/projects/"+projectID.String()+"/stats", nil, userID)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockProjectService.AssertExpectations(t)
}

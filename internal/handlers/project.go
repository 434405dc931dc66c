package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/jshn22/jira-clone/internal/middleware"
	"github.com/jshn22/jira-clone/internal/models"
	"github.com/jshn22/jira-clone/pkg/dto"
)

type ProjectHandler struct {
	projectService ProjectServiceInterface
	taskService    TaskServiceInterface
}

func NewProjectHandler(projectService ProjectServiceInterface, taskService TaskServiceInterface) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		taskService:    taskService,
	}
}

func projectResponse(p *models.Project, userID uuid.UUID) dto.ProjectResponse {
	role := models.RoleMember
	if p.OwnerID == userID {
		role = models.RoleOwner
	}
	return dto.ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		Role:        role,
		CreatedAt:   p.CreatedAt,
	}
}

func (h *ProjectHandler) Create(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateProjectRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	project, err := h.projectService.Create(context.Background(), req.Name, req.Description, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	_ = c.JSON(201, projectResponse(project, userID))
}

func (h *ProjectHandler) List(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	projects, err := h.projectService.GetUserProjects(context.Background(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.ProjectResponse, len(projects))
	for i := range projects {
		response[i] = projectResponse(&projects[i], userID)
	}

	_ = c.JSON(200, response)
}

func (h *ProjectHandler) Get(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	isMember, err := h.projectService.IsMember(context.Background(), projectID, userID)
	if err != nil || !isMember {
		c.NotFound("project not found")
		return
	}

	project, err := h.projectService.GetByID(context.Background(), projectID)
	if err != nil {
		c.NotFound("project not found")
		return
	}

	_ = c.JSON(200, projectResponse(project, userID))
}

func (h *ProjectHandler) Update(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	isOwner, err := h.projectService.IsOwner(context.Background(), projectID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !isOwner {
		c.Forbidden("only owner can update project")
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	project, err := h.projectService.Update(context.Background(), projectID, req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	_ = c.JSON(200, projectResponse(project, userID))
}

func (h *ProjectHandler) Delete(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	isOwner, err := h.projectService.IsOwner(context.Background(), projectID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !isOwner {
		c.Forbidden("only owner can delete project")
		return
	}

	if err := h.projectService.Delete(context.Background(), projectID); err != nil {
		respondError(c, err)
		return
	}

	_ = c.JSON(200, map[string]string{"message": "project deleted"})
}

func (h *ProjectHandler) GetMembers(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	isMember, err := h.projectService.IsMember(context.Background(), projectID, userID)
	if err != nil || !isMember {
		c.NotFound("project not found")
		return
	}

	members, err := h.projectService.GetMembers(context.Background(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.ProjectMemberResponse, len(members))
	for i, m := range members {
		response[i] = dto.ProjectMemberResponse{
			ID:     m.ID,
			UserID: m.UserID,
			Role:   m.Role,
			User: dto.UserResponse{
				ID:    m.User.ID,
				Name:  m.User.Name,
				Email: m.User.Email,
			},
		}
	}

	_ = c.JSON(200, response)
}

func (h *ProjectHandler) AddMember(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	isOwner, err := h.projectService.IsOwner(context.Background(), projectID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !isOwner {
		c.Forbidden("only owner can add members")
		return
	}

	var req dto.AddMemberRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.MemberID == uuid.Nil {
		c.BadRequest("member_id is required")
		return
	}

	if err := h.projectService.AddMember(context.Background(), projectID, req.MemberID); err != nil {
		respondError(c, err)
		return
	}

	project, err := h.projectService.GetByID(context.Background(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	_ = c.JSON(200, projectResponse(project, userID))
}

func (h *ProjectHandler) Stats(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid project id")
		return
	}

	isMember, err := h.projectService.IsMember(context.Background(), projectID, userID)
	if err != nil || !isMember {
		c.NotFound("project not found")
		return
	}

	stats, err := h.taskService.Stats(context.Background(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	_ = c.JSON(200, stats)
}

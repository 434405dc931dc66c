package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"

	"github.com/jshn22/jira-clone/internal/middleware"
	"github.com/jshn22/jira-clone/pkg/dto"
)

type AIHandler struct {
	aiService      AIServiceInterface
	taskService    TaskServiceInterface
	projectService ProjectServiceInterface
}

func NewAIHandler(aiService AIServiceInterface, taskService TaskServiceInterface, projectService ProjectServiceInterface) *AIHandler {
	return &AIHandler{
		aiService:      aiService,
		taskService:    taskService,
		projectService: projectService,
	}
}

// GenerateTasks produces candidate tasks for a project and persists them with
// status todo. When no provider credential is configured the canned proposal
// list is used and the response is 200 instead of 201.
func (h *AIHandler) GenerateTasks(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.GenerateTasksRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.ProjectID == uuid.Nil || req.Description == "" {
		c.BadRequest("project_id and description are required")
		return
	}

	ctx := context.Background()

	project, err := h.projectService.GetByID(ctx, req.ProjectID)
	if err != nil {
		respondError(c, err)
		return
	}

	proposals, err := h.aiService.GenerateTasks(ctx, project.Name, req.Description, req.Count)
	if err != nil {
		respondError(c, err)
		return
	}

	tasks, err := h.taskService.CreateGenerated(ctx, project.ID, proposals)
	if err != nil {
		respondError(c, err)
		return
	}

	status := 201
	if !h.aiService.Configured() {
		status = 200
	}

	_ = c.JSON(status, map[string]any{
		"message": "tasks generated successfully",
		"tasks":   tasks,
	})
}

// BreakdownTask returns subtask proposals for an existing task. Proposals are
// not persisted; the caller decides which of them become tasks.
func (h *AIHandler) BreakdownTask(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid task id")
		return
	}

	ctx := context.Background()

	task, err := h.taskService.GetByID(ctx, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	proposals, err := h.aiService.BreakdownTask(ctx, task.Title, task.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.TaskProposalResponse, len(proposals))
	for i, p := range proposals {
		response[i] = dto.TaskProposalResponse{
			Title:       p.Title,
			Description: p.Description,
			Priority:    p.Priority,
			Labels:      p.Labels,
		}
	}

	_ = c.JSON(200, response)
}

package dto

import "github.com/google/uuid"

type GenerateTasksRequest struct {
	ProjectID   uuid.UUID `json:"project_id"`
	Description string    `json:"description"`
	Count       int       `json:"count"`
}

type TaskProposalResponse struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	Labels      []string `json:"labels"`
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jshn22/jira-clone/internal/config"
	"github.com/jshn22/jira-clone/internal/models"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// fallbackProposals is served when no API key is configured, so the board
// stays usable without the provider.
var fallbackProposals = []models.TaskProposal{
	{
		Title:       "Setup project structure",
		Description: "Initialize the basic project structure",
		Priority:    models.PriorityHigh,
		Labels:      []string{"Feature"},
	},
	{
		Title:       "Design database schema",
		Description: "Create MongoDB schema design",
		Priority:    models.PriorityMedium,
		Labels:      []string{"Design", "Documentation"},
	},
	{
		Title:       "Implement authentication",
		Description: "Add user authentication system",
		Priority:    models.PriorityHigh,
		Labels:      []string{"Feature", "Bug"},
	},
	{
		Title:       "Create API endpoints",
		Description: "Build RESTful API endpoints",
		Priority:    models.PriorityMedium,
		Labels:      []string{"Feature"},
	},
	{
		Title:       "Write documentation",
		Description: "Document API and setup process",
		Priority:    models.PriorityLow,
		Labels:      []string{"Documentation"},
	},
}

type AIService struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewAIService(cfg config.GeminiConfig) *AIService {
	return &AIService{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: geminiBaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

// Configured reports whether a provider credential is available. Without one
// the service runs in degraded mode and serves the canned proposal list.
func (s *AIService) Configured() bool {
	return s.apiKey != ""
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// GenerateTasks asks the provider for candidate tasks. The count is advisory:
// whatever parseable list the provider returns is accepted. Falls back to
// the fixed proposal list when no credential is configured.
func (s *AIService) GenerateTasks(ctx context.Context, projectName, description string, count int) ([]models.TaskProposal, error) {
	if !s.Configured() {
		proposals := make([]models.TaskProposal, len(fallbackProposals))
		copy(proposals, fallbackProposals)
		return proposals, nil
	}

	if count <= 0 {
		count = 5
	}

	prompt := fmt.Sprintf(`Generate %d realistic project management tasks for a project called %q`, count, projectName)
	if description != "" {
		prompt += fmt.Sprintf(" with description: %s", description)
	}
	prompt += `.

Return ONLY a valid JSON array with this exact structure (no markdown, no explanation):
[
  {
    "title": "Task title",
    "description": "Detailed task description",
    "priority": "low",
    "labels": ["Feature"]
  }
]

Priority must be: low, medium, or high
Labels must be from: Feature, Bug, Enhancement, Documentation, Design`

	text, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return parseProposals(text)
}

// BreakdownTask asks the provider to split a task into 3-5 subtask proposals.
func (s *AIService) BreakdownTask(ctx context.Context, title, description string) ([]models.TaskProposal, error) {
	if !s.Configured() {
		return []models.TaskProposal{
			{Title: "Research requirements", Description: "Study and document all requirements", Priority: models.PriorityMedium},
			{Title: "Implement " + title, Description: description, Priority: models.PriorityMedium},
			{Title: "Review and test", Description: "Verify the work before closing the task", Priority: models.PriorityMedium},
		}, nil
	}

	prompt := fmt.Sprintf(`Break down the following task into 3-5 specific, actionable subtasks.

Task Title: %q
Task Description: %q

Return ONLY a JSON array of subtasks with title and description fields, no markdown, no explanation.`, title, description)

	text, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return parseProposals(text)
}

func (s *AIService) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s:generateContent", s.baseURL, s.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrExternal, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", models.ErrExternal, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: provider returned status %d", models.ErrExternal, resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", models.ErrExternal, err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: provider returned no candidates", models.ErrExternal)
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// parseProposals extracts the first JSON array from the provider's text and
// normalizes each proposal. Models often wrap the array in prose or markdown
// fences, so everything outside the outermost brackets is ignored.
func parseProposals(text string) ([]models.TaskProposal, error) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("%w: no JSON array in provider response", models.ErrExternal)
	}

	var proposals []models.TaskProposal
	if err := json.Unmarshal([]byte(text[start:end+1]), &proposals); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON array in provider response: %v", models.ErrExternal, err)
	}

	for i := range proposals {
		proposals[i].Normalize()
	}
	return proposals, nil
}

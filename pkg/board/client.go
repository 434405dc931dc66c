// Package board is an embeddable client for the task board API: a thin HTTP
// client plus an in-memory store that mirrors one project's task list and
// applies drag-and-drop moves optimistically.
package board

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jshn22/jira-clone/internal/models"
)

// APIError is a non-2xx response from the server, carrying the decoded
// {"message": ...} body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the board REST API with bearer-token auth.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a client for the given API root
// (e.g. http://localhost:8080). The token is the access token from login.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(respBody, &apiErr)
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Message}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// ListTasks fetches all tasks of a project.
func (c *Client) ListTasks(ctx context.Context, projectID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	err := c.do(ctx, http.MethodGet, "/api/tasks/project/"+projectID.String(), nil, &tasks)
	return tasks, err
}

// UpdateTaskStatus moves a task to another column.
func (c *Client) UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status string) (*models.Task, error) {
	var task models.Task
	err := c.do(ctx, http.MethodPut, "/api/tasks/"+taskID.String()+"/status",
		map[string]string{"status": status}, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateTask creates a task in the project.
func (c *Client) CreateTask(ctx context.Context, projectID uuid.UUID, title, description, priority string, labels []string) (*models.Task, error) {
	var task models.Task
	err := c.do(ctx, http.MethodPost, "/api/tasks", map[string]any{
		"project_id":  projectID,
		"title":       title,
		"description": description,
		"priority":    priority,
		"labels":      labels,
	}, &task)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+taskID.String(), nil, nil)
}

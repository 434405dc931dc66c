package board

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jshn22/jira-clone/internal/models"
)

func TestClient_ListTasks(t *testing.T) {
	projectID := uuid.New()
	tasks := []models.Task{
		{ID: uuid.New(), ProjectID: projectID, Title: "One", Status: models.StatusTodo},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/tasks/project/"+projectID.String(), r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewEncoder(w).Encode(tasks))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token")

	got, err := client.ListTasks(context.Background(), projectID)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "One", got[0].Title)
}

func TestClient_UpdateTaskStatus(t *testing.T) {
	taskID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/tasks/"+taskID.String()+"/status", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, models.StatusDone, body["status"])

		task := models.Task{ID: taskID, Title: "Task", Status: models.StatusDone}
		require.NoError(t, json.NewEncoder(w).Encode(task))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token")

	task, err := client.UpdateTaskStatus(context.Background(), taskID, models.StatusDone)

	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, task.Status)
}

func TestClient_CreateTask(t *testing.T) {
	projectID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/tasks", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "New card", body["title"])

		w.WriteHeader(http.StatusCreated)
		task := models.Task{ID: uuid.New(), ProjectID: projectID, Title: "New card", Status: models.StatusTodo}
		require.NoError(t, json.NewEncoder(w).Encode(task))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token")

	task, err := client.CreateTask(context.Background(), projectID, "New card", "", models.PriorityMedium, nil)

	require.NoError(t, err)
	assert.Equal(t, "New card", task.Title)
	assert.Equal(t, models.StatusTodo, task.Status)
}

func TestClient_DeleteTask(t *testing.T) {
	taskID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		require.NoError(t, json.NewEncoder(w).Encode(map[string]string{"message": "task deleted"}))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token")

	assert.NoError(t, client.DeleteTask(context.Background(), taskID))
}

func TestClient_ErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		require.NoError(t, json.NewEncoder(w).Encode(map[string]string{"message": "task not found"}))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token")

	err := client.DeleteTask(context.Background(), uuid.New())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "task not found", apiErr.Message)
}

func TestClient_ErrorResponse_NoBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-token")

	err := client.DeleteTask(context.Background(), uuid.New())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), apiErr.Message)
}

package board

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/jshn22/jira-clone/internal/models"
)

// TaskAPI is the server surface the store needs. *Client implements it.
type TaskAPI interface {
	ListTasks(ctx context.Context, projectID uuid.UUID) ([]models.Task, error)
	UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status string) (*models.Task, error)
	CreateTask(ctx context.Context, projectID uuid.UUID, title, description, priority string, labels []string) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID uuid.UUID) error
}

// Store mirrors one project's task list for a single session. Moves are
// applied optimistically and reconciled against the server response: on
// success the server's record replaces the optimistic entry, on failure the
// list rolls back to the last-known-good snapshot.
type Store struct {
	api       TaskAPI
	projectID uuid.UUID

	mu       sync.Mutex
	tasks    []models.Task
	snapshot []models.Task
}

func NewStore(api TaskAPI, projectID uuid.UUID) *Store {
	return &Store{api: api, projectID: projectID}
}

// Refresh re-fetches the project's tasks and resets the snapshot.
func (s *Store) Refresh(ctx context.Context) error {
	tasks, err := s.api.ListTasks(ctx, s.projectID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
	s.snapshot = cloneTasks(tasks)
	return nil
}

// Tasks returns a copy of the current list.
func (s *Store) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTasks(s.tasks)
}

// Stats derives the board statistics from the current list.
func (s *Store) Stats() models.TaskStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.ComputeStats(s.tasks, time.Now())
}

// MoveTask moves a card to another column. Moving a task to the status it
// already has is a no-op and makes no network call. Otherwise the new status
// is applied locally first, then confirmed with the server; a failed
// confirmation restores the last-known-good list.
func (s *Store) MoveTask(ctx context.Context, taskID uuid.UUID, status string) error {
	s.mu.Lock()
	idx, found := s.indexOf(taskID)
	if !found {
		s.mu.Unlock()
		return &APIError{StatusCode: 404, Message: "task not in store"}
	}
	if s.tasks[idx].Status == status {
		s.mu.Unlock()
		return nil
	}
	s.tasks[idx].Status = status
	s.mu.Unlock()

	updated, err := s.api.UpdateTaskStatus(ctx, taskID, status)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.tasks = cloneTasks(s.snapshot)
		return err
	}

	if idx, found := s.indexOf(taskID); found {
		s.tasks[idx] = *updated
	}
	s.snapshot = cloneTasks(s.tasks)
	return nil
}

// AddTask creates a task and appends the server's record.
func (s *Store) AddTask(ctx context.Context, title, description, priority string, labels []string) (*models.Task, error) {
	task, err := s.api.CreateTask(ctx, s.projectID, title, description, priority, labels)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append([]models.Task{*task}, s.tasks...)
	s.snapshot = cloneTasks(s.tasks)
	return task, nil
}

// ApplyUpdate replaces the stored record after an edit confirmed elsewhere
// (the task PUT goes through the API directly; the store only reconciles).
func (s *Store) ApplyUpdate(task models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx, found := s.indexOf(task.ID); found {
		s.tasks[idx] = task
		s.snapshot = cloneTasks(s.tasks)
	}
}

// RemoveTask deletes the task on the server and drops it from the list.
func (s *Store) RemoveTask(ctx context.Context, taskID uuid.UUID) error {
	if err := s.api.DeleteTask(ctx, taskID); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = lo.Reject(s.tasks, func(t models.Task, _ int) bool {
		return t.ID == taskID
	})
	s.snapshot = cloneTasks(s.tasks)
	return nil
}

func (s *Store) indexOf(taskID uuid.UUID) (int, bool) {
	for i := range s.tasks {
		if s.tasks[i].ID == taskID {
			return i, true
		}
	}
	return 0, false
}

func cloneTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	return out
}

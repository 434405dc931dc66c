package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jshn22/jira-clone/internal/models"
)

func newTestAIService(t *testing.T, handler http.HandlerFunc) *AIService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &AIService{
		apiKey:  "test-api-key",
		model:   "gemini-2.5-pro",
		baseURL: srv.URL,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

// geminiReply wraps text in the provider's candidate envelope.
func geminiReply(t *testing.T, w http.ResponseWriter, text string) {
	t.Helper()
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	}
	require.NoError(t, json.NewEncoder(w).Encode(resp))
}

func TestAIService_GenerateTasks_Unconfigured(t *testing.T) {
	svc := &AIService{client: http.DefaultClient}
	require.False(t, svc.Configured())

	proposals, err := svc.GenerateTasks(context.Background(), "Website", "redesign", 5)

	require.NoError(t, err)
	require.Len(t, proposals, 5)
	assert.Equal(t, "Setup project structure", proposals[0].Title)
	assert.Equal(t, models.PriorityHigh, proposals[0].Priority)
	assert.Equal(t, "Design database schema", proposals[1].Title)
	assert.Equal(t, "Implement authentication", proposals[2].Title)
	assert.Equal(t, "Create API endpoints", proposals[3].Title)
	assert.Equal(t, "Write documentation", proposals[4].Title)
	assert.Equal(t, models.PriorityLow, proposals[4].Priority)
}

func TestAIService_GenerateTasks_UnconfiguredIgnoresCount(t *testing.T) {
	svc := &AIService{client: http.DefaultClient}

	// The canned list is fixed at 5 entries regardless of the requested count.
	proposals, err := svc.GenerateTasks(context.Background(), "Website", "", 3)

	require.NoError(t, err)
	assert.Len(t, proposals, 5)
}

func TestAIService_GenerateTasks(t *testing.T) {
	var gotPath string
	var gotAPIKey string
	svc := newTestAIService(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("x-goog-api-key")
		geminiReply(t, w, `[
			{"title": "Build landing page", "description": "Hero and pricing sections", "priority": "high", "labels": ["Feature"]},
			{"title": "Add contact form", "description": "With spam protection", "priority": "medium", "labels": ["Feature", "Enhancement"]}
		]`)
	})

	proposals, err := svc.GenerateTasks(context.Background(), "Website", "company site", 2)

	require.NoError(t, err)
	require.Len(t, proposals, 2)
	assert.Equal(t, "Build landing page", proposals[0].Title)
	assert.Equal(t, models.PriorityHigh, proposals[0].Priority)
	assert.Equal(t, "/gemini-2.5-pro:generateContent", gotPath)
	assert.Equal(t, "test-api-key", gotAPIKey)
}

// The requested count is advisory: the provider's list is accepted as-is.
func TestAIService_GenerateTasks_CountAdvisory(t *testing.T) {
	svc := newTestAIService(t, func(w http.ResponseWriter, r *http.Request) {
		geminiReply(t, w, `[
			{"title": "One", "priority": "low"},
			{"title": "Two", "priority": "low"},
			{"title": "Three", "priority": "low"}
		]`)
	})

	proposals, err := svc.GenerateTasks(context.Background(), "Website", "", 10)

	require.NoError(t, err)
	assert.Len(t, proposals, 3)
}

func TestAIService_GenerateTasks_StripsMarkdownFences(t *testing.T) {
	svc := newTestAIService(t, func(w http.ResponseWriter, r *http.Request) {
		geminiReply(t, w, "Here are your tasks:\n```json\n[{\"title\": \"Wrapped\", \"priority\": \"medium\"}]\n```\n")
	})

	proposals, err := svc.GenerateTasks(context.Background(), "Website", "", 1)

	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, "Wrapped", proposals[0].Title)
}

func TestAIService_GenerateTasks_NormalizesProposals(t *testing.T) {
	svc := newTestAIService(t, func(w http.ResponseWriter, r *http.Request) {
		geminiReply(t, w, `[{"title": "Odd one", "priority": "critical", "labels": ["Feature", "Chore"]}]`)
	})

	proposals, err := svc.GenerateTasks(context.Background(), "Website", "", 1)

	require.NoError(t, err)
	require.Len(t, proposals, 1)
	assert.Equal(t, models.PriorityMedium, proposals[0].Priority)
	assert.Equal(t, []string{"Feature"}, proposals[0].Labels)
}

func TestAIService_GenerateTasks_NoArrayInResponse(t *testing.T) {
	svc := newTestAIService(t, func(w http.ResponseWriter, r *http.Request) {
		geminiReply(t, w, "I cannot help with that.")
	})

	_, err := svc.GenerateTasks(context.Background(), "Website", "", 5)

	assert.ErrorIs(t, err, models.ErrExternal)
}

func TestAIService_GenerateTasks_ProviderError(t *testing.T) {
	svc := newTestAIService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := svc.GenerateTasks(context.Background(), "Website", "", 5)

	assert.ErrorIs(t, err, models.ErrExternal)
}

func TestAIService_GenerateTasks_NoCandidates(t *testing.T) {
	svc := newTestAIService(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}}))
	})

	_, err := svc.GenerateTasks(context.Background(), "Website", "", 5)

	assert.ErrorIs(t, err, models.ErrExternal)
}

func TestAIService_BreakdownTask_Unconfigured(t *testing.T) {
	svc := &AIService{client: http.DefaultClient}

	proposals, err := svc.BreakdownTask(context.Background(), "Ship v1", "release the first version")

	require.NoError(t, err)
	require.Len(t, proposals, 3)
	assert.Equal(t, "Implement Ship v1", proposals[1].Title)
}

func TestAIService_BreakdownTask(t *testing.T) {
	svc := newTestAIService(t, func(w http.ResponseWriter, r *http.Request) {
		geminiReply(t, w, `[
			{"title": "Write migration", "description": "Schema change"},
			{"title": "Backfill data", "description": "One-off job"}
		]`)
	})

	proposals, err := svc.BreakdownTask(context.Background(), "Migrate users table", "")

	require.NoError(t, err)
	require.Len(t, proposals, 2)
	assert.Equal(t, "Write migration", proposals[0].Title)
}

func TestParseProposals_Malformed(t *testing.T) {
	_, err := parseProposals(`[{"title": "broken"`)
	assert.ErrorIs(t, err, models.ErrExternal)
}

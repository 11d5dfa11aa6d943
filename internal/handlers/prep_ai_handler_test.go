package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-chi/chi/v5"
	"github.com/skillup/backend/internal/httpclient"
	"github.com/skillup/backend/internal/models"
	"github.com/skillup/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testCorpus = `[
	{"id":1,"topic":"Arrays","question":"Reverse an array in place","difficulty":"easy"},
	{"id":2,"topic":"trees","question":"Find the height of a binary tree"},
	{"id":3,"topic":"dp","question":"Longest increasing subsequence"},
	{"id":4,"topic":"os","question":"What is a semaphore?"}
]`

// mockCompletionService is a mock implementation of CompletionService
type mockCompletionService struct {
	answer     string
	questions  []models.GeneratedQuestion
	resources  string
	err        error
	lastCount  int
	lastRole   string
	lastTopics string
}

func (m *mockCompletionService) GenerateAnswer(ctx context.Context, question, role, topicContext string) (string, error) {
	return m.answer, m.err
}

func (m *mockCompletionService) GenerateQuestions(ctx context.Context, role, topics string, count int) ([]models.GeneratedQuestion, error) {
	m.lastRole, m.lastTopics, m.lastCount = role, topics, count
	return m.questions, m.err
}

func (m *mockCompletionService) GenerateResources(ctx context.Context, topic, role string) (string, error) {
	return m.resources, m.err
}

// failingQuestionService is a QuestionService whose every call fails
type failingQuestionService struct{}

func (failingQuestionService) All(ctx context.Context) ([]models.Question, error) {
	return nil, models.ErrContentUnavailable
}

func (failingQuestionService) ByTopic(ctx context.Context, topic string) ([]models.Question, error) {
	return nil, models.ErrContentUnavailable
}

func (failingQuestionService) ByRole(ctx context.Context, roleSlug string) ([]models.Question, error) {
	return nil, models.ErrContentUnavailable
}

func (failingQuestionService) Search(ctx context.Context, query string) ([]models.Question, error) {
	if query == "" {
		return nil, models.ErrInvalidInput
	}
	return nil, models.ErrContentUnavailable
}

func newPrepAITestRouter(t *testing.T, files fstest.MapFS, questions QuestionService, completion CompletionService) chi.Router {
	t.Helper()

	if questions == nil {
		questions = services.NewQuestionService(files)
	}
	content := services.NewContentService(httpclient.NewHTTPClient(), "http://content.invalid", files, zap.NewNop())
	handler := NewPrepAIHandler(
		questions,
		content,
		completion,
		RoleCatalog{Title: services.RoleTitle, Skills: services.RoleSkills},
		&mockUserFinder{user: &models.User{ID: 1, Name: "Ada"}},
		newTestRenderer(t),
		zap.NewNop(),
	)

	router := chi.NewRouter()
	handler.RegisterPublicRoutes(router)
	router.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, withSession(r, 1))
			})
		})
		handler.RegisterRoutes(r)
	})
	return router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeQuestionList(t *testing.T, w *httptest.ResponseRecorder) questionListResponse {
	t.Helper()
	var resp questionListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestPrepAIHandler_QuestionAPIs(t *testing.T) {
	files := fstest.MapFS{
		"questions-dsa.json":      {Data: []byte(testCorpus)},
		"frontend-developer.json": {Data: []byte(`[{"id":1,"question":"What is the virtual DOM?"}]`)},
	}
	router := newPrepAITestRouter(t, files, nil, &mockCompletionService{})

	t.Run("all", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/prep-ai/api/all", "")

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeQuestionList(t, w)
		assert.True(t, resp.Success)
		assert.Equal(t, 4, resp.Count)
		assert.Len(t, resp.Data, 4)
	})

	t.Run("topic is matched case-insensitively", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/prep-ai/api/topic/ARRAYS", "")

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeQuestionList(t, w)
		assert.Equal(t, "arrays", resp.Topic)
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "Reverse an array in place", resp.Data[0].Question)
	})

	t.Run("role with dedicated file", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/prep-ai/api/role/Frontend-Developer", "")

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeQuestionList(t, w)
		assert.Equal(t, "frontend-developer", resp.Role)
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "What is the virtual DOM?", resp.Data[0].Question)
	})

	t.Run("role falls back to corpus topics", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/prep-ai/api/role/devops-engineer", "")

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeQuestionList(t, w)
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "What is a semaphore?", resp.Data[0].Question)
	})

	t.Run("unknown role is an empty list", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/prep-ai/api/role/astronaut", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"role":"astronaut","data":[],"count":0}`, w.Body.String())
	})

	t.Run("search", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/prep-ai/api/search?q=BINARY", "")

		require.Equal(t, http.StatusOK, w.Code)
		resp := decodeQuestionList(t, w)
		assert.Equal(t, "BINARY", resp.Query)
		assert.Equal(t, 1, resp.Count)
	})

	t.Run("search without query", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/prep-ai/api/search", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"success":false,"error":"Search query required"}`, w.Body.String())
	})

	t.Run("raw corpus", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/api/dsa-questions", "")

		require.Equal(t, http.StatusOK, w.Code)
		var questions []models.Question
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &questions))
		assert.Len(t, questions, 4)
	})

	t.Run("dsa-question redirect", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/dsa-question", "")

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/prep-ai/dsa", w.Header().Get("Location"))
	})
}

func TestPrepAIHandler_QuestionAPIs_Failures(t *testing.T) {
	router := newPrepAITestRouter(t, fstest.MapFS{}, failingQuestionService{}, &mockCompletionService{})

	tests := []struct {
		target       string
		expectedCode int
		expectedBody string
	}{
		{"/prep-ai/api/all", http.StatusInternalServerError, `{"success":false,"error":"Failed to load questions"}`},
		{"/prep-ai/api/topic/arrays", http.StatusInternalServerError, `{"success":false,"error":"Failed to load questions"}`},
		{"/prep-ai/api/role/frontend-developer", http.StatusInternalServerError, `{"success":false,"error":"Failed to load questions"}`},
		{"/prep-ai/api/search?q=x", http.StatusInternalServerError, `{"success":false,"error":"Search failed"}`},
		{"/api/dsa-questions", http.StatusInternalServerError, `{"success":false,"message":"Error loading questions"}`},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := serve(router, http.MethodGet, tt.target, "")

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestPrepAIHandler_Pages(t *testing.T) {
	files := fstest.MapFS{
		"backend-developer.json": {Data: []byte(`[{"id":1,"question":"Explain REST","answer":"Resources over HTTP"}]`)},
		"broken-role.json":       {Data: []byte(`{not json`)},
	}

	t.Run("prep ai page", func(t *testing.T) {
		router := newPrepAITestRouter(t, files, nil, &mockCompletionService{})
		w := serve(router, http.MethodGet, "/prep-ai", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "<title>Prep AI - Skill Up</title>")
	})

	t.Run("dsa page", func(t *testing.T) {
		router := newPrepAITestRouter(t, files, nil, &mockCompletionService{})
		w := serve(router, http.MethodGet, "/prep-ai/dsa", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "<title>DSA Questions - Skill Up</title>")
	})

	t.Run("role page uses stored questions", func(t *testing.T) {
		router := newPrepAITestRouter(t, files, nil, &mockCompletionService{})
		w := serve(router, http.MethodGet, "/prep-ai/Backend-Developer", "")

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "<title>Backend Developer - Interview Prep - Skill Up</title>")
		assert.Contains(t, body, "Node.js, Express, REST APIs, MongoDB")
		assert.Contains(t, body, "Experience: 3 years")
		assert.Contains(t, body, "Explain REST")
	})

	t.Run("role page with generated questions", func(t *testing.T) {
		completion := &mockCompletionService{questions: []models.GeneratedQuestion{{Question: "What is a goroutine?", Answer: "A lightweight thread"}}}
		router := newPrepAITestRouter(t, files, nil, completion)
		w := serve(router, http.MethodGet, "/prep-ai/backend-developer?generate=true&experience=5", "")

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "What is a goroutine?")
		assert.NotContains(t, body, "Explain REST")
		assert.Contains(t, body, "Experience: 5 years")
		assert.Equal(t, "Backend Developer", completion.lastRole)
		assert.Equal(t, "Node.js, Express, REST APIs, MongoDB", completion.lastTopics)
		assert.Equal(t, 10, completion.lastCount)
	})

	t.Run("generation failure falls back to stored questions", func(t *testing.T) {
		completion := &mockCompletionService{err: models.ErrCompletionDisabled}
		router := newPrepAITestRouter(t, files, nil, completion)
		w := serve(router, http.MethodGet, "/prep-ai/backend-developer?generate=true", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Explain REST")
	})

	t.Run("role without questions", func(t *testing.T) {
		router := newPrepAITestRouter(t, files, nil, &mockCompletionService{})
		w := serve(router, http.MethodGet, "/prep-ai/astronaut", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Technical Skills")
		assert.Contains(t, w.Body.String(), "No questions are available for this role yet.")
	})

	t.Run("malformed role file", func(t *testing.T) {
		router := newPrepAITestRouter(t, files, nil, &mockCompletionService{})
		w := serve(router, http.MethodGet, "/prep-ai/broken-role", "")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "Error loading interview prep")
	})
}

func TestPrepAIHandler_Generate(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		body         string
		completion   *mockCompletionService
		expectedCode int
		expectedBody string
	}{
		{
			name:         "answer",
			target:       "/prep-ai/api/generate-answer",
			body:         `{"question":"What is a closure?","role":"Frontend Developer"}`,
			completion:   &mockCompletionService{answer: "A function with its scope"},
			expectedCode: http.StatusOK,
			expectedBody: `{"success":true,"question":"What is a closure?","answer":"A function with its scope"}`,
		},
		{
			name:         "answer without question",
			target:       "/prep-ai/api/generate-answer",
			body:         `{"role":"Frontend Developer"}`,
			completion:   &mockCompletionService{},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"success":false,"error":"Question is required"}`,
		},
		{
			name:         "answer with generation disabled",
			target:       "/prep-ai/api/generate-answer",
			body:         `{"question":"What is a closure?"}`,
			completion:   &mockCompletionService{err: fmt.Errorf("failed to generate answer: %w", models.ErrCompletionDisabled)},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"success":false,"error":"Failed to generate answer: AI generation is not configured"}`,
		},
		{
			name:         "questions with numeric count",
			target:       "/prep-ai/api/generate-questions",
			body:         `{"role":"QA Engineer","topics":"Selenium","count":2}`,
			completion:   &mockCompletionService{questions: []models.GeneratedQuestion{{Question: "Q1", Answer: "A1"}, {Question: "Q2", Answer: "A2"}}},
			expectedCode: http.StatusOK,
			expectedBody: `{"success":true,"role":"QA Engineer","topics":"Selenium","questions":[{"question":"Q1","answer":"A1"},{"question":"Q2","answer":"A2"}],"count":2}`,
		},
		{
			name:         "questions without topics",
			target:       "/prep-ai/api/generate-questions",
			body:         `{"role":"QA Engineer"}`,
			completion:   &mockCompletionService{},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"success":false,"error":"Role and topics are required"}`,
		},
		{
			name:         "questions with unparseable reply",
			target:       "/prep-ai/api/generate-questions",
			body:         `{"role":"QA Engineer","topics":"Selenium"}`,
			completion:   &mockCompletionService{err: fmt.Errorf("failed to generate questions: %w", models.ErrUnparseableOutput)},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"success":false,"error":"Failed to generate questions: could not parse model output"}`,
		},
		{
			name:         "resources",
			target:       "/prep-ai/api/generate-resources",
			body:         `{"topic":"Docker"}`,
			completion:   &mockCompletionService{resources: "Read the docs"},
			expectedCode: http.StatusOK,
			expectedBody: `{"success":true,"topic":"Docker","resources":"Read the docs"}`,
		},
		{
			name:         "resources without topic",
			target:       "/prep-ai/api/generate-resources",
			body:         `{"topic":"  "}`,
			completion:   &mockCompletionService{},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"success":false,"error":"Topic is required"}`,
		},
		{
			name:         "resources upstream failure hides details",
			target:       "/prep-ai/api/generate-resources",
			body:         `{"topic":"Docker"}`,
			completion:   &mockCompletionService{err: errors.New("http 500: secret upstream body")},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"success":false,"error":"Failed to generate resources"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newPrepAITestRouter(t, fstest.MapFS{}, nil, tt.completion)

			w := serve(router, http.MethodPost, tt.target, tt.body)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestPrepAIHandler_GenerateQuestions_Count(t *testing.T) {
	tests := []struct {
		count         string
		expectedCount int
	}{
		{`"5"`, 5},
		{`"abc"`, 10},
		{`0`, 10},
		{`-3`, 10},
		{`null`, 10},
	}

	for _, tt := range tests {
		t.Run(tt.count, func(t *testing.T) {
			completion := &mockCompletionService{questions: []models.GeneratedQuestion{{Question: "Q"}}}
			router := newPrepAITestRouter(t, fstest.MapFS{}, nil, completion)

			w := serve(router, http.MethodPost, "/prep-ai/api/generate-questions",
				`{"role":"Data Analyst","topics":"SQL","count":`+tt.count+`}`)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.expectedCount, completion.lastCount)
		})
	}
}

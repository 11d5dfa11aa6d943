package handlers

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/go-chi/chi/v5"
	"github.com/skillup/backend/internal/httpclient"
	"github.com/skillup/backend/internal/models"
	"github.com/skillup/backend/internal/services"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// newPrepareTestRouter serves /prepare/{topic} backed by a fake content store answering with status and body
func newPrepareTestRouter(t *testing.T, status int, body string) (chi.Router, *atomic.Int32) {
	t.Helper()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	content := services.NewContentService(httpclient.NewHTTPClient(), server.URL, fstest.MapFS{}, zap.NewNop())
	users := &mockUserFinder{user: &models.User{ID: 1, Name: "Ada"}}
	handler := NewPrepareHandler(content, users, newTestRenderer(t), zap.NewNop())

	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router, &calls
}

func TestPrepareHandler_Prepare(t *testing.T) {
	tests := []struct {
		name          string
		topic         string
		status        int
		body          string
		expectedCode  int
		expectedCalls int32
		expectedTexts []string
	}{
		{
			name:          "known topic",
			topic:         "python",
			status:        http.StatusOK,
			body:          `{"title":"Python","sections":[{"heading":"Basics","points":["Indentation matters"]}]}`,
			expectedCode:  http.StatusOK,
			expectedCalls: 1,
			expectedTexts: []string{"<title>Python - Skill Up</title>", "Basics", "Indentation matters", "Ada"},
		},
		{
			name:          "document without title uses topic",
			topic:         "web-dev",
			status:        http.StatusOK,
			body:          `{"sections":[]}`,
			expectedCode:  http.StatusOK,
			expectedCalls: 1,
			expectedTexts: []string{"<title>web-dev - Skill Up</title>"},
		},
		{
			name:          "unknown topic never reaches the network",
			topic:         "unknown-topic",
			status:        http.StatusOK,
			body:          `{}`,
			expectedCode:  http.StatusNotFound,
			expectedCalls: 0,
			expectedTexts: []string{"Topic not found"},
		},
		{
			name:          "remote 404",
			topic:         "java",
			status:        http.StatusNotFound,
			body:          `404: Not Found`,
			expectedCode:  http.StatusInternalServerError,
			expectedCalls: 1,
			expectedTexts: []string{"Content not available yet. Please try again later."},
		},
		{
			name:          "malformed document",
			topic:         "os",
			status:        http.StatusOK,
			body:          `<html>`,
			expectedCode:  http.StatusInternalServerError,
			expectedCalls: 1,
			expectedTexts: []string{"Content not available yet. Please try again later."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, calls := newPrepareTestRouter(t, tt.status, tt.body)

			w := httptest.NewRecorder()
			req := withSession(httptest.NewRequest(http.MethodGet, "/prepare/"+tt.topic, nil), 1)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, tt.expectedCalls, calls.Load())
			for _, text := range tt.expectedTexts {
				assert.Contains(t, w.Body.String(), text)
			}
		})
	}
}

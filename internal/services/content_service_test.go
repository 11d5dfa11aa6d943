package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/skillup/backend/internal/httpclient"
	"github.com/skillup/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestContentService_TopicURL(t *testing.T) {
	svc := NewContentService(httpclient.NewHTTPClient(), "https://cdn.example/content/", nil, zap.NewNop())

	url, ok := svc.TopicURL("python")
	assert.True(t, ok)
	assert.Equal(t, "https://cdn.example/content/python.json", url)

	for _, topic := range KnownTopics {
		_, ok := svc.TopicURL(topic)
		assert.True(t, ok, topic)
	}

	for _, topic := range []string{"unknown-topic", "", "Python", "../python", "python.json"} {
		_, ok := svc.TopicURL(topic)
		assert.False(t, ok, topic)
	}
}

func TestContentService_TopicContent(t *testing.T) {
	tests := []struct {
		name          string
		topic         string
		status        int
		body          string
		expectedError error
		expectedTitle string
		expectedHits  int32
	}{
		{
			name:          "document passed through",
			topic:         "python",
			status:        http.StatusOK,
			body:          `{"title":"Python","sections":[{"heading":"Basics"}]}`,
			expectedTitle: "Python",
			expectedHits:  1,
		},
		{
			name:          "unknown topic makes no request",
			topic:         "unknown-topic",
			expectedError: models.ErrTopicNotFound,
			expectedHits:  0,
		},
		{
			name:          "remote 404",
			topic:         "java",
			status:        http.StatusNotFound,
			body:          "404: Not Found",
			expectedError: models.ErrContentUnavailable,
			expectedHits:  1,
		},
		{
			name:          "malformed json",
			topic:         "cpp",
			status:        http.StatusOK,
			body:          `{"title": "C++"`,
			expectedError: models.ErrContentUnavailable,
			expectedHits:  1,
		},
		{
			name:          "json null",
			topic:         "c",
			status:        http.StatusOK,
			body:          `null`,
			expectedError: models.ErrContentUnavailable,
			expectedHits:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hits int32
			var gotPath string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&hits, 1)
				gotPath = r.URL.Path
				// raw GitHub content is served as text/plain
				w.Header().Set("Content-Type", "text/plain; charset=utf-8")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			svc := NewContentService(httpclient.NewHTTPClient(), server.URL+"/content", nil, zap.NewNop())

			content, err := svc.TopicContent(context.Background(), tt.topic)

			assert.Equal(t, tt.expectedHits, atomic.LoadInt32(&hits))
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, content)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "/content/"+tt.topic+".json", gotPath)
			assert.Equal(t, tt.expectedTitle, content.Title(tt.topic))
			assert.Len(t, content["sections"], 1)
		})
	}
}

func TestContentService_TopicContent_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	svc := NewContentService(httpclient.NewHTTPClient(), url, nil, zap.NewNop())

	content, err := svc.TopicContent(context.Background(), "python")
	assert.ErrorIs(t, err, models.ErrContentUnavailable)
	assert.Nil(t, content)
}

func TestContentService_RoleQuestions(t *testing.T) {
	files := fstest.MapFS{
		"frontend-developer.json": {Data: []byte(`[{"id":1,"question":"What is the DOM?","answer":"A tree."}]`)},
		"broken-role.json":        {Data: []byte(`{"question":`)},
	}
	svc := NewContentService(httpclient.NewHTTPClient(), "http://unused", files, zap.NewNop())

	tests := []struct {
		name          string
		slug          string
		expectedError error
		expectedCount int
	}{
		{name: "existing role", slug: "frontend-developer", expectedCount: 1},
		{name: "slug is lowercased", slug: "Frontend-Developer", expectedCount: 1},
		{name: "missing role", slug: "astronaut", expectedError: models.ErrTopicNotFound},
		{name: "malformed file", slug: "broken-role", expectedError: models.ErrContentUnavailable},
		{name: "path traversal", slug: "../secrets", expectedError: models.ErrTopicNotFound},
		{name: "nested path", slug: "a/b", expectedError: models.ErrTopicNotFound},
		{name: "empty slug", slug: "", expectedError: models.ErrTopicNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions, err := svc.RoleQuestions(context.Background(), tt.slug)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, questions)
				return
			}
			require.NoError(t, err)
			assert.Len(t, questions, tt.expectedCount)
		})
	}
}

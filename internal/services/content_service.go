package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"slices"
	"strings"

	"github.com/skillup/backend/internal/httpclient"
	"github.com/skillup/backend/internal/models"
	"go.uber.org/zap"
)

// KnownTopics is the fixed set of topics served from the remote content store
var KnownTopics = []string{
	"python",
	"java",
	"cpp",
	"javascript",
	"c",
	"data-structures",
	"algorithms",
	"oops",
	"dbms",
	"os",
	"cn",
	"web-dev",
	"system-design",
	"interview-prep",
}

// slugRegex accepts lowercase words joined by single hyphens, so a slug can never name a path outside the content dir
var slugRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// contentService resolves topic and role slugs to JSON documents
type contentService struct {
	http    *httpclient.HTTPClient
	baseURL string
	files   fs.FS
	logger  *zap.Logger
}

// NewContentService creates a content service reading remote topics from baseURL and role files from files
func NewContentService(http *httpclient.HTTPClient, baseURL string, files fs.FS, logger *zap.Logger) *contentService {
	return &contentService{
		http:    http,
		baseURL: strings.TrimRight(baseURL, "/"),
		files:   files,
		logger:  logger,
	}
}

// TopicURL returns the remote address of a topic document, or false for unknown topics
func (s *contentService) TopicURL(topic string) (string, bool) {
	if !slices.Contains(KnownTopics, topic) {
		return "", false
	}
	return fmt.Sprintf("%s/%s.json", s.baseURL, topic), true
}

// TopicContent fetches a topic document. Every call goes to the network; nothing is cached.
func (s *contentService) TopicContent(ctx context.Context, topic string) (models.TopicContent, error) {
	url, ok := s.TopicURL(topic)
	if !ok {
		return nil, models.ErrTopicNotFound
	}

	resp, err := s.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(url)
	if err != nil {
		s.logger.Warn("failed to fetch topic content", zap.String("topic", topic), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrContentUnavailable, err)
	}
	if err := httpclient.CheckResponse(resp); err != nil {
		s.logger.Warn("topic content request failed", zap.String("topic", topic), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", models.ErrContentUnavailable, err)
	}

	var content models.TopicContent
	if err := json.Unmarshal(resp.Body(), &content); err != nil || content == nil {
		s.logger.Warn("malformed topic content", zap.String("topic", topic), zap.Error(err))
		return nil, fmt.Errorf("%w: malformed document for %s", models.ErrContentUnavailable, topic)
	}

	return content, nil
}

// RoleQuestions reads the question list stored for a role slug
func (s *contentService) RoleQuestions(ctx context.Context, roleSlug string) ([]models.Question, error) {
	return readRoleFile(s.files, roleSlug)
}

// readRoleFile loads "<slug>.json" from files
func readRoleFile(files fs.FS, roleSlug string) ([]models.Question, error) {
	slug := strings.ToLower(roleSlug)
	if !slugRegex.MatchString(slug) {
		return nil, models.ErrTopicNotFound
	}

	questions, err := readQuestionFile(files, slug+".json")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, models.ErrTopicNotFound
	}
	return questions, err
}

// readQuestionFile decodes a JSON array of questions. Missing files are reported with fs.ErrNotExist.
func readQuestionFile(files fs.FS, name string) ([]models.Question, error) {
	data, err := fs.ReadFile(files, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", models.ErrContentUnavailable, err)
	}

	var questions []models.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("%w: malformed %s", models.ErrContentUnavailable, name)
	}
	if questions == nil {
		questions = []models.Question{}
	}

	return questions, nil
}

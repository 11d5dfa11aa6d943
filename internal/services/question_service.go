package services

import (
	"context"
	"errors"
	"io/fs"
	"slices"
	"strings"

	"github.com/skillup/backend/internal/models"
)

// dsaQuestionsFile is the local DSA question corpus
const dsaQuestionsFile = "questions-dsa.json"

// roleTopics lists the corpus topics used for roles without a dedicated question file
var roleTopics = map[string][]string{
	"frontend-developer":   {"arrays", "strings", "trees", "graphs"},
	"backend-developer":    {"arrays", "trees", "graphs", "dp"},
	"full-stack-developer": {"arrays", "strings", "trees", "graphs", "dp"},
	"devops-engineer":      {"system-design", "dbms", "os"},
	"mobile-developer":     {"arrays", "strings", "trees"},
	"data-engineer":        {"arrays", "dp", "system-design"},
}

// questionService queries the local question corpus
type questionService struct {
	files fs.FS
}

// NewQuestionService creates a question service reading from files
func NewQuestionService(files fs.FS) *questionService {
	return &questionService{files: files}
}

// All returns the whole DSA corpus; a missing corpus is an empty list
func (s *questionService) All(ctx context.Context) ([]models.Question, error) {
	questions, err := readQuestionFile(s.files, dsaQuestionsFile)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.Question{}, nil
	}
	return questions, err
}

// ByTopic returns corpus questions whose topic matches case-insensitively
func (s *questionService) ByTopic(ctx context.Context, topic string) ([]models.Question, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	topic = strings.ToLower(topic)
	return filterQuestions(all, func(q models.Question) bool {
		return strings.ToLower(q.Topic) == topic
	}), nil
}

// ByRole returns the dedicated question file of a role, falling back to corpus questions on the role's topics
func (s *questionService) ByRole(ctx context.Context, roleSlug string) ([]models.Question, error) {
	slug := strings.ToLower(roleSlug)

	questions, err := readRoleFile(s.files, slug)
	if err == nil {
		return questions, nil
	}
	if !errors.Is(err, models.ErrTopicNotFound) {
		return nil, err
	}

	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	topics := roleTopics[slug]
	return filterQuestions(all, func(q models.Question) bool {
		return slices.Contains(topics, strings.ToLower(q.Topic))
	}), nil
}

// Search returns corpus questions whose text contains query, ignoring case
func (s *questionService) Search(ctx context.Context, query string) ([]models.Question, error) {
	if query == "" {
		return nil, models.ErrInvalidInput
	}

	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(query)
	return filterQuestions(all, func(q models.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), query)
	}), nil
}

func filterQuestions(questions []models.Question, keep func(models.Question) bool) []models.Question {
	filtered := make([]models.Question, 0)
	for _, q := range questions {
		if keep(q) {
			filtered = append(filtered, q)
		}
	}
	return filtered
}

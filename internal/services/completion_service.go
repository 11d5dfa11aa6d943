package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/skillup/backend/internal/models"
	"go.uber.org/zap"
)

// defaultQuestionCount is used when the caller asks for a non-positive number of questions
const defaultQuestionCount = 10

// TextGenerator is the interface that wraps a single-turn call to a generative text API.
type TextGenerator interface {
	// Method GenerateText sends prompt to the model and returns its text reply.
	//
	// If the API is not configured, models.ErrCompletionDisabled will be returned together with an empty string.
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// completionService builds interview prompts and interprets the replies
type completionService struct {
	generator TextGenerator
	logger    *zap.Logger
}

// NewCompletionService creates a new completion service
func NewCompletionService(generator TextGenerator, logger *zap.Logger) *completionService {
	return &completionService{
		generator: generator,
		logger:    logger,
	}
}

func answerPrompt(question, role, topicContext string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are an expert technical interviewer helping candidates prepare for %s interviews.\n\n", role)
	fmt.Fprintf(&sb, "Question: %s\n\n", question)
	if topicContext != "" {
		fmt.Fprintf(&sb, "Context/Topics: %s\n\n", topicContext)
	}
	sb.WriteString(`Provide a comprehensive, well-structured answer that:
1. Directly answers the question
2. Includes technical details and best practices
3. Provides examples where relevant
4. Is concise but thorough (3-5 paragraphs)
5. Uses clear, professional language

Answer:`)
	return sb.String()
}

func questionsPrompt(role, topics string, count int) string {
	return fmt.Sprintf(`Generate %d interview questions with detailed answers for a %s position.

Topics to focus on: %s

For each question, provide:
1. A clear, specific interview question
2. A comprehensive answer (3-4 paragraphs)

Format your response as a JSON array with this structure:
[
  {
    "question": "Question text here",
    "answer": "Detailed answer here"
  }
]

Ensure questions are:
- Relevant to %s
- Cover different aspects of %s
- Range from basic to advanced
- Practical and commonly asked in real interviews`, count, role, topics, role, topics)
}

func resourcesPrompt(topic, role string) string {
	return fmt.Sprintf(`Provide learning resources and tips for %s in the context of %s interviews.

Include:
1. Key concepts to understand
2. Recommended learning approach
3. Best practices
4. Common pitfalls to avoid
5. Practice suggestions

Keep it concise and actionable.`, topic, role)
}

func (s *completionService) generate(ctx context.Context, prompt string) (string, error) {
	if s.generator == nil {
		return "", models.ErrCompletionDisabled
	}
	return s.generator.GenerateText(ctx, prompt)
}

// GenerateAnswer asks the model to answer a single interview question
func (s *completionService) GenerateAnswer(ctx context.Context, question, role, topicContext string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("%w: question is required", models.ErrInvalidInput)
	}

	answer, err := s.generate(ctx, answerPrompt(question, role, topicContext))
	if err != nil {
		return "", fmt.Errorf("failed to generate answer: %w", err)
	}

	return answer, nil
}

// GenerateQuestions asks the model for count question and answer pairs and decodes them from its reply
func (s *completionService) GenerateQuestions(ctx context.Context, role, topics string, count int) ([]models.GeneratedQuestion, error) {
	if strings.TrimSpace(role) == "" || strings.TrimSpace(topics) == "" {
		return nil, fmt.Errorf("%w: role and topics are required", models.ErrInvalidInput)
	}
	if count <= 0 {
		count = defaultQuestionCount
	}

	text, err := s.generate(ctx, questionsPrompt(role, topics, count))
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}

	questions, err := decodeGeneratedQuestions(text)
	if err != nil {
		s.logger.Warn("could not decode generated questions", zap.String("role", role), zap.Int("replyLength", len(text)))
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}

	return questions, nil
}

// GenerateResources asks the model for study advice on a topic
func (s *completionService) GenerateResources(ctx context.Context, topic, role string) (string, error) {
	if strings.TrimSpace(topic) == "" {
		return "", fmt.Errorf("%w: topic is required", models.ErrInvalidInput)
	}

	resources, err := s.generate(ctx, resourcesPrompt(topic, role))
	if err != nil {
		return "", fmt.Errorf("failed to generate resources: %w", err)
	}

	return resources, nil
}

// decodeGeneratedQuestions extracts the question array from a model reply.
// A single object or an object wrapping a "questions" array is accepted too.
func decodeGeneratedQuestions(text string) ([]models.GeneratedQuestion, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, err
	}

	var questions []models.GeneratedQuestion
	if err := json.Unmarshal(raw, &questions); err == nil {
		return nonEmptyQuestions(questions)
	}

	var wrapped struct {
		Questions []models.GeneratedQuestion `json:"questions"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Questions) > 0 {
		return nonEmptyQuestions(wrapped.Questions)
	}

	var single models.GeneratedQuestion
	if err := json.Unmarshal(raw, &single); err == nil {
		return nonEmptyQuestions([]models.GeneratedQuestion{single})
	}

	return nil, models.ErrUnparseableOutput
}

func nonEmptyQuestions(questions []models.GeneratedQuestion) ([]models.GeneratedQuestion, error) {
	kept := make([]models.GeneratedQuestion, 0, len(questions))
	for _, q := range questions {
		if strings.TrimSpace(q.Question) != "" {
			kept = append(kept, q)
		}
	}
	if len(kept) == 0 {
		return nil, models.ErrUnparseableOutput
	}
	return kept, nil
}

package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/skillup/backend/internal/models"
	"github.com/skillup/backend/internal/view"
	"go.uber.org/zap"
)

// defaultGeneratedQuestions is the number of questions requested when the caller gives no usable count
const defaultGeneratedQuestions = 10

// QuestionService is the interface that wraps queries over the local question corpus.
type QuestionService interface {
	// Method All returns the whole DSA corpus. A missing corpus is an empty list.
	All(ctx context.Context) ([]models.Question, error)
	// Method ByTopic returns corpus questions whose topic matches case-insensitively.
	ByTopic(ctx context.Context, topic string) ([]models.Question, error)
	// Method ByRole returns the role's own question file, or corpus questions on the role's topics.
	ByRole(ctx context.Context, roleSlug string) ([]models.Question, error)
	// Method Search returns corpus questions containing query.
	//
	// An empty query returns models.ErrInvalidInput.
	Search(ctx context.Context, query string) ([]models.Question, error)
}

// RoleContentService is the interface that wraps reading of the stored role question lists.
type RoleContentService interface {
	// Method RoleQuestions reads "<slug>.json" from the content directory.
	//
	// A missing file or invalid slug returns models.ErrTopicNotFound.
	RoleQuestions(ctx context.Context, roleSlug string) ([]models.Question, error)
}

// CompletionService is the interface that wraps the AI generation operations.
type CompletionService interface {
	// Method GenerateAnswer returns a model written answer for a single interview question.
	GenerateAnswer(ctx context.Context, question, role, topicContext string) (string, error)
	// Method GenerateQuestions returns count question and answer pairs for the role and topics.
	//
	// If the model reply cannot be decoded, the error wraps models.ErrUnparseableOutput.
	GenerateQuestions(ctx context.Context, role, topics string, count int) ([]models.GeneratedQuestion, error)
	// Method GenerateResources returns study advice for a topic.
	GenerateResources(ctx context.Context, topic, role string) (string, error)
}

// RoleCatalog maps role slugs to display titles and skill summaries.
type RoleCatalog struct {
	Title  func(slug string) string
	Skills func(slug string) string
}

// questionListResponse is the body of the question query endpoints
type questionListResponse struct {
	Success bool              `json:"success"`
	Topic   string            `json:"topic,omitempty"`
	Role    string            `json:"role,omitempty"`
	Query   string            `json:"query,omitempty"`
	Data    []models.Question `json:"data"`
	Count   int               `json:"count"`
}

type generateAnswerResponse struct {
	Success  bool   `json:"success"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type generateQuestionsResponse struct {
	Success   bool                       `json:"success"`
	Role      string                     `json:"role"`
	Topics    string                     `json:"topics"`
	Questions []models.GeneratedQuestion `json:"questions"`
	Count     int                        `json:"count"`
}

type generateResourcesResponse struct {
	Success   bool   `json:"success"`
	Topic     string `json:"topic"`
	Resources string `json:"resources"`
}

// PrepAIHandler handles the Prep AI pages and APIs
type PrepAIHandler struct {
	BaseHandler
	questions  QuestionService
	content    RoleContentService
	completion CompletionService
	roles      RoleCatalog
	users      UserFinder
	renderer   PageRenderer
}

// NewPrepAIHandler creates a new Prep AI handler
func NewPrepAIHandler(
	questions QuestionService,
	content RoleContentService,
	completion CompletionService,
	roles RoleCatalog,
	users UserFinder,
	renderer PageRenderer,
	logger *zap.Logger,
) *PrepAIHandler {
	return &PrepAIHandler{
		BaseHandler: BaseHandler{Logger: logger},
		questions:   questions,
		content:     content,
		completion:  completion,
		roles:       roles,
		users:       users,
		renderer:    renderer,
	}
}

// RegisterPublicRoutes registers routes reachable without a session
func (h *PrepAIHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/api/dsa-questions", h.DSAQuestions)
	r.Get("/dsa-question", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/prep-ai/dsa", http.StatusFound)
	})
}

// RegisterRoutes registers Prep AI routes. The router must already require a session.
func (h *PrepAIHandler) RegisterRoutes(r chi.Router) {
	r.Route("/prep-ai", func(r chi.Router) {
		r.Get("/", h.PrepAIPage)
		r.Get("/dsa", h.DSAPage)
		r.Get("/{role}", h.RolePage)

		r.Route("/api", func(r chi.Router) {
			r.Get("/all", h.AllQuestions)
			r.Get("/topic/{topicName}", h.QuestionsByTopic)
			r.Get("/role/{roleSlug}", h.QuestionsByRole)
			r.Get("/search", h.SearchQuestions)
			r.Post("/generate-answer", h.GenerateAnswer)
			r.Post("/generate-questions", h.GenerateQuestions)
			r.Post("/generate-resources", h.GenerateResources)
		})
	})
}

// PrepAIPage handles GET /prep-ai
func (h *PrepAIHandler) PrepAIPage(w http.ResponseWriter, r *http.Request) {
	userName, err := sessionUserName(r.Context(), h.users)
	if err != nil {
		h.Logger.Error("failed to load prep AI user", zap.Error(err))
		h.RenderHomeError(w, h.renderer, http.StatusInternalServerError, "Error loading prep AI")
		return
	}

	h.RenderPage(w, h.renderer, http.StatusOK, view.PageQuestionBank, view.PageData{
		Title:    "Prep AI - Skill Up",
		UserName: userName,
	})
}

// DSAPage handles GET /prep-ai/dsa
func (h *PrepAIHandler) DSAPage(w http.ResponseWriter, r *http.Request) {
	userName, err := sessionUserName(r.Context(), h.users)
	if err != nil {
		h.Logger.Error("failed to load DSA page user", zap.Error(err))
		h.RenderHomeError(w, h.renderer, http.StatusInternalServerError, "Error loading DSA questions")
		return
	}

	h.RenderPage(w, h.renderer, http.StatusOK, view.PageDSAQuestions, view.PageData{
		Title:    "DSA Questions - Skill Up",
		UserName: userName,
	})
}

// RolePage handles GET /prep-ai/{role}
// With ?generate=true the questions are generated by the model; on failure, or when nothing is
// generated, the role's stored question file is used.
func (h *PrepAIHandler) RolePage(w http.ResponseWriter, r *http.Request) {
	roleSlug := strings.ToLower(chi.URLParam(r, "role"))
	roleTitle := h.roles.Title(roleSlug)
	skills := h.roles.Skills(roleSlug)

	userName, err := sessionUserName(r.Context(), h.users)
	if err != nil {
		h.Logger.Error("failed to load interview prep user", zap.Error(err))
		h.RenderHomeError(w, h.renderer, http.StatusInternalServerError, "Error loading interview prep")
		return
	}

	var questions []models.Question
	if r.URL.Query().Get("generate") == "true" {
		generated, err := h.completion.GenerateQuestions(r.Context(), roleTitle, skills, defaultGeneratedQuestions)
		if err != nil {
			h.Logger.Warn("failed to generate role questions, using stored questions",
				zap.String("role", roleSlug), zap.Error(err))
		}
		for i, q := range generated {
			questions = append(questions, models.Question{ID: i + 1, Question: q.Question, Answer: q.Answer})
		}
	}

	if len(questions) == 0 {
		stored, err := h.content.RoleQuestions(r.Context(), roleSlug)
		if err != nil && !errors.Is(err, models.ErrTopicNotFound) {
			h.Logger.Error("failed to load role questions", zap.String("role", roleSlug), zap.Error(err))
			h.RenderHomeError(w, h.renderer, http.StatusInternalServerError, "Error loading interview prep")
			return
		}
		questions = stored
	}

	experience := r.URL.Query().Get("experience")
	if experience == "" {
		experience = "3"
	}

	h.RenderPage(w, h.renderer, http.StatusOK, view.PageInterviewPrep, view.PageData{
		Title:      roleTitle + " - Interview Prep - Skill Up",
		UserName:   userName,
		Role:       roleTitle,
		Skills:     skills,
		Experience: experience,
		Questions:  questions,
	})
}

// AllQuestions handles GET /prep-ai/api/all
// @Summary List DSA questions
// @Description Returns the whole local DSA question corpus
// @Tags prep-ai
// @Produce json
// @Success 200 {object} questionListResponse
// @Failure 500 {object} errorResponse "Failed to load questions"
// @Router /prep-ai/api/all [get]
func (h *PrepAIHandler) AllQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questions.All(r.Context())
	if err != nil {
		h.Logger.Error("failed to load questions", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "Failed to load questions")
		return
	}

	h.RespondJSON(w, http.StatusOK, questionListResponse{Success: true, Data: questions, Count: len(questions)})
}

// QuestionsByTopic handles GET /prep-ai/api/topic/{topicName}
// @Summary List DSA questions of a topic
// @Description Returns corpus questions whose topic matches, ignoring case
// @Tags prep-ai
// @Produce json
// @Param topicName path string true "Topic name, e.g. arrays"
// @Success 200 {object} questionListResponse
// @Failure 500 {object} errorResponse "Failed to load questions"
// @Router /prep-ai/api/topic/{topicName} [get]
func (h *PrepAIHandler) QuestionsByTopic(w http.ResponseWriter, r *http.Request) {
	topic := strings.ToLower(chi.URLParam(r, "topicName"))

	questions, err := h.questions.ByTopic(r.Context(), topic)
	if err != nil {
		h.Logger.Error("failed to load questions by topic", zap.String("topic", topic), zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "Failed to load questions")
		return
	}

	h.RespondJSON(w, http.StatusOK, questionListResponse{Success: true, Topic: topic, Data: questions, Count: len(questions)})
}

// QuestionsByRole handles GET /prep-ai/api/role/{roleSlug}
// @Summary List questions for a role
// @Description Returns the role's own question file, or corpus questions on the role's topics
// @Tags prep-ai
// @Produce json
// @Param roleSlug path string true "Role slug, e.g. frontend-developer"
// @Success 200 {object} questionListResponse
// @Failure 500 {object} errorResponse "Failed to load questions"
// @Router /prep-ai/api/role/{roleSlug} [get]
func (h *PrepAIHandler) QuestionsByRole(w http.ResponseWriter, r *http.Request) {
	roleSlug := strings.ToLower(chi.URLParam(r, "roleSlug"))

	questions, err := h.questions.ByRole(r.Context(), roleSlug)
	if err != nil {
		h.Logger.Error("failed to load questions by role", zap.String("role", roleSlug), zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "Failed to load questions")
		return
	}

	h.RespondJSON(w, http.StatusOK, questionListResponse{Success: true, Role: roleSlug, Data: questions, Count: len(questions)})
}

// SearchQuestions handles GET /prep-ai/api/search
// @Summary Search DSA questions
// @Description Case-insensitive substring search over the question text
// @Tags prep-ai
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {object} questionListResponse
// @Failure 400 {object} errorResponse "Search query required"
// @Failure 500 {object} errorResponse "Search failed"
// @Router /prep-ai/api/search [get]
func (h *PrepAIHandler) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	questions, err := h.questions.Search(r.Context(), query)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			h.RespondError(w, http.StatusBadRequest, "Search query required")
			return
		}
		h.Logger.Error("failed to search questions", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	h.RespondJSON(w, http.StatusOK, questionListResponse{Success: true, Query: query, Data: questions, Count: len(questions)})
}

// GenerateAnswer handles POST /prep-ai/api/generate-answer
// @Summary Generate an answer
// @Description Asks the model to answer a single interview question
// @Tags prep-ai
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body models.GenerateAnswerRequest true "Question with optional role and context"
// @Success 200 {object} generateAnswerResponse
// @Failure 400 {object} errorResponse "Question is required"
// @Failure 500 {object} errorResponse "Generation failed"
// @Router /prep-ai/api/generate-answer [post]
func (h *PrepAIHandler) GenerateAnswer(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateAnswerRequest
	if err := decodeRequest(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		h.RespondError(w, http.StatusBadRequest, "Question is required")
		return
	}

	answer, err := h.completion.GenerateAnswer(r.Context(), req.Question, req.Role, req.Context)
	if err != nil {
		h.Logger.Error("failed to generate answer", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, completionErrorMessage(err, "Failed to generate answer"))
		return
	}

	h.RespondJSON(w, http.StatusOK, generateAnswerResponse{Success: true, Question: req.Question, Answer: answer})
}

// GenerateQuestions handles POST /prep-ai/api/generate-questions
// @Summary Generate interview questions
// @Description Asks the model for question and answer pairs on the given role and topics
// @Tags prep-ai
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body models.GenerateQuestionsRequest true "Role, topics and optional count (default 10)"
// @Success 200 {object} generateQuestionsResponse
// @Failure 400 {object} errorResponse "Role and topics are required"
// @Failure 500 {object} errorResponse "Generation failed"
// @Router /prep-ai/api/generate-questions [post]
func (h *PrepAIHandler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateQuestionsRequest
	if err := decodeRequest(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Role) == "" || strings.TrimSpace(req.Topics) == "" {
		h.RespondError(w, http.StatusBadRequest, "Role and topics are required")
		return
	}

	count, err := strconv.Atoi(strings.TrimSpace(req.Count))
	if err != nil || count <= 0 {
		count = defaultGeneratedQuestions
	}

	questions, err := h.completion.GenerateQuestions(r.Context(), req.Role, req.Topics, count)
	if err != nil {
		h.Logger.Error("failed to generate questions", zap.String("role", req.Role), zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, completionErrorMessage(err, "Failed to generate questions"))
		return
	}

	h.RespondJSON(w, http.StatusOK, generateQuestionsResponse{
		Success:   true,
		Role:      req.Role,
		Topics:    req.Topics,
		Questions: questions,
		Count:     len(questions),
	})
}

// GenerateResources handles POST /prep-ai/api/generate-resources
// @Summary Generate learning resources
// @Description Asks the model for study advice on a topic
// @Tags prep-ai
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body models.GenerateResourcesRequest true "Topic with optional role"
// @Success 200 {object} generateResourcesResponse
// @Failure 400 {object} errorResponse "Topic is required"
// @Failure 500 {object} errorResponse "Generation failed"
// @Router /prep-ai/api/generate-resources [post]
func (h *PrepAIHandler) GenerateResources(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateResourcesRequest
	if err := decodeRequest(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		h.RespondError(w, http.StatusBadRequest, "Topic is required")
		return
	}

	resources, err := h.completion.GenerateResources(r.Context(), req.Topic, req.Role)
	if err != nil {
		h.Logger.Error("failed to generate resources", zap.String("topic", req.Topic), zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, completionErrorMessage(err, "Failed to generate resources"))
		return
	}

	h.RespondJSON(w, http.StatusOK, generateResourcesResponse{Success: true, Topic: req.Topic, Resources: resources})
}

// DSAQuestions handles GET /api/dsa-questions
// @Summary Raw DSA corpus
// @Description Returns the local DSA question corpus as a plain array
// @Tags questions
// @Produce json
// @Success 200 {array} models.Question
// @Failure 500 {object} authResponse "Error loading questions"
// @Router /api/dsa-questions [get]
func (h *PrepAIHandler) DSAQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questions.All(r.Context())
	if err != nil {
		h.Logger.Error("failed to load DSA questions", zap.Error(err))
		h.RespondJSON(w, http.StatusInternalServerError, authResponse{Success: false, Message: "Error loading questions"})
		return
	}

	h.RespondJSON(w, http.StatusOK, questions)
}

// completionErrorMessage turns a generation failure into a client facing message without upstream details
func completionErrorMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, models.ErrCompletionDisabled):
		return fallback + ": AI generation is not configured"
	case errors.Is(err, models.ErrUnparseableOutput):
		return fallback + ": " + models.ErrUnparseableOutput.Error()
	default:
		return fallback
	}
}

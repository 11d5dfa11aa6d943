package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skillup/backend/internal/models"
	"github.com/skillup/backend/internal/view"
	"go.uber.org/zap"
)

// TopicContentService is the interface that wraps remote topic content retrieval.
type TopicContentService interface {
	// Method TopicContent fetches the JSON document of a prepare topic.
	//
	// Unknown topics return models.ErrTopicNotFound without any network call.
	// Any failure to fetch or decode the document returns an error wrapping models.ErrContentUnavailable.
	TopicContent(ctx context.Context, topic string) (models.TopicContent, error)
}

// PrepareHandler handles the topic preparation pages
type PrepareHandler struct {
	BaseHandler
	content  TopicContentService
	users    UserFinder
	renderer PageRenderer
}

// NewPrepareHandler creates a new prepare handler
func NewPrepareHandler(content TopicContentService, users UserFinder, renderer PageRenderer, logger *zap.Logger) *PrepareHandler {
	return &PrepareHandler{
		BaseHandler: BaseHandler{Logger: logger},
		content:     content,
		users:       users,
		renderer:    renderer,
	}
}

// RegisterRoutes registers prepare routes. The router must already require a session.
func (h *PrepareHandler) RegisterRoutes(r chi.Router) {
	r.Get("/prepare/{topic}", h.Prepare)
}

// Prepare handles GET /prepare/{topic}
func (h *PrepareHandler) Prepare(w http.ResponseWriter, r *http.Request) {
	topic := chi.URLParam(r, "topic")

	content, err := h.content.TopicContent(r.Context(), topic)
	if err != nil {
		if errors.Is(err, models.ErrTopicNotFound) {
			h.RenderHomeError(w, h.renderer, http.StatusNotFound, "Topic not found")
			return
		}
		h.Logger.Error("failed to load prepare content", zap.String("topic", topic), zap.Error(err))
		h.RenderHomeError(w, h.renderer, http.StatusInternalServerError, "Content not available yet. Please try again later.")
		return
	}

	userName, err := sessionUserName(r.Context(), h.users)
	if err != nil {
		h.Logger.Error("failed to load prepare user", zap.Error(err))
		h.RenderHomeError(w, h.renderer, http.StatusInternalServerError, "Content not available yet. Please try again later.")
		return
	}

	h.RenderPage(w, h.renderer, http.StatusOK, view.PagePrepare, view.PageData{
		Title:    content.Title(topic) + " - Skill Up",
		UserName: userName,
		Topic:    topic,
		Content:  content,
	})
}

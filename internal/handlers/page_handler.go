package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	authmiddleware "github.com/skillup/backend/internal/auth/middleware"
	"github.com/skillup/backend/internal/models"
	"github.com/skillup/backend/internal/view"
	"go.uber.org/zap"
)

// UserFinder is the interface that wraps user lookup by ID.
type UserFinder interface {
	// Method FindByID returns the user with the given ID.
	//
	// If there is no such user, models.ErrUserNotFound will be returned together with "nil" value.
	FindByID(ctx context.Context, id int) (*models.User, error)
}

// PageHandler handles the home page and the static signed-in pages
type PageHandler struct {
	BaseHandler
	users    UserFinder
	renderer PageRenderer
	topics   []string
}

// NewPageHandler creates a new page handler. topics are the prepare sections linked from the dashboard.
func NewPageHandler(users UserFinder, renderer PageRenderer, topics []string, logger *zap.Logger) *PageHandler {
	return &PageHandler{
		BaseHandler: BaseHandler{Logger: logger},
		users:       users,
		renderer:    renderer,
		topics:      topics,
	}
}

// RegisterPublicRoutes registers routes reachable without a session
func (h *PageHandler) RegisterPublicRoutes(r chi.Router) {
	r.Get("/", h.Home)
}

// RegisterRoutes registers page routes. The router must already require a session.
func (h *PageHandler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard", h.Dashboard)
	r.Get("/mock-test", h.MockTest)
	r.Get("/question-bank", h.QuestionBank)
}

// Home handles GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.RenderPage(w, h.renderer, http.StatusOK, view.PageIndex, view.PageData{
		Title:       "Skill Up - Interviews Optimized",
		ActiveUsers: "10,000+",
		Error:       r.URL.Query().Get("error"),
	})
}

// Dashboard handles GET /dashboard
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userName, err := sessionUserName(r.Context(), h.users)
	if err != nil {
		h.Logger.Error("failed to load dashboard user", zap.Error(err))
		h.RenderHomeError(w, h.renderer, http.StatusInternalServerError, "Error loading dashboard")
		return
	}

	h.RenderPage(w, h.renderer, http.StatusOK, view.PageDashboard, view.PageData{
		Title:    "Dashboard - Skill Up",
		UserName: userName,
		Topics:   h.topics,
	})
}

// MockTest handles GET /mock-test
func (h *PageHandler) MockTest(w http.ResponseWriter, r *http.Request) {
	userName, err := sessionUserName(r.Context(), h.users)
	if err != nil {
		h.Logger.Error("failed to load mock test user", zap.Error(err))
		h.RenderHomeError(w, h.renderer, http.StatusInternalServerError, "Error loading mock test")
		return
	}

	h.RenderPage(w, h.renderer, http.StatusOK, view.PageMockTest, view.PageData{
		Title:    "Mock Test - Skill Up",
		UserName: userName,
	})
}

// QuestionBank handles GET /question-bank
func (h *PageHandler) QuestionBank(w http.ResponseWriter, r *http.Request) {
	userName, err := sessionUserName(r.Context(), h.users)
	if err != nil {
		h.Logger.Error("failed to load question bank user", zap.Error(err))
		h.RenderHomeError(w, h.renderer, http.StatusInternalServerError, "Error loading question bank")
		return
	}

	h.RenderPage(w, h.renderer, http.StatusOK, view.PageQuestionBank, view.PageData{
		Title:    "Question Bank - Skill Up",
		UserName: userName,
	})
}

// sessionUserName returns the display name of the session owner.
// A session whose user no longer exists reads as "User".
func sessionUserName(ctx context.Context, users UserFinder) (string, error) {
	session, ok := authmiddleware.GetSession(ctx)
	if !ok {
		return (*models.User)(nil).DisplayName(), nil
	}

	user, err := users.FindByID(ctx, session.UserID)
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		return "", err
	}
	return user.DisplayName(), nil
}

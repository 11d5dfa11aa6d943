package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SessionCleaner is the interface that wraps removal of expired sessions.
type SessionCleaner interface {
	// Method CleanExpired deletes every session whose expiry has passed and returns how many were removed.
	CleanExpired(ctx context.Context) (int, error)
}

type sessionCleaningResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	DeletedCount int    `json:"deletedCount"`
}

// SessionCleaningHandler handles session cleaning requests
type SessionCleaningHandler struct {
	BaseHandler
	sessions SessionCleaner
}

// NewSessionCleaningHandler creates a new session cleaning handler
func NewSessionCleaningHandler(sessions SessionCleaner, logger *zap.Logger) *SessionCleaningHandler {
	return &SessionCleaningHandler{
		BaseHandler: BaseHandler{Logger: logger},
		sessions:    sessions,
	}
}

// RegisterRoutes registers session cleaning handler routes. The router must already check the API key.
func (h *SessionCleaningHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/sessions/clean", h.CleanSessions)
}

// CleanSessions handles GET /api/sessions/clean
// @Summary Clean expired sessions
// @Description Removes all sessions whose expiry time has passed
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} sessionCleaningResponse "Session cleaning completed successfully"
// @Failure 401 {object} errorResponse "Invalid or missing API key"
// @Failure 500 {object} errorResponse "Internal server error"
// @Router /api/sessions/clean [get]
func (h *SessionCleaningHandler) CleanSessions(w http.ResponseWriter, r *http.Request) {
	deletedCount, err := h.sessions.CleanExpired(r.Context())
	if err != nil {
		h.Logger.Error("failed to delete expired sessions", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to clean sessions")
		return
	}

	// 0 deleted rows is not an error
	h.Logger.Info("session cleaning completed successfully", zap.Int("deletedCount", deletedCount))
	h.RespondJSON(w, http.StatusOK, sessionCleaningResponse{
		Success:      true,
		Message:      "session cleaning completed successfully",
		DeletedCount: deletedCount,
	})
}

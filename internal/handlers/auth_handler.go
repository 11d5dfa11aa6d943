package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	authmiddleware "github.com/skillup/backend/internal/auth/middleware"
	"github.com/skillup/backend/internal/models"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for signup and login business logic.
type AuthService interface {
	// Method Signup creates a new account from an already validated request.
	//
	// If the email is already registered, models.ErrEmailTaken will be returned together with "nil" value.
	Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error)
	// Method Login checks the credentials and returns the matching user.
	//
	// Unknown email and wrong password both return models.ErrInvalidCredentials.
	Login(ctx context.Context, req *models.LoginRequest) (*models.User, error)
}

// SessionIssuer is the interface that wraps session lifecycle methods used by the auth endpoints.
type SessionIssuer interface {
	// Method Issue creates a session for the user and returns the signed cookie value.
	Issue(ctx context.Context, user *models.User) (string, *models.Session, error)
	// Method Destroy removes the session referenced by the signed cookie value.
	//
	// A cookie that cannot be verified is not an error.
	Destroy(ctx context.Context, cookieValue string) error
}

// RequestValidator is the interface that wraps schema validation of decoded requests.
type RequestValidator interface {
	// Method Validate returns one human readable message per failing field, or an empty slice.
	Validate(schema any) []string
}

// authResponse is the body of signup and login responses
type authResponse struct {
	Success     bool     `json:"success"`
	Message     string   `json:"message"`
	RedirectURL string   `json:"redirectUrl,omitempty"`
	Errors      []string `json:"errors,omitempty"`
}

var invalidCredentialsResponse = authResponse{Success: false, Message: "Invalid email or password"}

// AuthHandler handles signup, login and logout requests
type AuthHandler struct {
	BaseHandler
	authService  AuthService
	sessions     SessionIssuer
	validator    RequestValidator
	sessionTTL   time.Duration
	cookieSecure bool
	// authRateLimit is the number of signup/login attempts allowed per IP per minute
	authRateLimit int
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	authService AuthService,
	sessions SessionIssuer,
	validator RequestValidator,
	logger *zap.Logger,
	sessionTTL time.Duration,
	cookieSecure bool,
) *AuthHandler {
	return &AuthHandler{
		BaseHandler:   BaseHandler{Logger: logger},
		authService:   authService,
		sessions:      sessions,
		validator:     validator,
		sessionTTL:    sessionTTL,
		cookieSecure:  cookieSecure,
		authRateLimit: 10,
	}
}

// RegisterRoutes registers all auth handler routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(h.authRateLimit, time.Minute))
		r.Post("/api/signup", h.Signup)
		r.Post("/api/login", h.Login)
	})
	r.Get("/logout", h.Logout)
	r.Get("/api/logout", h.Logout)
}

// Signup handles POST /api/signup
// @Summary Create an account
// @Description Validates the signup form, creates the user and starts a session cookie
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body models.SignupRequest true "Signup form"
// @Success 200 {object} authResponse "Signup successful"
// @Failure 400 {object} authResponse "Validation failed or email already registered"
// @Failure 500 {object} authResponse "Internal server error"
// @Router /api/signup [post]
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := decodeRequest(r, &req); err != nil {
		h.RespondJSON(w, http.StatusBadRequest, authResponse{Success: false, Message: "Invalid request body"})
		return
	}
	req.Normalize()

	if messages := h.validator.Validate(&req); len(messages) > 0 {
		h.RespondJSON(w, http.StatusBadRequest, authResponse{
			Success: false,
			Message: messages[0],
			Errors:  messages,
		})
		return
	}

	user, err := h.authService.Signup(r.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			h.RespondJSON(w, http.StatusBadRequest, authResponse{Success: false, Message: "Email already registered"})
			return
		}
		h.Logger.Error("failed to sign up user", zap.Error(err))
		h.RespondJSON(w, http.StatusInternalServerError, authResponse{Success: false, Message: "Internal server error"})
		return
	}

	if !h.startSession(w, r, user) {
		return
	}

	h.RespondJSON(w, http.StatusOK, authResponse{
		Success:     true,
		Message:     "Signup successful!",
		RedirectURL: "/dashboard",
	})
}

// Login handles POST /api/login
// @Summary Log in
// @Description Checks email and password and starts a session cookie. Unknown email and wrong password produce the same response.
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body models.LoginRequest true "Login form"
// @Success 200 {object} authResponse "Login successful"
// @Failure 400 {object} authResponse "Validation failed"
// @Failure 401 {object} authResponse "Invalid email or password"
// @Failure 500 {object} authResponse "Internal server error"
// @Router /api/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeRequest(r, &req); err != nil {
		h.RespondJSON(w, http.StatusBadRequest, authResponse{Success: false, Message: "Invalid request body"})
		return
	}
	req.Normalize()

	if messages := h.validator.Validate(&req); len(messages) > 0 {
		h.RespondJSON(w, http.StatusBadRequest, authResponse{
			Success: false,
			Message: messages[0],
			Errors:  messages,
		})
		return
	}

	user, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			h.RespondJSON(w, http.StatusUnauthorized, invalidCredentialsResponse)
			return
		}
		h.Logger.Error("failed to log in user", zap.Error(err))
		h.RespondJSON(w, http.StatusInternalServerError, authResponse{Success: false, Message: "Internal server error"})
		return
	}

	if !h.startSession(w, r, user) {
		return
	}

	h.RespondJSON(w, http.StatusOK, authResponse{
		Success:     true,
		Message:     "Login successful!",
		RedirectURL: "/dashboard",
	})
}

// Logout handles GET /logout and GET /api/logout
// @Summary Log out
// @Description Destroys the current session, clears the cookie and redirects to the home page
// @Tags auth
// @Success 303 "Redirect to /"
// @Router /logout [get]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(authmiddleware.SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			h.Logger.Warn("failed to destroy session", zap.Error(err))
		}
	}

	authmiddleware.ClearSessionCookie(w, h.cookieSecure)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// startSession issues a session and sets its cookie. It writes the error response itself and reports success.
func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, user *models.User) bool {
	cookieValue, _, err := h.sessions.Issue(r.Context(), user)
	if err != nil {
		h.Logger.Error("failed to issue session", zap.Int("userID", user.ID), zap.Error(err))
		h.RespondJSON(w, http.StatusInternalServerError, authResponse{Success: false, Message: "Internal server error"})
		return false
	}

	authmiddleware.SetSessionCookie(w, cookieValue, h.sessionTTL, h.cookieSecure)
	return true
}

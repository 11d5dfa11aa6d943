// Package router assembles the HTTP routing tree of the application
package router

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	authmiddleware "github.com/skillup/backend/internal/auth/middleware"
	"github.com/skillup/backend/internal/handlers"
	loggerMiddleware "github.com/skillup/backend/internal/logger/middleware"
	"github.com/skillup/backend/internal/middlewares"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// Defaults applied when Options leaves a limit at zero
const (
	DefaultRequestsPerMinute = 100
	DefaultMaxRequestSize    = 1 << 20 // 1MB
)

// Options configures the middleware chain and the protected route groups
type Options struct {
	Logger         *zap.Logger
	AllowedOrigins []string
	// APIKey guards the service endpoints; empty rejects every call to them
	APIKey string
	// Sessions resolves the session cookie for the signed-in pages
	Sessions authmiddleware.SessionResolver
	// CookieSecure marks the refreshed session cookie as Secure
	CookieSecure bool
	// SwaggerURL is where the swagger UI loads doc.json from
	SwaggerURL        string
	RequestsPerMinute int
	MaxRequestSize    int64
}

// Handlers groups every route handler of the application
type Handlers struct {
	Health          *handlers.HealthHandler
	Auth            *handlers.AuthHandler
	Pages           *handlers.PageHandler
	Prepare         *handlers.PrepareHandler
	PrepAI          *handlers.PrepAIHandler
	SessionCleaning *handlers.SessionCleaningHandler
}

// NewRouter builds the router with the shared middleware chain applied to every route.
// Pages and Prep AI routes sit behind the session gate, which redirects to the home page;
// the session cleaning endpoint sits behind the API key check.
func NewRouter(opts Options, h Handlers) chi.Router {
	if opts.RequestsPerMinute <= 0 {
		opts.RequestsPerMinute = DefaultRequestsPerMinute
	}
	if opts.MaxRequestSize <= 0 {
		opts.MaxRequestSize = DefaultMaxRequestSize
	}

	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(loggerMiddleware.LoggerMiddleware(opts.Logger))
	r.Use(middlewares.RecoveryMiddleware(opts.Logger))
	r.Use(middlewares.CORSMiddleware(opts.AllowedOrigins))
	r.Use(middlewares.SecurityHeadersMiddleware)
	r.Use(httprate.LimitByIP(opts.RequestsPerMinute, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(opts.MaxRequestSize))

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(opts.SwaggerURL)))

	// Public routes
	h.Health.RegisterRoutes(r)
	h.Auth.RegisterRoutes(r)
	h.Pages.RegisterPublicRoutes(r)
	h.PrepAI.RegisterPublicRoutes(r)

	// Signed-in routes
	r.Group(func(r chi.Router) {
		r.Use(authmiddleware.RequireSession(opts.Sessions, "/", opts.CookieSecure))
		h.Pages.RegisterRoutes(r)
		h.Prepare.RegisterRoutes(r)
		h.PrepAI.RegisterRoutes(r)
	})

	// Service routes
	r.Group(func(r chi.Router) {
		r.Use(authmiddleware.APIKeyMiddleware(opts.APIKey))
		h.SessionCleaning.RegisterRoutes(r)
	})

	return r
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/skillup/backend/docs"
	"github.com/skillup/backend/internal/auth/service"
	"github.com/skillup/backend/internal/config"
	"github.com/skillup/backend/internal/gemini"
	"github.com/skillup/backend/internal/handlers"
	"github.com/skillup/backend/internal/httpclient"
	"github.com/skillup/backend/internal/logger"
	"github.com/skillup/backend/internal/repositories"
	"github.com/skillup/backend/internal/router"
	"github.com/skillup/backend/internal/services"
	"github.com/skillup/backend/internal/view"
	"go.uber.org/zap"
)

// @title Skill Up API
// @version 1.0
// @description JSON endpoints of the Skill Up interview preparation server
// @termsOfService http://swagger.io/terms/

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:3000
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Skill Up server")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	sessionRepo, closeSessionStore, err := newSessionRepository(cfg, db)
	if err != nil {
		logger.Logger.Fatal("Failed to initialize session store", zap.Error(err))
	}
	defer closeSessionStore()

	// Initialize outbound clients
	httpClient := httpclient.NewHTTPClient()
	var textGenerator services.TextGenerator
	if geminiClient := gemini.NewClient(httpClient, cfg.Gemini.BaseURL, cfg.Gemini.Model, cfg.Gemini.APIKey); geminiClient != nil {
		textGenerator = geminiClient
	} else {
		logger.Logger.Warn("GEMINI_API_KEY is not set, AI generation is disabled")
	}

	// Initialize services
	contentFiles := os.DirFS(cfg.Content.Dir)
	credentialStore := services.NewCredentialStore(userRepo, cfg.BcryptCost)
	authService := services.NewAuthService(credentialStore, logger.Logger)
	sessionService := services.NewSessionService(sessionRepo, service.NewSessionSigner(cfg.Session.Secret), cfg.Session.TTL, logger.Logger)
	contentService := services.NewContentService(httpClient, cfg.Content.BaseURL, contentFiles, logger.Logger)
	questionService := services.NewQuestionService(contentFiles)
	completionService := services.NewCompletionService(textGenerator, logger.Logger)

	renderer, err := view.NewRenderer()
	if err != nil {
		logger.Logger.Fatal("Failed to parse page templates", zap.Error(err))
	}

	// Initialize handlers
	appHandlers := router.Handlers{
		Health: handlers.NewHealthHandler(db, logger.Logger),
		Auth: handlers.NewAuthHandler(
			authService,
			sessionService,
			services.NewSchemaValidator(),
			logger.Logger,
			cfg.Session.TTL,
			cfg.Session.CookieSecure,
		),
		Pages:   handlers.NewPageHandler(credentialStore, renderer, services.KnownTopics, logger.Logger),
		Prepare: handlers.NewPrepareHandler(contentService, credentialStore, renderer, logger.Logger),
		PrepAI: handlers.NewPrepAIHandler(
			questionService,
			contentService,
			completionService,
			handlers.RoleCatalog{Title: services.RoleTitle, Skills: services.RoleSkills},
			credentialStore,
			renderer,
			logger.Logger,
		),
		SessionCleaning: handlers.NewSessionCleaningHandler(sessionService, logger.Logger),
	}

	// Setup router
	r := router.NewRouter(router.Options{
		Logger:         logger.Logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		APIKey:         cfg.APIKey,
		Sessions:       sessionService,
		CookieSecure:   cfg.Session.CookieSecure,
		SwaggerURL:     fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port),
	}, appHandlers)

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // AI generation can take a while
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// newSessionRepository picks the session store configured by SESSION_STORE.
// The returned func releases the store's own connections.
func newSessionRepository(cfg *config.Config, db *sql.DB) (services.SessionRepository, func(), error) {
	if cfg.Session.Store != config.SessionStoreRedis {
		return repositories.NewSessionRepository(db, logger.Logger), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Logger.Info("Using Redis session store", zap.String("addr", cfg.RedisAddr()))
	return repositories.NewRedisSessionRepository(client, logger.Logger), func() { client.Close() }, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "skillup_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Get the working directory or use migrations folder relative to the binary
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	authmiddleware "github.com/skillup/backend/internal/auth/middleware"
	"github.com/skillup/backend/internal/auth/service"
	"github.com/skillup/backend/internal/config"
	"github.com/skillup/backend/internal/handlers"
	"github.com/skillup/backend/internal/httpclient"
	"github.com/skillup/backend/internal/repositories"
	"github.com/skillup/backend/internal/router"
	"github.com/skillup/backend/internal/services"
	"github.com/skillup/backend/internal/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testAPIKey = "integration-api-key"

var (
	testDB     *sql.DB
	testRouter chi.Router
	testLogger *zap.Logger
)

// cleanupTestData removes all test data
func cleanupTestData(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec("DELETE FROM sessions")
	require.NoError(t, err, "Failed to cleanup sessions")
	_, err = db.Exec("DELETE FROM users")
	require.NoError(t, err, "Failed to cleanup users")
}

// requireDB skips the test when no test database is configured
func requireDB(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	if testDB == nil {
		t.Skip("TEST_DB_HOST is not set, skipping integration tests")
	}
	cleanupTestData(t, testDB)
	t.Cleanup(func() { cleanupTestData(t, testDB) })
}

// setupTestRouter creates a test router backed by the MySQL repositories
func setupTestRouter(db *sql.DB, logger *zap.Logger) (chi.Router, error) {
	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}

	files := fstest.MapFS{
		"questions-dsa.json": {Data: []byte(`[{"id":1,"topic":"arrays","question":"Two sum"}]`)},
	}
	content := services.NewContentService(httpclient.NewHTTPClient(), "http://content.invalid", files, logger)
	store := services.NewCredentialStore(repositories.NewUserRepository(db, logger), bcrypt.MinCost)
	sessions := services.NewSessionService(
		repositories.NewSessionRepository(db, logger),
		service.NewSessionSigner("test-secret-key-for-integration-tests"),
		time.Hour,
		logger,
	)

	return router.NewRouter(router.Options{
		Logger:         logger,
		AllowedOrigins: []string{"*"},
		APIKey:         testAPIKey,
		Sessions:       sessions,
		SwaggerURL:     "/swagger/doc.json",
	}, router.Handlers{
		Health: handlers.NewHealthHandler(db, logger),
		Auth: handlers.NewAuthHandler(
			services.NewAuthService(store, logger),
			sessions,
			services.NewSchemaValidator(),
			logger,
			time.Hour,
			false,
		),
		Pages:   handlers.NewPageHandler(store, renderer, services.KnownTopics, logger),
		Prepare: handlers.NewPrepareHandler(content, store, renderer, logger),
		PrepAI: handlers.NewPrepAIHandler(
			services.NewQuestionService(files),
			content,
			services.NewCompletionService(nil, logger),
			handlers.RoleCatalog{Title: services.RoleTitle, Skills: services.RoleSkills},
			store,
			renderer,
			logger,
		),
		SessionCleaning: handlers.NewSessionCleaningHandler(sessions, logger),
	}), nil
}

// TestMain sets up and tears down the test environment
func TestMain(m *testing.M) {
	// Initialize logger
	var err error
	testLogger, err = zap.NewDevelopment()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}

	// Setup test database
	cfg, err := config.LoadTestConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load test config: %v", err))
	}

	if dsn := cfg.DSN(); dsn != "" {
		testDB, err = sql.Open("mysql", dsn+"&multiStatements=true")
		if err != nil {
			panic(fmt.Sprintf("Failed to connect to test database: %v", err))
		}
		if err = testDB.Ping(); err != nil {
			panic(fmt.Sprintf("Failed to ping test database: %v", err))
		}
		if err = runTestMigrations(testDB); err != nil {
			panic(fmt.Sprintf("Failed to run migrations: %v", err))
		}

		testRouter, err = setupTestRouter(testDB, testLogger)
		if err != nil {
			panic(fmt.Sprintf("Failed to setup router: %v", err))
		}
	}

	// Run tests
	code := m.Run()

	// Cleanup
	if testDB != nil {
		testDB.Close()
	}
	os.Exit(code)
}

// runTestMigrations applies the schema from the repository migrations
func runTestMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "skillup_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://../../migrations", "mysql", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func postJSON(path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	return w
}

func get(path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == authmiddleware.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestIntegration_Signup(t *testing.T) {
	requireDB(t)

	signup := `{"name":"Al","email":"a@b.com","phone":"1234567890","password":"secret"}`

	w := postJSON("/api/signup", signup)
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Signup successful!", resp["message"])
	assert.NotNil(t, sessionCookie(w))

	// Stored password is a bcrypt hash, never the plain text
	var hash string
	require.NoError(t, testDB.QueryRow("SELECT password_hash FROM users WHERE email = ?", "a@b.com").Scan(&hash))
	assert.NotEqual(t, "secret", hash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("secret")))

	w = postJSON("/api/signup", signup)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Email already registered"}`, w.Body.String())

	var count int
	require.NoError(t, testDB.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestIntegration_LoginSessionLogout(t *testing.T) {
	requireDB(t)

	w := postJSON("/api/signup", `{"name":"Ada","email":"ada@example.com","phone":"+1 555 010 0000","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code)

	unknown := postJSON("/api/login", `{"email":"nobody@example.com","password":"secret"}`)
	wrong := postJSON("/api/login", `{"email":"ada@example.com","password":"wrong-password"}`)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, unknown.Body.String(), wrong.Body.String())

	w = postJSON("/api/login", `{"email":"ada@example.com","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)

	w = get("/dashboard", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome back, Ada")

	w = get("/logout", cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = get("/dashboard", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestIntegration_SessionCleaning(t *testing.T) {
	requireDB(t)

	w := postJSON("/api/signup", `{"name":"Al","email":"a@b.com","phone":"1234567890","password":"secret"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var userID int
	require.NoError(t, testDB.QueryRow("SELECT id FROM users WHERE email = ?", "a@b.com").Scan(&userID))
	_, err := testDB.ExecContext(context.Background(),
		"INSERT INTO sessions (id, user_id, user_email, created_at, expires_at) VALUES (?, ?, ?, ?, ?)",
		"expired-session", userID, "a@b.com", time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions/clean", nil)
	req.Header.Set("X-API-Key", testAPIKey)
	w = httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"message":"session cleaning completed successfully","deletedCount":1}`, w.Body.String())

	var remaining int
	require.NoError(t, testDB.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&remaining))
	assert.Equal(t, 1, remaining)
}

func TestIntegration_Health(t *testing.T) {
	requireDB(t)

	w := get("/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

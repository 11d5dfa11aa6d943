// Package config provides configuration for the application
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session store kinds
const (
	SessionStoreMySQL = "mysql"
	SessionStoreRedis = "redis"
)

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Server   ServerConfig
	Logging  LoggingConfig
	CORS     CORSConfig
	Session  SessionConfig
	Gemini   GeminiConfig
	Content  ContentConfig
	// BcryptCost is the work factor used to hash passwords
	BcryptCost int
	// APIKey protects service endpoints (session cleaning). Empty disables them.
	APIKey string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	// DSN overrides the connection string built from the fields above
	DSN string
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// SessionConfig holds session cookie and store settings
type SessionConfig struct {
	Secret       string
	Store        string
	TTL          time.Duration
	CookieSecure bool
}

// GeminiConfig holds generative-text API settings
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// ContentConfig holds content source settings
type ContentConfig struct {
	BaseURL string
	Dir     string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	if err := loadDatabase(cfg); err != nil {
		return nil, err
	}

	// Server configuration
	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = os.Getenv("PORT")
	}
	if serverPortStr == "" {
		serverPortStr = "3000" // default port
	}
	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}
	cfg.Server.Port = serverPort

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	if err := loadSession(cfg); err != nil {
		return nil, err
	}

	if err := loadRedis(cfg); err != nil {
		return nil, err
	}

	// Bcrypt cost (default: 10)
	cfg.BcryptCost = 10
	if costStr := os.Getenv("BCRYPT_COST"); costStr != "" {
		cost, err := strconv.Atoi(costStr)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		if cost < 4 || cost > 14 {
			return nil, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", cost)
		}
		cfg.BcryptCost = cost
	}

	// Generative-text API configuration (API key is optional, AI endpoints fail without it)
	cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	cfg.Gemini.Model = envOrDefault("GEMINI_MODEL", "gemini-1.5-flash")
	cfg.Gemini.BaseURL = envOrDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")

	// Content configuration
	cfg.Content.BaseURL = strings.TrimRight(envOrDefault("CONTENT_BASE_URL", "https://raw.githubusercontent.com/Ankurjaincse01/Skill-Up/main/content"), "/")
	cfg.Content.Dir = envOrDefault("CONTENT_DIR", "content")

	// API Key configuration (optional, for service-to-service calls)
	cfg.APIKey = os.Getenv("API_KEY")

	return cfg, nil
}

// loadDatabase reads MySQL settings. DB_DSN short-circuits the per-field variables.
func loadDatabase(cfg *Config) error {
	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		cfg.Database.DSN = dsn
		return nil
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		return fmt.Errorf("DB_HOST is required")
	}
	cfg.Database.Host = dbHost

	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		return fmt.Errorf("DB_PORT is required")
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return fmt.Errorf("invalid DB_PORT: %w", err)
	}
	cfg.Database.Port = dbPort

	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		return fmt.Errorf("DB_USER is required")
	}
	cfg.Database.User = dbUser

	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	cfg.Database.Password = dbPassword

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	cfg.Database.DBName = dbName

	return nil
}

func loadSession(cfg *Config) error {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	cfg.Session.Secret = secret

	store := strings.ToLower(envOrDefault("SESSION_STORE", SessionStoreMySQL))
	if store != SessionStoreMySQL && store != SessionStoreRedis {
		return fmt.Errorf("invalid SESSION_STORE %q: must be %q or %q", store, SessionStoreMySQL, SessionStoreRedis)
	}
	cfg.Session.Store = store

	// Session lifetime (default: 7 days)
	ttl, err := time.ParseDuration(envOrDefault("SESSION_TTL", "168h"))
	if err != nil {
		return fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	cfg.Session.TTL = ttl

	// Secure cookies unless explicitly disabled for local development
	cfg.Session.CookieSecure = os.Getenv("COOKIE_SECURE") != "false"

	return nil
}

func loadRedis(cfg *Config) error {
	cfg.Redis.Host = envOrDefault("REDIS_HOST", "localhost")

	redisPort, err := strconv.Atoi(envOrDefault("REDIS_PORT", "6379"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_PORT: %w", err)
	}
	cfg.Redis.Port = redisPort

	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD") // optional

	redisDB, err := strconv.Atoi(envOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.Redis.DB = redisDB

	return nil
}

// parseOrigins splits a comma-separated origin list, defaulting to "*"
func parseOrigins(raw string) []string {
	if raw == "" {
		// Default to allow all origins if not specified (for development)
		return []string{"*"}
	}

	origins := make([]string, 0)
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	if c.Database.Host == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}

// RedisAddr returns the host:port address of the Redis server
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

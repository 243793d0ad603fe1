package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Annany2002/cafe-api/internal/logger"
	"github.com/joho/godotenv"
)

var (
	customLog = logger.NewLogger()
)

// DefaultPageSize is the number of cafes shown per page on the home listing.
const DefaultPageSize = 10

// Config holds application configuration values.
// It is loaded once at start-up and passed explicitly to the router and handlers.
type Config struct {
	ServerPort      string
	SessionSecret   string
	APIKey          string
	DatabaseDir     string
	DatabaseFile    string
	PageSize        int
	AllowedOrigins  []string
	RateLimit       int
	RateLimitWindow time.Duration
	CSRFExpiration  time.Duration
}

// LoadConfig loads configuration from environment variables.
// It uses a .env file for local development if present (ignores it for production).
func LoadConfig() (*Config, error) {
	customLog.Println("Loading configuration from environment variables...")

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			customLog.Warnf("Warning: Error loading .env file: %v", err)
		}
	}

	port := strings.TrimPrefix(getEnv("SERVER_PORT", "8080"), ":")
	sessionSecret := getEnv("SECRET_KEY", "")
	apiKey := getEnv("API_KEY", "")
	dbDir := getEnv("DATABASE_DIRECTORY", "data")
	dbFile := getEnv("DATABASE_FILE", "cafes.db")
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")

	// Both secrets are supplied out-of-band, never hardcoded.
	if sessionSecret == "" {
		return nil, errors.New("SECRET_KEY environment variable must be set")
	}
	if apiKey == "" {
		return nil, errors.New("API_KEY environment variable must be set")
	}
	// bcrypt only considers the first 72 bytes
	if len(apiKey) > 72 {
		return nil, errors.New("API_KEY must not be longer than 72 bytes")
	}

	cfg := &Config{
		ServerPort:      port,
		SessionSecret:   sessionSecret,
		APIKey:          apiKey,
		DatabaseDir:     dbDir,
		DatabaseFile:    dbFile,
		PageSize:        DefaultPageSize,
		AllowedOrigins:  splitList(origins),
		RateLimit:       getEnvInt("RATE_LIMIT", 30),
		RateLimitWindow: time.Second * time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60)),
		CSRFExpiration:  time.Minute * time.Duration(getEnvInt("CSRF_EXPIRATION_MINUTES", 60)),
	}

	customLog.Printf("Configuration loaded successfully. Port: %s, DB: %s/%s", cfg.ServerPort, cfg.DatabaseDir, cfg.DatabaseFile)
	return cfg, nil
}

// getEnv reads an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt reads a positive integer, warning and falling back on bad input.
func getEnvInt(key string, fallback int) int {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		customLog.Warnf("Invalid %s '%s'. Using default %d. Error: %v", key, raw, fallback, err)
		return fallback
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

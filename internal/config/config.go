package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port        string
	Env         string
	DatabaseURL string // PostgreSQL; when empty the server falls back to SQLite
	SQLitePath  string
	CORSOrigins []string
}

// Load reads configuration from environment variables.
// In development, it loads from .env file if present.
func Load() *Config {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  getEnv("SQLITE_PATH", "./data/messagerie.db"),
	}

	// Parse allowed CORS origins (comma-separated); the Angular dev server
	// is the historical default.
	origins := getEnv("CORS_ORIGINS", "http://localhost:4200")
	for _, entry := range strings.Split(origins, ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, entry)
		}
	}

	return cfg
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

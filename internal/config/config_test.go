package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SQLITE_PATH", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "./data/messagerie.db", cfg.SQLitePath)
	assert.Equal(t, []string{"http://localhost:4200"}, cfg.CORSOrigins)
}

func TestLoadCORSOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://staging.example.com ,")

	cfg := Load()

	assert.Equal(t,
		[]string{"https://app.example.com", "https://staging.example.com"},
		cfg.CORSOrigins)
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "DB_URL", "DATABASE_URL", "CARD_INSTITUTION", "CARD_FACULTY",
		"MAX_UPLOAD_MB", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "", cfg.DatabaseURL)
	assert.Equal(t, DefaultInstitution, cfg.Institution)
	assert.Equal(t, DefaultFaculty, cfg.Faculty)
	assert.Equal(t, int64(10), cfg.MaxUploadMB)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_URL", "")
	t.Setenv("DATABASE_URL", "postgres://fallback/db")
	t.Setenv("CARD_INSTITUTION", "TEST UNIVERSITY")
	t.Setenv("MAX_UPLOAD_MB", "25")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres://fallback/db", cfg.DatabaseURL, "DATABASE_URL is the fallback for DB_URL")
	assert.Equal(t, "TEST UNIVERSITY", cfg.Institution)
	assert.Equal(t, int64(25), cfg.MaxUploadMB)
}

func TestLoadRejectsBadUploadLimit(t *testing.T) {
	t.Setenv("MAX_UPLOAD_MB", "not-a-number")
	assert.Equal(t, int64(10), Load().MaxUploadMB)

	t.Setenv("MAX_UPLOAD_MB", "-3")
	assert.Equal(t, int64(10), Load().MaxUploadMB)
}

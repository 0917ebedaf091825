// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strconv"
)

// Default institution and faculty stamped on parsed front sides. The values
// are printed on every card of the issuing institution and are configuration,
// not extraction targets.
const (
	DefaultInstitution = "SRM INSTITUTE OF SCIENCE & TECHNOLOGY"
	DefaultFaculty     = "FACULTY OF ENGINEERING & TECHNOLOGY"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port            string
	DatabaseURL     string
	RedisURL        string
	JWTSecret       string
	GeminiAPIKey    string
	Institution     string
	Faculty         string
	MaxUploadMB     int64
	LogLevel        string
	LogFormat       string
	FrontendBaseURL string
}

// Load reads configuration with sensible local-dev defaults. A .env file, if
// present, is expected to have been loaded by the caller before this runs.
func Load() Config {
	return Config{
		Port:            envOr("PORT", "8080"),
		DatabaseURL:     firstEnv("DB_URL", "DATABASE_URL"),
		RedisURL:        envOr("REDIS_URL", ""),
		JWTSecret:       envOr("JWT_SECRET", ""),
		GeminiAPIKey:    envOr("GEMINI_API_KEY", ""),
		Institution:     envOr("CARD_INSTITUTION", DefaultInstitution),
		Faculty:         envOr("CARD_FACULTY", DefaultFaculty),
		MaxUploadMB:     envInt("MAX_UPLOAD_MB", 10),
		LogLevel:        envOr("LOG_LEVEL", "info"),
		LogFormat:       envOr("LOG_FORMAT", "console"),
		FrontendBaseURL: envOr("FRONTEND_BASE_URL", "http://localhost:3000"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func envInt(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

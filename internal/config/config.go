package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dgallion1/docfill/internal/placeholder"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Upload limits
	MaxUploadBytes int64

	// Session state
	SessionTTL      time.Duration
	CleanupInterval time.Duration

	// Temp file location for uploaded templates and export output
	UploadDir string

	// Placeholder token grammar (regex); empty selects the default
	PlaceholderPattern string

	// CORS
	CORSAllowedOrigins []string
}

func Load() Config {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", "8090"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 20971520), // 20MB

		SessionTTL:      envDuration("SESSION_TTL", 2*time.Hour),
		CleanupInterval: envDuration("CLEANUP_INTERVAL", 5*time.Minute),

		UploadDir: envOr("UPLOAD_DIR", "uploads"),

		PlaceholderPattern: envOr("PLACEHOLDER_PATTERN", placeholder.DefaultPattern),

		CORSAllowedOrigins: splitList(envOr("CORS_ALLOWED_ORIGINS", "*")),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 20971520
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 2 * time.Hour
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = 5 * time.Minute
	}

	return cfg
}

func (c Config) Validate() error {
	if c.UploadDir == "" {
		return fmt.Errorf("UPLOAD_DIR must not be empty")
	}
	if _, err := placeholder.CompilePattern(c.PlaceholderPattern); err != nil {
		return fmt.Errorf("PLACEHOLDER_PATTERN is invalid: %w", err)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL string

	// Session storage
	RedisURL      string // optional; in-memory sessions when empty
	SessionSecret string // Used for signing cookies (min 32 chars)

	// OIDC
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Analytics thresholds
	NPSTarget          float64 // env: NPS_TARGET, default 50
	CSATThreshold      float64 // env: CSAT_THRESHOLD, default 80
	MinReviewsPerRoute int     // env: MIN_REVIEWS_PER_ROUTE, default 5

	// ML classifier
	MLServiceURL string // optional; rule-based only when empty

	// Background re-analysis
	ReanalyzeInterval time.Duration // env: REANALYZE_INTERVAL, default 5m
	ReanalyzeBatch    int           // env: REANALYZE_BATCH, default 100

	// SMTP notifications
	SMTPHost string
	SMTPPort string
	SMTPFrom string
	SMTPUser string
	SMTPPass string

	// Site Branding
	SiteTitle  string // env: SITE_TITLE, default: "AirVoice"
	SiteFooter string // env: SITE_FOOTER
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/airvoice?sslmode=disable"),

		RedisURL:      getEnv("REDIS_URL", ""),
		SessionSecret: getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),

		OIDCIssuer:       getEnv("OIDC_ISSUER", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:  getEnv("OIDC_REDIRECT_URL", "http://localhost:3000/auth/callback"),

		CORSOrigins: getEnv("CORS_ORIGINS", ""),

		NPSTarget:          getEnvFloat("NPS_TARGET", 50),
		CSATThreshold:      getEnvFloat("CSAT_THRESHOLD", 80),
		MinReviewsPerRoute: getEnvInt("MIN_REVIEWS_PER_ROUTE", 5),

		MLServiceURL: getEnv("ML_SERVICE_URL", ""),

		ReanalyzeInterval: getEnvDuration("REANALYZE_INTERVAL", 5*time.Minute),
		ReanalyzeBatch:    getEnvInt("REANALYZE_BATCH", 100),

		SMTPHost: getEnv("SMTP_HOST", ""),
		SMTPPort: getEnv("SMTP_PORT", "587"),
		SMTPFrom: getEnv("SMTP_FROM", ""),
		SMTPUser: getEnv("SMTP_USER", ""),
		SMTPPass: getEnv("SMTP_PASS", ""),

		SiteTitle:  getEnv("SITE_TITLE", "AirVoice"),
		SiteFooter: getEnv("SITE_FOOTER", "AirVoice - Customer feedback analytics"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// EmailEnabled returns true when SMTP is configured.
func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

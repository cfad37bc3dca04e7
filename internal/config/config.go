package config

import (
	"log"
	"os"
	"strings"
	"time"
)

const (
	defaultPort           = "8080"
	defaultDatabaseURL    = "carencia.db"
	defaultJWTTTL         = "24h"
	defaultWebhookTimeout = "10s"
	defaultScoringCron    = "0 3 * * *"
	defaultEmailFrom      = "leads@carencia.com.br"
	defaultEmailFromName  = "CarencIA"
)

// Config holds runtime settings loaded from the environment.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string

	JWTSecret string
	JWTTTL    time.Duration

	// Outbound webhook delivery timeout. The only explicit timeout in the
	// lead pipeline; everything else inherits connection timeouts.
	WebhookTimeout time.Duration

	// Email channel is disabled unless a SendGrid key is configured.
	SendGridAPIKey string
	EmailFrom      string
	EmailFromName  string

	// Optional catalog read cache.
	RedisURL string

	// Cron expression for the nightly lead scoring refresh.
	ScoringCron string
}

// Load reads the configuration from env vars, applying defaults for
// everything except JWT_SECRET, which the caller must verify.
func Load() *Config {
	cfg := &Config{
		AppEnv:         strings.ToLower(getEnv("APP_ENV", "dev")),
		Port:           getEnv("PORT", defaultPort),
		DatabaseURL:    getEnv("DATABASE_URL", defaultDatabaseURL),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		EmailFrom:      getEnv("EMAIL_FROM", defaultEmailFrom),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", defaultEmailFromName),
		RedisURL:       os.Getenv("REDIS_URL"),
		ScoringCron:    getEnv("SCORING_CRON", defaultScoringCron),
	}

	cfg.JWTTTL = getDuration("JWT_TTL", defaultJWTTTL)
	cfg.WebhookTimeout = getDuration("WEBHOOK_TIMEOUT", defaultWebhookTimeout)

	return cfg
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDuration(key, fallback string) time.Duration {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("invalid duration for %s=%q, using default %s", key, raw, fallback)
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

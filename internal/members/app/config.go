package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer string // Issuer claim for tokens (default: chapter-members)

	DatabaseFile         string        // Path to SQLite database file (default: ./members.db)
	PepperFile           string        // Path to file containing pepper for password hashing (default: ./pepper)
	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)

	SiteURL string // Public base URL used in emails (default: http://localhost:8080)

	// Postmark delivery; empty token disables outbound email.
	PostmarkServerToken string
	FromEmail           string

	// Stripe checkout; empty secret key disables hosted dues payments.
	StripeSecretKey     string
	StripeWebhookSecret string
	StripeDuesPriceID   string
	StripeDuesAmount    int64 // cents, what StripeDuesPriceID charges
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:               getEnvOrDefault("MEMBERS_ISSUER", "chapter-members"),
		DatabaseFile:         getEnvOrDefault("MEMBERS_DATABASE_FILE", "members.db"),
		PepperFile:           getEnvOrDefault("MEMBERS_PEPPER_FILE", "pepper"),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		SiteURL:              getEnvOrDefault("SITE_URL", "http://localhost:8080"),
		PostmarkServerToken:  os.Getenv("POSTMARK_SERVER_TOKEN"),
		FromEmail:            os.Getenv("FROM_EMAIL"),
		StripeSecretKey:      os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret:  os.Getenv("STRIPE_WEBHOOK_SECRET"),
		StripeDuesPriceID:    os.Getenv("STRIPE_DUES_PRICE_ID"),
	}

	if amountStr := os.Getenv("STRIPE_DUES_AMOUNT_CENTS"); amountStr != "" {
		if amount, err := strconv.ParseInt(amountStr, 10, 64); err == nil {
			cfg.StripeDuesAmount = amount
		}
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are read as minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	ServerPort    string
	GinMode       string
	MongoURI      string
	MongoDatabase string
	CORSOrigin    string

	JWTSecret        string
	JWTExpiry        time.Duration
	ResetTokenExpiry time.Duration

	SendGridAPIKey string
	MailFrom       string
	FrontendURL    string

	// RedisURI is optional; rate limiting is disabled when empty.
	RedisURI        string
	RateLimitMax    int
	RateLimitWindow time.Duration

	LogLevel  string
	LogFormat string
	LogFile   string
}

// Load reads configuration from .env file and environment variables
func Load() *Config {
	// Load .env file (ignore error if file doesn't exist - env vars may be set directly)
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		MongoURI:      getEnvRequired("MONGO_URI"),
		MongoDatabase: getEnv("MONGO_DATABASE", "moviestream"),
		CORSOrigin:    getEnv("CORS_ORIGIN", "http://localhost:5173"),

		JWTSecret:        getEnvRequired("JWT_SECRET"),
		JWTExpiry:        parseDuration(getEnv("JWT_EXPIRY", "1h")),
		ResetTokenExpiry: parseDuration(getEnv("RESET_TOKEN_EXPIRY", "1h")),

		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		MailFrom:       getEnv("MAIL_FROM", "no-reply@moviestream.local"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:5173"),

		RedisURI:        getEnv("REDIS_URI", ""),
		RateLimitMax:    parseInt(getEnv("RATE_LIMIT_MAX", "10")),
		RateLimitWindow: parseDuration(getEnv("RATE_LIMIT_WINDOW", "15m")),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
		LogFile:   getEnv("LOG_FILE", ""),
	}

	return cfg
}

// getEnv reads an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvRequired reads an environment variable and exits if not set
func getEnvRequired(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Required environment variable %s is not set", key)
	}
	return value
}

// parseDuration parses a duration string, exits on error
func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Fatalf("Invalid duration format: %s", s)
	}
	return d
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("Invalid integer: %s", s)
	}
	return n
}

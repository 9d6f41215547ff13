package app

import (
	"os"
	"strconv"
	"time"

	"github.com/praetor-app/praetor/pkg/jwtx"
)

type Config struct {
	Issuer      string        // Issuer claim for session tokens (default: praetor-auth)
	TokenSecret string        // Optional: HS256 signing secret; generated and persisted when empty
	SecretFile  string        // Optional: path to file holding the generated signing secret (default: ./secret)
	TokenTTL    time.Duration // Optional: session token lifetime (default: 15m)

	AdminEmail    string // Optional: seed administrator email (used only when the directory is empty)
	AdminPassword string // Optional: seed administrator password
	AdminName     string // Optional: seed administrator display name

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./auth.db)
	PepperFile          string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer:      getEnvOrDefault("AUTH_ISSUER", "praetor-auth"),
		TokenSecret: os.Getenv("AUTH_TOKEN_SECRET"), // Optional: generated when absent
		SecretFile:  getEnvOrDefault("AUTH_SECRET_FILE", "secret"),
		TokenTTL:    getEnvDurationOrDefault("AUTH_TOKEN_TTL", jwtx.DefaultSessionTTL),

		AdminEmail:    os.Getenv("AUTH_ADMIN_EMAIL"),
		AdminPassword: os.Getenv("AUTH_ADMIN_PASSWORD"),
		AdminName:     os.Getenv("AUTH_ADMIN_NAME"),

		DatabaseFile:        getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		PepperFile:          getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
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

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

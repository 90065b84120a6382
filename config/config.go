package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// DefaultAdminPassword is the development bootstrap password used when
// ADMIN_PASSWORD is not set
const DefaultAdminPassword = "admin123"

// Settings holds application configuration
type Settings struct {
	AppName    string
	AppVersion string
	Debug      bool

	// Database configuration
	DatabaseURL string
	PoolSize    int
	MaxOverflow int

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	EnableCache   bool

	// Bootstrap admin account
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// LoadFromEnv loads configuration from environment variables.
// Optional file arguments are passed through to godotenv; with no
// arguments a .env file in the working directory is used when present.
func LoadFromEnv(files ...string) *Settings {
	// Load .env file if exists
	if err := godotenv.Load(files...); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Settings{
		AppName:    getEnvOrDefault("APP_NAME", "Financial Forecasting & Risk Analytics Engine"),
		AppVersion: getEnvOrDefault("APP_VERSION", "0.1.0"),
		Debug:      getEnvOrDefault("DEBUG", "false") == "true",

		// Database configuration
		DatabaseURL: getEnvOrDefault("DATABASE_URL", "sqlite://./forecasting.db"),
		PoolSize:    getEnvInt("DB_POOL_SIZE", 10),
		MaxOverflow: getEnvInt("DB_MAX_OVERFLOW", 20),

		// Redis configuration
		RedisHost:     getEnvOrDefault("REDIS_HOST", "localhost"),
		RedisPort:     getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		EnableCache:   getEnvOrDefault("ENABLE_CACHE", "false") == "true",

		// Bootstrap admin account
		AdminUsername: getEnvOrDefault("ADMIN_USERNAME", "admin"),
		AdminEmail:    getEnvOrDefault("ADMIN_EMAIL", "admin@financialanalytics.local"),
		AdminPassword: getEnvOrDefault("ADMIN_PASSWORD", DefaultAdminPassword),
	}
}

// getEnvInt gets environment variable as int or returns default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var intValue int
	if _, err := fmt.Sscanf(value, "%d", &intValue); err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvOrDefault gets environment variable or returns default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Email    EmailConfig
}

// AppConfig holds application-level configuration
type AppConfig struct {
	Name    string
	Version string
	Debug   bool
	Port    string
	Host    string
}

// DatabaseConfig holds the record-store configuration
type DatabaseConfig struct {
	URI  string
	Name string
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	SecretKey        string
	TokenExpireHours int
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

// EmailConfig holds outbound mail configuration. When Enabled is false (or
// credentials are missing) the notification dispatcher runs in no-op mode.
type EmailConfig struct {
	Enabled     bool
	SMTPHost    string
	SMTPPort    int
	Username    string
	Password    string
	FromEmail   string
	FromName    string
	AdminEmail  string
	SendTimeout time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "Harborview Advisors API"),
			Version: getEnv("APP_VERSION", "1.0.0"),
			Debug:   getEnvAsBool("DEBUG", false),
			Port:    getEnv("PORT", "5000"),
			Host:    getEnv("HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			URI:  getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Name: getEnv("MONGODB_DATABASE", "harborview"),
		},
		Auth: AuthConfig{
			SecretKey:        getEnv("JWT_SECRET", ""),
			TokenExpireHours: getEnvAsInt("TOKEN_EXPIRE_HOURS", 24),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
			AllowedHeaders: []string{"*"},
			MaxAge:         86400,
		},
		Email: EmailConfig{
			Enabled:     getEnvAsBool("EMAIL_ENABLED", false),
			SMTPHost:    getEnv("SMTP_HOST", "smtppro.zoho.com"),
			SMTPPort:    getEnvAsInt("SMTP_PORT", 587),
			Username:    getEnv("SMTP_USERNAME", ""),
			Password:    getEnv("SMTP_PASSWORD", ""),
			FromEmail:   getEnv("EMAIL_FROM", "noreply@harborviewadvisors.com"),
			FromName:    getEnv("EMAIL_FROM_NAME", "Harborview Advisors"),
			AdminEmail:  getEnv("ADMIN_EMAIL", ""),
			SendTimeout: time.Duration(getEnvAsInt("EMAIL_TIMEOUT_SECONDS", 10)) * time.Second,
		},
	}

	// Email is only usable when credentials are actually present
	if config.Email.Username == "" || config.Email.Password == "" {
		config.Email.Enabled = false
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.App.Port == "" {
		return fmt.Errorf("PORT must be set")
	}
	if cfg.Database.URI == "" {
		return fmt.Errorf("MONGODB_URI must be set")
	}
	if cfg.Auth.SecretKey == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if cfg.Auth.TokenExpireHours <= 0 {
		return fmt.Errorf("TOKEN_EXPIRE_HOURS must be greater than 0")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	GoEnv string `env:"GO_ENV" default:"development"`

	// Service
	HTTPPort int `env:"HTTP_PORT" default:"8080"`

	// Database
	DatabaseURL string `env:"DATABASE_URL" required:"true"`

	// Redis (confirmation-code store)
	RedisURL string `env:"REDIS_URL" default:"redis://localhost:6379"`

	// Authentication
	JWTSecret           string        `env:"JWT_SECRET" required:"true"`
	TokenTTL            time.Duration `env:"TOKEN_TTL" default:"24h"`
	ConfirmationCodeTTL time.Duration `env:"CONFIRMATION_CODE_TTL" default:"24h"`

	// Outbound email
	SMTPHost     string `env:"SMTP_HOST" default:"localhost"`
	SMTPPort     int    `env:"SMTP_PORT" default:"25"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	EmailFrom    string `env:"EMAIL_FROM" default:"noreply@reviewhub.local"`

	// Auth endpoint rate limiting (per client IP)
	SignupRatePerSecond float64 `env:"SIGNUP_RATE_PER_SECOND" default:"1"`
	SignupRateBurst     int     `env:"SIGNUP_RATE_BURST" default:"5"`

	// Development
	LogLevel    string   `env:"LOG_LEVEL" default:"debug"`
	LogFormat   string   `env:"LOG_FORMAT" default:"text"`
	CORSOrigins []string `env:"CORS_ORIGINS" default:"http://localhost:3000"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// If .env file doesn't exist, that's OK - we can still use system env vars
	_ = godotenv.Load(".env")

	config := &Config{}

	if err := loadEnvString(&config.GoEnv, "GO_ENV", "development"); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.HTTPPort, "HTTP_PORT", 8080); err != nil {
		return nil, err
	}

	// Database
	if err := loadEnvStringRequired(&config.DatabaseURL, "DATABASE_URL"); err != nil {
		return nil, err
	}

	// Redis
	if err := loadEnvString(&config.RedisURL, "REDIS_URL", "redis://localhost:6379"); err != nil {
		return nil, err
	}

	// Authentication
	if err := loadEnvStringRequired(&config.JWTSecret, "JWT_SECRET"); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.TokenTTL, "TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&config.ConfirmationCodeTTL, "CONFIRMATION_CODE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}

	// Email
	if err := loadEnvString(&config.SMTPHost, "SMTP_HOST", "localhost"); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.SMTPPort, "SMTP_PORT", 25); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.SMTPUsername, "SMTP_USERNAME", ""); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.SMTPPassword, "SMTP_PASSWORD", ""); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.EmailFrom, "EMAIL_FROM", "noreply@reviewhub.local"); err != nil {
		return nil, err
	}

	// Rate limiting
	if err := loadEnvFloat(&config.SignupRatePerSecond, "SIGNUP_RATE_PER_SECOND", 1); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&config.SignupRateBurst, "SIGNUP_RATE_BURST", 5); err != nil {
		return nil, err
	}

	// Development
	if err := loadEnvString(&config.LogLevel, "LOG_LEVEL", "debug"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&config.LogFormat, "LOG_FORMAT", "text"); err != nil {
		return nil, err
	}
	if err := loadEnvStringSlice(&config.CORSOrigins, "CORS_ORIGINS", []string{"http://localhost:3000"}); err != nil {
		return nil, err
	}

	return config, nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) error {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringRequired(target *string, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return fmt.Errorf("required environment variable %s is not set", key)
	}
	*target = value
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvFloat(target *float64, key string, defaultValue float64) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid float value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringSlice(target *[]string, key string, defaultValue []string) error {
	if value := os.Getenv(key); value != "" {
		*target = strings.Split(value, ",")
		for i, v := range *target {
			(*target)[i] = strings.TrimSpace(v)
		}
	} else {
		*target = defaultValue
	}
	return nil
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errors []string

	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		errors = append(errors, "HTTP_PORT must be between 1 and 65535")
	}
	if c.SMTPPort < 1 || c.SMTPPort > 65535 {
		errors = append(errors, "SMTP_PORT must be between 1 and 65535")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	validLogFormats := []string{"text", "json"}
	if !contains(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validLogFormats, ", ")))
	}

	// JWT secret length (should be at least 32 characters for security)
	if len(c.JWTSecret) < 32 {
		errors = append(errors, "JWT_SECRET should be at least 32 characters long")
	}

	if c.SignupRatePerSecond <= 0 {
		errors = append(errors, "SIGNUP_RATE_PER_SECOND must be positive")
	}
	if c.SignupRateBurst < 1 {
		errors = append(errors, "SIGNUP_RATE_BURST must be at least 1")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// All environment variables are read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Exchange API
	OKX OKXConfig

	// Instruments: optional yaml contract multiplier table
	InstrumentsFile string

	// Watch mode
	WatchSchedule string // cron expression for the watch command

	// Logging
	LogLevel  string
	LogFormat string
}

// OKXConfig holds OKX API credentials and endpoint configuration.
// Credentials are injected into the REST client at construction;
// nothing else in the process reads them.
type OKXConfig struct {
	APIKey     string
	SecretKey  string
	Passphrase string
	BaseURL    string
	Timeout    time.Duration
	RateLimit  float64 // max REST requests per second
}

// Load reads configuration from environment variables.
// Only this function calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "5100"),
		Env:  getEnv("ENV", "development"),

		OKX: OKXConfig{
			APIKey:     getEnv("OKX_API_KEY", ""),
			SecretKey:  getEnv("OKX_SECRET_KEY", ""),
			Passphrase: getEnv("OKX_PASSPHRASE", ""),
			BaseURL:    getEnv("OKX_BASE_URL", "https://www.okx.com"),
			Timeout:    getEnvAsDuration("OKX_TIMEOUT", "10s"),
			RateLimit:  getEnvAsFloat("OKX_RATE_LIMIT", 5),
		},

		InstrumentsFile: getEnv("INSTRUMENTS_FILE", ""),

		WatchSchedule: getEnv("WATCH_SCHEDULE", "@every 1m"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.OKX.BaseURL == "" {
		return fmt.Errorf("OKX_BASE_URL is required")
	}

	if c.OKX.RateLimit <= 0 {
		return fmt.Errorf("OKX_RATE_LIMIT must be positive")
	}

	return nil
}

// HasCredentials reports whether the OKX credential triple is complete.
// Commands that hit the live API refuse to start without it.
func (c *Config) HasCredentials() bool {
	return c.OKX.APIKey != "" && c.OKX.SecretKey != "" && c.OKX.Passphrase != ""
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

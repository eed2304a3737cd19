package common

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	LLM      LLMConfig
	Notify   NotifyConfig
}

// DatabaseConfig holds record-store configuration. An empty DSN selects the
// local SQLite store at SQLitePath.
type DatabaseConfig struct {
	DSN             string
	SQLitePath      string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	HTTPAddr string
}

// LLMConfig holds model-provider configuration. A missing API key is a valid
// operating mode: the invoker then always returns empty text and every
// extraction fails closed.
type LLMConfig struct {
	Model   string
	APIKey  string
	BaseURL string
	Retries int
	Timeout time.Duration
}

// NotifyConfig holds the WhatsApp alert side-channel configuration
type NotifyConfig struct {
	PhoneNumberID string
	Token         string
	Recipient     string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	cfg := &Config{
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", ""),
			SQLitePath:      getEnv("LR_DB_PATH", "./lr.db"),
			MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 20),
			MinConns:        getEnvAsInt32("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Server: ServerConfig{
			HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		},
		LLM: LLMConfig{
			Model:   getEnv("LR_MODEL", "gpt-4o"),
			APIKey:  cleanAPIKey(getEnv("OPENAI_API_KEY", getEnv("GEMINI_API_KEY", ""))),
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
			Retries: getEnvAsInt("LR_RETRIES", 1),
			Timeout: getEnvAsDuration("LLM_TIMEOUT", 10*time.Second),
		},
		Notify: NotifyConfig{
			PhoneNumberID: getEnv("PHONE_NUMBER_ID", ""),
			Token:         getEnv("WHATSAPP_TOKEN", ""),
			Recipient:     getEnv("LR_ADMIN_NUMBER", ""),
		},
	}
	if cfg.LLM.Retries < 1 {
		cfg.LLM.Retries = 1
	}
	return cfg
}

// cleanAPIKey strips quotes and stray '=' that sneak in from .env files.
func cleanAPIKey(key string) string {
	key = strings.TrimSpace(key)
	key = strings.TrimLeft(key, `"'=`)
	key = strings.TrimRight(key, `"'`)
	return key
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

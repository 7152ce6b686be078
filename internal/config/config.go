package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	// Server
	Port  int
	Debug bool

	// Database
	DatabasePath string

	// RabbitMQ (optional; empty disables alert publishing)
	RabbitMQURL string

	// LLM
	LLMProvider string // claude, openai, ollama
	LLMAPIKey   string
	LLMModel    string
	OllamaURL   string

	// Resilience knobs for the LLM client. Off by default: each
	// operation makes a single best-effort completion call.
	LLMCircuitBreaker bool
	LLMRetry          bool
	LLMRateLimit      int // requests per second, 0 disables

	// Recommendations
	ReplaceRecommendations bool

	// Catalog
	CatalogPath string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                   getEnvInt("PORT", 8080),
		Debug:                  getEnvBool("DEBUG", false),
		DatabasePath:           getEnv("DATABASE_PATH", "./pathway.db"),
		RabbitMQURL:            getEnv("RABBITMQ_URL", ""),
		LLMProvider:            getEnv("LLM_PROVIDER", "claude"),
		LLMAPIKey:              getEnv("LLM_API_KEY", ""),
		LLMModel:               getEnv("LLM_MODEL", ""),
		OllamaURL:              getEnv("OLLAMA_URL", "http://localhost:11434"),
		LLMCircuitBreaker:      getEnvBool("LLM_CIRCUIT_BREAKER", false),
		LLMRetry:               getEnvBool("LLM_RETRY", false),
		LLMRateLimit:           getEnvInt("LLM_RATE_LIMIT", 0),
		ReplaceRecommendations: getEnvBool("RECOMMENDATIONS_REPLACE_ON_REFRESH", true),
		CatalogPath:            getEnv("CATALOG_PATH", "./catalog"),
	}

	// Validate required settings
	if cfg.LLMProvider != "ollama" && cfg.LLMAPIKey == "" && !cfg.Debug {
		return nil, fmt.Errorf("LLM_API_KEY must be set for provider %s", cfg.LLMProvider)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

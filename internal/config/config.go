package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the API service
type Config struct {
	// Server
	Port        string
	Environment string

	// Hosted model backends
	OpenAIAPIKey string
	OpenAIModel  string
	GroqAPIKey   string

	// Local SLM backend
	OllamaHost   string
	SLMModelPath string

	// Browser origins allowed by CORS
	AllowedOrigins []string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is merged in first, matching the original deployment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "8000"),
		Environment:    getEnv("GO_ENV", "development"),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o"),
		GroqAPIKey:     getEnv("GROQ_API_KEY", ""),
		OllamaHost:     getEnv("OLLAMA_HOST", "http://localhost:11434"),
		SLMModelPath:   getEnv("SLM_MODEL_PATH", "slm_model_trained"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	FrontendURL        string
	SessionSecret      string
	SessionTTL         time.Duration
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string

	AIProvider    string
	GroqAPIKey    string
	GroqModel     string
	GroqBaseURL   string
	GeminiApiKey  string
	OllamaBaseURL string
	OllamaModel   string

	AnnotateWorkers int
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	sessionTTL := 24 * time.Hour
	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		if parsed, err := time.ParseDuration(ttl); err == nil && parsed > 0 {
			sessionTTL = parsed
		}
	}

	workers := 3
	if w := os.Getenv("ANNOTATE_WORKERS"); w != "" {
		if parsed, err := strconv.Atoi(w); err == nil && parsed > 0 {
			workers = parsed
		}
	}

	return &Config{
		Port:               getEnv("PORT", "8080"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000"),
		SessionSecret:      getEnv("SESSION_SECRET", "dev-secret"),
		SessionTTL:         sessionTTL,
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:  getEnv("GOOGLE_REDIRECT_URI", "http://localhost:8080/api/auth/callback"),
		AIProvider:         getEnv("AI_PROVIDER", "auto"),
		GroqAPIKey:         getEnv("GROQ_API_KEY", ""),
		GroqModel:          getEnv("GROQ_MODEL", "llama-3.1-8b-instant"),
		GroqBaseURL:        getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GeminiApiKey:       getEnv("GEMINI_API_KEY", ""),
		OllamaBaseURL:      getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:        getEnv("OLLAMA_MODEL", "llama3"),
		AnnotateWorkers:    workers,
	}
}

// SecureCookies reports whether the frontend is served over HTTPS.
func (c *Config) SecureCookies() bool {
	return strings.HasPrefix(c.FrontendURL, "https://")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package ai

import (
	"fmt"
)

// Config holds AI provider configuration
type Config struct {
	Provider ProviderType

	GroqAPIKey  string
	GroqBaseURL string
	GroqModel   string

	GeminiAPIKey string

	// Ollama settings are read through getters so they can change at runtime
	GetOllamaBaseURL func() string
	GetOllamaModel   func() string
}

// NewAnnotator creates an Annotator based on the config. "auto" chains every
// configured provider: Groq, then Gemini, then the local Ollama.
func NewAnnotator(cfg Config) (Annotator, error) {
	switch cfg.Provider {
	case ProviderGroq:
		if cfg.GroqAPIKey == "" {
			return nil, fmt.Errorf("GROQ_API_KEY is required for Groq provider")
		}
		return NewGroqService(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel), nil

	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required for Gemini provider")
		}
		return NewGeminiService(cfg.GeminiAPIKey), nil

	case ProviderOllama:
		return newOllama(cfg), nil

	case ProviderAuto, "":
		var chain []NamedAnnotator
		if cfg.GroqAPIKey != "" {
			chain = append(chain, NamedAnnotator{"groq", NewGroqService(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel)})
		}
		if cfg.GeminiAPIKey != "" {
			chain = append(chain, NamedAnnotator{"gemini", NewGeminiService(cfg.GeminiAPIKey)})
		}
		chain = append(chain, NamedAnnotator{"ollama", newOllama(cfg)})
		return NewFallbackService(chain...), nil

	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}

func newOllama(cfg Config) *OllamaService {
	if cfg.GetOllamaBaseURL != nil && cfg.GetOllamaModel != nil {
		return NewOllamaServiceWithGetters(cfg.GetOllamaBaseURL, cfg.GetOllamaModel)
	}
	return NewOllamaService("", "")
}

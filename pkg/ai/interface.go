package ai

import (
	"context"
)

// EmptyEmailSummary is returned for a blank email without asking a model.
const EmptyEmailSummary = "Empty email content."

// Annotator is the interface for AI email summaries and reply drafts.
// Implement this interface to add new AI providers.
type Annotator interface {
	SummarizeEmail(ctx context.Context, emailText string) (string, error)
	DraftReply(ctx context.Context, from, subject, emailText string) (string, error)
}

// ProviderType represents the AI provider type
type ProviderType string

const (
	ProviderGroq   ProviderType = "groq"
	ProviderGemini ProviderType = "gemini"
	ProviderOllama ProviderType = "ollama"
	ProviderAuto   ProviderType = "auto"
)

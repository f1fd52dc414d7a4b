package ai

import (
	"context"
	"fmt"
	"log"
	"net"
	"strings"
)

// NamedAnnotator labels a provider for logs.
type NamedAnnotator struct {
	Name      string
	Annotator Annotator
}

// FallbackService tries each provider in order until one answers.
type FallbackService struct {
	providers []NamedAnnotator
}

// NewFallbackService creates a fallback chain. Nil providers are skipped.
func NewFallbackService(providers ...NamedAnnotator) *FallbackService {
	chain := make([]NamedAnnotator, 0, len(providers))
	for _, p := range providers {
		if p.Annotator != nil {
			chain = append(chain, p)
		}
	}
	return &FallbackService{providers: chain}
}

// isConnectionError checks if the error is a network/connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if _, ok := err.(net.Error); ok {
		return true
	}

	errStr := strings.ToLower(err.Error())
	for _, indicator := range []string{
		"connection refused",
		"no such host",
		"network is unreachable",
		"connection reset",
		"timeout",
		"dial tcp",
		"eof",
	} {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}
	return false
}

// isQuotaError checks if the error indicates API quota exhaustion (429)
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())
	for _, indicator := range []string{
		"429",
		"quota",
		"rate limit",
		"too many requests",
		"resource_exhausted",
		"resource exhausted",
	} {
		if strings.Contains(errStr, indicator) {
			return true
		}
	}
	return false
}

func describeFailure(err error) string {
	switch {
	case isQuotaError(err):
		return "quota exhausted"
	case isConnectionError(err):
		return "connection failed"
	default:
		return "error"
	}
}

func (f *FallbackService) SummarizeEmail(ctx context.Context, emailText string) (string, error) {
	return f.run(ctx, "summarization", func(a Annotator) (string, error) {
		return a.SummarizeEmail(ctx, emailText)
	})
}

func (f *FallbackService) DraftReply(ctx context.Context, from, subject, emailText string) (string, error) {
	return f.run(ctx, "reply draft", func(a Annotator) (string, error) {
		return a.DraftReply(ctx, from, subject, emailText)
	})
}

func (f *FallbackService) run(ctx context.Context, task string, call func(Annotator) (string, error)) (string, error) {
	var lastErr error
	for i, p := range f.providers {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		result, err := call(p.Annotator)
		if err == nil {
			if i > 0 {
				log.Printf("[AI] %s served by fallback provider %s", task, p.Name)
			}
			return result, nil
		}

		log.Printf("[AI] %s %s for %s: %v", p.Name, describeFailure(err), task, err)
		lastErr = fmt.Errorf("%s %s failed: %w", p.Name, task, err)
	}

	if lastErr == nil {
		return "", fmt.Errorf("no AI provider available for %s", task)
	}
	return "", lastErr
}

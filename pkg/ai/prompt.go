package ai

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Longer emails are cut before prompting to stay inside model limits.
const maxEmailChars = 5000

// generation is one completion request, independent of the provider.
type generation struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

type generator interface {
	generate(ctx context.Context, g generation) (string, error)
}

func summaryRequest(body string) generation {
	return generation{
		System: "You are a helpful email assistant.",
		Prompt: "Summarize this email in 2-3 sentences.\n" +
			"Focus on the sender's intent, key details, and any action required.\n\n" +
			"Email:\n" + truncateEmail(body),
		Temperature: 0.2,
		MaxTokens:   160,
	}
}

func replyRequest(from, subject, body string) generation {
	return generation{
		System: "You are a helpful email assistant that drafts replies.",
		Prompt: "Write a professional, concise reply to this email.\n" +
			"Be polite, clear, and action-oriented.\n" +
			"If the email asks a question, answer it.\n" +
			"If details are missing, ask 1-2 clarifying questions.\n" +
			"Do NOT include a subject line. Only write the email body.\n\n" +
			fmt.Sprintf("From: %s\nSubject: %s\n\nEmail:\n%s", from, subject, truncateEmail(body)),
		Temperature: 0.3,
		MaxTokens:   220,
	}
}

func summarizeWith(ctx context.Context, g generator, emailText string) (string, error) {
	if strings.TrimSpace(emailText) == "" {
		return EmptyEmailSummary, nil
	}
	out, err := g.generate(ctx, summaryRequest(emailText))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func draftWith(ctx context.Context, g generator, from, subject, emailText string) (string, error) {
	out, err := g.generate(ctx, replyRequest(from, subject, emailText))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func truncateEmail(s string) string {
	if utf8.RuneCountInString(s) <= maxEmailChars {
		return s
	}
	return string([]rune(s)[:maxEmailChars])
}

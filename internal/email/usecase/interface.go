package usecase

import (
	"context"

	authdomain "replydesk-backend/internal/auth/domain"
	emaildomain "replydesk-backend/internal/email/domain"
)

// EmailUsecase defines the interface for email use cases. Every operation
// runs on behalf of one session and holds that session for its duration.
type EmailUsecase interface {
	GetProfile(ctx context.Context, sess *authdomain.Session) (*emaildomain.Profile, error)
	ListMessages(ctx context.Context, sess *authdomain.Session, maxResults int) (*emaildomain.MessageList, error)
	GetMessageMetadata(ctx context.Context, sess *authdomain.Session, id string) (*emaildomain.MessageSummary, error)
	GetMessageFull(ctx context.Context, sess *authdomain.Session, id string) (*emaildomain.MessageSummary, error)
	DeleteMessage(ctx context.Context, sess *authdomain.Session, id string) error
	SendMessage(ctx context.Context, sess *authdomain.Session, to, subject, body string) (*emaildomain.SendResult, error)

	ListRecent(ctx context.Context, sess *authdomain.Session, n int) ([]*emaildomain.MessageSummary, error)
	ListRecentWithSummaries(ctx context.Context, sess *authdomain.Session, n int) ([]*emaildomain.MessageSummary, error)

	// Reply workflow
	ListRecentWithReplies(ctx context.Context, sess *authdomain.Session, n int) ([]*emaildomain.ReplyCandidate, error)
	SendReply(ctx context.Context, sess *authdomain.Session, index int, body string, confirm bool) (*emaildomain.ReplyOutcome, error)
}

// CredentialKeeper hands out a usable access token for a session.
type CredentialKeeper interface {
	EnsureValid(ctx context.Context, sess *authdomain.Session) string
}

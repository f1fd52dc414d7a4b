package domain

import "context"

// MessageFormat selects how much of a message the provider returns.
type MessageFormat string

const (
	FormatMetadata MessageFormat = "metadata"
	FormatFull     MessageFormat = "full"
)

// MetadataHeaders are the headers requested in metadata mode.
var MetadataHeaders = []string{"From", "To", "Subject", "Date"}

// MailProvider is the mailbox the pipeline reads from and sends through.
// Every call is authorized with the access token passed in.
type MailProvider interface {
	GetProfile(ctx context.Context, accessToken string) (*Profile, error)
	// ListMessages lists inbox message IDs, most recent first.
	ListMessages(ctx context.Context, accessToken string, maxResults int64) (*MessageList, error)
	GetMessage(ctx context.Context, accessToken, messageID string, format MessageFormat) (*RawMessage, error)
	DeleteMessage(ctx context.Context, accessToken, messageID string) error
	// SendMessage sends a complete RFC 5322 message.
	SendMessage(ctx context.Context, accessToken string, raw []byte) (*SendResult, error)
}

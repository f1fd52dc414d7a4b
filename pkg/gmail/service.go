package gmail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	emaildomain "replydesk-backend/internal/email/domain"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	user         = "me"
	inboxLabel   = "INBOX"
	maxPageLimit = 500 // Gmail API maximum
)

// OAuthConfig is the client configuration shared by the login flow and the
// token refresher. The full mail scope is needed for permanent delete.
func OAuthConfig(clientID, clientSecret, redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Endpoint:     google.Endpoint,
		Scopes:       []string{gmail.MailGoogleComScope},
	}
}

// Service implements emaildomain.MailProvider on the Gmail REST API.
type Service struct {
	opts []option.ClientOption
}

// NewService creates a Gmail provider. Extra client options (an endpoint
// override, say) are applied to every call.
func NewService(opts ...option.ClientOption) *Service {
	return &Service{opts: opts}
}

// GetGmailService creates a Gmail client authorized with accessToken.
// Refreshing is the caller's job, so the token source is static.
func (s *Service) GetGmailService(ctx context.Context, accessToken string) (*gmail.Service, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})

	opts := append([]option.ClientOption{option.WithTokenSource(ts)}, s.opts...)
	srv, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %w", err)
	}
	return srv, nil
}

func (s *Service) GetProfile(ctx context.Context, accessToken string) (*emaildomain.Profile, error) {
	srv, err := s.GetGmailService(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	p, err := srv.Users.GetProfile(user).Context(ctx).Do()
	if err != nil {
		return nil, upstream("get profile", err)
	}

	return &emaildomain.Profile{
		EmailAddress:  p.EmailAddress,
		MessagesTotal: p.MessagesTotal,
		ThreadsTotal:  p.ThreadsTotal,
		HistoryID:     p.HistoryId,
	}, nil
}

// ListMessages lists inbox message IDs in Gmail's order, newest first.
func (s *Service) ListMessages(ctx context.Context, accessToken string, maxResults int64) (*emaildomain.MessageList, error) {
	srv, err := s.GetGmailService(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	if maxResults > maxPageLimit {
		maxResults = maxPageLimit
	}

	call := srv.Users.Messages.List(user).LabelIds(inboxLabel)
	if maxResults > 0 {
		call = call.MaxResults(maxResults)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		return nil, upstream("list messages", err)
	}

	list := &emaildomain.MessageList{
		ResultSizeEstimate: resp.ResultSizeEstimate,
		Messages:           make([]emaildomain.MessageRef, 0, len(resp.Messages)),
	}
	for _, m := range resp.Messages {
		list.Messages = append(list.Messages, emaildomain.MessageRef{ID: m.Id, ThreadID: m.ThreadId})
	}
	return list, nil
}

func (s *Service) GetMessage(ctx context.Context, accessToken, messageID string, format emaildomain.MessageFormat) (*emaildomain.RawMessage, error) {
	srv, err := s.GetGmailService(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	call := srv.Users.Messages.Get(user, messageID).Format(string(format))
	if format == emaildomain.FormatMetadata {
		call = call.MetadataHeaders(emaildomain.MetadataHeaders...)
	}

	msg, err := call.Context(ctx).Do()
	if err != nil {
		return nil, upstream("get message", err)
	}

	return convertGmailMessage(msg, format == emaildomain.FormatFull), nil
}

// DeleteMessage deletes permanently, bypassing Trash.
func (s *Service) DeleteMessage(ctx context.Context, accessToken, messageID string) error {
	srv, err := s.GetGmailService(ctx, accessToken)
	if err != nil {
		return err
	}

	if err := srv.Users.Messages.Delete(user, messageID).Context(ctx).Do(); err != nil {
		return upstream("delete message", err)
	}
	return nil
}

func (s *Service) SendMessage(ctx context.Context, accessToken string, raw []byte) (*emaildomain.SendResult, error) {
	srv, err := s.GetGmailService(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	msg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}

	sent, err := srv.Users.Messages.Send(user, msg).Context(ctx).Do()
	if err != nil {
		return nil, upstream("send message", err)
	}

	return &emaildomain.SendResult{
		ID:       sent.Id,
		ThreadID: sent.ThreadId,
		LabelIDs: sent.LabelIds,
	}, nil
}

// upstream keeps Gmail's error body as the detail so that callers see
// exactly what the API said.
func upstream(op string, err error) error {
	var detail any = map[string]any{"error": err.Error()}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Body != "" && json.Valid([]byte(gerr.Body)) {
			detail = json.RawMessage(gerr.Body)
		} else {
			detail = map[string]any{
				"error": map[string]any{
					"code":    gerr.Code,
					"message": gerr.Message,
				},
			}
		}
	}

	return &emaildomain.UpstreamError{Op: op, Detail: detail, Err: err}
}

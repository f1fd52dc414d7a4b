package usecase

import (
	"context"
	"fmt"
	"time"

	authdomain "replydesk-backend/internal/auth/domain"
	emaildomain "replydesk-backend/internal/email/domain"
	"replydesk-backend/pkg/ai"
	"replydesk-backend/pkg/gmail"
)

// DefaultListSize is used when a caller asks for a non-positive count.
const DefaultListSize = 5

// emailUsecase implements EmailUsecase interface
type emailUsecase struct {
	mailProvider emaildomain.MailProvider
	annotator    ai.Annotator
	credentials  CredentialKeeper
	workers      int
	now          func() time.Time
}

// NewEmailUsecase creates a new instance of emailUsecase
func NewEmailUsecase(mailProvider emaildomain.MailProvider, annotator ai.Annotator, credentials CredentialKeeper, workers int) EmailUsecase {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &emailUsecase{
		mailProvider: mailProvider,
		annotator:    annotator,
		credentials:  credentials,
		workers:      workers,
		now:          time.Now,
	}
}

// begin takes the session for the current request and returns a usable
// access token. The caller must invoke release when done.
func (u *emailUsecase) begin(ctx context.Context, sess *authdomain.Session) (string, func(), error) {
	if err := sess.Acquire(ctx); err != nil {
		return "", nil, err
	}
	return u.credentials.EnsureValid(ctx, sess), sess.Release, nil
}

func (u *emailUsecase) GetProfile(ctx context.Context, sess *authdomain.Session) (*emaildomain.Profile, error) {
	token, release, err := u.begin(ctx, sess)
	if err != nil {
		return nil, err
	}
	defer release()

	profile, err := u.mailProvider.GetProfile(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("unable to get profile: %w", err)
	}
	return profile, nil
}

func (u *emailUsecase) ListMessages(ctx context.Context, sess *authdomain.Session, maxResults int) (*emaildomain.MessageList, error) {
	token, release, err := u.begin(ctx, sess)
	if err != nil {
		return nil, err
	}
	defer release()

	return u.listInbox(ctx, token, maxResults)
}

func (u *emailUsecase) GetMessageMetadata(ctx context.Context, sess *authdomain.Session, id string) (*emaildomain.MessageSummary, error) {
	token, release, err := u.begin(ctx, sess)
	if err != nil {
		return nil, err
	}
	defer release()

	msg, err := u.mailProvider.GetMessage(ctx, token, id, emaildomain.FormatMetadata)
	if err != nil {
		return nil, fmt.Errorf("unable to get message %s: %w", id, err)
	}
	return Normalize(msg), nil
}

func (u *emailUsecase) GetMessageFull(ctx context.Context, sess *authdomain.Session, id string) (*emaildomain.MessageSummary, error) {
	token, release, err := u.begin(ctx, sess)
	if err != nil {
		return nil, err
	}
	defer release()

	msg, err := u.mailProvider.GetMessage(ctx, token, id, emaildomain.FormatFull)
	if err != nil {
		return nil, fmt.Errorf("unable to get message %s: %w", id, err)
	}
	return NormalizeWithBody(msg), nil
}

func (u *emailUsecase) DeleteMessage(ctx context.Context, sess *authdomain.Session, id string) error {
	token, release, err := u.begin(ctx, sess)
	if err != nil {
		return err
	}
	defer release()

	if err := u.mailProvider.DeleteMessage(ctx, token, id); err != nil {
		return fmt.Errorf("unable to delete message %s: %w", id, err)
	}
	return nil
}

func (u *emailUsecase) SendMessage(ctx context.Context, sess *authdomain.Session, to, subject, body string) (*emaildomain.SendResult, error) {
	token, release, err := u.begin(ctx, sess)
	if err != nil {
		return nil, err
	}
	defer release()

	return u.send(ctx, token, to, subject, body)
}

// ListRecent returns header summaries of the newest inbox messages.
func (u *emailUsecase) ListRecent(ctx context.Context, sess *authdomain.Session, n int) ([]*emaildomain.MessageSummary, error) {
	token, release, err := u.begin(ctx, sess)
	if err != nil {
		return nil, err
	}
	defer release()

	ids, err := u.recentIDs(ctx, token, n)
	if err != nil {
		return nil, err
	}

	return fanOut(ctx, "Email", u.workers, ids, func(ctx context.Context, id string) (*emaildomain.MessageSummary, error) {
		msg, err := u.mailProvider.GetMessage(ctx, token, id, emaildomain.FormatMetadata)
		if err != nil {
			return nil, err
		}
		return Normalize(msg), nil
	})
}

// ListRecentWithSummaries is ListRecent with an AI summary per message.
// It does not touch the session's reply index.
func (u *emailUsecase) ListRecentWithSummaries(ctx context.Context, sess *authdomain.Session, n int) ([]*emaildomain.MessageSummary, error) {
	token, release, err := u.begin(ctx, sess)
	if err != nil {
		return nil, err
	}
	defer release()

	ids, err := u.recentIDs(ctx, token, n)
	if err != nil {
		return nil, err
	}

	return fanOut(ctx, "Email", u.workers, ids, func(ctx context.Context, id string) (*emaildomain.MessageSummary, error) {
		summary, err := u.fetchWithBody(ctx, token, id)
		if err != nil {
			return nil, err
		}
		aiSummary, err := u.annotator.SummarizeEmail(ctx, summary.Body)
		if err != nil {
			return nil, &emaildomain.UpstreamError{Op: "summarize", Err: err}
		}
		summary.AISummary = aiSummary
		summary.Body = ""
		return summary, nil
	})
}

func (u *emailUsecase) listInbox(ctx context.Context, token string, n int) (*emaildomain.MessageList, error) {
	if n <= 0 {
		n = DefaultListSize
	}
	list, err := u.mailProvider.ListMessages(ctx, token, int64(n))
	if err != nil {
		return nil, fmt.Errorf("unable to list messages: %w", err)
	}
	return list, nil
}

func (u *emailUsecase) recentIDs(ctx context.Context, token string, n int) ([]string, error) {
	list, err := u.listInbox(ctx, token, n)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(list.Messages))
	for _, ref := range list.Messages {
		ids = append(ids, ref.ID)
	}
	return ids, nil
}

func (u *emailUsecase) fetchWithBody(ctx context.Context, token, id string) (*emaildomain.MessageSummary, error) {
	msg, err := u.mailProvider.GetMessage(ctx, token, id, emaildomain.FormatFull)
	if err != nil {
		return nil, err
	}
	return NormalizeWithBody(msg), nil
}

func (u *emailUsecase) send(ctx context.Context, token, to, subject, body string) (*emaildomain.SendResult, error) {
	raw, err := gmail.ComposeMessage(to, subject, body, u.now())
	if err != nil {
		return nil, fmt.Errorf("unable to compose message: %w", err)
	}
	result, err := u.mailProvider.SendMessage(ctx, token, raw)
	if err != nil {
		return nil, fmt.Errorf("unable to send message: %w", err)
	}
	return result, nil
}

package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	authdomain "replydesk-backend/internal/auth/domain"
	emaildomain "replydesk-backend/internal/email/domain"
)

type fakeMailbox struct {
	mu sync.Mutex

	order    []string
	messages map[string]*emaildomain.RawMessage
	failIDs  map[string]bool
	listErr  error
	sendErr  error
	block    chan struct{} // when set, GetMessage waits on it or ctx

	listCalls int
	getCalls  int
	sent      [][]byte
	tokens    []string
}

func newFakeMailbox() *fakeMailbox {
	return &fakeMailbox{
		messages: make(map[string]*emaildomain.RawMessage),
		failIDs:  make(map[string]bool),
	}
}

func (f *fakeMailbox) add(id, from, subject, body string) {
	f.order = append(f.order, id)
	f.messages[id] = &emaildomain.RawMessage{
		ID:       id,
		ThreadID: "thread-" + id,
		Snippet:  "snippet " + id,
		Headers: []emaildomain.Header{
			{Name: "From", Value: from},
			{Name: "Subject", Value: subject},
		},
		Payload: leaf("text/plain", body),
	}
}

func (f *fakeMailbox) GetProfile(ctx context.Context, accessToken string) (*emaildomain.Profile, error) {
	return &emaildomain.Profile{EmailAddress: "me@example.com"}, nil
}

func (f *fakeMailbox) ListMessages(ctx context.Context, accessToken string, maxResults int64) (*emaildomain.MessageList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	f.tokens = append(f.tokens, accessToken)
	if f.listErr != nil {
		return nil, f.listErr
	}

	list := &emaildomain.MessageList{ResultSizeEstimate: int64(len(f.order))}
	for i, id := range f.order {
		if int64(i) >= maxResults {
			break
		}
		list.Messages = append(list.Messages, emaildomain.MessageRef{ID: id, ThreadID: "thread-" + id})
	}
	return list, nil
}

func (f *fakeMailbox) GetMessage(ctx context.Context, accessToken, messageID string, format emaildomain.MessageFormat) (*emaildomain.RawMessage, error) {
	f.mu.Lock()
	f.getCalls++
	block := f.block
	fail := f.failIDs[messageID]
	msg, ok := f.messages[messageID]
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if fail || !ok {
		return nil, &emaildomain.UpstreamError{Op: "get message", Detail: map[string]any{"error": "not found"}}
	}
	if format == emaildomain.FormatMetadata {
		meta := *msg
		meta.Payload = nil
		return &meta, nil
	}
	return msg, nil
}

func (f *fakeMailbox) DeleteMessage(ctx context.Context, accessToken, messageID string) error {
	return nil
}

func (f *fakeMailbox) SendMessage(ctx context.Context, accessToken string, raw []byte) (*emaildomain.SendResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, accessToken)
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, raw)
	return &emaildomain.SendResult{ID: "sent-1", ThreadID: "thread-sent", LabelIDs: []string{"SENT"}}, nil
}

func (f *fakeMailbox) networkCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls + f.getCalls + len(f.sent)
}

type fakeAnnotator struct {
	failBodies map[string]bool
}

func (a *fakeAnnotator) SummarizeEmail(ctx context.Context, emailText string) (string, error) {
	if a.failBodies[emailText] {
		return "", errors.New("model unavailable")
	}
	return "summary: " + emailText, nil
}

func (a *fakeAnnotator) DraftReply(ctx context.Context, from, subject, emailText string) (string, error) {
	return "draft for " + subject, nil
}

type fakeKeeper struct {
	mu    sync.Mutex
	calls int
}

func (k *fakeKeeper) EnsureValid(ctx context.Context, sess *authdomain.Session) string {
	k.mu.Lock()
	k.calls++
	k.mu.Unlock()
	return sess.Credential().AccessToken
}

func newTestSession() *authdomain.Session {
	return authdomain.NewSession("sess-1", authdomain.Credential{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		Expiry:       time.Now().Add(time.Hour),
	}, time.Now(), time.Hour)
}

func newTestUsecase(mailbox *fakeMailbox, annotator *fakeAnnotator, keeper *fakeKeeper) *emailUsecase {
	uc := NewEmailUsecase(mailbox, annotator, keeper, 2).(*emailUsecase)
	uc.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return uc
}

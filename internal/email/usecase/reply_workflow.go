package usecase

import (
	"context"
	"log"
	"regexp"
	"strings"

	authdomain "replydesk-backend/internal/auth/domain"
	emaildomain "replydesk-backend/internal/email/domain"
)

const staleIndexMessage = "Invalid email index. Call GET /api/gmail/last_with_replies?n=5 first."

var angleAddress = regexp.MustCompile(`<([^>]+)>`)

// ExtractRecipient returns the address inside the first <...> of a From
// header, or the whole trimmed header when there is none.
func ExtractRecipient(from string) string {
	if m := angleAddress.FindStringSubmatch(from); m != nil {
		return m[1]
	}
	return strings.TrimSpace(from)
}

// ReplySubject prefixes "Re: " unless the subject is empty or already a reply.
func ReplySubject(subject string) string {
	if subject == "" || strings.HasPrefix(strings.ToLower(subject), "re:") {
		return subject
	}
	return "Re: " + subject
}

// ListRecentWithReplies annotates the newest inbox messages with a summary
// and a reply draft and replaces the session's reply index with them.
// Messages that cannot be fetched or annotated are left out; the remaining
// ones are numbered 1..K in inbox order.
func (u *emailUsecase) ListRecentWithReplies(ctx context.Context, sess *authdomain.Session, n int) ([]*emaildomain.ReplyCandidate, error) {
	token, release, err := u.begin(ctx, sess)
	if err != nil {
		return nil, err
	}
	defer release()

	ids, err := u.recentIDs(ctx, token, n)
	if err != nil {
		return nil, err
	}

	candidates, err := fanOut(ctx, "Reply", u.workers, ids, func(ctx context.Context, id string) (*emaildomain.ReplyCandidate, error) {
		return u.annotate(ctx, token, id)
	})
	if err != nil {
		// Cancelled batches keep the previous index.
		return nil, err
	}

	entries := make([]emaildomain.IndexEntry, 0, len(candidates))
	for i, c := range candidates {
		c.Index = i + 1
		entries = append(entries, emaildomain.IndexEntry{
			Index:     c.Index,
			MessageID: c.ID,
			From:      c.From,
			Subject:   c.Subject,
		})
	}
	sess.ReplaceReplyIndex(entries)

	log.Printf("[Reply] Indexed %d of %d messages for session %s", len(entries), len(ids), sess.ID)
	return candidates, nil
}

func (u *emailUsecase) annotate(ctx context.Context, token, id string) (*emaildomain.ReplyCandidate, error) {
	msg, err := u.fetchWithBody(ctx, token, id)
	if err != nil {
		return nil, err
	}

	summary, err := u.annotator.SummarizeEmail(ctx, msg.Body)
	if err != nil {
		return nil, &emaildomain.UpstreamError{Op: "summarize", Err: err}
	}
	draft, err := u.annotator.DraftReply(ctx, msg.From, msg.Subject, msg.Body)
	if err != nil {
		return nil, &emaildomain.UpstreamError{Op: "draft reply", Err: err}
	}

	return &emaildomain.ReplyCandidate{
		ID:           msg.ID,
		From:         msg.From,
		ToEmail:      ExtractRecipient(msg.From),
		Subject:      msg.Subject,
		AISummary:    summary,
		AIReplyDraft: draft,
	}, nil
}

// SendReply sends body as a reply to the message listed under index by the
// last ListRecentWithReplies. Without confirm it only reports what would be
// sent. An unknown index fails before any network call.
func (u *emailUsecase) SendReply(ctx context.Context, sess *authdomain.Session, index int, body string, confirm bool) (*emaildomain.ReplyOutcome, error) {
	if err := sess.Acquire(ctx); err != nil {
		return nil, err
	}
	defer sess.Release()

	target, ok := sess.LookupReplyTarget(index)
	if !ok {
		return nil, &emaildomain.StateError{Message: staleIndexMessage}
	}

	if !confirm {
		return &emaildomain.ReplyOutcome{Index: index, To: target.From, Subject: target.Subject}, nil
	}

	token := u.credentials.EnsureValid(ctx, sess)

	to := ExtractRecipient(target.From)
	if to == "" || !strings.Contains(to, "@") {
		return nil, emaildomain.NewValidationError("Could not extract recipient email from: %s", target.From)
	}
	subject := ReplySubject(target.Subject)

	result, err := u.send(ctx, token, to, subject, body)
	if err != nil {
		return nil, err
	}

	log.Printf("[Reply] Sent reply to #%d (%s) for session %s", index, target.MessageID, sess.ID)
	return &emaildomain.ReplyOutcome{Index: index, To: to, Subject: subject, Sent: result}, nil
}

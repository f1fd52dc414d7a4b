package dto

import (
	emaildomain "replydesk-backend/internal/email/domain"
)

type MessageListResponse struct {
	ResultSizeEstimate int64                     `json:"resultSizeEstimate"`
	Messages           []emaildomain.MessageRef `json:"messages"`
}

type EmailsResponse struct {
	Emails []*emaildomain.MessageSummary `json:"emails"`
}

type ReplyCandidatesResponse struct {
	Emails []*emaildomain.ReplyCandidate `json:"emails"`
}

type SendEmailRequest struct {
	To      string `json:"to" binding:"required,email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type SendEmailResponse struct {
	Status   string   `json:"status"`
	ID       string   `json:"id"`
	ThreadID string   `json:"threadId"`
	LabelIDs []string `json:"labelIds"`
}

type SendReplyRequest struct {
	EmailIndex *int   `json:"email_index" binding:"required"`
	Body       string `json:"body"`
	Confirm    bool   `json:"confirm"`
}

// SendReplyResponse covers both the confirmation prompt and the sent result.
type SendReplyResponse struct {
	Status   string   `json:"status"`
	Message  string   `json:"message,omitempty"`
	To       string   `json:"to"`
	Subject  string   `json:"subject"`
	ID       string   `json:"id,omitempty"`
	ThreadID string   `json:"threadId,omitempty"`
	LabelIDs []string `json:"labelIds,omitempty"`
}

type DeleteResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}

const (
	StatusSent              = "sent"
	StatusDeleted           = "deleted"
	StatusNeedsConfirmation = "needs_confirmation"
)

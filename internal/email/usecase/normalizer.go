package usecase

import (
	emaildomain "replydesk-backend/internal/email/domain"
)

// Normalize projects a raw message into a summary without its body.
func Normalize(msg *emaildomain.RawMessage) *emaildomain.MessageSummary {
	headers := headerMap(msg.Headers)
	return &emaildomain.MessageSummary{
		ID:       msg.ID,
		ThreadID: msg.ThreadID,
		From:     headers["From"],
		To:       headers["To"],
		Subject:  headers["Subject"],
		Date:     headers["Date"],
		Snippet:  msg.Snippet,
	}
}

// NormalizeWithBody is Normalize plus the extracted body text.
func NormalizeWithBody(msg *emaildomain.RawMessage) *emaildomain.MessageSummary {
	summary := Normalize(msg)
	summary.Body = ExtractBody(msg)
	return summary
}

// headerMap keys headers by their exact name. Empty names or values are
// skipped and a repeated header keeps its last value.
func headerMap(headers []emaildomain.Header) map[string]string {
	out := make(map[string]string, len(headers))
	for _, h := range headers {
		if h.Name == "" || h.Value == "" {
			continue
		}
		out[h.Name] = h.Value
	}
	return out
}

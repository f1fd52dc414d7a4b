package domain

// ReplyCandidate is a listed message annotated with an AI summary and a
// reply draft, addressable by its 1-based Index until the next listing.
type ReplyCandidate struct {
	Index        int    `json:"index"`
	ID           string `json:"id"`
	From         string `json:"from"`
	ToEmail      string `json:"to_email"`
	Subject      string `json:"subject"`
	AISummary    string `json:"ai_summary"`
	AIReplyDraft string `json:"ai_reply_draft"`
}

// ReplyOutcome is the result of a send-reply request. Sent is nil while
// the reply still awaits confirmation.
type ReplyOutcome struct {
	Index   int
	To      string
	Subject string
	Sent    *SendResult
}

// Confirmed reports whether the reply went out.
func (o *ReplyOutcome) Confirmed() bool { return o.Sent != nil }

package domain

// Header is a single name/value pair from a message's header block.
type Header struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Part is a node in a message's MIME tree. It is either a *Leaf or a
// *Container.
type Part interface {
	ContentType() string
	isPart()
}

// Leaf carries an inline base64url payload.
type Leaf struct {
	MimeType string
	Charset  string // from the part's Content-Type header, may be empty
	Data     string
}

// Container holds child parts, typically multipart/*.
type Container struct {
	MimeType string
	Children []Part
}

func (l *Leaf) ContentType() string      { return l.MimeType }
func (c *Container) ContentType() string { return c.MimeType }

func (*Leaf) isPart()      {}
func (*Container) isPart() {}

// RawMessage is a message as returned by the mailbox provider.
// Payload is nil when the message was fetched in metadata mode.
type RawMessage struct {
	ID       string
	ThreadID string
	Snippet  string
	LabelIDs []string
	Headers  []Header
	Payload  Part
}

// ParsedBody holds the textual candidates found while walking a MIME tree.
type ParsedBody struct {
	Plain string
	HTML  string
}

// MessageSummary is the stable projection of a message handed to callers.
type MessageSummary struct {
	ID           string `json:"id"`
	ThreadID     string `json:"threadId"`
	From         string `json:"from"`
	To           string `json:"to"`
	Subject      string `json:"subject"`
	Date         string `json:"date"`
	Snippet      string `json:"snippet"`
	Body         string `json:"body,omitempty"`
	AISummary    string `json:"ai_summary,omitempty"`
	AIReplyDraft string `json:"ai_reply_draft,omitempty"`
}

// MessageRef identifies a message in a listing.
type MessageRef struct {
	ID       string `json:"id"`
	ThreadID string `json:"threadId"`
}

// MessageList is one page of the inbox listing.
type MessageList struct {
	ResultSizeEstimate int64        `json:"resultSizeEstimate"`
	Messages           []MessageRef `json:"messages"`
}

// SendResult is what the provider reports for an accepted outgoing message.
type SendResult struct {
	ID       string   `json:"id"`
	ThreadID string   `json:"threadId"`
	LabelIDs []string `json:"labelIds"`
}

// Profile describes the authenticated mailbox.
type Profile struct {
	EmailAddress  string `json:"emailAddress"`
	MessagesTotal int64  `json:"messagesTotal"`
	ThreadsTotal  int64  `json:"threadsTotal"`
	HistoryID     uint64 `json:"historyId"`
}

// IndexEntry maps a small 1-based number to a reply target. Entries are
// produced by a "last with replies" listing and consumed by a reply send.
type IndexEntry struct {
	Index     int    `json:"index"`
	MessageID string `json:"id"`
	From      string `json:"from"`
	Subject   string `json:"subject"`
}

package gmail

import (
	"mime"

	emaildomain "replydesk-backend/internal/email/domain"

	"google.golang.org/api/gmail/v1"
)

func convertGmailMessage(msg *gmail.Message, withParts bool) *emaildomain.RawMessage {
	raw := &emaildomain.RawMessage{
		ID:       msg.Id,
		ThreadID: msg.ThreadId,
		Snippet:  msg.Snippet,
		LabelIDs: msg.LabelIds,
	}
	if msg.Payload == nil {
		return raw
	}

	raw.Headers = convertHeaders(msg.Payload.Headers)
	if withParts {
		raw.Payload = convertPart(msg.Payload)
	}
	return raw
}

func convertHeaders(headers []*gmail.MessagePartHeader) []emaildomain.Header {
	out := make([]emaildomain.Header, 0, len(headers))
	for _, h := range headers {
		if h == nil {
			continue
		}
		out = append(out, emaildomain.Header{Name: h.Name, Value: h.Value})
	}
	return out
}

// convertPart turns Gmail's loosely typed part into a Leaf or Container.
// A part with inline data is a leaf even if Gmail also lists sub-parts.
func convertPart(part *gmail.MessagePart) emaildomain.Part {
	data := ""
	if part.Body != nil {
		data = part.Body.Data
	}

	if data != "" || len(part.Parts) == 0 {
		return &emaildomain.Leaf{
			MimeType: part.MimeType,
			Charset:  partCharset(part.Headers),
			Data:     data,
		}
	}

	children := make([]emaildomain.Part, 0, len(part.Parts))
	for _, child := range part.Parts {
		if child == nil {
			continue
		}
		children = append(children, convertPart(child))
	}
	return &emaildomain.Container{MimeType: part.MimeType, Children: children}
}

func partCharset(headers []*gmail.MessagePartHeader) string {
	ct := getHeader(headers, "Content-Type")
	if ct == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return ""
	}
	return params["charset"]
}

func getHeader(headers []*gmail.MessagePartHeader, name string) string {
	for _, header := range headers {
		if header != nil && header.Name == name {
			return header.Value
		}
	}
	return ""
}

package usecase

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"

	emaildomain "replydesk-backend/internal/email/domain"

	"golang.org/x/text/encoding/htmlindex"
)

const (
	mimeTextPlain = "text/plain"
	mimeTextHTML  = "text/html"
)

// ExtractBody returns the best readable text of a message: the first
// text/plain leaf, else the first text/html leaf converted to text, else
// the provider snippet.
func ExtractBody(msg *emaildomain.RawMessage) string {
	if msg == nil {
		return ""
	}

	parsed := WalkParts(msg.Payload)

	if strings.TrimSpace(parsed.Plain) != "" {
		return strings.TrimSpace(parsed.Plain)
	}
	if strings.TrimSpace(parsed.HTML) != "" {
		return HTMLToText(parsed.HTML)
	}
	return strings.TrimSpace(msg.Snippet)
}

// WalkParts collects the first plain and first html candidates of a MIME
// tree, depth first. A container stops walking its children once both
// candidates are known; earlier children win.
func WalkParts(part emaildomain.Part) emaildomain.ParsedBody {
	switch p := part.(type) {
	case *emaildomain.Leaf:
		if p.Data == "" {
			return emaildomain.ParsedBody{}
		}
		switch strings.ToLower(p.MimeType) {
		case mimeTextPlain:
			return emaildomain.ParsedBody{Plain: decodePayload(p.Data, p.Charset)}
		case mimeTextHTML:
			return emaildomain.ParsedBody{HTML: decodePayload(p.Data, p.Charset)}
		}
		return emaildomain.ParsedBody{}

	case *emaildomain.Container:
		var out emaildomain.ParsedBody
		for _, child := range p.Children {
			sub := WalkParts(child)
			if out.Plain == "" {
				out.Plain = sub.Plain
			}
			if out.HTML == "" {
				out.HTML = sub.HTML
			}
			if out.Plain != "" && out.HTML != "" {
				break
			}
		}
		return out
	}
	return emaildomain.ParsedBody{}
}

// decodePayload decodes an unpadded base64url payload. Bytes that are not
// valid in the declared charset are replaced, never rejected.
func decodePayload(data, charset string) string {
	if rem := len(data) % 4; rem != 0 {
		data += strings.Repeat("=", 4-rem)
	}
	raw, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		return ""
	}
	return decodeCharset(raw, charset)
}

func decodeCharset(raw []byte, charset string) string {
	cs := strings.ToLower(strings.TrimSpace(charset))
	if cs != "" && cs != "utf-8" && cs != "utf8" {
		if enc, err := htmlindex.Get(cs); err == nil {
			if out, err := enc.NewDecoder().Bytes(raw); err == nil {
				return toValidUTF8(out)
			}
		}
	}
	return toValidUTF8(raw)
}

// toValidUTF8 replaces every invalid byte with U+FFFD.
func toValidUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		sb.WriteRune(r)
		b = b[size:]
	}
	return sb.String()
}

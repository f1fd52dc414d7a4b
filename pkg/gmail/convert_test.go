package gmail

import (
	"encoding/json"
	"errors"
	"testing"

	emaildomain "replydesk-backend/internal/email/domain"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
)

func TestConvertGmailMessageFull(t *testing.T) {
	msg := &gmail.Message{
		Id:       "m1",
		ThreadId: "t1",
		Snippet:  "hi",
		LabelIds: []string{"INBOX"},
		Payload: &gmail.MessagePart{
			MimeType: "multipart/alternative",
			Headers: []*gmail.MessagePartHeader{
				{Name: "From", Value: "a@example.com"},
				nil,
			},
			Body: &gmail.MessagePartBody{Size: 0},
			Parts: []*gmail.MessagePart{
				{
					MimeType: "text/plain",
					Headers:  []*gmail.MessagePartHeader{{Name: "Content-Type", Value: `text/plain; charset="ISO-8859-1"`}},
					Body:     &gmail.MessagePartBody{Data: "aGk"},
				},
				{
					MimeType: "text/html",
					Body:     &gmail.MessagePartBody{Data: "PGI-aGk8L2I-"},
				},
			},
		},
	}

	raw := convertGmailMessage(msg, true)

	if raw.ID != "m1" || raw.ThreadID != "t1" || raw.Snippet != "hi" {
		t.Errorf("identity fields = %+v", raw)
	}
	if len(raw.Headers) != 1 || raw.Headers[0].Name != "From" {
		t.Errorf("Headers = %+v", raw.Headers)
	}

	root, ok := raw.Payload.(*emaildomain.Container)
	if !ok {
		t.Fatalf("Payload is %T, want *Container", raw.Payload)
	}
	if len(root.Children) != 2 {
		t.Fatalf("got %d children, want 2", len(root.Children))
	}
	plain, ok := root.Children[0].(*emaildomain.Leaf)
	if !ok || plain.Data != "aGk" || plain.Charset != "ISO-8859-1" {
		t.Errorf("plain child = %+v", root.Children[0])
	}
	html, ok := root.Children[1].(*emaildomain.Leaf)
	if !ok || html.MimeType != "text/html" || html.Charset != "" {
		t.Errorf("html child = %+v", root.Children[1])
	}
}

func TestConvertGmailMessageMetadataHasNoPayload(t *testing.T) {
	msg := &gmail.Message{
		Id: "m1",
		Payload: &gmail.MessagePart{
			MimeType: "text/plain",
			Headers:  []*gmail.MessagePartHeader{{Name: "Subject", Value: "Hello"}},
		},
	}

	raw := convertGmailMessage(msg, false)
	if raw.Payload != nil {
		t.Errorf("Payload = %+v, want nil", raw.Payload)
	}
	if len(raw.Headers) != 1 || raw.Headers[0].Value != "Hello" {
		t.Errorf("Headers = %+v", raw.Headers)
	}
}

func TestConvertPartWithDataIsLeaf(t *testing.T) {
	part := &gmail.MessagePart{
		MimeType: "text/plain",
		Body:     &gmail.MessagePartBody{Data: "eA"},
		Parts:    []*gmail.MessagePart{{MimeType: "text/html"}},
	}
	if _, ok := convertPart(part).(*emaildomain.Leaf); !ok {
		t.Error("part with inline data should be a leaf")
	}
}

func TestUpstreamKeepsGoogleErrorBody(t *testing.T) {
	body := `{"error":{"code":404,"message":"Requested entity was not found."}}`
	err := upstream("get message", &googleapi.Error{Code: 404, Message: "not found", Body: body})

	var up *emaildomain.UpstreamError
	if !errors.As(err, &up) {
		t.Fatalf("err = %T, want UpstreamError", err)
	}
	raw, ok := up.Detail.(json.RawMessage)
	if !ok || string(raw) != body {
		t.Errorf("Detail = %#v, want raw body", up.Detail)
	}
	if up.Op != "get message" {
		t.Errorf("Op = %q", up.Op)
	}
}

func TestUpstreamWithoutBody(t *testing.T) {
	err := upstream("send message", &googleapi.Error{Code: 500, Message: "backend error"})

	var up *emaildomain.UpstreamError
	if !errors.As(err, &up) {
		t.Fatal("want UpstreamError")
	}
	detail, ok := up.Detail.(map[string]any)
	if !ok {
		t.Fatalf("Detail = %#v", up.Detail)
	}
	inner := detail["error"].(map[string]any)
	if inner["code"] != 500 || inner["message"] != "backend error" {
		t.Errorf("Detail = %#v", detail)
	}

	plain := upstream("list messages", errors.New("dial tcp: refused"))
	if !errors.As(plain, &up) {
		t.Fatal("want UpstreamError")
	}
	if up.Detail.(map[string]any)["error"] != "dial tcp: refused" {
		t.Errorf("Detail = %#v", up.Detail)
	}
}

package gmail

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-message/mail"
)

func TestComposeMessage(t *testing.T) {
	date := time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC)
	raw, err := ComposeMessage("alice@example.com", "Re: Grüße", "Hallo Alice,\nschön!\n", date)
	if err != nil {
		t.Fatalf("ComposeMessage() error = %v", err)
	}

	r, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("CreateReader() error = %v", err)
	}

	to, err := r.Header.AddressList("To")
	if err != nil || len(to) != 1 || to[0].Address != "alice@example.com" {
		t.Errorf("To = %v, %v", to, err)
	}
	subject, err := r.Header.Subject()
	if err != nil || subject != "Re: Grüße" {
		t.Errorf("Subject = %q, %v", subject, err)
	}
	got, err := r.Header.Date()
	if err != nil || !got.Equal(date) {
		t.Errorf("Date = %v, %v", got, err)
	}

	part, err := r.NextPart()
	if err != nil {
		t.Fatalf("NextPart() error = %v", err)
	}
	h, ok := part.Header.(*mail.InlineHeader)
	if !ok {
		t.Fatalf("part header is %T, want inline", part.Header)
	}
	mediaType, params, err := h.ContentType()
	if err != nil || mediaType != "text/plain" || !strings.EqualFold(params["charset"], "utf-8") {
		t.Errorf("ContentType = %q %v %v", mediaType, params, err)
	}

	body, err := io.ReadAll(part.Body)
	if err != nil {
		t.Fatal(err)
	}
	// quoted-printable keeps the CRLF line endings it was written with
	if got := strings.ReplaceAll(string(body), "\r\n", "\n"); got != "Hallo Alice,\nschön!\n" {
		t.Errorf("body = %q", body)
	}
}

func TestComposeMessageEncodesSubject(t *testing.T) {
	raw, err := ComposeMessage("bob@example.com", "Café", "x", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(raw, []byte("Subject: Café")) {
		t.Error("non-ASCII subject should be RFC 2047 encoded")
	}
}

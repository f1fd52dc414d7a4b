package gmail

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-message/mail"
)

// ComposeMessage builds a single-part text/plain UTF-8 message ready for
// SendMessage. Non-ASCII subjects are RFC 2047 encoded by go-message.
func ComposeMessage(to, subject, body string, date time.Time) ([]byte, error) {
	var h mail.Header
	h.SetDate(date)
	h.SetAddressList("To", []*mail.Address{{Address: to}})
	h.SetSubject(subject)
	h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
	h.Set("Content-Transfer-Encoding", "quoted-printable")

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("unable to create message: %w", err)
	}
	if _, err := io.WriteString(w, body); err != nil {
		return nil, fmt.Errorf("unable to write message body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("unable to finish message: %w", err)
	}
	return buf.Bytes(), nil
}

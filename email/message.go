package email

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/textproto"
	"strings"
	"time"
)

// OutboundMessage is a single email, built fresh for each send attempt and
// discarded afterwards. Create it with Mailer.Compose so the sender fields,
// Message-ID and Date are filled in.
type OutboundMessage struct {
	To          string
	Subject     string
	HTML        string
	Text        string // optional plain-text alternative
	FromName    string
	FromAddress string
	MessageID   string
	Date        time.Time
}

// From returns the From header value, "{display name} <{address}>".
func (om OutboundMessage) From() string {
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", om.FromName), om.FromAddress)
}

func (om OutboundMessage) validate() error {
	if om.To == "" {
		return fmt.Errorf("%w: the recipient can't be blank", ErrInvalidParams)
	}
	if om.Subject == "" {
		return fmt.Errorf("%w: the subject can't be blank", ErrInvalidParams)
	}
	if om.HTML == "" {
		return fmt.Errorf("%w: the HTML body can't be blank", ErrInvalidParams)
	}
	return nil
}

// WriteTo writes om to w as a MIME multipart/alternative message. The
// text/plain part, when there is one, comes before the text/html part so
// mail clients prefer the HTML. Implements io.WriterTo, which is what the
// SMTP sender consumes during DATA.
func (om OutboundMessage) WriteTo(w io.Writer) (int64, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if om.Text != "" {
		if err := writePart(mw, "text/plain", om.Text); err != nil {
			return 0, err
		}
	}
	if err := writePart(mw, "text/html", om.HTML); err != nil {
		return 0, err
	}
	if err := mw.Close(); err != nil {
		return 0, err
	}

	var hdr strings.Builder
	writeHeader(&hdr, "From", om.From())
	writeHeader(&hdr, "To", om.To)
	writeHeader(&hdr, "Subject", mime.QEncoding.Encode("utf-8", om.Subject))
	if !om.Date.IsZero() {
		writeHeader(&hdr, "Date", om.Date.Format(time.RFC1123Z))
	}
	if om.MessageID != "" {
		writeHeader(&hdr, "Message-ID", om.MessageID)
	}
	writeHeader(&hdr, "MIME-Version", "1.0")
	writeHeader(&hdr, "Content-Type", mime.FormatMediaType(
		"multipart/alternative",
		map[string]string{"boundary": mw.Boundary()},
	))
	hdr.WriteString("\r\n")

	n, err := io.WriteString(w, hdr.String())
	if err != nil {
		return int64(n), err
	}
	m, err := body.WriteTo(w)
	return int64(n) + m, err
}

func writeHeader(b *strings.Builder, key, value string) {
	b.WriteString(key)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\r\n")
}

// writePart adds one quoted-printable part to mw.
func writePart(mw *multipart.Writer, mediaType string, content string) error {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", mime.FormatMediaType(mediaType, map[string]string{"charset": "utf-8"}))
	h.Set("Content-Transfer-Encoding", "quoted-printable")

	pw, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("can't create the %v part: %w", mediaType, err)
	}

	qw := quotedprintable.NewWriter(pw)
	if _, err := io.WriteString(qw, content); err != nil {
		return fmt.Errorf("can't write the %v part: %w", mediaType, err)
	}
	return qw.Close()
}

package smtptest

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
)

// Part is one decoded body part of a received email.
type Part struct {
	MediaType string // e.g., "text/html", parameters stripped
	Body      string
}

// ParsedEmail is a received email broken into headers and decoded parts.
type ParsedEmail struct {
	Header    mail.Header
	Subject   string // decoded from RFC 2047 encoded-words
	MediaType string
	Parts     []Part
}

// Part returns the first part with the given media type and whether there
// was one.
func (pe *ParsedEmail) Part(mediaType string) (Part, bool) {
	for _, p := range pe.Parts {
		if p.MediaType == mediaType {
			return p, true
		}
	}
	return Part{}, false
}

// ParseEmail takes a single raw email body, as returned by RetrieveEmails,
// and splits it into its headers and MIME parts in order. Quoted-printable
// parts are decoded. If a test is failing and calls this function, make sure
// the message really is a multipart message before blaming the parser.
func ParseEmail(raw string) (*ParsedEmail, error) {
	msg, err := mail.ReadMessage(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("can't read the email headers: %w", err)
	}

	pe := &ParsedEmail{Header: msg.Header}

	sub, err := new(mime.WordDecoder).DecodeHeader(msg.Header.Get("Subject"))
	if err != nil {
		return nil, fmt.Errorf("can't decode the subject: %w", err)
	}
	pe.Subject = sub

	mt, params, err := mime.ParseMediaType(msg.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("can't parse the Content-Type header: %w", err)
	}
	pe.MediaType = mt

	if !strings.HasPrefix(mt, "multipart/") {
		b, err := io.ReadAll(msg.Body)
		if err != nil {
			return nil, err
		}
		pe.Parts = append(pe.Parts, Part{MediaType: mt, Body: string(b)})
		return pe, nil
	}

	rdr := multipart.NewReader(msg.Body, params["boundary"])
	for {
		p, err := rdr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("can't read a MIME part: %w", err)
		}

		pmt, _, err := mime.ParseMediaType(p.Header.Get("Content-Type"))
		if err != nil {
			return nil, fmt.Errorf("can't parse a part's Content-Type: %w", err)
		}

		// NextPart already undoes quoted-printable encoding
		b, err := io.ReadAll(p)
		if err != nil {
			return nil, fmt.Errorf("can't read a %v part: %w", pmt, err)
		}
		pe.Parts = append(pe.Parts, Part{MediaType: pmt, Body: string(b)})
	}

	return pe, nil
}

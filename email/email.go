package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	mail "gopkg.in/mail.v2"
)

const sentMessage = "Email sent successfully"

// Result is the outcome of a single send attempt. It's returned as a value
// in place of an error so callers can hand it straight back to a client,
// e.g., {"success": false, "error": "..."}.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Succeeded returns the Result of a delivered message.
func Succeeded() Result {
	return Result{Success: true, Message: sentMessage}
}

// Failed collapses err into a failure Result.
func Failed(err error) Result {
	return Result{Success: false, Error: err.Error()}
}

// Sender delivers a single email. Mailer is the SMTP implementation.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody, textBody string) Result
}

// Mailer handles interactions with the SMTP relay. It only reads its
// configuration after NewMailer, so it's safe for concurrent use.
type Mailer struct {
	config UserConfig
}

// NewMailer validates uc and returns a Mailer that relays email with it.
// Returns an error on validation failure.
func NewMailer(uc UserConfig) (*Mailer, error) {
	c, err := uc.CheckAndSetDefaults()
	if err != nil {
		return nil, err
	}
	return &Mailer{config: c}, nil
}

// Compose builds the OutboundMessage for a send without contacting the
// relay. textBody may be blank, in which case only the HTML part is
// attached.
func (m *Mailer) Compose(to, subject, htmlBody, textBody string) OutboundMessage {
	return OutboundMessage{
		To:          to,
		Subject:     subject,
		HTML:        htmlBody,
		Text:        textBody,
		FromName:    m.config.FromName,
		FromAddress: m.config.FromAddress,
		MessageID:   fmt.Sprintf("<%v@%v>", uuid.New().String(), m.messageIDDomain()),
		Date:        time.Now(),
	}
}

func (m *Mailer) messageIDDomain() string {
	if i := strings.LastIndex(m.config.FromAddress, "@"); i >= 0 && i < len(m.config.FromAddress)-1 {
		return m.config.FromAddress[i+1:]
	}
	return m.config.Host
}

// Send composes a message and relays it: connect, STARTTLS, AUTH, then a
// single MAIL/RCPT/DATA exchange. Nothing is retried. Any failure along the
// way is returned as a failure Result rather than an error.
//
// The SMTP exchange blocks, so it runs on its own goroutine. If ctx is done
// first, Send returns a failure right away and the exchange finishes (and
// closes its connection) in the background. A failure caused by ctx
// therefore doesn't mean the message wasn't delivered: the relay may still
// accept it. The eventual outcome is logged at warn level.
func (m *Mailer) Send(ctx context.Context, to, subject, htmlBody, textBody string) Result {
	msg := m.Compose(to, subject, htmlBody, textBody)
	l := log.With().
		Str("to", msg.To).
		Str("subject", msg.Subject).
		Str("messageID", msg.MessageID).
		Logger()

	if err := msg.validate(); err != nil {
		l.Error().Err(err).Msg("refusing to send an incomplete email")
		return Failed(fmt.Errorf("%w: %w", ErrFailedToSendEmail, err))
	}

	if err := ctx.Err(); err != nil {
		l.Error().Err(err).Msg("not sending an email for a finished context")
		return Failed(fmt.Errorf("%w: %w", ErrFailedToSendEmail, err))
	}

	// buffered so the goroutine can always exit, even if nobody is left to
	// receive
	done := make(chan error, 1)
	go func() {
		done <- m.deliver(msg)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
		go func() {
			if lateErr := <-done; lateErr != nil {
				l.Warn().Err(lateErr).Msg("abandoned send failed")
				return
			}
			l.Warn().Msg("abandoned send was delivered after its context ended")
		}()
	}

	if err != nil {
		l.Error().Err(err).Msg("error sending an email")
		return Failed(fmt.Errorf("%w: %w", ErrFailedToSendEmail, err))
	}

	l.Info().Msg("sent an email")
	return Succeeded()
}

// deliver opens exactly one connection to the relay and closes it on every
// path out.
func (m *Mailer) deliver(msg OutboundMessage) error {
	if m.config.Username == "" || m.config.Password == "" {
		return fmt.Errorf("%w: SMTP credentials are not configured", ErrInvalidConfig)
	}

	d := mail.NewDialer(m.config.Host, m.config.Port, m.config.Username, m.config.Password)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.RetryFailure = false
	d.TLSConfig = &tls.Config{
		ServerName:         m.config.Host,
		InsecureSkipVerify: m.config.InsecureSkipVerify,
	}

	s, err := d.Dial()
	if err != nil {
		return fmt.Errorf("can't open an authenticated connection to %v:%v: %w", m.config.Host, m.config.Port, err)
	}
	// Close sends QUIT. By then the message was either accepted or the
	// failure has already been reported, so its error doesn't change the
	// outcome.
	defer s.Close()

	if err := s.Send(msg.FromAddress, []string{msg.To}, msg); err != nil {
		return fmt.Errorf("the relay did not accept the message: %w", err)
	}

	return nil
}

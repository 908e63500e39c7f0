package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ptgott/fombina-mail/email"
	"github.com/ptgott/fombina-mail/html"
	"github.com/rs/zerolog/log"
)

// Scenario names one of the transactional emails.
type Scenario string

const (
	Booking       Scenario = "booking"
	Contact       Scenario = "contact"
	Welcome       Scenario = "welcome"
	PasswordReset Scenario = "password-reset"
	Application   Scenario = "application"
)

// Scenarios lists every scenario Send can dispatch.
var Scenarios = []Scenario{Booking, Contact, Welcome, PasswordReset, Application}

// ErrUnknownScenario is returned for a scenario name Send doesn't know.
var ErrUnknownScenario = errors.New("unknown scenario")

// ParseScenario returns the Scenario called name.
func ParseScenario(name string) (Scenario, error) {
	for _, s := range Scenarios {
		if string(s) == strings.ToLower(strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScenario, name)
}

// Service sends the transactional emails. Contact form submissions go to
// the administrator. Everything else goes to the address in the "email"
// field.
type Service struct {
	sender     email.Sender
	adminEmail string
}

// New returns a Service that delivers through sender and routes contact
// notifications to adminEmail.
func New(sender email.Sender, adminEmail string) *Service {
	return &Service{
		sender:     sender,
		adminEmail: adminEmail,
	}
}

// Send dispatches data to the entry point for scenario.
func (s *Service) Send(ctx context.Context, scenario Scenario, data Fields) email.Result {
	switch scenario {
	case Booking:
		return s.SendBookingConfirmation(ctx, data)
	case Contact:
		return s.SendContactNotification(ctx, data)
	case Welcome:
		return s.SendWelcome(ctx, data)
	case PasswordReset:
		return s.SendPasswordReset(ctx, data)
	case Application:
		return s.SendApplicationConfirmation(ctx, data)
	default:
		return s.fail(scenario, fmt.Errorf("%w: %q", ErrUnknownScenario, scenario))
	}
}

// SendBookingConfirmation requires name, email, space_name, booking_id,
// amount and phone. amount can be any number or a numeric string.
func (s *Service) SendBookingConfirmation(ctx context.Context, data Fields) email.Result {
	v, err := data.require("name", "email", "space_name", "booking_id", "amount", "phone")
	if err != nil {
		return s.fail(Booking, err)
	}

	amt, err := html.FormatAmount(data["amount"])
	if err != nil {
		return s.fail(Booking, err)
	}

	e, err := html.BookingConfirmation(html.Booking{
		Name:      v["name"],
		Email:     v["email"],
		Phone:     v["phone"],
		SpaceName: v["space_name"],
		BookingID: v["booking_id"],
		Amount:    amt,
	})
	if err != nil {
		return s.fail(Booking, err)
	}

	return s.deliver(ctx, Booking, v["email"], e)
}

// SendContactNotification requires name, email and message. phone and
// subject are optional. The email goes to the administrator, never to the
// visitor who filled in the form.
func (s *Service) SendContactNotification(ctx context.Context, data Fields) email.Result {
	v, err := data.require("name", "email", "message")
	if err != nil {
		return s.fail(Contact, err)
	}

	e, err := html.ContactNotification(html.Contact{
		Name:    v["name"],
		Email:   v["email"],
		Phone:   data.optional("phone"),
		Subject: data.optional("subject"),
		Message: v["message"],
	})
	if err != nil {
		return s.fail(Contact, err)
	}

	return s.deliver(ctx, Contact, s.adminEmail, e)
}

// SendWelcome requires name and email.
func (s *Service) SendWelcome(ctx context.Context, data Fields) email.Result {
	v, err := data.require("name", "email")
	if err != nil {
		return s.fail(Welcome, err)
	}

	e, err := html.WelcomeEmail(html.Welcome{Name: v["name"]})
	if err != nil {
		return s.fail(Welcome, err)
	}

	return s.deliver(ctx, Welcome, v["email"], e)
}

// SendPasswordReset requires name, email and reset_token.
func (s *Service) SendPasswordReset(ctx context.Context, data Fields) email.Result {
	v, err := data.require("name", "email", "reset_token")
	if err != nil {
		return s.fail(PasswordReset, err)
	}

	e, err := html.PasswordResetEmail(html.PasswordReset{
		Name:  v["name"],
		Token: v["reset_token"],
	})
	if err != nil {
		return s.fail(PasswordReset, err)
	}

	return s.deliver(ctx, PasswordReset, v["email"], e)
}

// SendApplicationConfirmation requires name, email, application_id,
// floor_level and payment_mode.
func (s *Service) SendApplicationConfirmation(ctx context.Context, data Fields) email.Result {
	v, err := data.require("name", "email", "application_id", "floor_level", "payment_mode")
	if err != nil {
		return s.fail(Application, err)
	}

	e, err := html.ApplicationConfirmation(html.Application{
		Name:          v["name"],
		ApplicationID: v["application_id"],
		FloorLevel:    v["floor_level"],
		PaymentMode:   v["payment_mode"],
	})
	if err != nil {
		return s.fail(Application, err)
	}

	return s.deliver(ctx, Application, v["email"], e)
}

func (s *Service) deliver(ctx context.Context, sc Scenario, to string, e html.Email) email.Result {
	log.Debug().
		Str("scenario", string(sc)).
		Str("to", to).
		Msg("sending a notification")
	// No plain-text alternative for any scenario
	return s.sender.Send(ctx, to, e.Subject, e.HTML, "")
}

// fail reports a problem found before anything reached the sender.
func (s *Service) fail(sc Scenario, err error) email.Result {
	log.Error().
		Err(err).
		Str("scenario", string(sc)).
		Msg("could not prepare a notification")
	return email.Failed(fmt.Errorf("%w: %w", email.ErrFailedToSendEmail, err))
}

package email

import "errors"

var (
	// ErrFailedToSendEmail prefixes every delivery failure.
	ErrFailedToSendEmail = errors.New("failed to send email")
	// ErrInvalidConfig indicates unusable SMTP settings.
	ErrInvalidConfig = errors.New("invalid email configuration")
	// ErrInvalidParams indicates a message missing its recipient, subject
	// or HTML body.
	ErrInvalidParams = errors.New("invalid email parameters")
)

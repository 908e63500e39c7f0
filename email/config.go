package email

import (
	"fmt"
)

// UserConfig represents the SMTP settings provided by the operator through
// the environment. Not meant to be used directly for sending email without
// calling CheckAndSetDefaults.
type UserConfig struct {
	Host     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASSWORD"`
	// Defaults to Username when left blank.
	FromAddress string `env:"FROM_EMAIL"`
	FromName    string `env:"FROM_NAME" envDefault:"Fombina Tower"`
	// Only meant for self-signed test relays.
	InsecureSkipVerify bool `env:"SMTP_INSECURE_SKIP_VERIFY" envDefault:"false"`
}

// CheckAndSetDefaults validates uc and either returns a copy of uc with
// default settings applied or returns an error due to an invalid
// configuration.
//
// Missing credentials are not a configuration error. Sending without them
// fails at the send boundary like any other authentication problem.
func (uc *UserConfig) CheckAndSetDefaults() (UserConfig, error) {
	if uc.Host == "" {
		return UserConfig{}, fmt.Errorf("%w: the SMTP host can't be blank", ErrInvalidConfig)
	}

	if uc.Port <= 0 || uc.Port > 65535 {
		return UserConfig{}, fmt.Errorf(
			"%w: the SMTP port must be between 1 and 65535, got %v",
			ErrInvalidConfig,
			uc.Port,
		)
	}

	c := *uc
	if c.FromAddress == "" {
		c.FromAddress = c.Username
	}

	return c, nil
}

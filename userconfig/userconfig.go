package userconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/ptgott/fombina-mail/email"
	"github.com/rs/zerolog/log"
)

// Meta represents all current config options that the application can use,
// i.e., after validation and parsing
type Meta struct {
	EmailSettings email.UserConfig
	// Contact form submissions are sent here
	AdminEmail string `env:"ADMIN_EMAIL" envDefault:"admin@fombinatower.com"`
}

// CheckAndSetDefaults validates m and either returns a copy of m with default
// settings applied or returns an error due to an invalid configuration
func (m *Meta) CheckAndSetDefaults() (Meta, error) {
	c := Meta{}

	e, err := m.EmailSettings.CheckAndSetDefaults()
	if err != nil {
		return Meta{}, err
	}
	c.EmailSettings = e

	c.AdminEmail = strings.TrimSpace(m.AdminEmail)
	if c.AdminEmail == "" {
		return Meta{}, errors.New("the administrator email address can't be blank")
	}

	return c, nil
}

// Parse generates usable configurations from a set of environment
// variables, e.g., the output of env.ToMap(os.Environ()). An error
// indicates a problem with parsing or validation.
func Parse(environ map[string]string) (*Meta, error) {
	var m Meta
	if err := env.ParseWithOptions(&m, env.Options{Environment: environ}); err != nil {
		return &Meta{}, fmt.Errorf("can't read the config from the environment: %w", err)
	}

	c, err := m.CheckAndSetDefaults()
	if err != nil {
		return &Meta{}, err
	}

	return &c, nil
}

// Load reads the process environment on top of the .env file at
// dotenvPath. Variables set in the environment win over the file. A
// missing file is fine, since production deployments set everything in the
// environment. Pass a blank path to skip the file.
func Load(dotenvPath string) (*Meta, error) {
	environ := make(map[string]string)

	if dotenvPath != "" {
		f, err := godotenv.Read(dotenvPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Debug().Str("path", dotenvPath).Msg("no .env file, using the environment only")
		case err != nil:
			return &Meta{}, fmt.Errorf("can't read the .env file at %v: %w", dotenvPath, err)
		default:
			environ = f
		}
	}

	for k, v := range env.ToMap(os.Environ()) {
		environ[k] = v
	}

	return Parse(environ)
}

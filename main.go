package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/ptgott/fombina-mail/email"
	"github.com/ptgott/fombina-mail/notify"
	"github.com/ptgott/fombina-mail/userconfig"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	yaml "gopkg.in/yaml.v2"
)

// printSender writes the email to an io.Writer instead of sending it, to
// help test data files and configuration.
type printSender struct {
	w io.Writer
}

func (p printSender) Send(_ context.Context, to, subject, htmlBody, _ string) email.Result {
	_, err := fmt.Fprintf(p.w, "To: %v\nSubject: %v\n\n%v\n", to, subject, htmlBody)
	if err != nil {
		return email.Failed(fmt.Errorf("%w: %w", email.ErrFailedToSendEmail, err))
	}
	return email.Result{Success: true, Message: "Email printed instead of sent"}
}

// readData decodes the scenario's fields from a YAML or JSON document at
// path, or from stdin if path is "-".
func readData(path string) (notify.Fields, error) {
	var b []byte
	var err error
	if path == "-" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("can't read the data file: %w", err)
	}

	var d map[string]interface{}
	if err := yaml.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("can't read the data file as YAML or JSON: %w", err)
	}
	if len(d) == 0 {
		return nil, fmt.Errorf("the data file at %v is empty", path)
	}

	return notify.Fields(d), nil
}

func main() {
	// Log with filename and line number. This writes to stderr, so it should
	// be thread safe.
	// https://github.com/rs/zerolog/blob/7ccd4c940bf8a02fcc5f10e5475f9d3daff04d57/log/log.go#L13
	log.Logger = log.With().Caller().Logger()

	// An interrupt abandons a send that's still talking to the relay
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	envPath := flag.String(
		"env",
		".env",
		"path to a .env file with SMTP settings. Environment variables take precedence.",
	)
	scenario := flag.String(
		"scenario",
		"",
		`email to send: "booking", "contact", "welcome", "password-reset", or "application"`,
	)
	dataPath := flag.String(
		"data",
		"",
		`path to a JSON or YAML file containing the email's fields, or "-" for stdin`,
	)
	noEmail := flag.Bool(
		"noemail",
		false,
		"print email body HTML to stdout instead of sending it",
	)
	level := flag.String(
		"level",
		"info",
		`log level: "info", "debug", or "warn"`,
	)
	flag.Parse()

	switch *level {
	case "debug":
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	case "warn":
		log.Logger = log.Logger.Level(zerolog.WarnLevel)
	default:
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	sc, err := notify.ParseScenario(*scenario)
	if err != nil {
		log.Error().
			Err(err).
			Msg("Pass one of the supported scenarios with -scenario")
		os.Exit(1)
	}

	if *dataPath == "" {
		log.Error().Msg("Pass the path to the email's data with -data")
		os.Exit(1)
	}

	data, err := readData(*dataPath)
	if err != nil {
		log.Error().
			Str("data-path", *dataPath).
			Err(err).
			Msg("We can't read the email's data")
		os.Exit(1)
	}

	config, err := userconfig.Load(*envPath)
	if err != nil {
		log.Error().
			Str("env-path", *envPath).
			Err(err).
			Msg("Problem loading your config")
		os.Exit(1)
	}

	log.Info().
		Str("scenario", string(sc)).
		Str("smtpHost", config.EmailSettings.Host).
		Msg("successfully validated the config")

	var sender email.Sender
	if *noEmail {
		sender = printSender{w: os.Stdout}
	} else {
		m, err := email.NewMailer(config.EmailSettings)
		if err != nil {
			log.Error().
				Err(err).
				Msg("Problem validating your SMTP settings")
			os.Exit(1)
		}
		sender = m
	}

	r := notify.New(sender, config.AdminEmail).Send(ctx, sc, data)

	if *noEmail {
		log.Info().Bool("success", r.Success).Str("error", r.Error).Msg("finished")
	} else {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(r); err != nil {
			log.Error().Err(err).Msg("can't print the result")
		}
	}

	if !r.Success {
		os.Exit(1)
	}
}

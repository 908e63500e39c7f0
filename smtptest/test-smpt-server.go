package smtptest

// Server contains state information for a test SMTP relay. The relay should
// be able to return the payloads of messages sent to it during the test
// suite. The server is meant to start during a test (or test suite) and stop
// right after. InProcessServer is the only implementation.
type Server interface {
	// Start serves SMTP connections until Close is called. Blocking.
	Start() error

	// Close terminates the serve process and any required resources. While
	// this is designed not to return an error so it's easier to use with defer,
	// implementations should log failures to close so the test operator can
	// chase down rogue server processes.
	Close()

	// RetrieveEmails returns the payloads of all email messages sent to the
	// server during the test/suite after time t in Unix epoch nanoseconds.
	RetrieveEmails(t int64) ([]string, error)

	// Messages returns every message received so far, envelope included.
	Messages() []Message

	// Address returns the host:port of the server.
	Address() string

	// HostPort returns the host and port of the server separately.
	HostPort() (string, int)
}

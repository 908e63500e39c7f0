package smtptest

import (
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/mail"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/docker/go-units"
	"github.com/emersion/go-smtp"
	"github.com/rs/zerolog/log"
)

var _ Server = (*InProcessServer)(nil)

// Message is an email as the server received it, including the SMTP
// envelope. Body is the raw DATA payload.
type Message struct {
	From    string
	To      []string
	Body    string
	created time.Time
}

// Backend implements smtp.Backend. It's a thin authentication wrapper
// for an InMemoryEmailStore.
type Backend struct {
	*InMemoryEmailStore
}

// Login implements smtp.Backend. Unless RequireCredentials was called, any
// non-blank username/password is fine, since we don't want to couple this
// with specific test configurations.
func (be *Backend) Login(_ *smtp.ConnectionState, username string, password string) (smtp.Session, error) {
	if username == "" || password == "" {
		return nil, errors.New("no username or password provided")
	}
	if !be.checkCredentials(username, password) {
		return nil, errors.New("invalid username or password")
	}
	return &session{store: be.InMemoryEmailStore}, nil
}

// AnonymousLogin implements smtp.Backend. Not supported since we want to
// enforce AUTH.
func (be *Backend) AnonymousLogin(_ *smtp.ConnectionState) (smtp.Session, error) {
	return nil, smtp.ErrAuthUnsupported
}

// session implements smtp.Session for a single authenticated connection,
// collecting the envelope until DATA hands it to the store.
type session struct {
	store *InMemoryEmailStore
	from  string
	to    []string
}

// Reset implements smtp.Session.
func (s *session) Reset() {
	s.from = ""
	s.to = nil
}

// Logout implements smtp.Session. No-op here.
func (s *session) Logout() error { return nil }

// Mail implements smtp.Session.
func (s *session) Mail(from string, _ smtp.MailOptions) error {
	s.from = from
	return nil
}

// Rcpt implements smtp.Session. Rejects recipients that don't parse as an
// address, the way a real relay would.
func (s *session) Rcpt(to string) error {
	if _, err := mail.ParseAddress(to); err != nil {
		return &smtp.SMTPError{
			Code:         553,
			EnhancedCode: smtp.EnhancedCode{5, 1, 3},
			Message:      "invalid recipient address",
		}
	}
	s.to = append(s.to, to)
	return nil
}

// Data implements smtp.Session. Stores the email data in memory for
// retrieval at the end of the test.
func (s *session) Data(r io.Reader) error {
	// doubtful we'll get an email this big, but we need a limit
	var maxEmailSize int64 = 100 * units.MiB
	buf, err := io.ReadAll(io.LimitReader(r, maxEmailSize))
	if err != nil {
		return err
	}

	if arrived, release := s.store.stalled(); release != nil {
		select {
		case arrived <- struct{}{}:
		default:
		}
		<-release
	}

	s.store.saveEmail(Message{
		From: s.from,
		To:   append([]string(nil), s.to...),
		Body: string(buf),
	})
	return nil
}

// InMemoryEmailStore retains email bodies in memory for comparison against
// a test's expected output. Designed to be goroutine safe since we don't
// know how many goroutines will be hitting the server at once.
type InMemoryEmailStore struct {
	mu       *sync.Mutex
	messages []Message
	username string
	password string
	// see StallData
	arrived chan<- struct{}
	release <-chan struct{}
}

// saveEmail stores the message along with a timestamp created just prior to
// saving
func (es *InMemoryEmailStore) saveEmail(m Message) {
	es.mu.Lock()
	defer es.mu.Unlock()

	m.created = time.Now()
	es.messages = append(es.messages, m)
}

func (es *InMemoryEmailStore) checkCredentials(username, password string) bool {
	es.mu.Lock()
	defer es.mu.Unlock()

	if es.username == "" && es.password == "" {
		return true
	}
	return es.username == username && es.password == password
}

// RequireCredentials makes the server reject any AUTH attempt that doesn't
// use username and password.
func (es *InMemoryEmailStore) RequireCredentials(username, password string) {
	es.mu.Lock()
	defer es.mu.Unlock()

	es.username = username
	es.password = password
}

// StallData makes the server hold each message after reading its DATA,
// without replying, until release is closed. A value is sent on arrived
// (if there's room) as each message starts waiting, so tests can act while
// a client is mid-exchange.
func (es *InMemoryEmailStore) StallData(arrived chan<- struct{}, release <-chan struct{}) {
	es.mu.Lock()
	defer es.mu.Unlock()

	es.arrived = arrived
	es.release = release
}

func (es *InMemoryEmailStore) stalled() (chan<- struct{}, <-chan struct{}) {
	es.mu.Lock()
	defer es.mu.Unlock()

	return es.arrived, es.release
}

// RetrieveEmails returns a slice of all message bodies (as strings)
// sent after epoch nanoseconds t.
// Satisfies smtptest.Server but isn't expected to return an error.
func (es *InMemoryEmailStore) RetrieveEmails(t int64) ([]string, error) {
	es.mu.Lock()
	defer es.mu.Unlock()

	r := make([]string, 0, len(es.messages))
	for _, m := range es.messages {
		if m.created.UnixNano() >= t {
			r = append(r, m.Body)
		}
	}
	return r, nil
}

// Messages returns every message received so far, envelope included.
func (es *InMemoryEmailStore) Messages() []Message {
	es.mu.Lock()
	defer es.mu.Unlock()

	return append([]Message(nil), es.messages...)
}

// InProcessServer is an SMTP server that runs in the same process as the
// test suite, letting us inspect sent emails. You must initialize this
// via NewInProcessServer
type InProcessServer struct {
	*smtp.Server
	*InMemoryEmailStore
	listener net.Listener
}

// NewInProcessServer creates an InProcessServer listening on a random
// loopback port, including configuring its SMTP server to store incoming
// messages in memory.
//
// keypath and certpath are the key and cert used for STARTTLS. Pass blank
// paths to get a server that never offers STARTTLS, which a compliant client
// has to refuse.
func NewInProcessServer(keypath string, certpath string) (*InProcessServer, error) {
	is := &InMemoryEmailStore{
		mu:       &sync.Mutex{},
		messages: []Message{},
	}

	srv := smtp.NewServer(&Backend{
		is,
	})

	srv.Domain = "localhost"
	srv.AllowInsecureAuth = false // AUTH only after STARTTLS
	srv.AuthDisabled = false      // need AUTH here
	// Strict enforces <address> syntax in MAIL and RCPT commands
	srv.Strict = true
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second

	if keypath != "" || certpath != "" {
		cert, err := tls.LoadX509KeyPair(certpath, keypath)
		if err != nil {
			return nil, fmt.Errorf("can't load the test TLS key pair: %w", err)
		}

		srv.TLSConfig = &tls.Config{
			Certificates: []tls.Certificate{cert},
		}
	}

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("can't listen for SMTP connections: %w", err)
	}
	srv.Addr = l.Addr().String()

	return &InProcessServer{
		Server:             srv,
		InMemoryEmailStore: is,
		listener:           l,
	}, nil
}

// Start starts the test server. Blocking.
func (is *InProcessServer) Start() error {
	// Not using ListenAndServeTLS--the client should upgrade the connection
	// to TLS
	err := is.Server.Serve(is.listener)
	if err != nil && strings.Contains(err.Error(), "use of closed network connection") {
		return nil
	}
	return err
}

// Close shuts down the test server daemon. You must initialize a new
// InProcessServer instead of restarting this one.
func (is *InProcessServer) Close() {
	if err := is.Server.Close(); err != nil {
		log.Warn().Err(err).Str("address", is.Address()).Msg("could not close the test SMTP server")
	}
	// Serve may not have picked the listener up yet
	is.listener.Close()
}

// Address returns the host:port of the test SMTP server.
func (is *InProcessServer) Address() string {
	return is.listener.Addr().String()
}

// HostPort splits Address for clients that configure the host and port
// separately.
func (is *InProcessServer) HostPort() (string, int) {
	h, p, err := net.SplitHostPort(is.Address())
	if err != nil {
		// net.Listen always gives us host:port
		panic(err)
	}
	n, err := strconv.Atoi(p)
	if err != nil {
		panic(err)
	}
	return h, n
}

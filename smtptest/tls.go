package smtptest

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/flashmob/go-guerrilla/tests/testcert"
)

// GenerateTLSFiles writes a TLS key and certificate to a temporary test
// directory that is removed after the test runs. It returns the file paths
// of the key and certificate. The certificate is a root cert.
func GenerateTLSFiles(t *testing.T) (keyPath string, certPath string, err error) {
	host := "127.0.0.1"
	d := t.TempDir() + string(filepath.Separator)
	err = testcert.GenerateCert(
		host,
		"",                         // defaults to now
		time.Duration(1)*time.Hour, // the test suite won't run for this long
		true,                       // is a CA cert
		2048,                       // usually seen in online tutorials
		"",                         // using the default ecdsa curve,
		d,
	)

	if err != nil {
		return
	}

	// These path names are hardcoded into testcert.GenerateCert
	keyPath = d + host + ".key.pem"
	certPath = d + host + ".cert.pem"

	return
}

// StartTLSServer generates TLS material, starts an InProcessServer that
// offers STARTTLS and registers its shutdown with t.Cleanup.
func StartTLSServer(t *testing.T) *InProcessServer {
	t.Helper()

	k, c, err := GenerateTLSFiles(t)
	if err != nil {
		t.Fatalf("can't generate TLS files for the test SMTP server: %v", err)
	}
	return start(t, k, c)
}

// StartPlaintextServer starts an InProcessServer that never offers
// STARTTLS and registers its shutdown with t.Cleanup.
func StartPlaintextServer(t *testing.T) *InProcessServer {
	t.Helper()
	return start(t, "", "")
}

func start(t *testing.T, key, cert string) *InProcessServer {
	t.Helper()

	srv, err := NewInProcessServer(key, cert)
	if err != nil {
		t.Fatalf("can't create the test SMTP server: %v", err)
	}

	go func(srv *InProcessServer) {
		srv.Start()
	}(srv)
	t.Cleanup(srv.Close)

	return srv
}

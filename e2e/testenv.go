package e2e

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ptgott/fombina-mail/smtptest"
)

const (
	testUsername   = "myuser123"
	testPassword   = "mypassword123"
	testAdminEmail = "admin@fombinatower.com"
)

// testEnvironment manages all dependencies required to simulate a "real"
// environment and run the e2e tests. Callers should create this via
// startTestEnvironment.
type testEnvironment struct {
	SMTPServer *smtptest.InProcessServer
	// path to a .env file pointing at SMTPServer
	envPath string
}

// startTestEnvironment spins up a STARTTLS relay that only accepts the test
// credentials and writes a .env file for it. Everything is torn down when
// the test ends.
//
// The process environment wins over the .env file, so the variables the
// file sets are cleared for the duration of the test.
func startTestEnvironment(t *testing.T) *testEnvironment {
	t.Helper()

	for _, k := range envKeys {
		// Setenv restores any real value once the test ends
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	srv := smtptest.StartTLSServer(t)
	srv.RequireCredentials(testUsername, testPassword)

	h, p := srv.HostPort()
	te := &testEnvironment{
		SMTPServer: srv,
		envPath:    filepath.Join(t.TempDir(), ".env"),
	}

	err := createAppConfig(te.envPath, appConfigOptions{
		SMTPHost:   h,
		SMTPPort:   p,
		Username:   testUsername,
		Password:   testPassword,
		AdminEmail: testAdminEmail,
	})
	if err != nil {
		t.Fatalf("error starting test environment: %v", err)
	}

	return te
}

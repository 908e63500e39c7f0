package e2e

// e2e contains integration tests and utility code required to set up
// dependencies. The tests load configuration from a .env file, send every
// notification through the real Mailer, and check what an in-process relay
// received. Note that some e2e test dependencies are also used by unit
// tests--these dependencies live in smtptest instead.

package email

// email is responsible for sending email to an SMTP relay, including
// connecting to the server, negotiating STARTTLS and authentication, and
// building a MIME-formatted email body. It is not designed to represent the
// user-facing content of an email, and includes this content in email bodies
// regardless of what it contains.
//
// Delivery failures never escape as errors. Every send attempt ends in a
// Result, which is either a success or a failure carrying the text of the
// underlying transport, TLS, authentication or formatting error.

package html

// html is responsible for generating the subjects and HTML bodies of the
// transactional emails. It's not concerned with the lower-level logic involved
// in sending the email. As a result, the generated HTML can be used for other
// purposes, e.g., previewing a message from the command line.
//
// Every value is HTML-escaped by html/template before it lands in a body.

package notify

// notify holds the entry points the booking application calls to send its
// transactional emails. Each one reads a map of named fields (as decoded
// from a request or a data file), renders the matching body from the html
// package, picks the recipient and hands the message to an email.Sender.
//
// Like email.Sender, the entry points never return an error. A missing
// field is reported the same way as a failed delivery.

// Package mailer defines the narrow transactional-email interface and
// its SMTP implementation. The service only ever needs "send one HTML
// email"; which provider fulfils it is a wiring decision.
package mailer

import "context"

// Message is one transactional email.
type Message struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	HTML    string
}

// Mailer sends a single transactional email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

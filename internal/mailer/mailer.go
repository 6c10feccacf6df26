package mailer

import "context"

// Message is an outbound email. FromName overrides the sender display name.
type Message struct {
	To       []string
	FromName string
	Subject  string
	Text     string
	HTML     string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

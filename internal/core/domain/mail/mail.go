package mail

import "context"

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Transport is a Mailer whose connectivity and credentials can be checked
// without sending anything.
type Transport interface {
	Mailer
	Verify(ctx context.Context) error
}

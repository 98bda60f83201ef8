package ports

import "context"

// Mailer delivers a plain-text email. Send blocks until the transport
// accepts or rejects the message; callers rely on a synchronous answer to
// run their compensating actions.
type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

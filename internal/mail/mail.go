// Package mail relays order notifications through a transactional email
// provider.
package mail

import (
	"context"
	"fmt"
)

// Message is one outgoing email.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string

	// IdempotencyKey lets the provider drop an accidental duplicate send.
	IdempotencyKey string
}

// Sender delivers a message and returns the provider's message id.
// Provider rejections are returned as *RejectionError; any other error means
// the call itself did not complete.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// RejectionError is a structured refusal returned by the provider.
type RejectionError struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("provider rejected message (%d %s): %s", e.StatusCode, e.Name, e.Message)
}

// Address renders a display-name mailbox such as "Octozek Props <orders@octozekprops.com>".
func Address(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Package messaging defines the event publishing contract shared by services.
package messaging

import (
	"context"
)

// Event is a message that knows its subject and how to encode itself.
type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

// Publisher delivers events to a message bus.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NoopPublisher drops every event. Used when no message bus is configured.
type NoopPublisher struct{}

// Publish implements Publisher.
func (NoopPublisher) Publish(context.Context, Event) error {
	return nil
}

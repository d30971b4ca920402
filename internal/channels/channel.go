// Package channels defines the contract between the bot core and messaging
// backends.
package channels

import (
	"context"

	"github.com/botslacks/botslacks/pkg/models"
)

// Adapter is the interface a session adapter must implement. The adapter owns
// everything transport-level: the live connection, reconnection, frame
// decoding, and the outbound sequence counter. The bot core only ever sees
// inbound message events and hands back reply text.
type Adapter interface {
	// Start establishes the session and begins producing inbound messages.
	// It returns once the session is up; delivery happens on Messages.
	Start(ctx context.Context) error

	// Stop tears the session down and closes the Messages channel.
	Stop(ctx context.Context) error

	// Send delivers a reply. The adapter assigns msg.SequenceID before
	// handing the message to the transport. The core does not retry
	// failed sends.
	Send(ctx context.Context, msg *models.OutboundMessage) error

	// Messages returns the stream of inbound messages, filtered so the
	// bot's own traffic is excluded. Closed when the adapter stops.
	Messages() <-chan *models.InboundMessage

	// Status reports the current connection state.
	Status() Status
}

// Status represents the connection status of a session.
type Status struct {
	Connected bool   `json:"connected"`
	Error     string `json:"error,omitempty"`
	LastEvent int64  `json:"last_event,omitempty"` // Unix timestamp
}

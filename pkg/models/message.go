// Package models defines the message types exchanged between the bot core
// and channel adapters.
package models

import "time"

// Direction indicates if a message is inbound or outbound.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// InboundMessage is one received chat message, already filtered so that the
// bot's own traffic never reaches the dispatch loop.
type InboundMessage struct {
	// Channel is the platform-specific conversation ID.
	Channel string `json:"channel"`

	// SenderID is the platform-specific user ID of the author.
	SenderID string `json:"sender_id"`

	// SenderName is the author's display name, empty when unknown.
	SenderName string `json:"sender_name,omitempty"`

	// Text is the raw message text.
	Text string `json:"text"`

	// Direct is true for private one-to-one conversations.
	Direct bool `json:"direct"`

	// ReceivedAt is when the adapter decoded the message.
	ReceivedAt time.Time `json:"received_at"`
}

// AddressPrefix returns the prefix prepended to replies so the addressee is
// called out in shared channels. Direct conversations and unknown senders get
// no prefix.
func (m *InboundMessage) AddressPrefix() string {
	if m.Direct || m.SenderName == "" {
		return ""
	}
	return m.SenderName + ", "
}

// OutboundMessage is one reply handed to a channel adapter for delivery.
type OutboundMessage struct {
	// Channel is the conversation the reply goes to.
	Channel string `json:"channel"`

	// Text is the full reply text, addressing prefix included.
	Text string `json:"text"`

	// SequenceID is assigned by the adapter on send: monotonic per session,
	// incremented once per successful send.
	SequenceID uint64 `json:"sequence_id"`
}

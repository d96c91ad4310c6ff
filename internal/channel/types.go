// Package channel provides the outbound messaging abstraction: a sender
// interface per platform, a registry of senders, and the dispatcher that
// routes replies to the configured platform.
package channel

import "context"

// ChannelType identifies a messaging platform (e.g., "facebook", "telegram").
type ChannelType string

// String returns the channel type as a plain string.
func (c ChannelType) String() string {
	return string(c)
}

// OutboundMessage pairs a delivery target with the reply text.
type OutboundMessage struct {
	Target string `json:"target"`
	Text   string `json:"text"`
}

// Sender delivers an outbound message through one platform's send API.
type Sender interface {
	Type() ChannelType
	Send(ctx context.Context, msg OutboundMessage) error
}

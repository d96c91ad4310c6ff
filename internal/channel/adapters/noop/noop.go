// Package noop provides the placeholder sender for custom integrations.
// It records sends in memory instead of making a network call.
package noop

import (
	"context"
	"log/slog"
	"sync"

	"github.com/chatrelay/chatrelay/internal/channel"
)

// Type is the no-op channel type; it doubles as the dispatcher fallback.
const Type = channel.FallbackType

// Adapter implements channel.Sender without any network transport.
type Adapter struct {
	logger *slog.Logger

	mu   sync.Mutex
	sent []channel.OutboundMessage
}

// NewAdapter creates a no-op sender.
func NewAdapter(log *slog.Logger) *Adapter {
	if log == nil {
		log = slog.Default()
	}
	return &Adapter{logger: log.With(slog.String("adapter", "noop"))}
}

// Type returns the no-op channel type.
func (a *Adapter) Type() channel.ChannelType {
	return Type
}

// Send records the message locally and always succeeds.
func (a *Adapter) Send(_ context.Context, msg channel.OutboundMessage) error {
	a.mu.Lock()
	a.sent = append(a.sent, msg)
	a.mu.Unlock()
	a.logger.Info("message recorded",
		slog.String("target", msg.Target),
		slog.String("text", msg.Text))
	return nil
}

// Sent returns a copy of the recorded sends in order.
func (a *Adapter) Sent() []channel.OutboundMessage {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]channel.OutboundMessage, len(a.sent))
	copy(out, a.sent)
	return out
}

package channel

import (
	"context"
	"log/slog"
)

// FallbackType is the channel type used when the configured platform has no
// registered sender. The no-op adapter registers under this type.
const FallbackType = ChannelType("other")

// Dispatcher routes outbound replies to the sender for the configured
// platform. Delivery is best-effort: transport failures are logged and
// swallowed, never surfaced to the inbound request that triggered the reply.
type Dispatcher struct {
	logger   *slog.Logger
	registry *Registry
	platform ChannelType
}

// NewDispatcher creates a Dispatcher sending through the given platform.
// An unrecognized platform falls back to the no-op sender.
func NewDispatcher(log *slog.Logger, registry *Registry, platform ChannelType) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		logger:   log.With(slog.String("component", "dispatcher")),
		registry: registry,
		platform: normalizeChannelType(platform.String()),
	}
}

// Platform returns the configured outbound channel type.
func (d *Dispatcher) Platform() ChannelType {
	return d.platform
}

// Dispatch sends text to userID through the configured platform. The send is
// awaited but its outcome is observable only via logs.
func (d *Dispatcher) Dispatch(ctx context.Context, userID, text string) {
	sender, ok := d.registry.Get(d.platform)
	if !ok {
		sender, ok = d.registry.Get(FallbackType)
	}
	if !ok {
		d.logger.Warn("no sender registered",
			slog.String("platform", d.platform.String()),
			slog.String("user_id", userID))
		return
	}
	d.logger.Info("sending reply",
		slog.String("channel", sender.Type().String()),
		slog.String("user_id", userID))
	if err := sender.Send(ctx, OutboundMessage{Target: userID, Text: text}); err != nil {
		d.logger.Error("send failed",
			slog.String("channel", sender.Type().String()),
			slog.String("user_id", userID),
			slog.Any("error", err))
	}
}

package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chatrelay/chatrelay/internal/allowlist"
	"github.com/chatrelay/chatrelay/internal/channel"
	"github.com/chatrelay/chatrelay/internal/inbound"
	"github.com/chatrelay/chatrelay/internal/responder"
)

const webhookMaxBodyBytes int64 = 1 << 20 // 1 MiB

// WebhookHandler receives inbound messaging events, gates them by the
// allow-list, resolves a reply, and dispatches it through the configured
// platform. The inbound caller always gets 200 once processing succeeds,
// even when no reply is sent; send failures are logged, never surfaced.
type WebhookHandler struct {
	store      *allowlist.Store
	resolver   *responder.Resolver
	dispatcher *channel.Dispatcher
	logger     *slog.Logger
}

// NewWebhookHandler creates the inbound webhook handler.
func NewWebhookHandler(log *slog.Logger, store *allowlist.Store, resolver *responder.Resolver, dispatcher *channel.Dispatcher) *WebhookHandler {
	return &WebhookHandler{
		store:      store,
		resolver:   resolver,
		dispatcher: dispatcher,
		logger:     log.With(slog.String("handler", "webhook")),
	}
}

func (h *WebhookHandler) Register(e *echo.Echo) {
	e.POST("/webhook", h.Handle)
}

// Handle processes one inbound event. Malformed payloads are not errors:
// normalization degrades to empty fields and the allow-list gate drops them.
func (h *WebhookHandler) Handle(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, webhookMaxBodyBytes))
	if err != nil {
		h.logger.Error("read body failed", slog.Any("error", err))
		return c.String(http.StatusInternalServerError, "Error processing webhook")
	}

	h.logger.Info("webhook received", slog.Int("bytes", len(body)))

	msg := inbound.Normalize(body)
	if msg.UserID == "" || !h.store.Contains(msg.UserID) {
		h.logger.Debug("sender not allow-listed", slog.String("user_id", msg.UserID))
		return c.String(http.StatusOK, "OK")
	}

	reply := h.resolver.Resolve(msg)
	h.dispatcher.Dispatch(c.Request().Context(), msg.UserID, reply)

	return c.String(http.StatusOK, "OK")
}

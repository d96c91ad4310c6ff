package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/chatrelay/chatrelay/internal/allowlist"
)

// StatusHandler serves the health check used by uptime monitors.
type StatusHandler struct {
	store  *allowlist.Store
	logger *slog.Logger
}

// NewStatusHandler creates a StatusHandler reporting the allow-list size.
func NewStatusHandler(log *slog.Logger, store *allowlist.Store) *StatusHandler {
	return &StatusHandler{
		store:  store,
		logger: log.With(slog.String("handler", "status")),
	}
}

func (h *StatusHandler) Register(e *echo.Echo) {
	e.GET("/", h.Status)
	e.HEAD("/health", h.StatusHead)
}

type statusResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Users     int    `json:"users"`
}

func (h *StatusHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, statusResponse{
		Status:    "Bot is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Users:     h.store.Len(),
	})
}

func (h *StatusHandler) StatusHead(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

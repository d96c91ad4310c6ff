package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chatrelay/chatrelay/internal/allowlist"
)

// UsersHandler exposes the admin CRUD surface for the allow-list.
type UsersHandler struct {
	store  *allowlist.Store
	logger *slog.Logger
}

// NewUsersHandler creates the admin users handler.
func NewUsersHandler(log *slog.Logger, store *allowlist.Store) *UsersHandler {
	return &UsersHandler{
		store:  store,
		logger: log.With(slog.String("handler", "users")),
	}
}

func (h *UsersHandler) Register(e *echo.Echo) {
	e.GET("/admin/users", h.List)
	e.POST("/admin/users", h.Add)
	e.DELETE("/admin/users/:userId", h.Remove)
}

type listUsersResponse struct {
	AllowedUsers []string `json:"allowedUsers"`
}

type addUserRequest struct {
	UserID string `json:"userId"`
}

type mutationResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Users   []string `json:"users,omitempty"`
}

func (h *UsersHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, listUsersResponse{AllowedUsers: h.store.List()})
}

func (h *UsersHandler) Add(c echo.Context) error {
	var req addUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, mutationResponse{
			Success: false,
			Message: "User already exists or invalid userId",
		})
	}
	if err := h.store.Add(req.UserID); err != nil {
		h.logger.Debug("add user rejected", slog.Any("error", err))
		return c.JSON(http.StatusBadRequest, mutationResponse{
			Success: false,
			Message: "User already exists or invalid userId",
		})
	}
	h.logger.Info("user added", slog.String("user_id", req.UserID))
	return c.JSON(http.StatusOK, mutationResponse{
		Success: true,
		Message: "User added",
		Users:   h.store.List(),
	})
}

func (h *UsersHandler) Remove(c echo.Context) error {
	userID := c.Param("userId")
	if err := h.store.Remove(userID); err != nil {
		return c.JSON(http.StatusNotFound, mutationResponse{
			Success: false,
			Message: "User not found",
		})
	}
	h.logger.Info("user removed", slog.String("user_id", userID))
	return c.JSON(http.StatusOK, mutationResponse{
		Success: true,
		Message: "User removed",
		Users:   h.store.List(),
	})
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/craftify/backend/internal/middleware"
	"github.com/craftify/backend/internal/repositories"
	"github.com/craftify/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// NotificationHandler handles HTTP requests for both notification spaces.
// The receiver is always the authenticated principal; a :space route param
// selects between the personal and community tables.
type NotificationHandler struct {
	notifications *services.NotificationService
	users         repositories.UserRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications *services.NotificationService, users repositories.UserRepository) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, users: users}
}

// RegisterNotificationRoutes registers notification-related routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications/:space", h.List)
	g.GET("/notifications/:space/unread-count", h.UnreadCount)
	g.PATCH("/notifications/:space/:id/read", h.MarkRead)
	g.PATCH("/notifications/:space/read-all", h.MarkAllRead)
	g.DELETE("/notifications/:space/:id", h.Delete)
}

// List returns one page of the authenticated principal's notifications
func (h *NotificationHandler) List(c echo.Context) error {
	space, err := notificationSpace(c)
	if err != nil {
		return err
	}
	principalID, _ := c.Get(middleware.ContextKeyPrincipalID).(string)
	if principalID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	notifications, total, err := h.notifications.List(space, principalID, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"notifications": notifications,
		"total":         total,
	})
}

// UnreadCount returns the live count of unread notifications
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	space, err := notificationSpace(c)
	if err != nil {
		return err
	}
	principalID, _ := c.Get(middleware.ContextKeyPrincipalID).(string)
	if principalID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	count, err := h.notifications.UnreadCount(space, principalID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"unread_count": count})
}

// MarkRead marks a single notification as read
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	space, err := notificationSpace(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.notifications.MarkRead(space, id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// MarkAllRead marks every unread notification of the principal as read
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	space, err := notificationSpace(c)
	if err != nil {
		return err
	}
	principalID, _ := c.Get(middleware.ContextKeyPrincipalID).(string)
	if principalID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.notifications.MarkAllRead(space, principalID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Delete hard-deletes a notification
func (h *NotificationHandler) Delete(c echo.Context) error {
	space, err := notificationSpace(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.notifications.Delete(space, id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Notification not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/craftify/backend/internal/repositories"
	"github.com/craftify/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PingHandler handles HTTP requests for the unseen-activity ping counters.
type PingHandler struct {
	pings *services.PingService
	users repositories.UserRepository
}

// NewPingHandler creates a new PingHandler
func NewPingHandler(pings *services.PingService, users repositories.UserRepository) *PingHandler {
	return &PingHandler{pings: pings, users: users}
}

// RegisterPingRoutes registers ping-related routes
func (h *PingHandler) RegisterPingRoutes(g *echo.Group) {
	g.PATCH("/communities/:community_id/topics/:topic_id/pings/read", h.MarkRead)
	g.DELETE("/communities/:community_id/topics/:topic_id/pings", h.Clear)
	g.GET("/communities/:community_id/topics/:topic_id/pings/count", h.TopicCount)
	g.GET("/communities/:community_id/pings/count", h.CommunityCount)
	g.GET("/pings/count", h.UserCount)
}

// MarkRead acknowledges one unseen item for the authenticated member
func (h *PingHandler) MarkRead(c echo.Context) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	if err := h.pings.MarkRead(user.ID, c.Param("community_id"), c.Param("topic_id")); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "No pending pings")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Clear removes the member's ping for a topic in one pass
func (h *PingHandler) Clear(c echo.Context) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	if err := h.pings.ClearPings(user.ID, c.Param("community_id"), c.Param("topic_id")); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// TopicCount returns the live ping sum for one topic of a community
func (h *PingHandler) TopicCount(c echo.Context) error {
	total, err := h.pings.SumForTopic(c.Param("community_id"), c.Param("topic_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"ping_count": total})
}

// CommunityCount returns the live ping sum across a whole community
func (h *PingHandler) CommunityCount(c echo.Context) error {
	total, err := h.pings.SumForCommunity(c.Param("community_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"ping_count": total})
}

// UserCount returns the live ping sum addressed to the authenticated user
func (h *PingHandler) UserCount(c echo.Context) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	total, err := h.pings.SumForUser(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"ping_count": total})
}

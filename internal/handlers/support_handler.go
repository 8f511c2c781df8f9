package handlers

import (
	"errors"
	"net/http"

	"github.com/craftify/backend/internal/repositories"
	"github.com/craftify/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// SupportHandler handles HTTP requests for supporter edges.
type SupportHandler struct {
	supports  *services.SupportService
	reconcile *services.ReconcileService
	users     repositories.UserRepository
}

// NewSupportHandler creates a new SupportHandler
func NewSupportHandler(supports *services.SupportService, reconcile *services.ReconcileService, users repositories.UserRepository) *SupportHandler {
	return &SupportHandler{supports: supports, reconcile: reconcile, users: users}
}

// RegisterSupportRoutes registers support-related routes
func (h *SupportHandler) RegisterSupportRoutes(g *echo.Group) {
	g.POST("/supports/:creator_id", h.Support)
	g.DELETE("/supports/:creator_id", h.Unsupport)
	g.GET("/supports", h.Supporting)
	g.GET("/supports/:creator_id/status", h.Status)
	g.POST("/supports/reconcile", h.Reconcile)
}

// Support adds a creator to the authenticated user's supporting set
func (h *SupportHandler) Support(c echo.Context) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	creatorID, err := pathID(c, "creator_id")
	if err != nil {
		return err
	}

	if err := h.supports.Support(user.ID, creatorID); err != nil {
		if errors.Is(err, services.ErrSelfSupport) {
			return echo.NewHTTPError(http.StatusBadRequest, "Cannot support yourself")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Unsupport removes a creator from the authenticated user's supporting set
func (h *SupportHandler) Unsupport(c echo.Context) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	creatorID, err := pathID(c, "creator_id")
	if err != nil {
		return err
	}

	if err := h.supports.Unsupport(user.ID, creatorID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Not supporting this creator")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// Supporting lists the authenticated user's supporting set
func (h *SupportHandler) Supporting(c echo.Context) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	ids, err := h.supports.Supporting(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if ids == nil {
		ids = []uint{}
	}
	return c.JSON(http.StatusOK, echo.Map{"supporting": ids, "count": len(ids)})
}

// Status reports whether the authenticated user supports a creator
func (h *SupportHandler) Status(c echo.Context) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	creatorID, err := pathID(c, "creator_id")
	if err != nil {
		return err
	}

	supporting, err := h.supports.IsSupporting(user.ID, creatorID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"is_supporting": supporting})
}

// Reconcile recomputes the authenticated user's SupportingCount from the
// support edge and writes the true value back.
func (h *SupportHandler) Reconcile(c echo.Context) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	count, err := h.reconcile.ReconcileSupportingCount(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"supporting_count": count})
}

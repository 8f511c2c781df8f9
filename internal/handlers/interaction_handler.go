package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/craftify/backend/internal/models"
	"github.com/craftify/backend/internal/repositories"
	"github.com/craftify/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// InteractionHandler handles HTTP requests for the interaction ledger:
// subject likes/saves and item-likes on comments, feedback and replies.
type InteractionHandler struct {
	interactions *services.InteractionService
	users        repositories.UserRepository
}

// NewInteractionHandler creates a new InteractionHandler
func NewInteractionHandler(interactions *services.InteractionService, users repositories.UserRepository) *InteractionHandler {
	return &InteractionHandler{interactions: interactions, users: users}
}

// RegisterInteractionRoutes registers interaction-related routes
func (h *InteractionHandler) RegisterInteractionRoutes(g *echo.Group) {
	g.POST("/subjects/:kind/:subject_id/likes", h.Like)
	g.DELETE("/subjects/:kind/:subject_id/likes", h.Unlike)
	g.GET("/subjects/:kind/:subject_id/likes/count", h.LikeCount)
	g.GET("/subjects/:kind/:subject_id/likes/status", h.LikeStatus)

	g.POST("/subjects/:kind/:subject_id/saves", h.Save)
	g.DELETE("/subjects/:kind/:subject_id/saves", h.Unsave)
	g.GET("/subjects/:kind/:subject_id/saves/count", h.SaveCount)
	g.GET("/subjects/:kind/:subject_id/saves/status", h.SaveStatus)
	g.GET("/saves", h.SavedSubjects)

	g.POST("/items/:item_type/:item_id/likes", h.LikeItem)
	g.DELETE("/items/:item_type/:item_id/likes", h.UnlikeItem)
	g.GET("/items/:item_type/:item_id/likes/count", h.ItemLikeCount)
}

// Like handles liking a subject
func (h *InteractionHandler) Like(c echo.Context) error {
	kind, err := subjectKind(c)
	if err != nil {
		return err
	}
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	like, err := h.interactions.Like(c.Request().Context(), kind, c.Param("subject_id"), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateInteraction):
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "already liked"})
		case errors.Is(err, services.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Subject not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, like)
}

// Unlike handles removing a like from a subject
func (h *InteractionHandler) Unlike(c echo.Context) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	if err := h.interactions.Unlike(c.Param("subject_id"), user.ID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "like not found"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// LikeCount returns the live like count for a subject
func (h *InteractionHandler) LikeCount(c echo.Context) error {
	subjectID := c.Param("subject_id")
	count, err := h.interactions.LikeCount(subjectID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"subject_id": subjectID, "likes_count": count})
}

// LikeStatus reports whether the authenticated user has liked the subject
func (h *InteractionHandler) LikeStatus(c echo.Context) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	subjectID := c.Param("subject_id")

	liked, err := h.interactions.Liked(subjectID, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"subject_id": subjectID, "has_liked": liked})
}

// Save handles bookmarking a subject
func (h *InteractionHandler) Save(c echo.Context) error {
	kind, err := subjectKind(c)
	if err != nil {
		return err
	}
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	save, err := h.interactions.Save(c.Request().Context(), kind, c.Param("subject_id"), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateInteraction):
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "already saved"})
		case errors.Is(err, services.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Subject not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, save)
}

// Unsave handles removing a bookmark
func (h *InteractionHandler) Unsave(c echo.Context) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	if err := h.interactions.Unsave(c.Param("subject_id"), user.ID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "save not found"})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// SaveCount returns the live save count for a subject
func (h *InteractionHandler) SaveCount(c echo.Context) error {
	subjectID := c.Param("subject_id")
	count, err := h.interactions.SaveCount(subjectID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"subject_id": subjectID, "saves_count": count})
}

// SaveStatus reports whether the authenticated user has saved the subject
func (h *InteractionHandler) SaveStatus(c echo.Context) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	subjectID := c.Param("subject_id")

	saved, err := h.interactions.Saved(subjectID, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"subject_id": subjectID, "has_saved": saved})
}

// SavedSubjects lists the authenticated user's saves, newest first
func (h *InteractionHandler) SavedSubjects(c echo.Context) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	saves, err := h.interactions.SavedSubjects(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, saves)
}

// LikeItem handles liking a comment, feedback or reply
func (h *InteractionHandler) LikeItem(c echo.Context) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	itemID, itemType, err := itemTarget(c)
	if err != nil {
		return err
	}

	like, err := h.interactions.LikeItem(itemID, itemType, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateInteraction):
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "already liked"})
		case errors.Is(err, services.ErrInvalidItemType):
			return echo.NewHTTPError(http.StatusBadRequest, "Unknown item type")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, like)
}

// UnlikeItem handles removing a like from an item
func (h *InteractionHandler) UnlikeItem(c echo.Context) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	itemID, itemType, err := itemTarget(c)
	if err != nil {
		return err
	}

	if err := h.interactions.UnlikeItem(itemID, itemType, user.ID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "like not found"})
		case errors.Is(err, services.ErrInvalidItemType):
			return echo.NewHTTPError(http.StatusBadRequest, "Unknown item type")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// ItemLikeCount returns the live like count for an item
func (h *InteractionHandler) ItemLikeCount(c echo.Context) error {
	itemID, itemType, err := itemTarget(c)
	if err != nil {
		return err
	}

	count, err := h.interactions.ItemLikeCount(itemID, itemType)
	if err != nil {
		if errors.Is(err, services.ErrInvalidItemType) {
			return echo.NewHTTPError(http.StatusBadRequest, "Unknown item type")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"item_id": itemID, "item_type": itemType, "likes_count": count})
}

// itemTarget parses the explicit item type and id from the route. The type
// always travels with the id; nothing is resolved by probing.
func itemTarget(c echo.Context) (uint, models.ItemType, error) {
	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 32)
	if err != nil {
		return 0, "", echo.NewHTTPError(http.StatusBadRequest, "Invalid item ID")
	}
	itemType := models.ItemType(c.Param("item_type"))
	if !itemType.Valid() {
		return 0, "", echo.NewHTTPError(http.StatusBadRequest, "Unknown item type")
	}
	return uint(itemID), itemType, nil
}

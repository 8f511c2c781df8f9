package handlers

import (
	"errors"
	"net/http"

	"github.com/craftify/backend/internal/models"
	"github.com/craftify/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// CommunityHandler handles HTTP requests for communities and membership.
type CommunityHandler struct {
	communities repositories.CommunityRepository
	users       repositories.UserRepository
}

// NewCommunityHandler creates a new CommunityHandler
func NewCommunityHandler(communities repositories.CommunityRepository, users repositories.UserRepository) *CommunityHandler {
	return &CommunityHandler{communities: communities, users: users}
}

// RegisterCommunityRoutes registers community-related routes
func (h *CommunityHandler) RegisterCommunityRoutes(g *echo.Group) {
	g.POST("/communities", h.Create)
	g.GET("/communities/:community_id", h.Get)
	g.POST("/communities/:community_id/members", h.Join)
	g.DELETE("/communities/:community_id/members", h.Leave)
	g.GET("/communities/:community_id/members/count", h.MemberCount)
}

// Create handles creating a community
func (h *CommunityHandler) Create(c echo.Context) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	var req models.CreateCommunityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	community := &models.Community{
		Name:     req.Name,
		OwnerID:  user.PrincipalID,
		TopicIDs: req.TopicIDs,
	}
	if err := h.communities.CreateCommunity(c.Request().Context(), community); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// The owner is a member from the start
	if err := h.communities.AddMember(c.Request().Context(), community.ID.Hex(), user.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, community)
}

// Get retrieves one community
func (h *CommunityHandler) Get(c echo.Context) error {
	community, err := h.communities.GetCommunityByID(c.Request().Context(), c.Param("community_id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Community not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, community)
}

// Join adds the authenticated user as a member. Joining twice is a no-op.
func (h *CommunityHandler) Join(c echo.Context) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	communityID := c.Param("community_id")

	if _, err := h.communities.GetCommunityByID(c.Request().Context(), communityID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Community not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.communities.AddMember(c.Request().Context(), communityID, user.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Leave removes the authenticated user's membership
func (h *CommunityHandler) Leave(c echo.Context) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	if err := h.communities.RemoveMember(c.Request().Context(), c.Param("community_id"), user.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Not a member of this community")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// MemberCount returns the live member count
func (h *CommunityHandler) MemberCount(c echo.Context) error {
	count, err := h.communities.CountMembers(c.Request().Context(), c.Param("community_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"member_count": count})
}

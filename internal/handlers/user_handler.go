package handlers

import (
	"errors"
	"net/http"

	"github.com/craftify/backend/internal/middleware"
	"github.com/craftify/backend/internal/models"
	"github.com/craftify/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests for the internal user records that pair
// a numeric id with an authenticated principal.
type UserHandler struct {
	users repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users repositories.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterUserRoutes registers user-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.POST("/users", h.Register)
	g.GET("/users/me", h.Me)
	g.GET("/users/:id", h.Get)
}

// Register creates the internal user record for the authenticated principal.
// The principal id comes from the verified token, never from the body.
func (h *UserHandler) Register(c echo.Context) error {
	principalID, _ := c.Get(middleware.ContextKeyPrincipalID).(string)
	if principalID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	req.PrincipalID = principalID
	if err := c.Validate(&req); err != nil {
		return err
	}

	user := &models.User{
		Name:        req.Name,
		Email:       req.Email,
		PrincipalID: req.PrincipalID,
	}
	if err := h.users.CreateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, user)
}

// Me returns the authenticated user's own record
func (h *UserHandler) Me(c echo.Context) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Get retrieves a user by internal id
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.users.GetUserByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, user)
}

package handlers

import (
	"net/http"

	"github.com/craftify/backend/internal/middleware"
	"github.com/craftify/backend/internal/models"
	"github.com/craftify/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// currentUser resolves the authenticated principal to its internal user
// record. Handlers work with internal ids; the principal id only reappears
// where permission decisions are made.
func currentUser(c echo.Context, users repositories.UserRepository) (*models.User, error) {
	principalID, _ := c.Get(middleware.ContextKeyPrincipalID).(string)
	if principalID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	user, err := users.GetUserByPrincipalID(principalID)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found in database")
	}
	return user, nil
}

// subjectKind parses the :kind route param
func subjectKind(c echo.Context) (models.SubjectKind, error) {
	kind := models.SubjectKind(c.Param("kind"))
	if !kind.Valid() {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Unknown subject kind")
	}
	return kind, nil
}

// notificationSpace parses the :space route param
func notificationSpace(c echo.Context) (models.NotificationSpace, error) {
	space := models.NotificationSpace(c.Param("space"))
	if !space.Valid() {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Unknown notification space")
	}
	return space, nil
}

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

// SubjectHandler handles HTTP requests for top-level subjects: creations,
// projects and discussions.
type SubjectHandler struct {
	subjects  *services.SubjectService
	reconcile *services.ReconcileService
	users     repositories.UserRepository
}

// NewSubjectHandler creates a new SubjectHandler
func NewSubjectHandler(subjects *services.SubjectService, reconcile *services.ReconcileService, users repositories.UserRepository) *SubjectHandler {
	return &SubjectHandler{subjects: subjects, reconcile: reconcile, users: users}
}

// RegisterSubjectRoutes registers subject-related routes
func (h *SubjectHandler) RegisterSubjectRoutes(g *echo.Group) {
	g.POST("/subjects/:kind", h.Create)
	g.GET("/subjects/:kind", h.List)
	g.GET("/subjects/:kind/mine", h.ListMine)
	g.GET("/subjects/:kind/:subject_id", h.Get)
	g.DELETE("/subjects/:kind/:subject_id", h.Delete)
	g.POST("/subjects/:kind/:subject_id/comments-count/reconcile", h.ReconcileComments)
}

// Create handles creating a new subject
func (h *SubjectHandler) Create(c echo.Context) error {
	kind, err := subjectKind(c)
	if err != nil {
		return err
	}
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	var req models.CreateSubjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	subject, err := h.subjects.Create(c.Request().Context(), kind, user.ID, req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, subject)
}

// Get retrieves one subject
func (h *SubjectHandler) Get(c echo.Context) error {
	kind, err := subjectKind(c)
	if err != nil {
		return err
	}

	subject, err := h.subjects.Get(c.Request().Context(), kind, c.Param("subject_id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Subject not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, subject)
}

// List retrieves one page of subjects of a kind, newest first
func (h *SubjectHandler) List(c echo.Context) error {
	kind, err := subjectKind(c)
	if err != nil {
		return err
	}

	skip, _ := strconv.ParseInt(c.QueryParam("skip"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)

	subjects, err := h.subjects.List(c.Request().Context(), kind, skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, subjects)
}

// ListMine retrieves one page of the authenticated user's own subjects
func (h *SubjectHandler) ListMine(c echo.Context) error {
	kind, err := subjectKind(c)
	if err != nil {
		return err
	}
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	skip, _ := strconv.ParseInt(c.QueryParam("skip"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)

	subjects, err := h.subjects.ListByAuthor(c.Request().Context(), kind, user.PrincipalID, skip, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, subjects)
}

// Delete removes a subject and all its dependent records. Only the author
// may delete; a partially completed cascade keeps the document so the call
// can be retried.
func (h *SubjectHandler) Delete(c echo.Context) error {
	kind, err := subjectKind(c)
	if err != nil {
		return err
	}
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	subject, err := h.subjects.Get(c.Request().Context(), kind, c.Param("subject_id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Subject not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if subject.AuthorID != user.PrincipalID {
		return echo.NewHTTPError(http.StatusForbidden, "Not allowed to delete this subject")
	}

	if err := h.subjects.Delete(c.Request().Context(), kind, c.Param("subject_id"), user.ID); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Subject not found")
		case errors.Is(err, services.ErrPartialCascade):
			return c.JSON(http.StatusMultiStatus, echo.Map{"success": false, "error": err.Error()})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// ReconcileComments recomputes a subject's CommentsCount from live rows
func (h *SubjectHandler) ReconcileComments(c echo.Context) error {
	kind, err := subjectKind(c)
	if err != nil {
		return err
	}

	count, err := h.reconcile.ReconcileCommentsCount(c.Request().Context(), kind, c.Param("subject_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"comments_count": count})
}

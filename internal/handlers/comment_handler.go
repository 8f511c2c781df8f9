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

// CommentHandler handles HTTP requests for comments, feedback and their
// reply threads.
type CommentHandler struct {
	cascade  *services.CascadeService
	comments repositories.CommentRepository
	subjects repositories.SubjectRepository
	users    repositories.UserRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	cascade *services.CascadeService,
	comments repositories.CommentRepository,
	subjects repositories.SubjectRepository,
	users repositories.UserRepository,
) *CommentHandler {
	return &CommentHandler{cascade: cascade, comments: comments, subjects: subjects, users: users}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/subjects/:kind/:subject_id/comments", h.AddComment)
	g.GET("/subjects/:kind/:subject_id/comments", h.ListComments)
	g.DELETE("/subjects/:kind/:subject_id/comments/:comment_id", h.DeleteComment)

	g.POST("/subjects/:kind/:subject_id/feedback", h.AddFeedback)
	g.GET("/subjects/:kind/:subject_id/feedback", h.ListFeedback)
	g.DELETE("/subjects/:kind/:subject_id/feedback/:feedback_id", h.DeleteFeedback)

	g.POST("/subjects/:kind/:subject_id/comments/:comment_id/replies", h.AddCommentReply)
	g.GET("/comments/:comment_id/replies", h.ListCommentReplies)
	g.DELETE("/comments/:comment_id/replies/:reply_id", h.DeleteCommentReply)

	g.POST("/subjects/:kind/:subject_id/feedback/:feedback_id/replies", h.AddFeedbackReply)
	g.GET("/feedback/:feedback_id/replies", h.ListFeedbackReplies)
	g.DELETE("/feedback/:feedback_id/replies/:reply_id", h.DeleteFeedbackReply)
}

// AddComment handles creating a comment on a subject
func (h *CommentHandler) AddComment(c echo.Context) error {
	kind, err := subjectKind(c)
	if err != nil {
		return err
	}
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.cascade.AddComment(c.Request().Context(), kind, c.Param("subject_id"), user.ID, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Subject not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, comment)
}

// ListComments lists all comments on a subject
func (h *CommentHandler) ListComments(c echo.Context) error {
	comments, err := h.cascade.Comments(c.Param("subject_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, comments)
}

// DeleteComment handles cascading deletion of a comment. Only the comment's
// author or the subject's author may delete it.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	kind, err := subjectKind(c)
	if err != nil {
		return err
	}
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	commentID, err := pathID(c, "comment_id")
	if err != nil {
		return err
	}

	comment, err := h.comments.GetCommentByID(commentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if comment.ActorID != user.ID {
		if err := h.requireSubjectAuthor(c, kind, c.Param("subject_id"), user.PrincipalID); err != nil {
			return err
		}
	}

	if err := h.cascade.DeleteComment(kind, c.Param("subject_id"), commentID); err != nil {
		if errors.Is(err, services.ErrPartialCascade) {
			return c.JSON(http.StatusMultiStatus, echo.Map{"success": false, "error": err.Error()})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// AddFeedback handles submitting private feedback on a subject
func (h *CommentHandler) AddFeedback(c echo.Context) error {
	kind, err := subjectKind(c)
	if err != nil {
		return err
	}
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	feedback, err := h.cascade.AddFeedback(c.Request().Context(), kind, c.Param("subject_id"), user.ID, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Subject not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, feedback)
}

// ListFeedback lists all feedback records on a subject
func (h *CommentHandler) ListFeedback(c echo.Context) error {
	feedbacks, err := h.cascade.Feedbacks(c.Param("subject_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, feedbacks)
}

// DeleteFeedback handles cascading deletion of a feedback record. Only the
// submitter or the subject's author may delete it.
func (h *CommentHandler) DeleteFeedback(c echo.Context) error {
	kind, err := subjectKind(c)
	if err != nil {
		return err
	}
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	feedbackID, err := pathID(c, "feedback_id")
	if err != nil {
		return err
	}

	feedback, err := h.comments.GetFeedbackByID(feedbackID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Feedback not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if feedback.ActorID != user.ID {
		if err := h.requireSubjectAuthor(c, kind, c.Param("subject_id"), user.PrincipalID); err != nil {
			return err
		}
	}

	if err := h.cascade.DeleteFeedback(c.Param("subject_id"), feedbackID); err != nil {
		if errors.Is(err, services.ErrPartialCascade) {
			return c.JSON(http.StatusMultiStatus, echo.Map{"success": false, "error": err.Error()})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// AddCommentReply handles replying under a comment
func (h *CommentHandler) AddCommentReply(c echo.Context) error {
	kind, err := subjectKind(c)
	if err != nil {
		return err
	}
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	parentID, err := pathID(c, "comment_id")
	if err != nil {
		return err
	}

	var req models.CreateReplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reply, err := h.cascade.AddCommentReply(c.Request().Context(), kind, c.Param("subject_id"), parentID, user.ID, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, reply)
}

// ListCommentReplies lists all replies under a comment
func (h *CommentHandler) ListCommentReplies(c echo.Context) error {
	parentID, err := pathID(c, "comment_id")
	if err != nil {
		return err
	}

	replies, err := h.cascade.CommentReplies(parentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, replies)
}

// AddFeedbackReply handles replying under a feedback record
func (h *CommentHandler) AddFeedbackReply(c echo.Context) error {
	kind, err := subjectKind(c)
	if err != nil {
		return err
	}
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	parentID, err := pathID(c, "feedback_id")
	if err != nil {
		return err
	}

	var req models.CreateReplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reply, err := h.cascade.AddFeedbackReply(c.Request().Context(), kind, c.Param("subject_id"), parentID, user.ID, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Feedback not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, reply)
}

// ListFeedbackReplies lists all replies under a feedback record
func (h *CommentHandler) ListFeedbackReplies(c echo.Context) error {
	parentID, err := pathID(c, "feedback_id")
	if err != nil {
		return err
	}

	replies, err := h.cascade.FeedbackReplies(parentID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, replies)
}

// DeleteCommentReply removes a single reply and the item-likes on it. Only
// the reply's author may delete it.
func (h *CommentHandler) DeleteCommentReply(c echo.Context) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	parentID, err := pathID(c, "comment_id")
	if err != nil {
		return err
	}
	replyID, err := pathID(c, "reply_id")
	if err != nil {
		return err
	}

	reply, err := h.cascade.CommentReply(replyID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Reply not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if reply.ParentID != parentID {
		return echo.NewHTTPError(http.StatusNotFound, "Reply not found")
	}
	if reply.ActorID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Not allowed to delete this record")
	}

	if err := h.cascade.RemoveCommentReply(replyID); err != nil {
		if errors.Is(err, services.ErrPartialCascade) {
			return c.JSON(http.StatusMultiStatus, echo.Map{"success": false, "error": err.Error()})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteFeedbackReply removes a single feedback reply and the item-likes on
// it. Only the reply's author may delete it.
func (h *CommentHandler) DeleteFeedbackReply(c echo.Context) error {
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	parentID, err := pathID(c, "feedback_id")
	if err != nil {
		return err
	}
	replyID, err := pathID(c, "reply_id")
	if err != nil {
		return err
	}

	reply, err := h.cascade.FeedbackReply(replyID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Reply not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if reply.ParentID != parentID {
		return echo.NewHTTPError(http.StatusNotFound, "Reply not found")
	}
	if reply.ActorID != user.ID {
		return echo.NewHTTPError(http.StatusForbidden, "Not allowed to delete this record")
	}

	if err := h.cascade.RemoveFeedbackReply(replyID); err != nil {
		if errors.Is(err, services.ErrPartialCascade) {
			return c.JSON(http.StatusMultiStatus, echo.Map{"success": false, "error": err.Error()})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CommentHandler) requireSubjectAuthor(c echo.Context, kind models.SubjectKind, subjectID, principalID string) error {
	subject, err := h.subjects.GetSubjectByID(c.Request().Context(), kind, subjectID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Subject not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if subject.AuthorID != principalID {
		return echo.NewHTTPError(http.StatusForbidden, "Not allowed to delete this record")
	}
	return nil
}

// pathID parses a numeric id route param
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

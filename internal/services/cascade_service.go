package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/craftify/backend/internal/models"
	"github.com/craftify/backend/internal/repositories"
	"github.com/craftify/backend/pkg/functions"
	"go.uber.org/zap"
)

// CascadeService owns the comment/feedback/reply hierarchy: creation with
// permission delegation, and cascading deletion without a transaction
// primitive. Every cascade step tolerates NotFound so a partially failed
// cascade can be re-run to convergence.
type CascadeService struct {
	comments  repositories.CommentRepository
	replies   repositories.ReplyRepository
	itemLikes repositories.ItemLikeRepository
	likes     repositories.LikeRepository
	saves     repositories.SaveRepository
	subjects  repositories.SubjectRepository
	users     repositories.UserRepository
	notifier  *NotificationService
	executor  functions.Executor
	grants    GrantFunctions
	logger    *zap.Logger
}

// NewCascadeService creates a new CascadeService
func NewCascadeService(
	comments repositories.CommentRepository,
	replies repositories.ReplyRepository,
	itemLikes repositories.ItemLikeRepository,
	likes repositories.LikeRepository,
	saves repositories.SaveRepository,
	subjects repositories.SubjectRepository,
	users repositories.UserRepository,
	notifier *NotificationService,
	executor functions.Executor,
	grants GrantFunctions,
	logger *zap.Logger,
) *CascadeService {
	return &CascadeService{
		comments:  comments,
		replies:   replies,
		itemLikes: itemLikes,
		likes:     likes,
		saves:     saves,
		subjects:  subjects,
		users:     users,
		notifier:  notifier,
		executor:  executor,
		grants:    grants,
		logger:    logger,
	}
}

// AddComment creates a comment on a subject, delegates read access to the
// subject author's principal, bumps the subject's denormalized comment
// counter and notifies the author.
func (s *CascadeService) AddComment(ctx context.Context, kind models.SubjectKind, subjectID string, actorID uint, content string) (*models.Comment, error) {
	subject, err := s.getSubject(ctx, kind, subjectID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{SubjectID: subjectID, ActorID: actorID, Content: content}
	if err := s.comments.CreateComment(comment); err != nil {
		return nil, err
	}

	s.bumpCommentsCount(kind, subjectID, 1)

	s.executor.Execute(s.grants.Comments, functions.GrantPayload{
		RecordID:   strconv.FormatUint(uint64(comment.ID), 10),
		Principals: []string{subject.AuthorID},
	})

	s.notify(spaceForKind(kind), subject.AuthorID, actorID,
		models.NotificationComment, subjectID,
		s.actorMessage(actorID, "commented on your %s", kind))

	return comment, nil
}

// AddFeedback creates a private feedback record. The receiver of the
// permission grant is always the subject's author: feedback stays between
// the submitter and the author.
func (s *CascadeService) AddFeedback(ctx context.Context, kind models.SubjectKind, subjectID string, actorID uint, content string) (*models.Feedback, error) {
	subject, err := s.getSubject(ctx, kind, subjectID)
	if err != nil {
		return nil, err
	}

	feedback := &models.Feedback{SubjectID: subjectID, ActorID: actorID, Content: content}
	if err := s.comments.CreateFeedback(feedback); err != nil {
		return nil, err
	}

	s.executor.Execute(s.grants.Feedback, functions.GrantPayload{
		RecordID:   strconv.FormatUint(uint64(feedback.ID), 10),
		Principals: []string{subject.AuthorID},
	})

	s.notify(spaceForKind(kind), subject.AuthorID, actorID,
		models.NotificationComment, subjectID,
		s.actorMessage(actorID, "left feedback on your %s", kind))

	return feedback, nil
}

// AddCommentReply creates a reply under a comment. The grant target is the
// default receiver: the subject's author.
func (s *CascadeService) AddCommentReply(ctx context.Context, kind models.SubjectKind, subjectID string, parentID uint, actorID uint, content string) (*models.CommentReply, error) {
	subject, err := s.getSubject(ctx, kind, subjectID)
	if err != nil {
		return nil, err
	}
	if _, err := s.comments.GetCommentByID(parentID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	reply := &models.CommentReply{ParentID: parentID, ActorID: actorID, Content: content}
	if err := s.replies.CreateCommentReply(reply); err != nil {
		return nil, err
	}

	s.executor.Execute(s.grants.Replies, functions.GrantPayload{
		RecordID:   strconv.FormatUint(uint64(reply.ID), 10),
		Principals: []string{subject.AuthorID},
	})

	s.notify(spaceForKind(kind), subject.AuthorID, actorID,
		models.NotificationReply, subjectID,
		s.actorMessage(actorID, "replied on your %s", kind))

	return reply, nil
}

// AddFeedbackReply creates a reply under a feedback record. The grant target
// depends on who is replying: when the subject's author replies, the
// original feedback submitter must be able to read the reply, so the
// submitter's internal id is translated to their principal; anyone else's
// reply is granted to the subject's author.
func (s *CascadeService) AddFeedbackReply(ctx context.Context, kind models.SubjectKind, subjectID string, parentID uint, actorID uint, content string) (*models.FeedbackReply, error) {
	subject, err := s.getSubject(ctx, kind, subjectID)
	if err != nil {
		return nil, err
	}
	parent, err := s.comments.GetFeedbackByID(parentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	actorPrincipal, err := s.users.PrincipalIDForUser(actorID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	isAuthorReplying := actorPrincipal == subject.AuthorID
	grantTarget := subject.AuthorID
	if isAuthorReplying {
		grantTarget, err = s.users.PrincipalIDForUser(parent.ActorID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	}

	reply := &models.FeedbackReply{ParentID: parentID, ActorID: actorID, Content: content}
	if err := s.replies.CreateFeedbackReply(reply); err != nil {
		return nil, err
	}

	s.executor.Execute(s.grants.Replies, functions.GrantPayload{
		RecordID:   strconv.FormatUint(uint64(reply.ID), 10),
		Principals: []string{grantTarget},
	})

	s.notify(spaceForKind(kind), grantTarget, actorID,
		models.NotificationReply, subjectID,
		s.actorMessage(actorID, "replied to feedback on a %s", kind))

	return reply, nil
}

// Comments lists all comments for a subject
func (s *CascadeService) Comments(subjectID string) ([]models.Comment, error) {
	return s.comments.GetCommentsBySubject(subjectID)
}

// Feedbacks lists all feedback records for a subject
func (s *CascadeService) Feedbacks(subjectID string) ([]models.Feedback, error) {
	return s.comments.GetFeedbacksBySubject(subjectID)
}

// CommentReplies lists all replies under a comment
func (s *CascadeService) CommentReplies(parentID uint) ([]models.CommentReply, error) {
	return s.replies.GetCommentRepliesByParent(parentID)
}

// FeedbackReplies lists all replies under a feedback record
func (s *CascadeService) FeedbackReplies(parentID uint) ([]models.FeedbackReply, error) {
	return s.replies.GetFeedbackRepliesByParent(parentID)
}

// CommentReply retrieves one reply under a comment
func (s *CascadeService) CommentReply(replyID uint) (*models.CommentReply, error) {
	reply, err := s.replies.GetCommentReplyByID(replyID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return reply, nil
}

// FeedbackReply retrieves one reply under a feedback record
func (s *CascadeService) FeedbackReply(replyID uint) (*models.FeedbackReply, error) {
	reply, err := s.replies.GetFeedbackReplyByID(replyID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return reply, nil
}

// RemoveCommentReply deletes a single reply, its item-likes first, with the
// same idempotent-step contract as the full cascades.
func (s *CascadeService) RemoveCommentReply(replyID uint) error {
	var failures []error
	if err := s.itemLikes.DeleteByItem(replyID, models.ItemCommentReply); err != nil {
		failures = append(failures, fmt.Errorf("reply %d likes: %w", replyID, err))
	} else if err := ignoreNotFound(s.replies.DeleteCommentReply(replyID)); err != nil {
		failures = append(failures, fmt.Errorf("reply %d: %w", replyID, err))
	}
	return s.partialCascade(failures)
}

// RemoveFeedbackReply deletes a single feedback reply and its item-likes
func (s *CascadeService) RemoveFeedbackReply(replyID uint) error {
	var failures []error
	if err := s.itemLikes.DeleteByItem(replyID, models.ItemFeedbackReply); err != nil {
		failures = append(failures, fmt.Errorf("reply %d likes: %w", replyID, err))
	} else if err := ignoreNotFound(s.replies.DeleteFeedbackReply(replyID)); err != nil {
		failures = append(failures, fmt.Errorf("reply %d: %w", replyID, err))
	}
	return s.partialCascade(failures)
}

// DeleteComment removes a comment and everything under it, leaves first:
// the item-likes on each reply, the reply itself, the item-likes on the
// comment, then the comment. A record is only removed once everything
// hanging off it is gone, so a failed step stays reachable when the cascade
// is re-run. A missing child counts as already done; any other step failure
// is recorded and the cascade continues, surfacing ErrPartialCascade at the
// end so the caller can retry the whole operation to convergence.
func (s *CascadeService) DeleteComment(kind models.SubjectKind, subjectID string, commentID uint) error {
	var failures []error

	replies, err := s.replies.GetCommentRepliesByParent(commentID)
	if err != nil {
		return err
	}
	for _, reply := range replies {
		if err := s.itemLikes.DeleteByItem(reply.ID, models.ItemCommentReply); err != nil {
			failures = append(failures, fmt.Errorf("reply %d likes: %w", reply.ID, err))
			continue
		}
		if err := ignoreNotFound(s.replies.DeleteCommentReply(reply.ID)); err != nil {
			failures = append(failures, fmt.Errorf("reply %d: %w", reply.ID, err))
		}
	}

	if err := s.itemLikes.DeleteByItem(commentID, models.ItemComment); err != nil {
		failures = append(failures, fmt.Errorf("comment %d likes: %w", commentID, err))
	}

	// The counter moves only when this run removed the row; a retry that
	// finds the comment already gone must not decrement again.
	switch err := s.comments.DeleteComment(commentID); {
	case err == nil:
		s.bumpCommentsCount(kind, subjectID, -1)
	case errors.Is(err, repositories.ErrNotFound):
	default:
		failures = append(failures, fmt.Errorf("comment %d: %w", commentID, err))
	}

	return s.partialCascade(failures)
}

// DeleteFeedback removes a feedback record, its replies and the item-likes
// on all of them, with the same idempotent-step contract as DeleteComment.
func (s *CascadeService) DeleteFeedback(subjectID string, feedbackID uint) error {
	var failures []error

	replies, err := s.replies.GetFeedbackRepliesByParent(feedbackID)
	if err != nil {
		return err
	}
	for _, reply := range replies {
		if err := s.itemLikes.DeleteByItem(reply.ID, models.ItemFeedbackReply); err != nil {
			failures = append(failures, fmt.Errorf("reply %d likes: %w", reply.ID, err))
			continue
		}
		if err := ignoreNotFound(s.replies.DeleteFeedbackReply(reply.ID)); err != nil {
			failures = append(failures, fmt.Errorf("reply %d: %w", reply.ID, err))
		}
	}

	if err := s.itemLikes.DeleteByItem(feedbackID, models.ItemFeedback); err != nil {
		failures = append(failures, fmt.Errorf("feedback %d likes: %w", feedbackID, err))
	}

	if err := ignoreNotFound(s.comments.DeleteFeedback(feedbackID)); err != nil {
		failures = append(failures, fmt.Errorf("feedback %d: %w", feedbackID, err))
	}

	return s.partialCascade(failures)
}

// DeleteAllForSubject removes every dependent record of a subject: each
// comment cascade, each feedback cascade, then the subject-level likes and
// saves. This is the dominant cost of subject deletion, a sequence of
// awaited independent operations with no assumed atomicity; re-running after
// a partial failure converges because every step tolerates NotFound.
func (s *CascadeService) DeleteAllForSubject(ctx context.Context, kind models.SubjectKind, subjectID string) error {
	var failures []error

	comments, err := s.comments.GetCommentsBySubject(subjectID)
	if err != nil {
		return err
	}
	for _, comment := range comments {
		if err := s.DeleteComment(kind, subjectID, comment.ID); err != nil {
			failures = append(failures, err)
		}
	}

	feedbacks, err := s.comments.GetFeedbacksBySubject(subjectID)
	if err != nil {
		return err
	}
	for _, feedback := range feedbacks {
		if err := s.DeleteFeedback(subjectID, feedback.ID); err != nil {
			failures = append(failures, err)
		}
	}

	if err := s.likes.DeleteBySubject(subjectID); err != nil {
		failures = append(failures, fmt.Errorf("subject likes: %w", err))
	}
	if err := s.saves.DeleteBySubject(subjectID); err != nil {
		failures = append(failures, fmt.Errorf("subject saves: %w", err))
	}

	return s.partialCascade(failures)
}

func (s *CascadeService) getSubject(ctx context.Context, kind models.SubjectKind, subjectID string) (*models.Subject, error) {
	subject, err := s.subjects.GetSubjectByID(ctx, kind, subjectID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return subject, nil
}

// bumpCommentsCount adjusts the subject's denormalized counter from a
// detached goroutine: the counter is best-effort and must not delay or fail
// the authoritative write.
func (s *CascadeService) bumpCommentsCount(kind models.SubjectKind, subjectID string, delta int) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.subjects.AdjustCommentsCount(ctx, kind, subjectID, delta); err != nil {
			s.logger.Warn("comments count adjustment failed",
				zap.String("subject_id", subjectID),
				zap.Int("delta", delta),
				zap.Error(err))
		}
	}()
}

func (s *CascadeService) notify(space models.NotificationSpace, receiverPrincipal string, actorID uint, notifType, resourceID, message string) {
	if _, err := s.notifier.Notify(space, receiverPrincipal, actorID, notifType, resourceID, message); err != nil {
		s.logger.Warn("notification failed",
			zap.String("type", notifType),
			zap.String("resource_id", resourceID),
			zap.Error(err))
	}
}

func (s *CascadeService) actorMessage(actorID uint, format string, kind models.SubjectKind) string {
	actor, err := s.users.GetUserByID(actorID)
	if err != nil {
		return fmt.Sprintf("Someone "+format, kind)
	}
	return fmt.Sprintf(actor.Name+" "+format, kind)
}

func (s *CascadeService) partialCascade(failures []error) error {
	if len(failures) == 0 {
		return nil
	}
	return errors.Join(ErrPartialCascade, errors.Join(failures...))
}

// ignoreNotFound treats a missing record as a completed delete
func ignoreNotFound(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	return err
}

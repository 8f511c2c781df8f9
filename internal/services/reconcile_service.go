package services

import (
	"context"
	"errors"

	"github.com/craftify/backend/internal/models"
	"github.com/craftify/backend/internal/repositories"
	"go.uber.org/zap"
)

// ReconcileService is the read-repair path for denormalized counters: it
// recomputes a counter from source records and writes back the true value.
// Run on demand or periodically by an external scheduler; this layer owns
// only the repair itself.
type ReconcileService struct {
	supports repositories.SupportRepository
	users    repositories.UserRepository
	comments repositories.CommentRepository
	subjects repositories.SubjectRepository
	logger   *zap.Logger
}

// NewReconcileService creates a new ReconcileService
func NewReconcileService(
	supports repositories.SupportRepository,
	users repositories.UserRepository,
	comments repositories.CommentRepository,
	subjects repositories.SubjectRepository,
	logger *zap.Logger,
) *ReconcileService {
	return &ReconcileService{
		supports: supports,
		users:    users,
		comments: comments,
		subjects: subjects,
		logger:   logger,
	}
}

// ReconcileSupportingCount recomputes a user's SupportingCount from their
// support edge and overwrites the stored counter.
func (s *ReconcileService) ReconcileSupportingCount(userID uint) (int, error) {
	truth := 0
	edge, err := s.supports.GetEdge(userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return 0, err
		}
		// no edge: the true count is zero
	} else {
		truth = len(edge.SupportingIDs)
	}

	if err := s.users.SetSupportingCount(userID, truth); err != nil {
		return 0, err
	}
	s.logger.Info("supporting count reconciled",
		zap.Uint("user_id", userID),
		zap.Int("count", truth))
	return truth, nil
}

// ReconcileCommentsCount recomputes a subject's CommentsCount from live
// comment rows and overwrites the stored counter.
func (s *ReconcileService) ReconcileCommentsCount(ctx context.Context, kind models.SubjectKind, subjectID string) (int, error) {
	comments, err := s.comments.GetCommentsBySubject(subjectID)
	if err != nil {
		return 0, err
	}
	truth := len(comments)

	if err := s.subjects.SetCommentsCount(ctx, kind, subjectID, truth); err != nil {
		return 0, err
	}
	s.logger.Info("comments count reconciled",
		zap.String("subject_id", subjectID),
		zap.Int("count", truth))
	return truth, nil
}

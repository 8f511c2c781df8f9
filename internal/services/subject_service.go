package services

import (
	"context"
	"errors"
	"time"

	"github.com/craftify/backend/internal/models"
	"github.com/craftify/backend/internal/repositories"
	"go.uber.org/zap"
)

// SubjectService creates and deletes top-level subjects. Deletion runs the
// full dependent-record cascade before the document itself is removed, so a
// retried deletion after partial failure still converges. Discussion
// creation triggers the community ping fan-out as a background dispatch:
// the triggering request is not held open for an O(members) operation.
type SubjectService struct {
	subjects repositories.SubjectRepository
	users    repositories.UserRepository
	cascade  *CascadeService
	pings    *PingService
	logger   *zap.Logger
}

// NewSubjectService creates a new SubjectService
func NewSubjectService(
	subjects repositories.SubjectRepository,
	users repositories.UserRepository,
	cascade *CascadeService,
	pings *PingService,
	logger *zap.Logger,
) *SubjectService {
	return &SubjectService{
		subjects: subjects,
		users:    users,
		cascade:  cascade,
		pings:    pings,
		logger:   logger,
	}
}

// Create stores a new subject document, bumps the author's user-level
// counter and, for discussions, fans pings out to the community.
func (s *SubjectService) Create(ctx context.Context, kind models.SubjectKind, actorID uint, req models.CreateSubjectRequest) (*models.Subject, error) {
	author, err := s.users.GetUserByID(actorID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	subject := &models.Subject{
		Kind:        kind,
		AuthorID:    author.PrincipalID,
		Title:       req.Title,
		Content:     req.Content,
		MediaURLs:   req.MediaURLs,
		CommunityID: req.CommunityID,
		TopicID:     req.TopicID,
	}
	if err := s.subjects.CreateSubject(ctx, subject); err != nil {
		return nil, err
	}

	s.bumpAuthorCounter(kind, actorID, 1)

	if kind == models.SubjectDiscussion && subject.CommunityID != "" {
		// Fire-and-continue: eventual delivery, bounded by the fan-out's
		// own batching, without holding this request open.
		go func(communityID, topicID string, authorID uint) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			if err := s.pings.FanOutPing(ctx, communityID, topicID, authorID); err != nil {
				s.logger.Warn("discussion ping fan-out incomplete",
					zap.String("community_id", communityID),
					zap.String("topic_id", topicID),
					zap.Error(err))
			}
		}(subject.CommunityID, subject.TopicID, actorID)
	}

	return subject, nil
}

// Get retrieves one subject
func (s *SubjectService) Get(ctx context.Context, kind models.SubjectKind, subjectID string) (*models.Subject, error) {
	subject, err := s.subjects.GetSubjectByID(ctx, kind, subjectID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return subject, nil
}

// List retrieves one page of subjects of a kind, newest first
func (s *SubjectService) List(ctx context.Context, kind models.SubjectKind, skip, limit int64) ([]models.Subject, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.subjects.GetAllSubjects(ctx, kind, skip, limit)
}

// ListByAuthor retrieves one page of a single author's subjects, newest first
func (s *SubjectService) ListByAuthor(ctx context.Context, kind models.SubjectKind, authorPrincipal string, skip, limit int64) ([]models.Subject, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.subjects.GetSubjectsByAuthor(ctx, kind, authorPrincipal, skip, limit)
}

// Delete removes a subject and all its dependent records. The cascade runs
// first; if it only partially completes, the document stays so the caller
// can retry the whole deletion.
func (s *SubjectService) Delete(ctx context.Context, kind models.SubjectKind, subjectID string, actorID uint) error {
	if _, err := s.subjects.GetSubjectByID(ctx, kind, subjectID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.cascade.DeleteAllForSubject(ctx, kind, subjectID); err != nil {
		return err
	}

	if err := s.subjects.DeleteSubject(ctx, kind, subjectID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.bumpAuthorCounter(kind, actorID, -1)
	return nil
}

// bumpAuthorCounter adjusts the author's denormalized per-kind counter.
// Best-effort: failures are logged, never propagated.
func (s *SubjectService) bumpAuthorCounter(kind models.SubjectKind, actorID uint, delta int) {
	var err error
	switch kind {
	case models.SubjectCreation:
		err = s.users.AdjustCreationsCount(actorID, delta)
	case models.SubjectProject:
		err = s.users.AdjustProjectsCount(actorID, delta)
	default:
		return
	}
	if err != nil {
		s.logger.Warn("author counter adjustment failed",
			zap.Uint("actor_id", actorID),
			zap.String("kind", string(kind)),
			zap.Int("delta", delta),
			zap.Error(err))
	}
}

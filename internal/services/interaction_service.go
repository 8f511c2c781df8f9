package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/craftify/backend/internal/models"
	"github.com/craftify/backend/internal/repositories"
	"github.com/craftify/backend/pkg/functions"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// spaceForKind routes notifications for a subject: discussion activity lands
// in the community space, everything else in the user space.
func spaceForKind(kind models.SubjectKind) models.NotificationSpace {
	if kind == models.SubjectDiscussion {
		return models.SpaceCommunity
	}
	return models.SpaceUser
}

// InteractionService is the interaction ledger: likes and saves on subjects
// plus the item-like variant over comment/feedback/reply records. Duplicate
// prevention is check-then-create backed by unique indexes; counts are
// always live queries.
type InteractionService struct {
	likes     repositories.LikeRepository
	saves     repositories.SaveRepository
	itemLikes repositories.ItemLikeRepository
	subjects  repositories.SubjectRepository
	users     repositories.UserRepository
	notifier  *NotificationService
	executor  functions.Executor
	grants    GrantFunctions
	logger    *zap.Logger
}

// NewInteractionService creates a new InteractionService
func NewInteractionService(
	likes repositories.LikeRepository,
	saves repositories.SaveRepository,
	itemLikes repositories.ItemLikeRepository,
	subjects repositories.SubjectRepository,
	users repositories.UserRepository,
	notifier *NotificationService,
	executor functions.Executor,
	grants GrantFunctions,
	logger *zap.Logger,
) *InteractionService {
	return &InteractionService{
		likes:     likes,
		saves:     saves,
		itemLikes: itemLikes,
		subjects:  subjects,
		users:     users,
		notifier:  notifier,
		executor:  executor,
		grants:    grants,
		logger:    logger,
	}
}

// Like records a like on a subject. Returns ErrDuplicateInteraction when the
// actor already liked it. On success the subject author's principal is
// granted read access to the like event and, unless the actor is the author,
// a like notification is created.
func (s *InteractionService) Like(ctx context.Context, kind models.SubjectKind, subjectID string, actorID uint) (*models.Like, error) {
	subject, err := s.subjects.GetSubjectByID(ctx, kind, subjectID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	hasLiked, err := s.likes.HasLiked(subjectID, actorID)
	if err != nil {
		return nil, err
	}
	if hasLiked {
		return nil, ErrDuplicateInteraction
	}

	like := &models.Like{SubjectID: subjectID, ActorID: actorID}
	if err := s.likes.CreateLike(like); err != nil {
		// The unique index catches the check-then-create race: two
		// concurrent likes both pass the check, one insert loses.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateInteraction
		}
		return nil, err
	}

	s.executor.Execute(s.grants.Interactions, functions.GrantPayload{
		RecordID:   strconv.FormatUint(uint64(like.ID), 10),
		Principals: []string{subject.AuthorID},
	})

	if _, err := s.notifier.Notify(spaceForKind(kind), subject.AuthorID, actorID,
		models.NotificationLike, subjectID, s.likeMessage(actorID, kind)); err != nil {
		// The like itself succeeded; a failed notification is logged, not
		// propagated, so the primary write never rolls back over it.
		s.logger.Warn("like notification failed",
			zap.String("subject_id", subjectID),
			zap.Uint("actor_id", actorID),
			zap.Error(err))
	}

	return like, nil
}

// Unlike removes the actor's like. Returns ErrNotFound when no like exists.
// No notification is sent for unlikes.
func (s *InteractionService) Unlike(subjectID string, actorID uint) error {
	if err := s.likes.DeleteLike(subjectID, actorID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// LikeCount counts live like rows for the subject; no denormalized counter
// is consulted.
func (s *InteractionService) LikeCount(subjectID string) (int64, error) {
	return s.likes.CountBySubject(subjectID)
}

// Liked reports whether the actor has liked the subject
func (s *InteractionService) Liked(subjectID string, actorID uint) (bool, error) {
	return s.likes.HasLiked(subjectID, actorID)
}

// Save bookmarks a subject for the actor. Same duplicate contract as Like
// but with no notification side effect.
func (s *InteractionService) Save(ctx context.Context, kind models.SubjectKind, subjectID string, actorID uint) (*models.Save, error) {
	if _, err := s.subjects.GetSubjectByID(ctx, kind, subjectID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	hasSaved, err := s.saves.HasSaved(subjectID, actorID)
	if err != nil {
		return nil, err
	}
	if hasSaved {
		return nil, ErrDuplicateInteraction
	}

	save := &models.Save{SubjectID: subjectID, ActorID: actorID}
	if err := s.saves.CreateSave(save); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateInteraction
		}
		return nil, err
	}
	return save, nil
}

// Unsave removes the actor's bookmark. Returns ErrNotFound when none exists.
func (s *InteractionService) Unsave(subjectID string, actorID uint) error {
	if err := s.saves.DeleteSave(subjectID, actorID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// SaveCount counts live save rows for the subject
func (s *InteractionService) SaveCount(subjectID string) (int64, error) {
	return s.saves.CountBySubject(subjectID)
}

// Saved reports whether the actor has saved the subject
func (s *InteractionService) Saved(subjectID string, actorID uint) (bool, error) {
	return s.saves.HasSaved(subjectID, actorID)
}

// SavedSubjects lists the actor's saves, newest first
func (s *InteractionService) SavedSubjects(actorID uint) ([]models.Save, error) {
	return s.saves.GetSavesByActor(actorID)
}

// LikeItem records a like on a comment, feedback or reply record. The item
// type is explicit: callers state what the id refers to, nothing is inferred
// by probing.
func (s *InteractionService) LikeItem(itemID uint, itemType models.ItemType, actorID uint) (*models.ItemLike, error) {
	if !itemType.Valid() {
		return nil, ErrInvalidItemType
	}

	hasLiked, err := s.itemLikes.HasLikedItem(itemID, itemType, actorID)
	if err != nil {
		return nil, err
	}
	if hasLiked {
		return nil, ErrDuplicateInteraction
	}

	like := &models.ItemLike{ItemID: itemID, ItemType: itemType, ActorID: actorID}
	if err := s.itemLikes.CreateItemLike(like); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateInteraction
		}
		return nil, err
	}
	return like, nil
}

// UnlikeItem removes the actor's like on an item
func (s *InteractionService) UnlikeItem(itemID uint, itemType models.ItemType, actorID uint) error {
	if !itemType.Valid() {
		return ErrInvalidItemType
	}
	if err := s.itemLikes.DeleteItemLike(itemID, itemType, actorID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// ItemLikeCount counts live like rows for an item
func (s *InteractionService) ItemLikeCount(itemID uint, itemType models.ItemType) (int64, error) {
	if !itemType.Valid() {
		return 0, ErrInvalidItemType
	}
	return s.itemLikes.CountByItem(itemID, itemType)
}

func (s *InteractionService) likeMessage(actorID uint, kind models.SubjectKind) string {
	actor, err := s.users.GetUserByID(actorID)
	if err != nil {
		return fmt.Sprintf("Someone liked your %s", kind)
	}
	return fmt.Sprintf("%s liked your %s", actor.Name, kind)
}

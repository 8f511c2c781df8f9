package services

import (
	"errors"

	"github.com/craftify/backend/internal/models"
	"github.com/craftify/backend/internal/repositories"
	"go.uber.org/zap"
)

// SupportService maintains each user's set of supported creators plus the
// paired denormalized SupportingCount on the user row. Set mutation and
// counter adjustment are two independent writes; the counter only moves
// when the set actually changed, so retries cannot inflate it.
type SupportService struct {
	supports repositories.SupportRepository
	users    repositories.UserRepository
	logger   *zap.Logger
}

// NewSupportService creates a new SupportService
func NewSupportService(supports repositories.SupportRepository, users repositories.UserRepository, logger *zap.Logger) *SupportService {
	return &SupportService{supports: supports, users: users, logger: logger}
}

// Support adds creatorID to the user's supporting set. Supporting an
// already-supported creator is a no-op success: the set keeps its
// semantics and the counter is not bumped again.
func (s *SupportService) Support(userID, creatorID uint) error {
	if userID == creatorID {
		return ErrSelfSupport
	}

	edge, err := s.supports.GetEdge(userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		edge = &models.SupportEdge{UserID: userID}
	}

	if edge.Supports(creatorID) {
		return nil
	}

	edge.SupportingIDs = append(edge.SupportingIDs, creatorID)
	if err := s.supports.SaveEdge(edge); err != nil {
		return err
	}

	s.adjustCount(userID, 1)
	return nil
}

// Unsupport removes creatorID from the user's supporting set. Returns
// ErrNotFound when the creator was not in the set.
func (s *SupportService) Unsupport(userID, creatorID uint) error {
	edge, err := s.supports.GetEdge(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !edge.Supports(creatorID) {
		return ErrNotFound
	}

	kept := make([]uint, 0, len(edge.SupportingIDs)-1)
	for _, id := range edge.SupportingIDs {
		if id != creatorID {
			kept = append(kept, id)
		}
	}
	edge.SupportingIDs = kept
	if err := s.supports.SaveEdge(edge); err != nil {
		return err
	}

	s.adjustCount(userID, -1)
	return nil
}

// Supporting returns the user's supporting set; a missing edge is an empty set
func (s *SupportService) Supporting(userID uint) ([]uint, error) {
	edge, err := s.supports.GetEdge(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return edge.SupportingIDs, nil
}

// IsSupporting reports whether userID supports creatorID
func (s *SupportService) IsSupporting(userID, creatorID uint) (bool, error) {
	edge, err := s.supports.GetEdge(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return edge.Supports(creatorID), nil
}

// adjustCount moves the denormalized counter after a confirmed set change.
// The two writes are not transactional; a failure here leaves drift that
// ReconcileService repairs.
func (s *SupportService) adjustCount(userID uint, delta int) {
	if err := s.users.AdjustSupportingCount(userID, delta); err != nil {
		s.logger.Warn("supporting count adjustment failed",
			zap.Uint("user_id", userID),
			zap.Int("delta", delta),
			zap.Error(err))
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/craftify/backend/internal/models"
	"github.com/craftify/backend/internal/repositories"
	"go.uber.org/zap"
)

// DefaultPingBatchSize bounds how many member writes run concurrently
// during one fan-out batch.
const DefaultPingBatchSize = 100

// PingService accumulates unseen-activity pings per (community, topic,
// member). Fan-out is the most expensive operation in the system: its cost
// is proportional to community size, so members are enumerated in fixed
// pages with bounded in-flight work.
type PingService struct {
	pings       repositories.PingRepository
	communities repositories.CommunityRepository
	batchSize   int
	logger      *zap.Logger
}

// NewPingService creates a new PingService. batchSize <= 0 falls back to
// DefaultPingBatchSize.
func NewPingService(pings repositories.PingRepository, communities repositories.CommunityRepository, batchSize int, logger *zap.Logger) *PingService {
	if batchSize <= 0 {
		batchSize = DefaultPingBatchSize
	}
	return &PingService{
		pings:       pings,
		communities: communities,
		batchSize:   batchSize,
		logger:      logger,
	}
}

// FanOutPing delivers one unseen-activity event to every member of the
// community except the author. Member writes within a batch run
// concurrently; batches run sequentially. A failed member write is logged
// and skipped rather than aborting the batch: partial delivery beats
// blocking every other member on one failure. A nonzero failure count
// surfaces as ErrPartialFanout after all batches ran; retrying the whole
// fan-out is safe because each member write is increment-or-create.
func (s *PingService) FanOutPing(ctx context.Context, communityID, topicID string, authorID uint) error {
	var failed int64
	skip := int64(0)

	for {
		members, err := s.communities.ListMembers(ctx, communityID, skip, int64(s.batchSize))
		if err != nil {
			return err
		}
		if len(members) == 0 {
			break
		}

		var wg sync.WaitGroup
		for _, member := range members {
			if member.UserID == authorID {
				continue
			}
			wg.Add(1)
			go func(userID uint) {
				defer wg.Done()
				if err := s.bump(communityID, topicID, userID); err != nil {
					atomic.AddInt64(&failed, 1)
					s.logger.Warn("ping write failed",
						zap.String("community_id", communityID),
						zap.String("topic_id", topicID),
						zap.Uint("user_id", userID),
						zap.Error(err))
				}
			}(member.UserID)
		}
		wg.Wait()

		if len(members) < s.batchSize {
			break
		}
		skip += int64(s.batchSize)
	}

	if n := atomic.LoadInt64(&failed); n > 0 {
		return fmt.Errorf("%w: %d member writes failed", ErrPartialFanout, n)
	}
	return nil
}

// bump increments the member's existing ping or creates one at count 1
func (s *PingService) bump(communityID, topicID string, userID uint) error {
	ping, err := s.pings.GetPing(communityID, topicID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return s.pings.CreatePing(&models.Ping{
				CommunityID: communityID,
				TopicID:     topicID,
				UserID:      userID,
				PingCount:   1,
			})
		}
		return err
	}
	return s.pings.IncrementPing(ping.ID)
}

// MarkRead acknowledges one unseen item: the matching ping is decremented
// by 1, and a count reaching zero deletes the record instead of retaining a
// zero-count row. Returns ErrNotFound when no ping exists.
func (s *PingService) MarkRead(userID uint, communityID, topicID string) error {
	ping, err := s.pings.GetPing(communityID, topicID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if ping.PingCount <= 1 {
		return s.pings.DeletePing(ping.ID)
	}
	return s.pings.DecrementPing(ping.ID)
}

// ClearPings is the bulk mark-all-read variant: the member's ping for the
// topic is removed in one pass instead of looping decrements. An absent
// ping is already clear.
func (s *PingService) ClearPings(userID uint, communityID, topicID string) error {
	ping, err := s.pings.GetPing(communityID, topicID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.pings.DeletePing(ping.ID)
}

// SumForTopic aggregates live ping counts for one topic of a community
func (s *PingService) SumForTopic(communityID, topicID string) (int, error) {
	pings, err := s.pings.ListByTopic(communityID, topicID)
	if err != nil {
		return 0, err
	}
	return sumPings(pings), nil
}

// SumForCommunity aggregates live ping counts across a whole community
func (s *PingService) SumForCommunity(communityID string) (int, error) {
	pings, err := s.pings.ListByCommunity(communityID)
	if err != nil {
		return 0, err
	}
	return sumPings(pings), nil
}

// SumForUser aggregates live ping counts addressed to one user
func (s *PingService) SumForUser(userID uint) (int, error) {
	pings, err := s.pings.ListByUser(userID)
	if err != nil {
		return 0, err
	}
	return sumPings(pings), nil
}

// Ping state changes too frequently and asymmetrically to keep a reliable
// top-level counter, so sums are always recomputed from live rows.
func sumPings(pings []models.Ping) int {
	total := 0
	for _, p := range pings {
		total += p.PingCount
	}
	return total
}

package models

import "time"

// SupportEdge holds the set of creators one user supports. One row per
// UserID; SupportingIDs has set semantics (no duplicates). The paired
// denormalized User.SupportingCount must track len(SupportingIDs), but the
// two writes are not transactional, so equality is eventual, not atomic.
type SupportEdge struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"uniqueIndex"`
	SupportingIDs []uint    `json:"supporting_ids" gorm:"serializer:json;type:text"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Supports reports whether creatorID is in the edge's set.
func (e *SupportEdge) Supports(creatorID uint) bool {
	for _, id := range e.SupportingIDs {
		if id == creatorID {
			return true
		}
	}
	return false
}

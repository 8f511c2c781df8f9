package models

import "time"

// Like represents a like on a subject. At most one row may exist per
// (subject_id, actor_id) pair; the composite unique index backs the
// check-then-create performed by the interaction service.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	SubjectID string    `json:"subject_id" gorm:"index;uniqueIndex:idx_subject_actor_like"` // MongoDB ObjectID as string
	ActorID   uint      `json:"actor_id" gorm:"index;uniqueIndex:idx_subject_actor_like"`
	CreatedAt time.Time `json:"created_at"`
}

// Save represents a bookmarked subject. Same uniqueness contract as Like,
// but saving never produces a notification.
type Save struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	SubjectID string    `json:"subject_id" gorm:"index;uniqueIndex:idx_subject_actor_save"`
	ActorID   uint      `json:"actor_id" gorm:"index;uniqueIndex:idx_subject_actor_save"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemType discriminates the hierarchical content records an ItemLike can
// target. Item ids alone are not globally typed, so the type travels with
// the id everywhere instead of being inferred by trial lookup.
type ItemType string

const (
	ItemComment       ItemType = "comment"
	ItemFeedback      ItemType = "feedback"
	ItemCommentReply  ItemType = "comment_reply"
	ItemFeedbackReply ItemType = "feedback_reply"
)

// Valid reports whether t names a known item type.
func (t ItemType) Valid() bool {
	switch t {
	case ItemComment, ItemFeedback, ItemCommentReply, ItemFeedbackReply:
		return true
	}
	return false
}

// ItemLike represents a like on a comment, feedback or reply record
type ItemLike struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ItemID    uint      `json:"item_id" gorm:"index;uniqueIndex:idx_item_actor_like"`
	ItemType  ItemType  `json:"item_type" gorm:"size:20;uniqueIndex:idx_item_actor_like"`
	ActorID   uint      `json:"actor_id" gorm:"index;uniqueIndex:idx_item_actor_like"`
	CreatedAt time.Time `json:"created_at"`
}

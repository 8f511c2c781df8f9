package models

import "time"

// Comment represents a public comment on a subject. Content is immutable
// after creation; the only lifecycle transitions are item-likes and deletion.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	SubjectID string    `json:"subject_id" gorm:"index"` // MongoDB ObjectID as string
	ActorID   uint      `json:"actor_id" gorm:"index"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Feedback represents private feedback on a subject, readable only by its
// author and the subject's author. The visibility restriction is enforced by
// the permission-delegation side channel, not by this layer.
type Feedback struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	SubjectID string    `json:"subject_id" gorm:"index"`
	ActorID   uint      `json:"actor_id" gorm:"index"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CommentReply represents a reply under a comment
type CommentReply struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ParentID  uint      `json:"parent_id" gorm:"index"`
	ActorID   uint      `json:"actor_id" gorm:"index"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedbackReply represents a reply under a feedback record
type FeedbackReply struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ParentID  uint      `json:"parent_id" gorm:"index"`
	ActorID   uint      `json:"actor_id" gorm:"index"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommentRequest defines the request body for creating a comment or
// feedback record
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

// CreateReplyRequest defines the request body for replying to a comment or
// feedback record
type CreateReplyRequest struct {
	Content string `json:"content" validate:"required,min=1,max=1000"`
}

package models

import "time"

// NotificationSpace selects one of the two parallel notification spaces.
// They are structurally identical but live in separate tables and route
// permission delegation through different remote functions.
type NotificationSpace string

const (
	SpaceUser      NotificationSpace = "user"
	SpaceCommunity NotificationSpace = "community"
)

// Table returns the table name backing the space.
func (s NotificationSpace) Table() string {
	if s == SpaceCommunity {
		return "community_notifications"
	}
	return "notifications"
}

// Valid reports whether s names a known notification space.
func (s NotificationSpace) Valid() bool {
	return s == SpaceUser || s == SpaceCommunity
}

// Notification type constants
const (
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationReply   = "reply"
)

// Notification represents a notification row (PostgreSQL). ReceiverID is a
// principal id: the receiver is granted read access to the row by the
// delegated permission executor after creation, so the receiver is addressed
// in principal space while the sender is an internal actor id.
type Notification struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ReceiverID string    `json:"receiver_id" gorm:"index"` // principal id
	SenderID   uint      `json:"sender_id" gorm:"index"`
	Type       string    `json:"type" gorm:"size:20;index"` // like, comment, reply
	ResourceID string    `json:"resource_id"`
	Message    string    `json:"message"`
	IsRead     bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

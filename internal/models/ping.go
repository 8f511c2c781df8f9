package models

import "time"

// Ping accumulates unseen-activity events for one member in one topic of one
// community. PingCount is always >= 1: a record decremented to zero is
// deleted rather than retained.
type Ping struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	CommunityID string    `json:"community_id" gorm:"index;uniqueIndex:idx_community_topic_user"`
	TopicID     string    `json:"topic_id" gorm:"index;uniqueIndex:idx_community_topic_user"`
	UserID      uint      `json:"user_id" gorm:"index;uniqueIndex:idx_community_topic_user"`
	PingCount   int       `json:"ping_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

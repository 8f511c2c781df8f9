package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Community represents a community document stored in MongoDB
type Community struct {
	ID       primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name"`
	OwnerID  string             `json:"owner_id" bson:"owner_id"` // principal id
	TopicIDs []string           `json:"topic_ids" bson:"topic_ids"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// CommunityMember is one membership edge, stored in its own collection so
// large communities can be enumerated in fixed-size pages during fan-out.
type CommunityMember struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CommunityID string             `json:"community_id" bson:"community_id"`
	UserID      uint               `json:"user_id" bson:"user_id"`
	JoinedAt    time.Time          `json:"joined_at" bson:"joined_at"`
}

// CreateCommunityRequest defines the request body for creating a community
type CreateCommunityRequest struct {
	Name     string   `json:"name" validate:"required,min=2,max=80"`
	TopicIDs []string `json:"topic_ids,omitempty"`
}

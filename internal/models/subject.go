package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubjectKind discriminates the likeable/savable/commentable top-level
// entities. Each kind lives in its own MongoDB collection.
type SubjectKind string

const (
	SubjectCreation   SubjectKind = "creation"
	SubjectProject    SubjectKind = "project"
	SubjectDiscussion SubjectKind = "discussion"
)

// Collection returns the MongoDB collection name for the kind.
func (k SubjectKind) Collection() string {
	switch k {
	case SubjectCreation:
		return "creations"
	case SubjectProject:
		return "projects"
	case SubjectDiscussion:
		return "discussions"
	}
	return ""
}

// Valid reports whether k names a known subject kind.
func (k SubjectKind) Valid() bool {
	return k.Collection() != ""
}

// Subject is a top-level content document stored in MongoDB. AuthorID holds
// the author's principal id (not the internal user id): permission grants
// for interactions on the subject are delegated to this value directly.
type Subject struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Kind      SubjectKind        `json:"kind" bson:"kind"`
	AuthorID  string             `json:"author_id" bson:"author_id"`
	Title     string             `json:"title" bson:"title"`
	Content   string             `json:"content" bson:"content"`
	MediaURLs []string           `json:"media_urls,omitempty" bson:"media_urls,omitempty"`

	// Discussions only: the community and topic the discussion belongs to.
	CommunityID string `json:"community_id,omitempty" bson:"community_id,omitempty"`
	TopicID     string `json:"topic_id,omitempty" bson:"topic_id,omitempty"`

	// Best-effort denormalized counter; likes are always counted live.
	CommentsCount int `json:"comments_count" bson:"comments_count"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// CreateSubjectRequest defines the request body for creating a subject
type CreateSubjectRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=120"`
	Content     string   `json:"content" validate:"required,min=1,max=5000"`
	MediaURLs   []string `json:"media_urls,omitempty" validate:"omitempty,dive,url"`
	CommunityID string   `json:"community_id,omitempty"`
	TopicID     string   `json:"topic_id,omitempty"`
}

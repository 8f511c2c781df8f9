package repositories

import (
	"errors"

	"github.com/craftify/backend/internal/models"
	"gorm.io/gorm"
)

// ReplyRepository defines the interface for comment and feedback replies
type ReplyRepository interface {
	CreateCommentReply(reply *models.CommentReply) error
	GetCommentRepliesByParent(parentID uint) ([]models.CommentReply, error)
	GetCommentReplyByID(id uint) (*models.CommentReply, error)
	DeleteCommentReply(id uint) error

	CreateFeedbackReply(reply *models.FeedbackReply) error
	GetFeedbackRepliesByParent(parentID uint) ([]models.FeedbackReply, error)
	GetFeedbackReplyByID(id uint) (*models.FeedbackReply, error)
	DeleteFeedbackReply(id uint) error
}

// PostgresReplyRepository implements ReplyRepository for PostgreSQL
type PostgresReplyRepository struct {
	db *gorm.DB
}

// NewPostgresReplyRepository creates a new PostgresReplyRepository
func NewPostgresReplyRepository(db *gorm.DB) *PostgresReplyRepository {
	return &PostgresReplyRepository{db: db}
}

// CreateCommentReply creates a reply under a comment
func (r *PostgresReplyRepository) CreateCommentReply(reply *models.CommentReply) error {
	return r.db.Create(reply).Error
}

// GetCommentRepliesByParent lists all replies under a comment
func (r *PostgresReplyRepository) GetCommentRepliesByParent(parentID uint) ([]models.CommentReply, error) {
	var replies []models.CommentReply
	err := r.db.Where("parent_id = ?", parentID).Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}

// GetCommentReplyByID retrieves one comment reply
func (r *PostgresReplyRepository) GetCommentReplyByID(id uint) (*models.CommentReply, error) {
	var reply models.CommentReply
	if err := r.db.First(&reply, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &reply, nil
}

// DeleteCommentReply deletes one comment reply; missing rows return ErrNotFound
func (r *PostgresReplyRepository) DeleteCommentReply(id uint) error {
	res := r.db.Delete(&models.CommentReply{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateFeedbackReply creates a reply under a feedback record
func (r *PostgresReplyRepository) CreateFeedbackReply(reply *models.FeedbackReply) error {
	return r.db.Create(reply).Error
}

// GetFeedbackRepliesByParent lists all replies under a feedback record
func (r *PostgresReplyRepository) GetFeedbackRepliesByParent(parentID uint) ([]models.FeedbackReply, error) {
	var replies []models.FeedbackReply
	err := r.db.Where("parent_id = ?", parentID).Order("created_at ASC").
		Find(&replies).Error
	return replies, err
}

// GetFeedbackReplyByID retrieves one feedback reply
func (r *PostgresReplyRepository) GetFeedbackReplyByID(id uint) (*models.FeedbackReply, error) {
	var reply models.FeedbackReply
	if err := r.db.First(&reply, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &reply, nil
}

// DeleteFeedbackReply deletes one feedback reply; missing rows return ErrNotFound
func (r *PostgresReplyRepository) DeleteFeedbackReply(id uint) error {
	res := r.db.Delete(&models.FeedbackReply{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

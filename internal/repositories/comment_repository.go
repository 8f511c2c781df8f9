package repositories

import (
	"errors"

	"github.com/craftify/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment and feedback rows.
// Comments and feedback are structurally identical but live in separate
// tables because feedback is reader-restricted.
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentByID(id uint) (*models.Comment, error)
	GetCommentsBySubject(subjectID string) ([]models.Comment, error)
	DeleteComment(id uint) error

	CreateFeedback(feedback *models.Feedback) error
	GetFeedbackByID(id uint) (*models.Feedback, error)
	GetFeedbacksBySubject(subjectID string) ([]models.Feedback, error)
	DeleteFeedback(id uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment row
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentByID retrieves a comment by id
func (r *PostgresCommentRepository) GetCommentByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// GetCommentsBySubject lists all comments for a subject
func (r *PostgresCommentRepository) GetCommentsBySubject(subjectID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("subject_id = ?", subjectID).Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// DeleteComment deletes a comment row; a missing row returns ErrNotFound
func (r *PostgresCommentRepository) DeleteComment(id uint) error {
	res := r.db.Delete(&models.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateFeedback creates a new feedback row
func (r *PostgresCommentRepository) CreateFeedback(feedback *models.Feedback) error {
	return r.db.Create(feedback).Error
}

// GetFeedbackByID retrieves a feedback record by id
func (r *PostgresCommentRepository) GetFeedbackByID(id uint) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := r.db.First(&feedback, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &feedback, nil
}

// GetFeedbacksBySubject lists all feedback records for a subject
func (r *PostgresCommentRepository) GetFeedbacksBySubject(subjectID string) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := r.db.Where("subject_id = ?", subjectID).Order("created_at ASC").
		Find(&feedbacks).Error
	return feedbacks, err
}

// DeleteFeedback deletes a feedback row; a missing row returns ErrNotFound
func (r *PostgresCommentRepository) DeleteFeedback(id uint) error {
	res := r.db.Delete(&models.Feedback{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

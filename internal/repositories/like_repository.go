package repositories

import (
	"github.com/craftify/backend/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for subject-level like operations.
// Counts are always computed live; there is no stored likes counter to trust.
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(subjectID string, actorID uint) error
	HasLiked(subjectID string, actorID uint) (bool, error)
	CountBySubject(subjectID string) (int64, error)
	DeleteBySubject(subjectID string) error
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike inserts a like row. The unique (subject_id, actor_id) index
// rejects a duplicate that slips past the caller's existence check.
func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	return r.db.Create(like).Error
}

// DeleteLike removes the like for (subjectID, actorID)
func (r *PostgresLikeRepository) DeleteLike(subjectID string, actorID uint) error {
	res := r.db.Where("subject_id = ? AND actor_id = ?", subjectID, actorID).
		Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// HasLiked checks whether the actor already liked the subject
func (r *PostgresLikeRepository) HasLiked(subjectID string, actorID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Like{}).
		Where("subject_id = ? AND actor_id = ?", subjectID, actorID).
		Count(&count).Error
	return count > 0, err
}

// CountBySubject counts live like rows for the subject
func (r *PostgresLikeRepository) CountBySubject(subjectID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("subject_id = ?", subjectID).
		Count(&count).Error
	return count, err
}

// DeleteBySubject removes every like for the subject; zero rows is success
// so a re-run cascade converges instead of erroring.
func (r *PostgresLikeRepository) DeleteBySubject(subjectID string) error {
	return r.db.Where("subject_id = ?", subjectID).Delete(&models.Like{}).Error
}

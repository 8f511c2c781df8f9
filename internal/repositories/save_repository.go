package repositories

import (
	"github.com/craftify/backend/internal/models"
	"gorm.io/gorm"
)

// SaveRepository defines the interface for subject-level save (bookmark)
// operations. Same contract shape as LikeRepository.
type SaveRepository interface {
	CreateSave(save *models.Save) error
	DeleteSave(subjectID string, actorID uint) error
	HasSaved(subjectID string, actorID uint) (bool, error)
	CountBySubject(subjectID string) (int64, error)
	GetSavesByActor(actorID uint) ([]models.Save, error)
	DeleteBySubject(subjectID string) error
}

// PostgresSaveRepository implements SaveRepository for PostgreSQL
type PostgresSaveRepository struct {
	db *gorm.DB
}

// NewPostgresSaveRepository creates a new PostgresSaveRepository
func NewPostgresSaveRepository(db *gorm.DB) *PostgresSaveRepository {
	return &PostgresSaveRepository{db: db}
}

// CreateSave inserts a save row
func (r *PostgresSaveRepository) CreateSave(save *models.Save) error {
	return r.db.Create(save).Error
}

// DeleteSave removes the save for (subjectID, actorID)
func (r *PostgresSaveRepository) DeleteSave(subjectID string, actorID uint) error {
	res := r.db.Where("subject_id = ? AND actor_id = ?", subjectID, actorID).
		Delete(&models.Save{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// HasSaved checks whether the actor already saved the subject
func (r *PostgresSaveRepository) HasSaved(subjectID string, actorID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Save{}).
		Where("subject_id = ? AND actor_id = ?", subjectID, actorID).
		Count(&count).Error
	return count > 0, err
}

// CountBySubject counts live save rows for the subject
func (r *PostgresSaveRepository) CountBySubject(subjectID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Save{}).Where("subject_id = ?", subjectID).
		Count(&count).Error
	return count, err
}

// GetSavesByActor lists the actor's saves, newest first
func (r *PostgresSaveRepository) GetSavesByActor(actorID uint) ([]models.Save, error) {
	var saves []models.Save
	err := r.db.Where("actor_id = ?", actorID).Order("created_at DESC").
		Find(&saves).Error
	return saves, err
}

// DeleteBySubject removes every save for the subject; zero rows is success
func (r *PostgresSaveRepository) DeleteBySubject(subjectID string) error {
	return r.db.Where("subject_id = ?", subjectID).Delete(&models.Save{}).Error
}

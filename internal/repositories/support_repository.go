package repositories

import (
	"errors"

	"github.com/craftify/backend/internal/models"
	"gorm.io/gorm"
)

// SupportRepository defines the interface for support-edge rows. One row per
// user holds the whole set of supported creators; mutation happens through
// read-modify-write in the service layer.
type SupportRepository interface {
	GetEdge(userID uint) (*models.SupportEdge, error)
	SaveEdge(edge *models.SupportEdge) error
	DeleteEdge(userID uint) error
}

// PostgresSupportRepository implements SupportRepository for PostgreSQL
type PostgresSupportRepository struct {
	db *gorm.DB
}

// NewPostgresSupportRepository creates a new PostgresSupportRepository
func NewPostgresSupportRepository(db *gorm.DB) *PostgresSupportRepository {
	return &PostgresSupportRepository{db: db}
}

// GetEdge retrieves the support edge for a user
func (r *PostgresSupportRepository) GetEdge(userID uint) (*models.SupportEdge, error) {
	var edge models.SupportEdge
	if err := r.db.Where("user_id = ?", userID).First(&edge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &edge, nil
}

// SaveEdge creates or updates the support edge
func (r *PostgresSupportRepository) SaveEdge(edge *models.SupportEdge) error {
	return r.db.Save(edge).Error
}

// DeleteEdge removes the support edge for a user
func (r *PostgresSupportRepository) DeleteEdge(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.SupportEdge{}).Error
}

package repositories

import (
	"errors"

	"github.com/craftify/backend/internal/models"
	"gorm.io/gorm"
)

// PingRepository defines the interface for unseen-activity ping rows. Sums
// are left to the caller: the repository only lists live rows per scope, so
// ping totals are always recomputed, never cached.
type PingRepository interface {
	GetPing(communityID, topicID string, userID uint) (*models.Ping, error)
	CreatePing(ping *models.Ping) error
	IncrementPing(id uint) error
	DecrementPing(id uint) error
	DeletePing(id uint) error
	ListByTopic(communityID, topicID string) ([]models.Ping, error)
	ListByCommunity(communityID string) ([]models.Ping, error)
	ListByUser(userID uint) ([]models.Ping, error)
}

// PostgresPingRepository implements PingRepository for PostgreSQL
type PostgresPingRepository struct {
	db *gorm.DB
}

// NewPostgresPingRepository creates a new PostgresPingRepository
func NewPostgresPingRepository(db *gorm.DB) *PostgresPingRepository {
	return &PostgresPingRepository{db: db}
}

// GetPing retrieves the ping row for (communityID, topicID, userID)
func (r *PostgresPingRepository) GetPing(communityID, topicID string, userID uint) (*models.Ping, error) {
	var ping models.Ping
	err := r.db.Where("community_id = ? AND topic_id = ? AND user_id = ?",
		communityID, topicID, userID).First(&ping).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ping, nil
}

// CreatePing inserts a new ping row
func (r *PostgresPingRepository) CreatePing(ping *models.Ping) error {
	return r.db.Create(ping).Error
}

// IncrementPing bumps ping_count by one
func (r *PostgresPingRepository) IncrementPing(id uint) error {
	return r.db.Model(&models.Ping{}).Where("id = ?", id).
		Update("ping_count", gorm.Expr("ping_count + 1")).Error
}

// DecrementPing lowers ping_count by one; the caller deletes rows that reach zero
func (r *PostgresPingRepository) DecrementPing(id uint) error {
	return r.db.Model(&models.Ping{}).Where("id = ?", id).
		Update("ping_count", gorm.Expr("ping_count - 1")).Error
}

// DeletePing removes a ping row; a missing row is success (clear races read)
func (r *PostgresPingRepository) DeletePing(id uint) error {
	return r.db.Delete(&models.Ping{}, id).Error
}

// ListByTopic lists all ping rows for one topic of a community
func (r *PostgresPingRepository) ListByTopic(communityID, topicID string) ([]models.Ping, error) {
	var pings []models.Ping
	err := r.db.Where("community_id = ? AND topic_id = ?", communityID, topicID).
		Find(&pings).Error
	return pings, err
}

// ListByCommunity lists all ping rows for a community
func (r *PostgresPingRepository) ListByCommunity(communityID string) ([]models.Ping, error) {
	var pings []models.Ping
	err := r.db.Where("community_id = ?", communityID).Find(&pings).Error
	return pings, err
}

// ListByUser lists all ping rows addressed to a user
func (r *PostgresPingRepository) ListByUser(userID uint) ([]models.Ping, error) {
	var pings []models.Ping
	err := r.db.Where("user_id = ?", userID).Find(&pings).Error
	return pings, err
}

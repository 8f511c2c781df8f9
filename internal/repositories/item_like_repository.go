package repositories

import (
	"github.com/craftify/backend/internal/models"
	"gorm.io/gorm"
)

// ItemLikeRepository defines the interface for likes on comment, feedback
// and reply records. The item type is explicit in every call: targets are
// never resolved by probing tables.
type ItemLikeRepository interface {
	CreateItemLike(like *models.ItemLike) error
	DeleteItemLike(itemID uint, itemType models.ItemType, actorID uint) error
	HasLikedItem(itemID uint, itemType models.ItemType, actorID uint) (bool, error)
	CountByItem(itemID uint, itemType models.ItemType) (int64, error)
	DeleteByItem(itemID uint, itemType models.ItemType) error
}

type postgresItemLikeRepository struct {
	db *gorm.DB
}

// NewPostgresItemLikeRepository creates a new ItemLikeRepository backed by PostgreSQL
func NewPostgresItemLikeRepository(db *gorm.DB) ItemLikeRepository {
	return &postgresItemLikeRepository{db: db}
}

func (r *postgresItemLikeRepository) CreateItemLike(like *models.ItemLike) error {
	return r.db.Create(like).Error
}

func (r *postgresItemLikeRepository) DeleteItemLike(itemID uint, itemType models.ItemType, actorID uint) error {
	res := r.db.Where("item_id = ? AND item_type = ? AND actor_id = ?", itemID, itemType, actorID).
		Delete(&models.ItemLike{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresItemLikeRepository) HasLikedItem(itemID uint, itemType models.ItemType, actorID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ItemLike{}).
		Where("item_id = ? AND item_type = ? AND actor_id = ?", itemID, itemType, actorID).
		Count(&count).Error
	return count > 0, err
}

func (r *postgresItemLikeRepository) CountByItem(itemID uint, itemType models.ItemType) (int64, error) {
	var count int64
	err := r.db.Model(&models.ItemLike{}).
		Where("item_id = ? AND item_type = ?", itemID, itemType).
		Count(&count).Error
	return count, err
}

// DeleteByItem removes every like on the item; zero rows is success so
// cascades stay idempotent.
func (r *postgresItemLikeRepository) DeleteByItem(itemID uint, itemType models.ItemType) error {
	return r.db.Where("item_id = ? AND item_type = ?", itemID, itemType).
		Delete(&models.ItemLike{}).Error
}

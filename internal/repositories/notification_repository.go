package repositories

import (
	"github.com/craftify/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations.
// Every method takes the notification space; the user and community spaces
// share one row shape but live in separate tables.
type NotificationRepository interface {
	CreateNotification(space models.NotificationSpace, n *models.Notification) error
	GetByReceiver(space models.NotificationSpace, receiverID string, page, limit int) ([]models.Notification, int64, error)
	GetUnreadCount(space models.NotificationSpace, receiverID string) (int64, error)
	MarkAsRead(space models.NotificationSpace, id uint) error
	MarkAllAsRead(space models.NotificationSpace, receiverID string) error
	DeleteNotification(space models.NotificationSpace, id uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a new NotificationRepository backed by PostgreSQL
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) table(space models.NotificationSpace) *gorm.DB {
	return r.db.Table(space.Table())
}

func (r *postgresNotificationRepository) CreateNotification(space models.NotificationSpace, n *models.Notification) error {
	return r.table(space).Create(n).Error
}

func (r *postgresNotificationRepository) GetByReceiver(space models.NotificationSpace, receiverID string, page, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	if err := r.table(space).Where("receiver_id = ?", receiverID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.table(space).Where("receiver_id = ?", receiverID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error
	return notifications, total, err
}

func (r *postgresNotificationRepository) GetUnreadCount(space models.NotificationSpace, receiverID string) (int64, error) {
	var count int64
	err := r.table(space).Where("receiver_id = ? AND is_read = false", receiverID).
		Count(&count).Error
	return count, err
}

// MarkAsRead is idempotent: marking an already-read row rewrites true over
// true and still reports success.
func (r *postgresNotificationRepository) MarkAsRead(space models.NotificationSpace, id uint) error {
	res := r.table(space).Where("id = ?", id).Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresNotificationRepository) MarkAllAsRead(space models.NotificationSpace, receiverID string) error {
	return r.table(space).Where("receiver_id = ? AND is_read = false", receiverID).
		Update("is_read", true).Error
}

func (r *postgresNotificationRepository) DeleteNotification(space models.NotificationSpace, id uint) error {
	res := r.table(space).Where("id = ?", id).Delete(&models.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

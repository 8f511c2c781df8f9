package repositories

import (
	"errors"

	"github.com/craftify/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations, including
// the internal-id/principal-id translation every notification and permission
// decision depends on.
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByPrincipalID(principalID string) (*models.User, error)
	PrincipalIDForUser(id uint) (string, error)
	AdjustCreationsCount(id uint, delta int) error
	AdjustProjectsCount(id uint, delta int) error
	AdjustSupportingCount(id uint, delta int) error
	SetSupportingCount(id uint, count int) error
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user in PostgreSQL
func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// GetUserByID retrieves a user by internal id
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetUserByPrincipalID retrieves a user by principal (Firebase UID)
func (r *PostgresUserRepository) GetUserByPrincipalID(principalID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("principal_id = ?", principalID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// PrincipalIDForUser translates an internal user id to its principal id
func (r *PostgresUserRepository) PrincipalIDForUser(id uint) (string, error) {
	var principal string
	err := r.db.Model(&models.User{}).Where("id = ?", id).
		Pluck("principal_id", &principal).Error
	if err != nil {
		return "", err
	}
	if principal == "" {
		return "", ErrNotFound
	}
	return principal, nil
}

// AdjustCreationsCount shifts the denormalized creations counter by delta
func (r *PostgresUserRepository) AdjustCreationsCount(id uint, delta int) error {
	return r.adjust(id, "creations_count", delta)
}

// AdjustProjectsCount shifts the denormalized projects counter by delta
func (r *PostgresUserRepository) AdjustProjectsCount(id uint, delta int) error {
	return r.adjust(id, "projects_count", delta)
}

// AdjustSupportingCount shifts the denormalized supporting counter by delta
func (r *PostgresUserRepository) AdjustSupportingCount(id uint, delta int) error {
	return r.adjust(id, "supporting_count", delta)
}

// SetSupportingCount overwrites the supporting counter with a recomputed value
func (r *PostgresUserRepository) SetSupportingCount(id uint, count int) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Update("supporting_count", count).Error
}

func (r *PostgresUserRepository) adjust(id uint, column string, delta int) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Update(column, gorm.Expr(column+" + ?", delta)).Error
}

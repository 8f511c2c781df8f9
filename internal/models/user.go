package models

import "time"

// User is the internal identity record (PostgreSQL). Application code keys
// everything on the numeric ID; access-control checks use PrincipalID, the
// Firebase UID that identifies the same person to the permission layer. The
// two namespaces are never interchangeable and must be translated explicitly.
type User struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name"`
	Email       string `json:"email" gorm:"uniqueIndex"`
	PrincipalID string `json:"principal_id,omitempty" gorm:"uniqueIndex"`

	// Best-effort denormalized counters. Kept close to the truth by paired
	// increment/decrement calls; the reconcile service can repair drift.
	CreationsCount  int `json:"creations_count"`
	ProjectsCount   int `json:"projects_count"`
	SupportingCount int `json:"supporting_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserRequest defines the request body for registering a user record
type CreateUserRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Email       string `json:"email" validate:"required,email"`
	PrincipalID string `json:"principal_id" validate:"required"`
}

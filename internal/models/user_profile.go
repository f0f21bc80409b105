package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// UserProfile is the identity record. The ID doubles as the auth identity:
// exactly one profile exists per account, created at registration and
// defaulting to the customer role.
type UserProfile struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Role         string    `gorm:"size:20;not null;default:'customer';index" json:"role"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	FullName     *string   `gorm:"size:255" json:"full_name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the credential store record. Password is nil for accounts created
// through an OAuth provider that never set one.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email        string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Name         *string        `gorm:"size:255" json:"name,omitempty"`
	AvatarURL    *string        `gorm:"type:text" json:"avatar_url,omitempty"`
	Password     *string        `json:"-"`
	AuthProvider string         `gorm:"size:50;default:'credentials'" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

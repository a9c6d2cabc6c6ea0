package models

import (
	"time"

	"github.com/google/uuid"
)

// OAuthAccount links a User to an external identity provider account.
type OAuthAccount struct {
	ID                uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User              *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Provider          string    `gorm:"size:50;not null;uniqueIndex:idx_oauth_provider_account" json:"provider"`
	ProviderAccountID string    `gorm:"size:255;not null;uniqueIndex:idx_oauth_provider_account" json:"provider_account_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (OAuthAccount) TableName() string {
	return "oauth_accounts"
}

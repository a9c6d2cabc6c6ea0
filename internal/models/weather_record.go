package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WeatherRecord is one archived forecast lookup. Rows are immutable once
// created and are removed only by cascade when the owning user is deleted.
type WeatherRecord struct {
	ID               int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	City             string         `gorm:"size:100;not null;index" json:"city"`
	RequestTimestamp time.Time      `gorm:"not null;autoCreateTime;index" json:"request_timestamp"`
	Payload          datatypes.JSON `gorm:"type:jsonb;not null" json:"response_json"`
	UserID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User             *User          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (WeatherRecord) TableName() string {
	return "weather_records"
}

package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/weather"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	// DefaultHistoryLimit applies when the caller does not ask for one.
	DefaultHistoryLimit = 20
	// MaxHistoryLimit bounds response size regardless of what the caller
	// asked for. Callers needing more must narrow by date range.
	MaxHistoryLimit = 100
)

// HistoryFilter holds the optional, conjunctive filters for an archive query.
type HistoryFilter struct {
	City  string
	From  *time.Time
	To    *time.Time
	Limit int
}

// EffectiveLimit clamps the requested limit into [1, MaxHistoryLimit],
// defaulting when unset.
func (f HistoryFilter) EffectiveLimit() int {
	if f.Limit <= 0 {
		return DefaultHistoryLimit
	}
	if f.Limit > MaxHistoryLimit {
		return MaxHistoryLimit
	}
	return f.Limit
}

// ArchiveService persists forecast lookups and answers filtered queries
// scoped to a single user.
type ArchiveService struct {
	db *gorm.DB
}

func NewArchiveService(db *gorm.DB) *ArchiveService {
	return &ArchiveService{db: db}
}

// Record inserts one immutable row. The request timestamp is assigned by the
// storage layer at insert time.
func (s *ArchiveService) Record(userID uuid.UUID, city string, payload *weather.ForecastPayload) (int64, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("failed to encode forecast payload: %w", err)
	}

	record := models.WeatherRecord{
		City:    strings.TrimSpace(city),
		Payload: datatypes.JSON(body),
		UserID:  userID,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return 0, fmt.Errorf("failed to store weather record: %w", err)
	}
	return record.ID, nil
}

// Query returns the user's records matching the filter, most recent first.
// The userID always comes from the validated session, never from caller
// input, so cross-user reads are structurally impossible.
func (s *ArchiveService) Query(userID uuid.UUID, filter HistoryFilter) ([]models.WeatherRecord, error) {
	q := s.db.Where("user_id = ?", userID)
	if filter.City != "" {
		q = q.Where("city = ?", filter.City)
	}
	if filter.From != nil {
		q = q.Where("request_timestamp >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("request_timestamp <= ?", *filter.To)
	}

	records := make([]models.WeatherRecord, 0, filter.EffectiveLimit())
	err := q.Order("request_timestamp DESC").
		Limit(filter.EffectiveLimit()).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query weather history: %w", err)
	}
	return records, nil
}

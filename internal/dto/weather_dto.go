package dto

import (
	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/weather"
)

type ForecastRequest struct {
	City string `json:"city" validate:"required,min=2,max=50"`
}

type ForecastResponse struct {
	Success  bool                     `json:"success"`
	Data     *weather.ForecastPayload `json:"data"`
	RecordID int64                    `json:"record_id"`
}

type HistoryResponse struct {
	Success bool                   `json:"success"`
	Data    []models.WeatherRecord `json:"data"`
	Count   int                    `json:"count"`
}

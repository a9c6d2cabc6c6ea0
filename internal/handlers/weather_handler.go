package handlers

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/weather"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ForecastFetcher is the slice of the gateway the handler needs.
type ForecastFetcher interface {
	Fetch(ctx context.Context, city string) (*weather.ForecastPayload, error)
}

// ForecastArchive is the slice of the archive the handler needs.
type ForecastArchive interface {
	Record(userID uuid.UUID, city string, payload *weather.ForecastPayload) (int64, error)
	Query(userID uuid.UUID, filter services.HistoryFilter) ([]models.WeatherRecord, error)
}

type WeatherHandler struct {
	gateway ForecastFetcher
	archive ForecastArchive
}

func NewWeatherHandler(gateway ForecastFetcher, archive ForecastArchive) *WeatherHandler {
	return &WeatherHandler{gateway: gateway, archive: archive}
}

// CreateForecast fetches a forecast for the requested city and archives the
// result under the caller's user id. The archive write only happens after a
// successful gateway response, so a failed lookup never leaves a row behind.
func (h *WeatherHandler) CreateForecast(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.ForecastRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	req.City = strings.TrimSpace(req.City)
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Error: true, Message: "Invalid city name", Details: validationDetails(err),
		})
	}

	payload, err := h.gateway.Fetch(c.Context(), req.City)
	if err != nil {
		if errors.Is(err, weather.ErrInvalidCity) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
				Error:   true,
				Message: "Invalid city name",
				Details: []dto.FieldError{{Field: "city", Message: err.Error()}},
			})
		}
		slog.Error("forecast fetch failed", "action", "create_forecast", "city", req.City, "user_id", userID.String(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: weather.ErrServiceUnavailable.Error(),
		})
	}

	recordID, err := h.archive.Record(userID, req.City, payload)
	if err != nil {
		slog.Error("forecast archive failed", "action", "create_forecast", "city", req.City, "user_id", userID.String(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to store weather data",
		})
	}

	return c.JSON(dto.ForecastResponse{
		Success:  true,
		Data:     payload,
		RecordID: recordID,
	})
}

// History returns the caller's archived lookups, most recent first.
func (h *WeatherHandler) History(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	filter, details := parseHistoryQuery(c)
	if len(details) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Error: true, Message: "Invalid query parameters", Details: details,
		})
	}

	records, err := h.archive.Query(userID, filter)
	if err != nil {
		slog.Error("history query failed", "action", "list_history", "user_id", userID.String(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch weather history",
		})
	}

	return c.JSON(dto.HistoryResponse{
		Success: true,
		Data:    records,
		Count:   len(records),
	})
}

func parseHistoryQuery(c *fiber.Ctx) (services.HistoryFilter, []dto.FieldError) {
	var details []dto.FieldError

	filter := services.HistoryFilter{
		City: strings.TrimSpace(c.Query("city")),
	}

	if s := c.Query("startDate"); s != "" {
		ts, err := parseDate(s)
		if err != nil {
			details = append(details, dto.FieldError{Field: "startDate", Message: "must be a date (YYYY-MM-DD) or RFC3339 timestamp"})
		} else {
			filter.From = &ts
		}
	}

	if s := c.Query("endDate"); s != "" {
		ts, err := parseDate(s)
		if err != nil {
			details = append(details, dto.FieldError{Field: "endDate", Message: "must be a date (YYYY-MM-DD) or RFC3339 timestamp"})
		} else {
			filter.To = &ts
		}
	}

	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			details = append(details, dto.FieldError{Field: "limit", Message: "must be an integer"})
		} else {
			filter.Limit = n
		}
	}

	return filter, details
}

func parseDate(s string) (time.Time, error) {
	if ts, err := time.Parse("2006-01-02", s); err == nil {
		return ts, nil
	}
	return time.Parse(time.RFC3339, s)
}

package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/config"
)

var (
	// ErrInvalidCity is returned before any outbound call is made.
	ErrInvalidCity = errors.New("city name must be between 2 and 50 characters")
	// ErrServiceUnavailable is the only error callers see for upstream
	// failures; the underlying cause is logged, never surfaced.
	ErrServiceUnavailable = errors.New("failed to fetch weather data, try again")
)

const (
	minCityLen = 2
	maxCityLen = 50
)

// Gateway mediates calls to the external forecast service. One attempt per
// lookup, no retry and no caching: a failed fetch is terminal for the request
// and an identical city always re-queries upstream for freshness.
type Gateway struct {
	baseURL    string
	httpClient *http.Client
}

func NewGateway(cfg *config.Config) *Gateway {
	return &Gateway{
		baseURL:    cfg.WeatherAPIURL,
		httpClient: &http.Client{Timeout: cfg.WeatherAPITimeout},
	}
}

// ValidateCity reports whether the trimmed city name is an acceptable query.
// Length is measured in runes, matching the request-level validation.
func ValidateCity(city string) error {
	trimmed := strings.TrimSpace(city)
	if n := utf8.RuneCountInString(trimmed); n < minCityLen || n > maxCityLen {
		return ErrInvalidCity
	}
	return nil
}

// Fetch requests a forecast for the given city. Any transport failure,
// non-200 status or undecodable body maps to ErrServiceUnavailable.
func (g *Gateway) Fetch(ctx context.Context, city string) (*ForecastPayload, error) {
	city = strings.TrimSpace(city)
	if err := ValidateCity(city); err != nil {
		return nil, err
	}

	u, err := url.Parse(g.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid weather API URL: %w", err)
	}
	q := u.Query()
	q.Set("city", city)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		slog.Error("weather fetch failed", "city", city, "error", err)
		return nil, ErrServiceUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("weather API returned non-success status", "city", city, "status", resp.StatusCode)
		return nil, ErrServiceUnavailable
	}

	var payload ForecastPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		slog.Error("failed to decode weather response", "city", city, "error", err)
		return nil, ErrServiceUnavailable
	}

	return &payload, nil
}

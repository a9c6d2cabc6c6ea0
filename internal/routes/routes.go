package routes

import (
	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	weatherHandler *handlers.WeatherHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	api.Get("/health", healthHandler.Check)

	// Auth — public
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/google", authHandler.GoogleSignIn)

	// Auth — session required
	api.Get("/auth/session", middleware.SessionProtected(cfg), authHandler.Session)
	api.Post("/auth/logout", middleware.SessionProtected(cfg), authHandler.Logout)

	// Forecast endpoints — session required
	api.Post("/weather", middleware.SessionProtected(cfg), weatherHandler.CreateForecast)
	api.Get("/weather/history", middleware.SessionProtected(cfg), weatherHandler.History)
}

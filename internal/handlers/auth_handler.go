package handlers

import (
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// Authenticator is the slice of the auth service the handler needs.
type Authenticator interface {
	Register(email, password, name string) (*auth.Identity, error)
	Authenticate(email, password string) (*auth.Identity, error)
	GoogleSignIn(idToken string) (*auth.Identity, error)
	IssueSession(id *auth.Identity) (string, error)
}

type AuthHandler struct {
	authService Authenticator
	cfg         *config.Config
}

func NewAuthHandler(authService Authenticator, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Error: true, Message: "Invalid registration details", Details: validationDetails(err),
		})
	}

	identity, err := h.authService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return h.respondWithSession(c, identity, fiber.StatusCreated)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Error: true, Message: "Invalid credentials format", Details: validationDetails(err),
		})
	}

	identity, err := h.authService.Authenticate(req.Email, req.Password)
	if err != nil {
		// Always the same generic outcome regardless of what failed.
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: services.ErrInvalidCredentials.Error(),
		})
	}

	return h.respondWithSession(c, identity, fiber.StatusOK)
}

func (h *AuthHandler) GoogleSignIn(c *fiber.Ctx) error {
	var req dto.GoogleSignInRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Error: true, Message: "Invalid sign-in request", Details: validationDetails(err),
		})
	}

	identity, err := h.authService.GoogleSignIn(req.IDToken)
	if err != nil {
		if errors.Is(err, services.ErrGoogleDisabled) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to verify Google identity token",
		})
	}

	return h.respondWithSession(c, identity, fiber.StatusOK)
}

// Logout clears the session cookie. Tokens are self-contained, so there is
// nothing to revoke server-side; the cookie removal ends the session.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// Session returns the identity carried by the current session token.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	identity, err := auth.IdentityFromContext(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	return c.JSON(dto.UserResponse{
		ID:        identity.ID,
		Email:     identity.Email,
		Name:      identity.Name,
		AvatarURL: identity.AvatarURL,
	})
}

func (h *AuthHandler) respondWithSession(c *fiber.Ctx, identity *auth.Identity, status int) error {
	token, err := h.authService.IssueSession(identity)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cfg.SessionExpiry),
		HTTPOnly: true,
		Secure:   h.cfg.IsProduction(),
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.Status(status).JSON(dto.AuthResponse{
		Token: token,
		User: dto.UserResponse{
			ID:        identity.ID,
			Email:     identity.Email,
			Name:      identity.Name,
			AvatarURL: identity.AvatarURL,
		},
	})
}

package middleware

import (
	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// SessionProtected rejects requests without a valid session token. The token
// is read from the session cookie or a bearer header; absence and invalidity
// produce the same uniform 401.
func SessionProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		TokenLookup: "header:Authorization,cookie:" + auth.SessionCookie,
		AuthScheme:  "Bearer",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized",
			})
		},
	})
}

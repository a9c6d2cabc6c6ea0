package auth

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "session_token"

// Identity is the authenticated user as carried by a session token. Password
// material is never part of it.
type Identity struct {
	ID        uuid.UUID
	Email     string
	Name      *string
	AvatarURL *string
}

// NewClaims builds the claim set embedded in a session token.
func NewClaims(id *Identity, expiry time.Duration) jwt.MapClaims {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   id.ID.String(),
		"email": id.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(expiry).Unix(),
	}
	if id.Name != nil {
		claims["name"] = *id.Name
	}
	if id.AvatarURL != nil {
		claims["picture"] = *id.AvatarURL
	}
	return claims
}

// IdentityFromClaims reconstructs the identity from signature-valid claims.
// Claims are trusted as-is; the credential store is not consulted.
func IdentityFromClaims(claims jwt.MapClaims) (*Identity, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("missing sub claim")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errors.New("malformed sub claim")
	}

	id := &Identity{ID: userID}
	if email, ok := claims["email"].(string); ok {
		id.Email = email
	}
	if name, ok := claims["name"].(string); ok && name != "" {
		id.Name = &name
	}
	if picture, ok := claims["picture"].(string); ok && picture != "" {
		id.AvatarURL = &picture
	}
	return id, nil
}

// IdentityFromContext extracts the identity placed in Fiber locals by the
// session middleware.
func IdentityFromContext(c *fiber.Ctx) (*Identity, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil, errors.New("no token in context")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return IdentityFromClaims(claims)
}

// UserID is a shortcut for handlers that only need the caller's id.
func UserID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := IdentityFromContext(c)
	if err != nil {
		return uuid.Nil, err
	}
	return id.ID, nil
}

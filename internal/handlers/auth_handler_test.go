package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestApp(t *testing.T) (*fiber.App, string, uuid.UUID) {
	t.Helper()

	cfg := &config.Config{JWTSecret: "test-secret", SessionExpiry: time.Hour}
	svc := services.NewAuthService(nil, cfg)
	h := NewAuthHandler(svc, cfg)

	app := fiber.New()
	app.Get("/api/auth/session", middleware.SessionProtected(cfg), h.Session)
	app.Post("/api/auth/logout", middleware.SessionProtected(cfg), h.Logout)

	userID := uuid.New()
	token, err := svc.IssueSession(&auth.Identity{ID: userID, Email: "test@example.com"})
	require.NoError(t, err)

	return app, token, userID
}

// fakeAuthService backs the handler with one known credential pair.
type fakeAuthService struct {
	knownEmail    string
	knownPassword string
	authErr       error
	registerErr   error
}

func (f *fakeAuthService) Register(email, password, name string) (*auth.Identity, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &auth.Identity{ID: uuid.New(), Email: email}, nil
}

func (f *fakeAuthService) Authenticate(email, password string) (*auth.Identity, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	if email != f.knownEmail || password != f.knownPassword {
		return nil, services.ErrInvalidCredentials
	}
	return &auth.Identity{ID: uuid.New(), Email: email}, nil
}

func (f *fakeAuthService) GoogleSignIn(idToken string) (*auth.Identity, error) {
	return nil, services.ErrGoogleDisabled
}

func (f *fakeAuthService) IssueSession(id *auth.Identity) (string, error) {
	return "issued-token", nil
}

func newFakeAuthApp(t *testing.T, svc Authenticator) *fiber.App {
	t.Helper()

	cfg := &config.Config{JWTSecret: "test-secret", SessionExpiry: time.Hour}
	h := NewAuthHandler(svc, cfg)

	app := fiber.New()
	app.Post("/api/auth/register", h.Register)
	app.Post("/api/auth/login", h.Login)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, payload any) (int, string) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	app := newFakeAuthApp(t, &fakeAuthService{
		knownEmail:    "ada@example.com",
		knownPassword: "correct-horse",
	})

	wrongPassStatus, wrongPassBody := postJSON(t, app, "/api/auth/login",
		dto.LoginRequest{Email: "ada@example.com", Password: "not-the-password"})
	unknownStatus, unknownBody := postJSON(t, app, "/api/auth/login",
		dto.LoginRequest{Email: "nobody@example.com", Password: "not-the-password"})

	require.Equal(t, fiber.StatusUnauthorized, wrongPassStatus)
	assert.Equal(t, wrongPassStatus, unknownStatus)
	assert.Equal(t, wrongPassBody, unknownBody,
		"failed sign-ins must not reveal whether the account exists")
	assert.Contains(t, wrongPassBody, services.ErrInvalidCredentials.Error())
}

func TestLoginStoreErrorStaysGeneric(t *testing.T) {
	t.Parallel()

	app := newFakeAuthApp(t, &fakeAuthService{
		authErr: errors.New("pg: connection refused"),
	})

	status, body := postJSON(t, app, "/api/auth/login",
		dto.LoginRequest{Email: "ada@example.com", Password: "correct-horse"})

	require.Equal(t, fiber.StatusUnauthorized, status)
	assert.NotContains(t, body, "connection refused")
	assert.Contains(t, body, services.ErrInvalidCredentials.Error())
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	t.Parallel()

	app := newFakeAuthApp(t, &fakeAuthService{registerErr: services.ErrEmailTaken})

	status, body := postJSON(t, app, "/api/auth/register",
		dto.RegisterRequest{Email: "ada@example.com", Password: "correct-horse", Name: "Ada"})

	require.Equal(t, fiber.StatusConflict, status)
	assert.Contains(t, body, services.ErrEmailTaken.Error())
}

func TestSessionEndpoint(t *testing.T) {
	t.Parallel()

	app, token, userID := newAuthTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body dto.UserResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, userID, body.ID)
	assert.Equal(t, "test@example.com", body.Email)
}

func TestSessionEndpointUnauthorized(t *testing.T) {
	t.Parallel()

	app, _, _ := newAuthTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutClearsSessionCookie(t *testing.T) {
	t.Parallel()

	app, token, _ := newAuthTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var cleared bool
	for _, c := range resp.Cookies() {
		if c.Name == auth.SessionCookie {
			cleared = c.Value == "" && c.Expires.Before(time.Now())
		}
	}
	assert.True(t, cleared, "logout must expire the session cookie")
}

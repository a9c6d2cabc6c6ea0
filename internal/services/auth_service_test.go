package services

import (
	"errors"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/config"
	"github.com/google/uuid"
)

func sessionService(secret string, expiry time.Duration) *AuthService {
	return NewAuthService(nil, &config.Config{
		JWTSecret:     secret,
		SessionExpiry: expiry,
	})
}

func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()

	svc := sessionService("test-secret", time.Hour)
	name := "Ada"
	id := &auth.Identity{ID: uuid.New(), Email: "ada@example.com", Name: &name}

	token, err := svc.IssueSession(id)
	if err != nil {
		t.Fatalf("IssueSession error: %v", err)
	}

	got, err := svc.ValidateSession(token)
	if err != nil {
		t.Fatalf("ValidateSession error: %v", err)
	}
	if got.ID != id.ID {
		t.Errorf("ID = %v, want %v", got.ID, id.ID)
	}
	if got.Email != id.Email {
		t.Errorf("Email = %q, want %q", got.Email, id.Email)
	}
	if got.Name == nil || *got.Name != name {
		t.Errorf("Name = %v, want %q", got.Name, name)
	}
}

func TestValidateSessionExpired(t *testing.T) {
	t.Parallel()

	svc := sessionService("test-secret", -time.Minute)
	token, err := svc.IssueSession(&auth.Identity{ID: uuid.New(), Email: "x@example.com"})
	if err != nil {
		t.Fatalf("IssueSession error: %v", err)
	}

	if _, err := svc.ValidateSession(token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("error = %v, want ErrInvalidSession", err)
	}
}

func TestValidateSessionWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := sessionService("right-secret", time.Hour).
		IssueSession(&auth.Identity{ID: uuid.New(), Email: "x@example.com"})
	if err != nil {
		t.Fatalf("IssueSession error: %v", err)
	}

	if _, err := sessionService("wrong-secret", time.Hour).ValidateSession(token); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("error = %v, want ErrInvalidSession", err)
	}
}

func TestValidateSessionMalformed(t *testing.T) {
	t.Parallel()

	svc := sessionService("s", time.Hour)
	if _, err := svc.ValidateSession("not.a.token"); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("error = %v, want ErrInvalidSession", err)
	}
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	got, err := normalizeEmail("  Ada@Example.COM ")
	if err != nil {
		t.Fatalf("normalizeEmail error: %v", err)
	}
	if got != "ada@example.com" {
		t.Errorf("normalizeEmail = %q, want ada@example.com", got)
	}

	for _, bad := range []string{"", "nope", "a@", "@b.c", "two words@x.y"} {
		if _, err := normalizeEmail(bad); err == nil {
			t.Errorf("normalizeEmail(%q) = nil error, want failure", bad)
		}
	}
}

func TestGoogleSignInDisabled(t *testing.T) {
	t.Parallel()

	svc := sessionService("s", time.Hour)
	if _, err := svc.GoogleSignIn("some-token"); !errors.Is(err, ErrGoogleDisabled) {
		t.Fatalf("error = %v, want ErrGoogleDisabled", err)
	}
}

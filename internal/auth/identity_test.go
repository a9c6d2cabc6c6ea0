package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestClaimsRoundTrip(t *testing.T) {
	t.Parallel()

	name := "Ada"
	avatar := "https://example.com/a.png"
	id := &Identity{
		ID:        uuid.New(),
		Email:     "ada@example.com",
		Name:      &name,
		AvatarURL: &avatar,
	}

	claims := NewClaims(id, time.Hour)
	got, err := IdentityFromClaims(claims)
	if err != nil {
		t.Fatalf("IdentityFromClaims error: %v", err)
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
	if got.AvatarURL == nil || *got.AvatarURL != avatar {
		t.Errorf("AvatarURL = %v, want %q", got.AvatarURL, avatar)
	}
}

func TestClaimsOptionalFieldsOmitted(t *testing.T) {
	t.Parallel()

	id := &Identity{ID: uuid.New(), Email: "anon@example.com"}
	claims := NewClaims(id, time.Hour)

	if _, ok := claims["name"]; ok {
		t.Error("name claim present for identity without a name")
	}
	if _, ok := claims["picture"]; ok {
		t.Error("picture claim present for identity without an avatar")
	}

	got, err := IdentityFromClaims(claims)
	if err != nil {
		t.Fatalf("IdentityFromClaims error: %v", err)
	}
	if got.Name != nil || got.AvatarURL != nil {
		t.Error("optional fields should stay nil")
	}
}

func TestIdentityFromClaimsMissingSub(t *testing.T) {
	t.Parallel()

	if _, err := IdentityFromClaims(jwt.MapClaims{"email": "x@y.z"}); err == nil {
		t.Fatal("expected error for missing sub claim")
	}
	if _, err := IdentityFromClaims(jwt.MapClaims{"sub": "not-a-uuid"}); err == nil {
		t.Fatal("expected error for malformed sub claim")
	}
}

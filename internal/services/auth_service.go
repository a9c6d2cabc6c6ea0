package services

import (
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/weatherlog-backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers not-found, no-password-set and mismatch
	// alike so a caller cannot tell which part failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrGoogleDisabled     = errors.New("google sign-in is not configured")
)

type AuthService struct {
	db     *gorm.DB
	cfg    *config.Config
	google *GoogleIDVerifier
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:     db,
		cfg:    cfg,
		google: NewGoogleIDVerifier(),
	}
}

func (s *AuthService) Register(email, password, name string) (*auth.Identity, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	hashStr := string(hash)
	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		Password:     &hashStr,
		AuthProvider: "credentials",
	}
	if name = strings.TrimSpace(name); name != "" {
		user.Name = &name
	}

	if err := s.db.Create(&user).Error; err != nil {
		// The pre-check above races with concurrent registrations; the unique
		// index on email is the authority.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID.String(), "action", "register")
	return identityOf(&user), nil
}

// Authenticate verifies credentials against the store. Every failure mode is
// logged with its real cause but collapses to ErrInvalidCredentials for the
// caller. No retries: a failed check is final for the request.
func (s *AuthService) Authenticate(email, password string) (*auth.Identity, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		slog.Info("authentication rejected", "action", "login", "reason", "malformed email")
		return nil, ErrInvalidCredentials
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		slog.Info("authentication failed", "action", "login", "reason", "unknown email")
		return nil, ErrInvalidCredentials
	}

	if user.Password == nil {
		slog.Info("authentication failed", "action", "login", "reason", "oauth-only account", "user_id", user.ID.String())
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(password)); err != nil {
		slog.Info("authentication failed", "action", "login", "reason", "password mismatch", "user_id", user.ID.String())
		return nil, ErrInvalidCredentials
	}

	slog.Info("authentication succeeded", "action", "login", "user_id", user.ID.String())
	return identityOf(&user), nil
}

// IssueSession signs a self-contained session token for the identity. The
// token is the only session state; nothing is stored server-side.
func (s *AuthService) IssueSession(id *auth.Identity) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.NewClaims(id, s.cfg.SessionExpiry))
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateSession checks signature and expiry only. Identity claims are
// trusted once the signature verifies; the credential store is not hit.
func (s *AuthService) ValidateSession(tokenStr string) (*auth.Identity, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidSession
	}

	id, err := auth.IdentityFromClaims(claims)
	if err != nil {
		return nil, ErrInvalidSession
	}
	return id, nil
}

// GoogleSignIn verifies a Google ID token, finds or creates the matching user
// and links the provider account.
func (s *AuthService) GoogleSignIn(idToken string) (*auth.Identity, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, ErrGoogleDisabled
	}

	claims, err := s.google.Verify(idToken, s.cfg.GoogleClientID)
	if err != nil {
		slog.Error("google token verification failed", "action", "google_signin", "error", err)
		return nil, fmt.Errorf("failed to verify Google identity token: %w", err)
	}

	email, err := normalizeEmail(claims.Email)
	if err != nil {
		return nil, fmt.Errorf("google token carries no usable email")
	}

	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		user = models.User{
			ID:           uuid.New(),
			Email:        email,
			AuthProvider: "google",
		}
		if claims.Name != "" {
			name := claims.Name
			user.Name = &name
		}
		if claims.Picture != "" {
			picture := claims.Picture
			user.AvatarURL = &picture
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create google user: %w", err)
		}
		slog.Info("user created via google", "user_id", user.ID.String(), "action", "google_signin")
	}

	account := models.OAuthAccount{
		ID:                uuid.New(),
		UserID:            user.ID,
		Provider:          "google",
		ProviderAccountID: claims.Sub,
	}
	var existing models.OAuthAccount
	if err := s.db.Where("provider = ? AND provider_account_id = ?", account.Provider, account.ProviderAccountID).
		First(&existing).Error; err != nil {
		if err := s.db.Create(&account).Error; err != nil {
			return nil, fmt.Errorf("failed to link google account: %w", err)
		}
	}

	slog.Info("authentication succeeded", "action", "google_signin", "user_id", user.ID.String())
	return identityOf(&user), nil
}

func identityOf(u *models.User) *auth.Identity {
	return &auth.Identity{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
	}
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return "", errors.New("malformed email address")
	}
	return email, nil
}

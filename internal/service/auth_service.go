package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hospital-booking/internal/auth"
	"github.com/spec-kit/hospital-booking/internal/config"
	"github.com/spec-kit/hospital-booking/internal/domain"
	"github.com/spec-kit/hospital-booking/internal/repository"
	apperrors "github.com/spec-kit/hospital-booking/pkg/util/errorutil"
)

// Session describes an issued session token.
type Session struct {
	Token     string
	SessionID string
	ExpiresAt time.Time
}

// SessionManager opens and revokes server-side sessions. Satisfied by
// auth.SessionStore.
type SessionManager interface {
	Open(ctx context.Context, accountID int64, remember bool) (string, time.Duration, error)
	Revoke(ctx context.Context, sessionID string) error
}

// AuthService coordinates registration, login and profile flows.
type AuthService struct {
	accounts   repository.AccountRepository
	tokenMgr   *auth.TokenManager
	sessions   SessionManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, accounts repository.AccountRepository, sessions SessionManager) *AuthService {
	return &AuthService{
		accounts:   accounts,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret),
		sessions:   sessions,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterInput describes the registration payload.
type RegisterInput struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

// Register creates a new patient account. The email must not already be
// registered; the password must be confirmed and at least six characters.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.Account, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if name == "" || email == "" || input.Password == "" || input.ConfirmPassword == "" {
		return nil, apperrors.NewValidationError("name, email, password and confirmation required", nil)
	}
	if input.Password != input.ConfirmPassword {
		return nil, apperrors.NewValidationError("passwords do not match", nil)
	}
	if len(input.Password) < auth.MinPasswordLength {
		return nil, apperrors.NewValidationError("password must be at least 6 characters long", nil)
	}

	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewDuplicateEmail(email)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	account := &domain.Account{
		Name:         name,
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: hash,
		IsAdmin:      false,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, apperrors.MapError(err)
	}
	return account, nil
}

// Login authenticates an account and opens a session. remember extends the
// session lifetime. The same failure is reported whether the email is
// unknown or the password wrong.
func (s *AuthService) Login(ctx context.Context, email, password string, remember bool) (*domain.Account, *Session, error) {
	account, err := s.accounts.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewInvalidCredentials()
		}
		return nil, nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, nil, apperrors.NewInvalidCredentials()
	}

	sessionID, ttl, err := s.sessions.Open(ctx, account.ID, remember)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	token, expiresAt, err := s.tokenMgr.GenerateToken(account.ID, account.IsAdmin, sessionID, ttl)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	return account, &Session{Token: token, SessionID: sessionID, ExpiresAt: expiresAt}, nil
}

// Logout revokes the session, invalidating its token.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// ProfileUpdateInput describes an own-profile update. NewPassword, when
// present, replaces the stored credential.
type ProfileUpdateInput struct {
	Name        string
	Phone       string
	NewPassword *string
}

// UpdateProfile updates the caller's own name, phone and optionally password.
func (s *AuthService) UpdateProfile(ctx context.Context, accountID int64, input ProfileUpdateInput) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("account", nil)
		}
		return nil, apperrors.MapError(err)
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		account.Name = name
	}
	account.Phone = strings.TrimSpace(input.Phone)

	if input.NewPassword != nil {
		if len(*input.NewPassword) < auth.MinPasswordLength {
			return nil, apperrors.NewValidationError("password must be at least 6 characters long", nil)
		}
		hash, err := auth.HashPassword(*input.NewPassword, s.bcryptCost)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		account.PasswordHash = hash
	}

	if err := s.accounts.Update(ctx, account); err != nil {
		return nil, apperrors.MapError(err)
	}
	return account, nil
}

// ListPatients returns all non-admin accounts for the admin user view.
func (s *AuthService) ListPatients(ctx context.Context) ([]domain.Account, error) {
	patients, err := s.accounts.ListPatients(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return patients, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

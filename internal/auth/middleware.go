package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hospital-booking/internal/domain"
	"github.com/spec-kit/hospital-booking/internal/repository"
	apperrors "github.com/spec-kit/hospital-booking/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "session"

// Principal represents the authenticated caller for one request. It is
// stored in fiber locals, never in ambient state.
type Principal struct {
	Account   *domain.Account
	SessionID string
}

// AuthMiddleware validates session tokens and loads principals.
type AuthMiddleware struct {
	tokens   *TokenManager
	sessions *SessionStore
	accounts repository.AccountRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, sessions *SessionStore, accounts repository.AccountRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, sessions: sessions, accounts: accounts}
}

// Handle enforces authentication for protected routes. The token is read
// from the session cookie or, for API clients, a bearer header.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	tokenStr := c.Cookies(SessionCookieName)
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			tokenStr = parts[1]
		}
	}
	if tokenStr == "" {
		return apperrors.NewUnauthorized("authentication required")
	}

	claims, err := m.tokens.ParseToken(tokenStr)
	if err != nil {
		return apperrors.NewUnauthorized("invalid session token")
	}
	if err := m.sessions.Check(c.Context(), claims.SessionID); err != nil {
		if errors.Is(err, ErrSessionRevoked) {
			return apperrors.NewUnauthorized("session expired")
		}
		return apperrors.MapError(err)
	}

	account, err := m.accounts.GetByID(c.Context(), claims.AccountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewUnauthorized("account not found")
		}
		return apperrors.MapError(err)
	}

	c.Locals(principalKey, &Principal{Account: account, SessionID: claims.SessionID})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

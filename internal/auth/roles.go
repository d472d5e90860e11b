package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/hospital-booking/pkg/util/errorutil"
)

// RequireAccount ensures an authenticated account is present.
func RequireAccount() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireAdmin ensures the authenticated account carries the admin flag.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.Account == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.Account.IsAdmin {
			return apperrors.NewForbidden("admin privileges required")
		}
		return c.Next()
	}
}

package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hospital-booking/internal/api/dto"
	"github.com/spec-kit/hospital-booking/internal/auth"
	"github.com/spec-kit/hospital-booking/internal/domain"
	"github.com/spec-kit/hospital-booking/internal/service"
	apperrors "github.com/spec-kit/hospital-booking/pkg/util/errorutil"
)

// AccountsHandler exposes registration, login and profile endpoints.
type AccountsHandler struct {
	auth         *service.AuthService
	appointments *service.AppointmentService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(authService *service.AuthService, appointmentService *service.AppointmentService) *AccountsHandler {
	return &AccountsHandler{auth: authService, appointments: appointmentService}
}

// Register handles POST /auth/register.
func (h *AccountsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	account, err := h.auth.Register(c.Context(), service.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": accountResponse(account)})
}

// Login handles POST /auth/login.
func (h *AccountsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	account, session, err := h.auth.Login(c.Context(), req.Email, req.Password, req.Remember)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookieName,
		Value:    session.Token,
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"account": accountResponse(account),
			"auth":    dto.AuthResponse{Token: session.Token, ExpiresAt: session.ExpiresAt},
		},
	})
}

// Logout handles POST /auth/logout.
func (h *AccountsHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.auth.Logout(c.Context(), principal.SessionID); err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
	return c.JSON(fiber.Map{"data": fiber.Map{"logged_out": true}})
}

// Dashboard handles GET /dashboard. Admin accounts are pointed at the admin
// dashboard instead of a patient appointment list.
func (h *AccountsHandler) Dashboard(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if principal.Account.IsAdmin {
		return c.Status(http.StatusTemporaryRedirect).JSON(fiber.Map{
			"data": fiber.Map{"redirect": "/admin/dashboard"},
		})
	}

	appointments, err := h.appointments.ListForAccount(c.Context(), principal.Account.ID, nil)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"account":      accountResponse(principal.Account),
		"appointments": appointmentResponses(appointments),
	}})
}

// UpdateProfile handles PUT /profile.
func (h *AccountsHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	account, err := h.auth.UpdateProfile(c.Context(), principal.Account.ID, service.ProfileUpdateInput{
		Name:        req.Name,
		Phone:       req.Phone,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": accountResponse(account)})
}

func accountResponse(account *domain.Account) dto.AccountResponse {
	return dto.AccountResponse{
		ID:        account.ID,
		Name:      account.Name,
		Email:     account.Email,
		Phone:     account.Phone,
		IsAdmin:   account.IsAdmin,
		CreatedAt: account.CreatedAt,
	}
}

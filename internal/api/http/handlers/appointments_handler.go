package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hospital-booking/internal/api/dto"
	"github.com/spec-kit/hospital-booking/internal/auth"
	"github.com/spec-kit/hospital-booking/internal/domain"
	"github.com/spec-kit/hospital-booking/internal/service"
	apperrors "github.com/spec-kit/hospital-booking/pkg/util/errorutil"
)

// AppointmentsHandler manages patient appointment endpoints.
type AppointmentsHandler struct {
	service *service.AppointmentService
}

// NewAppointmentsHandler constructs handler.
func NewAppointmentsHandler(appointmentService *service.AppointmentService) *AppointmentsHandler {
	return &AppointmentsHandler{service: appointmentService}
}

// Book handles POST /doctors/:id/appointments.
func (h *AppointmentsHandler) Book(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	practitionerID, err := c.ParamsInt("id")
	if err != nil || practitionerID <= 0 {
		return apperrors.NewNotFound("practitioner", nil)
	}
	var req dto.BookAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	appointment, err := h.service.Book(c.Context(), principal.Account.ID, int64(practitionerID), service.BookInput{
		Date:     req.Date,
		TimeSlot: req.Time,
		Reason:   req.Reason,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": appointmentResponse(appointment)})
}

// List handles GET /appointments for the calling account.
func (h *AppointmentsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	appointments, err := h.service.ListForAccount(c.Context(), principal.Account.ID, parseStatusQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": appointmentResponses(appointments)})
}

// Get handles GET /appointments/:id, ownership checked.
func (h *AppointmentsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apperrors.NewNotFound("appointment", nil)
	}
	appointment, err := h.service.GetForAccount(c.Context(), principal.Account.ID, int64(id))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": appointmentResponse(appointment)})
}

// Cancel handles POST /appointments/:id/cancel.
func (h *AppointmentsHandler) Cancel(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Account == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apperrors.NewNotFound("appointment", nil)
	}
	appointment, err := h.service.Cancel(c.Context(), int64(id), principal.Account.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": appointmentResponse(appointment)})
}

func parseStatusQuery(c *fiber.Ctx) []domain.AppointmentStatus {
	statusStr := c.Query("status")
	if statusStr == "" {
		return nil
	}
	var statuses []domain.AppointmentStatus
	for _, part := range strings.Split(statusStr, ",") {
		statuses = append(statuses, domain.AppointmentStatus(strings.TrimSpace(part)))
	}
	return statuses
}

func appointmentResponse(appointment *domain.Appointment) dto.AppointmentResponse {
	return dto.AppointmentResponse{
		ID:             appointment.ID,
		AccountID:      appointment.AccountID,
		PractitionerID: appointment.PractitionerID,
		Date:           appointment.Date,
		Time:           appointment.TimeSlot,
		Reason:         appointment.Reason,
		Status:         appointment.Status,
		Notes:          appointment.Notes,
		CreatedAt:      appointment.CreatedAt,
	}
}

func appointmentResponses(appointments []domain.Appointment) []dto.AppointmentResponse {
	items := make([]dto.AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		items = append(items, appointmentResponse(&appointments[i]))
	}
	return items
}

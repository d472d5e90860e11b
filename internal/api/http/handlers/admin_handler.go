package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hospital-booking/internal/api/dto"
	"github.com/spec-kit/hospital-booking/internal/auth"
	"github.com/spec-kit/hospital-booking/internal/service"
	apperrors "github.com/spec-kit/hospital-booking/pkg/util/errorutil"
)

// AdminHandler manages practitioners, appointments and accounts. Routes are
// registered behind RequireAdmin.
type AdminHandler struct {
	practitioners *service.PractitionerService
	appointments  *service.AppointmentService
	auth          *service.AuthService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(practitionerService *service.PractitionerService, appointmentService *service.AppointmentService, authService *service.AuthService) *AdminHandler {
	return &AdminHandler{
		practitioners: practitionerService,
		appointments:  appointmentService,
		auth:          authService,
	}
}

// Dashboard handles GET /admin/dashboard.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.appointments.Stats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.DashboardStatsResponse{
		TotalPatients:       stats.TotalPatients,
		TotalPractitioners:  stats.TotalPractitioners,
		TotalAppointments:   stats.TotalAppointments,
		PendingAppointments: stats.PendingAppointments,
		RecentAppointments:  appointmentResponses(stats.RecentAppointments),
	}})
}

// ListDoctors handles GET /admin/doctors.
func (h *AdminHandler) ListDoctors(c *fiber.Ctx) error {
	practitioners, err := h.practitioners.List(c.Context(), c.Query("search"), c.Query("specialty"))
	if err != nil {
		return err
	}
	items := make([]dto.PractitionerResponse, 0, len(practitioners))
	for i := range practitioners {
		items = append(items, practitionerResponse(&practitioners[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateDoctor handles POST /admin/doctors.
func (h *AdminHandler) CreateDoctor(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	var req dto.PractitionerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	practitioner, err := h.practitioners.Create(c.Context(), principal.Account.ID, practitionerInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": practitionerResponse(practitioner)})
}

// UpdateDoctor handles PUT /admin/doctors/:id.
func (h *AdminHandler) UpdateDoctor(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apperrors.NewNotFound("practitioner", nil)
	}
	var req dto.PractitionerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	practitioner, err := h.practitioners.Update(c.Context(), int64(id), practitionerInput(req))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": practitionerResponse(practitioner)})
}

// DeleteDoctor handles DELETE /admin/doctors/:id. Deletion is blocked while
// the practitioner has any appointment history.
func (h *AdminHandler) DeleteDoctor(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apperrors.NewNotFound("practitioner", nil)
	}
	if err := h.practitioners.Delete(c.Context(), int64(id)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// ListAppointments handles GET /admin/appointments.
func (h *AdminHandler) ListAppointments(c *fiber.Ctx) error {
	appointments, err := h.appointments.ListAll(c.Context(), parseStatusQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": appointmentResponses(appointments)})
}

// UpdateAppointment handles PATCH /admin/appointments/:id.
func (h *AdminHandler) UpdateAppointment(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apperrors.NewNotFound("appointment", nil)
	}
	var req dto.AdminUpdateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	appointment, err := h.appointments.AdminUpdate(c.Context(), principal.Account.ID, int64(id), service.AdminUpdateInput{
		Status: req.Status,
		Notes:  req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": appointmentResponse(appointment)})
}

// ListUsers handles GET /admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	patients, err := h.auth.ListPatients(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.AccountResponse, 0, len(patients))
	for i := range patients {
		items = append(items, accountResponse(&patients[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func practitionerInput(req dto.PractitionerRequest) service.PractitionerInput {
	return service.PractitionerInput{
		Name:            req.Name,
		Specialty:       req.Specialty,
		Email:           req.Email,
		Phone:           req.Phone,
		Qualification:   req.Qualification,
		ExperienceYears: req.ExperienceYears,
		AvailableDays:   req.AvailableDays,
		AvailableTime:   req.AvailableTime,
	}
}

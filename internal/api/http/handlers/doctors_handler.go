package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hospital-booking/internal/api/dto"
	"github.com/spec-kit/hospital-booking/internal/domain"
	"github.com/spec-kit/hospital-booking/internal/service"
	apperrors "github.com/spec-kit/hospital-booking/pkg/util/errorutil"
)

// DoctorsHandler exposes the public practitioner browsing endpoints.
type DoctorsHandler struct {
	practitioners *service.PractitionerService
}

// NewDoctorsHandler constructs handler.
func NewDoctorsHandler(practitionerService *service.PractitionerService) *DoctorsHandler {
	return &DoctorsHandler{practitioners: practitionerService}
}

// List handles GET /doctors with optional search and specialty filters.
func (h *DoctorsHandler) List(c *fiber.Ctx) error {
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

// Get handles GET /doctors/:id.
func (h *DoctorsHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return apperrors.NewNotFound("practitioner", nil)
	}
	practitioner, err := h.practitioners.Get(c.Context(), int64(id))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": practitionerResponse(practitioner)})
}

// Specialties handles GET /specialties.
func (h *DoctorsHandler) Specialties(c *fiber.Ctx) error {
	specialties, err := h.practitioners.Specialties(c.Context())
	if err != nil {
		return err
	}
	if specialties == nil {
		specialties = []string{}
	}
	return c.JSON(fiber.Map{"data": specialties})
}

func practitionerResponse(practitioner *domain.Practitioner) dto.PractitionerResponse {
	return dto.PractitionerResponse{
		ID:              practitioner.ID,
		Name:            practitioner.Name,
		Specialty:       practitioner.Specialty,
		Email:           practitioner.Email,
		Phone:           practitioner.Phone,
		Qualification:   practitioner.Qualification,
		ExperienceYears: practitioner.ExperienceYears,
		AvailableDays:   practitioner.AvailableDays,
		AvailableTime:   practitioner.AvailableTime,
		CreatedAt:       practitioner.CreatedAt,
	}
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hospital-booking/internal/domain"
	"github.com/spec-kit/hospital-booking/internal/events"
	"github.com/spec-kit/hospital-booking/internal/repository"
	apperrors "github.com/spec-kit/hospital-booking/pkg/util/errorutil"
)

// PractitionerService coordinates practitioner browsing and administration.
type PractitionerService struct {
	practitioners repository.PractitionerRepository
	dispatcher    events.Dispatcher
}

// NewPractitionerService constructs the service.
func NewPractitionerService(practitioners repository.PractitionerRepository, dispatcher events.Dispatcher) *PractitionerService {
	return &PractitionerService{practitioners: practitioners, dispatcher: dispatcher}
}

// PractitionerInput describes admin create/update payloads.
type PractitionerInput struct {
	Name            string
	Specialty       string
	Email           string
	Phone           string
	Qualification   string
	ExperienceYears int
	AvailableDays   []string
	AvailableTime   string
}

// List returns practitioners matching the public filter.
func (s *PractitionerService) List(ctx context.Context, search, specialty string) ([]domain.Practitioner, error) {
	filter := repository.PractitionerFilter{}
	if search != "" {
		filter.Search = &search
	}
	if specialty != "" {
		filter.Specialty = &specialty
	}
	result, err := s.practitioners.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// Get returns one practitioner or a not-found failure.
func (s *PractitionerService) Get(ctx context.Context, id int64) (*domain.Practitioner, error) {
	practitioner, err := s.practitioners.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("practitioner", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return practitioner, nil
}

// Specialties returns the distinct specialty values for filter dropdowns.
func (s *PractitionerService) Specialties(ctx context.Context) ([]string, error) {
	specialties, err := s.practitioners.ListSpecialties(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return specialties, nil
}

// Create adds a practitioner profile. Admin only, enforced at the route.
func (s *PractitionerService) Create(ctx context.Context, actorID int64, input PractitionerInput) (*domain.Practitioner, error) {
	if err := validatePractitionerInput(&input); err != nil {
		return nil, err
	}

	if _, err := s.practitioners.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewDuplicateEmail(input.Email)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	practitioner := &domain.Practitioner{
		Name:            input.Name,
		Specialty:       input.Specialty,
		Email:           input.Email,
		Phone:           input.Phone,
		Qualification:   input.Qualification,
		ExperienceYears: input.ExperienceYears,
		AvailableDays:   input.AvailableDays,
		AvailableTime:   input.AvailableTime,
	}
	if err := s.practitioners.Create(ctx, practitioner); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:  events.EventPractitionerCreated,
		Actor: events.Actor{AccountID: actorID, IsAdmin: true},
		Payload: events.PractitionerCreatedPayload{
			PractitionerID: practitioner.ID,
			Name:           practitioner.Name,
			Specialty:      practitioner.Specialty,
		},
	})
	return practitioner, nil
}

// Update replaces a practitioner profile.
func (s *PractitionerService) Update(ctx context.Context, id int64, input PractitionerInput) (*domain.Practitioner, error) {
	if err := validatePractitionerInput(&input); err != nil {
		return nil, err
	}

	practitioner, err := s.practitioners.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("practitioner", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	if input.Email != practitioner.Email {
		if _, err := s.practitioners.GetByEmail(ctx, input.Email); err == nil {
			return nil, apperrors.NewDuplicateEmail(input.Email)
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
	}

	practitioner.Name = input.Name
	practitioner.Specialty = input.Specialty
	practitioner.Email = input.Email
	practitioner.Phone = input.Phone
	practitioner.Qualification = input.Qualification
	practitioner.ExperienceYears = input.ExperienceYears
	practitioner.AvailableDays = input.AvailableDays
	practitioner.AvailableTime = input.AvailableTime

	if err := s.practitioners.Update(ctx, practitioner); err != nil {
		return nil, apperrors.MapError(err)
	}
	return practitioner, nil
}

// Delete removes a practitioner. It fails while any appointment, of any
// status, still references the profile.
func (s *PractitionerService) Delete(ctx context.Context, id int64) error {
	if err := s.practitioners.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrHasDependentAppointments) {
			return apperrors.NewHasDependentAppointments(id)
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("practitioner", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func validatePractitionerInput(input *PractitionerInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Specialty = strings.TrimSpace(input.Specialty)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Phone = strings.TrimSpace(input.Phone)

	if input.Name == "" || input.Specialty == "" || input.Email == "" {
		return apperrors.NewValidationError("name, specialty and email required", nil)
	}
	if input.ExperienceYears < 0 {
		return apperrors.NewValidationError("experience years cannot be negative", nil)
	}
	for _, day := range input.AvailableDays {
		if !domain.IsWeekdayToken(day) {
			return apperrors.NewValidationError("invalid availability day", map[string]any{"day": day})
		}
	}
	return nil
}

func (s *PractitionerService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

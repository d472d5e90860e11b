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

// AppointmentService enforces the appointment lifecycle: pending at booking,
// owner-only cancellation, unrestricted admin status updates.
type AppointmentService struct {
	appointments  repository.AppointmentRepository
	practitioners repository.PractitionerRepository
	accounts      repository.AccountRepository
	dispatcher    events.Dispatcher
}

// AppointmentDependencies bundles repositories for the service.
type AppointmentDependencies struct {
	AppointmentRepo  repository.AppointmentRepository
	PractitionerRepo repository.PractitionerRepository
	AccountRepo      repository.AccountRepository
	Dispatcher       events.Dispatcher
}

// NewAppointmentService constructs the service.
func NewAppointmentService(deps AppointmentDependencies) *AppointmentService {
	return &AppointmentService{
		appointments:  deps.AppointmentRepo,
		practitioners: deps.PractitionerRepo,
		accounts:      deps.AccountRepo,
		dispatcher:    deps.Dispatcher,
	}
}

// BookInput describes a booking request.
type BookInput struct {
	Date     string
	TimeSlot string
	Reason   string
}

// AdminUpdateInput carries the optional status and notes changes. A nil
// field leaves the current value untouched; a present Notes value replaces
// the prior notes unconditionally.
type AdminUpdateInput struct {
	Status *domain.AppointmentStatus
	Notes  *string
}

// DashboardStats summarizes the system for the admin dashboard.
type DashboardStats struct {
	TotalPatients       int64
	TotalPractitioners  int64
	TotalAppointments   int64
	PendingAppointments int64
	RecentAppointments  []domain.Appointment
}

// Book creates a Pending appointment for the account with the chosen
// practitioner. Overlapping bookings for the same slot are not rejected.
func (s *AppointmentService) Book(ctx context.Context, accountID, practitionerID int64, input BookInput) (*domain.Appointment, error) {
	practitioner, err := s.practitioners.GetByID(ctx, practitionerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("practitioner", map[string]any{"id": practitionerID})
		}
		return nil, apperrors.MapError(err)
	}

	date := strings.TrimSpace(input.Date)
	timeSlot := strings.TrimSpace(input.TimeSlot)
	reason := strings.TrimSpace(input.Reason)
	if date == "" || timeSlot == "" || reason == "" {
		return nil, apperrors.NewValidationError("date, time and reason required", nil)
	}

	appointment := &domain.Appointment{
		AccountID:      accountID,
		PractitionerID: practitioner.ID,
		Date:           date,
		TimeSlot:       timeSlot,
		Reason:         reason,
		Status:         domain.AppointmentStatusPending,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:  events.EventAppointmentBooked,
		Actor: events.Actor{AccountID: accountID},
		Payload: events.AppointmentBookedPayload{
			AppointmentID:  appointment.ID,
			PractitionerID: appointment.PractitionerID,
			Date:           appointment.Date,
			TimeSlot:       appointment.TimeSlot,
		},
	})
	return appointment, nil
}

// Cancel sets the appointment to Cancelled. Only the owning account may
// cancel, and a Completed appointment stays Completed.
func (s *AppointmentService) Cancel(ctx context.Context, appointmentID, requestingAccountID int64) (*domain.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("appointment", map[string]any{"id": appointmentID})
		}
		return nil, apperrors.MapError(err)
	}
	if appointment.AccountID != requestingAccountID {
		return nil, apperrors.NewForbidden("appointment belongs to another account")
	}
	if appointment.Status == domain.AppointmentStatusCompleted {
		return nil, apperrors.NewInvalidTransition("cannot cancel a completed appointment")
	}

	oldStatus := appointment.Status
	appointment.Status = domain.AppointmentStatusCancelled
	if err := s.appointments.Update(ctx, appointment); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:  events.EventAppointmentStatusChanged,
		Actor: events.Actor{AccountID: requestingAccountID},
		Payload: events.AppointmentStatusChangedPayload{
			AppointmentID: appointment.ID,
			OldStatus:     oldStatus,
			NewStatus:     appointment.Status,
		},
	})
	return appointment, nil
}

// AdminUpdate applies an administrator's status and/or notes change. Any
// status value may follow any other; there is no transition graph for
// admins.
func (s *AppointmentService) AdminUpdate(ctx context.Context, actorID, appointmentID int64, input AdminUpdateInput) (*domain.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("appointment", map[string]any{"id": appointmentID})
		}
		return nil, apperrors.MapError(err)
	}

	oldStatus := appointment.Status
	if input.Status != nil {
		if !domain.ValidAppointmentStatus(*input.Status) {
			return nil, apperrors.NewValidationError("invalid appointment status", map[string]any{"status": *input.Status})
		}
		appointment.Status = *input.Status
	}
	if input.Notes != nil {
		appointment.Notes = *input.Notes
	}

	if err := s.appointments.Update(ctx, appointment); err != nil {
		return nil, apperrors.MapError(err)
	}
	if appointment.Status != oldStatus {
		s.publishEvent(ctx, events.Event{
			Type:  events.EventAppointmentStatusChanged,
			Actor: events.Actor{AccountID: actorID, IsAdmin: true},
			Payload: events.AppointmentStatusChangedPayload{
				AppointmentID: appointment.ID,
				OldStatus:     oldStatus,
				NewStatus:     appointment.Status,
				Notes:         appointment.Notes,
			},
		})
	}
	return appointment, nil
}

// ListForAccount returns the account's own appointments, newest first.
func (s *AppointmentService) ListForAccount(ctx context.Context, accountID int64, statuses []domain.AppointmentStatus) ([]domain.Appointment, error) {
	result, err := s.appointments.List(ctx, repository.AppointmentFilter{
		AccountID: &accountID,
		Statuses:  statuses,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// GetForAccount fetches one appointment, ensuring ownership.
func (s *AppointmentService) GetForAccount(ctx context.Context, accountID, appointmentID int64) (*domain.Appointment, error) {
	appointment, err := s.appointments.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("appointment", map[string]any{"id": appointmentID})
		}
		return nil, apperrors.MapError(err)
	}
	if appointment.AccountID != accountID {
		return nil, apperrors.NewForbidden("appointment belongs to another account")
	}
	return appointment, nil
}

// ListAll returns appointments across all accounts for administrators.
func (s *AppointmentService) ListAll(ctx context.Context, statuses []domain.AppointmentStatus) ([]domain.Appointment, error) {
	result, err := s.appointments.List(ctx, repository.AppointmentFilter{Statuses: statuses})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}

// Stats assembles the admin dashboard summary.
func (s *AppointmentService) Stats(ctx context.Context) (*DashboardStats, error) {
	patients, err := s.accounts.CountPatients(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	practitioners, err := s.practitioners.Count(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	total, err := s.appointments.Count(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	pending, err := s.appointments.CountByStatus(ctx, domain.AppointmentStatusPending)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	recent, err := s.appointments.List(ctx, repository.AppointmentFilter{Limit: 10})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &DashboardStats{
		TotalPatients:       patients,
		TotalPractitioners:  practitioners,
		TotalAppointments:   total,
		PendingAppointments: pending,
		RecentAppointments:  recent,
	}, nil
}

func (s *AppointmentService) publishEvent(ctx context.Context, event events.Event) {
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

package events

import (
	"time"

	"github.com/spec-kit/hospital-booking/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAppointmentBooked        EventType = "appointment_booked"
	EventAppointmentStatusChanged EventType = "appointment_status_changed"
	EventPractitionerCreated      EventType = "practitioner_created"
)

// Actor encapsulates the account responsible for an event.
type Actor struct {
	AccountID int64 `json:"account_id"`
	IsAdmin   bool  `json:"is_admin"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AppointmentBookedPayload payload.
type AppointmentBookedPayload struct {
	AppointmentID  int64  `json:"appointment_id"`
	PractitionerID int64  `json:"practitioner_id"`
	Date           string `json:"date"`
	TimeSlot       string `json:"time_slot"`
}

// AppointmentStatusChangedPayload payload.
type AppointmentStatusChangedPayload struct {
	AppointmentID int64                    `json:"appointment_id"`
	OldStatus     domain.AppointmentStatus `json:"old_status"`
	NewStatus     domain.AppointmentStatus `json:"new_status"`
	Notes         string                   `json:"notes,omitempty"`
}

// PractitionerCreatedPayload payload.
type PractitionerCreatedPayload struct {
	PractitionerID int64  `json:"practitioner_id"`
	Name           string `json:"name"`
	Specialty      string `json:"specialty"`
}

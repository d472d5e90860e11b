package domain

import "time"

// AppointmentStatus enumerates lifecycle states for appointments.
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "Pending"
	AppointmentStatusConfirmed AppointmentStatus = "Confirmed"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
)

// ValidAppointmentStatus reports whether status is one of the four
// lifecycle values.
func ValidAppointmentStatus(status AppointmentStatus) bool {
	switch status {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Appointment is a scheduled encounter between an Account and a
// Practitioner. Appointments are never physically deleted; cancellation is a
// status change so history is retained.
type Appointment struct {
	ID             int64
	AccountID      int64
	PractitionerID int64
	// Date and TimeSlot are recorded as submitted, e.g. "2024-01-01", "10:00".
	Date     string
	TimeSlot string
	Reason   string
	Status   AppointmentStatus
	// Notes holds free-text practitioner notes set by administrators.
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

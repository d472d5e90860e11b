package dto

import (
	"time"

	"github.com/spec-kit/hospital-booking/internal/domain"
)

// BookAppointmentRequest payload.
type BookAppointmentRequest struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Reason string `json:"reason"`
}

// AdminUpdateAppointmentRequest carries optional status and notes; null
// fields are left untouched.
type AdminUpdateAppointmentRequest struct {
	Status *domain.AppointmentStatus `json:"status"`
	Notes  *string                   `json:"notes"`
}

// AppointmentResponse is the appointment view.
type AppointmentResponse struct {
	ID             int64                    `json:"id"`
	AccountID      int64                    `json:"account_id"`
	PractitionerID int64                    `json:"practitioner_id"`
	Date           string                   `json:"date"`
	Time           string                   `json:"time"`
	Reason         string                   `json:"reason"`
	Status         domain.AppointmentStatus `json:"status"`
	Notes          string                   `json:"notes,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
}

// DashboardStatsResponse summarizes the system for administrators.
type DashboardStatsResponse struct {
	TotalPatients       int64                 `json:"total_patients"`
	TotalPractitioners  int64                 `json:"total_practitioners"`
	TotalAppointments   int64                 `json:"total_appointments"`
	PendingAppointments int64                 `json:"pending_appointments"`
	RecentAppointments  []AppointmentResponse `json:"recent_appointments"`
}

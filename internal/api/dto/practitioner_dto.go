package dto

import "time"

// PractitionerRequest payload for admin create/update.
type PractitionerRequest struct {
	Name            string   `json:"name"`
	Specialty       string   `json:"specialty"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Qualification   string   `json:"qualification"`
	ExperienceYears int      `json:"experience_years"`
	AvailableDays   []string `json:"available_days"`
	AvailableTime   string   `json:"available_time"`
}

// PractitionerResponse is the public practitioner view.
type PractitionerResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Specialty       string    `json:"specialty"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Qualification   string    `json:"qualification"`
	ExperienceYears int       `json:"experience_years"`
	AvailableDays   []string  `json:"available_days"`
	AvailableTime   string    `json:"available_time"`
	CreatedAt       time.Time `json:"created_at"`
}

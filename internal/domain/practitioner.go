package domain

import "time"

// Weekday tokens accepted in Practitioner.AvailableDays.
var weekdayTokens = map[string]struct{}{
	"Mon": {}, "Tue": {}, "Wed": {}, "Thu": {}, "Fri": {}, "Sat": {}, "Sun": {},
}

// IsWeekdayToken reports whether day is a valid availability token.
func IsWeekdayToken(day string) bool {
	_, ok := weekdayTokens[day]
	return ok
}

// Practitioner models a doctor profile bookable for appointments.
type Practitioner struct {
	ID            int64
	Name          string
	Specialty     string
	Email         string
	Phone         string
	Qualification string
	// ExperienceYears is years of practice, never negative.
	ExperienceYears int
	AvailableDays   []string
	// AvailableTime is a free-text range such as "9:00 AM - 5:00 PM".
	AvailableTime string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

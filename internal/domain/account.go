package domain

import "time"

// Account is the domain model for registered patients. An account with the
// admin flag set also manages practitioners, appointments and other accounts.
type Account struct {
	ID           int64
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

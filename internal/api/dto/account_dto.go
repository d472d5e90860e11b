package dto

import "time"

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// UpdateProfileRequest payload for own-profile updates. A null new_password
// leaves the credential unchanged.
type UpdateProfileRequest struct {
	Name        string  `json:"name"`
	Phone       string  `json:"phone"`
	NewPassword *string `json:"new_password"`
}

// AccountResponse is the public view of an account.
type AccountResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

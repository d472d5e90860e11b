package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestConstructorsSetCodeAndStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"validation", NewValidationError("bad input", nil), "VALIDATION_FAILED", http.StatusBadRequest},
		{"not found", NewNotFound("appointment", nil), "NOT_FOUND", http.StatusNotFound},
		{"invalid credentials", NewInvalidCredentials(), "INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"unauthorized", NewUnauthorized("no session"), "UNAUTHORIZED", http.StatusUnauthorized},
		{"forbidden", NewForbidden("not yours"), "FORBIDDEN", http.StatusForbidden},
		{"duplicate email", NewDuplicateEmail("a@x.com"), "DUPLICATE_EMAIL", http.StatusConflict},
		{"invalid transition", NewInvalidTransition("no"), "INVALID_TRANSITION", http.StatusConflict},
		{"dependent appointments", NewHasDependentAppointments(7), "HAS_DEPENDENT_APPOINTMENTS", http.StatusConflict},
		{"internal", NewInternalError(errors.New("boom")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var domainErr *DomainError
			if !errors.As(tt.err, &domainErr) {
				t.Fatalf("not a DomainError: %v", tt.err)
			}
			if domainErr.Code != tt.code {
				t.Errorf("Code = %s, want %s", domainErr.Code, tt.code)
			}
			if domainErr.HTTPStatus != tt.status {
				t.Errorf("HTTPStatus = %d, want %d", domainErr.HTTPStatus, tt.status)
			}
		})
	}
}

func TestInvalidCredentialsHidesAccountExistence(t *testing.T) {
	err := NewInvalidCredentials()
	if err.Error() != "invalid email or password" {
		t.Errorf("message leaks detail: %q", err.Error())
	}
}

func TestToDomainError(t *testing.T) {
	if ToDomainError(nil) != nil {
		t.Error("nil should map to nil")
	}

	if got := ToDomainError(pgx.ErrNoRows); got.Code != "NOT_FOUND" {
		t.Errorf("pgx.ErrNoRows mapped to %s, want NOT_FOUND", got.Code)
	}
	if got := ToDomainError(fmt.Errorf("query failed: %w", pgx.ErrNoRows)); got.Code != "NOT_FOUND" {
		t.Errorf("wrapped pgx.ErrNoRows mapped to %s, want NOT_FOUND", got.Code)
	}

	if got := ToDomainError(errors.New("disk on fire")); got.Code != "INTERNAL_ERROR" {
		t.Errorf("unknown error mapped to %s, want INTERNAL_ERROR", got.Code)
	}

	original := NewForbidden("not yours")
	if got := ToDomainError(fmt.Errorf("cancel: %w", original)); got.Code != "FORBIDDEN" {
		t.Errorf("wrapped DomainError mapped to %s, want FORBIDDEN", got.Code)
	}
}

func TestDomainErrorUnwrap(t *testing.T) {
	cause := errors.New("pool exhausted")
	err := NewInternalError(cause)
	if !errors.Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}
}

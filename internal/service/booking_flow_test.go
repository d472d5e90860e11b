package service_test

import (
	"context"
	"testing"

	"github.com/spec-kit/hospital-booking/internal/domain"
	"github.com/spec-kit/hospital-booking/internal/service"
)

// Exercises the whole patient journey against the service layer: register,
// log in, book with a doctor, review the booking, cancel it, log out.
func TestPatientBookingFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	practitionerID := createPractitioner(t, env, "drsharma", "Cardiologist")

	account, err := env.authSvc.Register(ctx, service.RegisterInput{
		Name:            "Priya",
		Email:           "priya@example.com",
		Phone:           "555-0199",
		Password:        "pw123456",
		ConfirmPassword: "pw123456",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	_, session, err := env.authSvc.Login(ctx, "priya@example.com", "pw123456", false)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := env.authSvc.TokenManager().ParseToken(session.Token)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.AccountID != account.ID {
		t.Errorf("token bound to account %d, want %d", claims.AccountID, account.ID)
	}

	appointment, err := env.appointmentSvc.Book(ctx, claims.AccountID, practitionerID, service.BookInput{
		Date:     "2026-09-20",
		TimeSlot: "11:30",
		Reason:   "follow-up",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if appointment.Status != domain.AppointmentStatusPending {
		t.Errorf("new booking is %s, want Pending", appointment.Status)
	}

	mine, err := env.appointmentSvc.ListForAccount(ctx, account.ID, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != appointment.ID {
		t.Fatalf("unexpected listing: %+v", mine)
	}

	cancelled, err := env.appointmentSvc.Cancel(ctx, appointment.ID, account.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != domain.AppointmentStatusCancelled {
		t.Errorf("status after cancel is %s", cancelled.Status)
	}

	if err := env.authSvc.Logout(ctx, session.SessionID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if env.sessions.isLive(session.SessionID) {
		t.Error("session survived logout")
	}
}

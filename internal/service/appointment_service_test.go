package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/spec-kit/hospital-booking/internal/domain"
	"github.com/spec-kit/hospital-booking/internal/service"
)

func createPractitioner(t *testing.T, env *testEnv, name, specialty string) int64 {
	t.Helper()
	practitioner, err := env.practitionerSvc.Create(context.Background(), 1, service.PractitionerInput{
		Name:      name,
		Specialty: specialty,
		Email:     fmt.Sprintf("%s@clinic.example.com", name),
	})
	if err != nil {
		t.Fatalf("create practitioner: %v", err)
	}
	return practitioner.ID
}

func bookAppointment(t *testing.T, env *testEnv, accountID, practitionerID int64) int64 {
	t.Helper()
	appointment, err := env.appointmentSvc.Book(context.Background(), accountID, practitionerID, service.BookInput{
		Date:     "2026-09-15",
		TimeSlot: "10:00",
		Reason:   "checkup",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	return appointment.ID
}

func setStatus(t *testing.T, env *testEnv, appointmentID int64, status domain.AppointmentStatus) {
	t.Helper()
	if _, err := env.appointmentSvc.AdminUpdate(context.Background(), 1, appointmentID, service.AdminUpdateInput{
		Status: &status,
	}); err != nil {
		t.Fatalf("set status: %v", err)
	}
}

func TestBookDefaultsToPending(t *testing.T) {
	env := newTestEnv(t)
	accountID := registerAccount(t, env, "Alice", "alice@example.com", "pw123456")
	practitionerID := createPractitioner(t, env, "drsharma", "Cardiologist")

	appointment, err := env.appointmentSvc.Book(context.Background(), accountID, practitionerID, service.BookInput{
		Date:     "2026-09-15",
		TimeSlot: "10:00",
		Reason:   "chest pain",
	})
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if appointment.Status != domain.AppointmentStatusPending {
		t.Errorf("expected Pending, got %s", appointment.Status)
	}
	if appointment.AccountID != accountID || appointment.PractitionerID != practitionerID {
		t.Errorf("wrong ownership: %+v", appointment)
	}
}

func TestBookValidation(t *testing.T) {
	env := newTestEnv(t)
	accountID := registerAccount(t, env, "Alice", "alice@example.com", "pw123456")
	practitionerID := createPractitioner(t, env, "drsharma", "Cardiologist")

	tests := []struct {
		name  string
		input service.BookInput
	}{
		{"missing date", service.BookInput{TimeSlot: "10:00", Reason: "checkup"}},
		{"missing time", service.BookInput{Date: "2026-09-15", Reason: "checkup"}},
		{"missing reason", service.BookInput{Date: "2026-09-15", TimeSlot: "10:00"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.appointmentSvc.Book(context.Background(), accountID, practitionerID, tt.input)
			if code := errCode(t, err); code != "VALIDATION_FAILED" {
				t.Errorf("expected VALIDATION_FAILED, got %s", code)
			}
		})
	}
}

func TestBookUnknownPractitioner(t *testing.T) {
	env := newTestEnv(t)
	accountID := registerAccount(t, env, "Alice", "alice@example.com", "pw123456")

	_, err := env.appointmentSvc.Book(context.Background(), accountID, 999, service.BookInput{
		Date:     "2026-09-15",
		TimeSlot: "10:00",
		Reason:   "checkup",
	})
	if code := errCode(t, err); code != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %s", code)
	}
}

func TestCancelByOwner(t *testing.T) {
	env := newTestEnv(t)
	accountID := registerAccount(t, env, "Alice", "alice@example.com", "pw123456")
	practitionerID := createPractitioner(t, env, "drsharma", "Cardiologist")
	appointmentID := bookAppointment(t, env, accountID, practitionerID)

	appointment, err := env.appointmentSvc.Cancel(context.Background(), appointmentID, accountID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if appointment.Status != domain.AppointmentStatusCancelled {
		t.Errorf("expected Cancelled, got %s", appointment.Status)
	}

	// Cancelling an already cancelled appointment is a no-op, not an error.
	again, err := env.appointmentSvc.Cancel(context.Background(), appointmentID, accountID)
	if err != nil {
		t.Fatalf("re-cancel: %v", err)
	}
	if again.Status != domain.AppointmentStatusCancelled {
		t.Errorf("expected Cancelled after re-cancel, got %s", again.Status)
	}
}

func TestCancelByNonOwner(t *testing.T) {
	env := newTestEnv(t)
	ownerID := registerAccount(t, env, "Alice", "alice@example.com", "pw123456")
	otherID := registerAccount(t, env, "Bob", "bob@example.com", "pw123456")
	practitionerID := createPractitioner(t, env, "drsharma", "Cardiologist")
	appointmentID := bookAppointment(t, env, ownerID, practitionerID)

	_, err := env.appointmentSvc.Cancel(context.Background(), appointmentID, otherID)
	if code := errCode(t, err); code != "FORBIDDEN" {
		t.Errorf("expected FORBIDDEN, got %s", code)
	}

	appointment, err := env.appointmentSvc.GetForAccount(context.Background(), ownerID, appointmentID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if appointment.Status != domain.AppointmentStatusPending {
		t.Errorf("status changed by rejected cancel: %s", appointment.Status)
	}
}

func TestCancelCompleted(t *testing.T) {
	env := newTestEnv(t)
	accountID := registerAccount(t, env, "Alice", "alice@example.com", "pw123456")
	practitionerID := createPractitioner(t, env, "drsharma", "Cardiologist")
	appointmentID := bookAppointment(t, env, accountID, practitionerID)
	setStatus(t, env, appointmentID, domain.AppointmentStatusCompleted)

	_, err := env.appointmentSvc.Cancel(context.Background(), appointmentID, accountID)
	if code := errCode(t, err); code != "INVALID_TRANSITION" {
		t.Errorf("expected INVALID_TRANSITION, got %s", code)
	}

	appointment, err := env.appointmentSvc.GetForAccount(context.Background(), accountID, appointmentID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if appointment.Status != domain.AppointmentStatusCompleted {
		t.Errorf("completed appointment mutated: %s", appointment.Status)
	}
}

func TestCancelUnknownAppointment(t *testing.T) {
	env := newTestEnv(t)
	accountID := registerAccount(t, env, "Alice", "alice@example.com", "pw123456")

	_, err := env.appointmentSvc.Cancel(context.Background(), 404, accountID)
	if code := errCode(t, err); code != "NOT_FOUND" {
		t.Errorf("expected NOT_FOUND, got %s", code)
	}
}

func TestAdminUpdate(t *testing.T) {
	env := newTestEnv(t)
	accountID := registerAccount(t, env, "Alice", "alice@example.com", "pw123456")
	practitionerID := createPractitioner(t, env, "drsharma", "Cardiologist")
	appointmentID := bookAppointment(t, env, accountID, practitionerID)

	status := domain.AppointmentStatusConfirmed
	notes := "bring previous reports"
	appointment, err := env.appointmentSvc.AdminUpdate(context.Background(), 1, appointmentID, service.AdminUpdateInput{
		Status: &status,
		Notes:  &notes,
	})
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if appointment.Status != domain.AppointmentStatusConfirmed {
		t.Errorf("expected Confirmed, got %s", appointment.Status)
	}
	if appointment.Notes != "bring previous reports" {
		t.Errorf("notes not replaced: %q", appointment.Notes)
	}

	// Nil fields leave the record untouched.
	unchanged, err := env.appointmentSvc.AdminUpdate(context.Background(), 1, appointmentID, service.AdminUpdateInput{})
	if err != nil {
		t.Fatalf("admin update noop: %v", err)
	}
	if unchanged.Status != domain.AppointmentStatusConfirmed || unchanged.Notes != "bring previous reports" {
		t.Errorf("noop update mutated record: %+v", unchanged)
	}
}

func TestAdminUpdateAnyTransition(t *testing.T) {
	env := newTestEnv(t)
	accountID := registerAccount(t, env, "Alice", "alice@example.com", "pw123456")
	practitionerID := createPractitioner(t, env, "drsharma", "Cardiologist")
	appointmentID := bookAppointment(t, env, accountID, practitionerID)

	// Administrators may move an appointment between any two statuses,
	// including away from Completed.
	for _, status := range []domain.AppointmentStatus{
		domain.AppointmentStatusCompleted,
		domain.AppointmentStatusPending,
		domain.AppointmentStatusCancelled,
		domain.AppointmentStatusConfirmed,
	} {
		s := status
		appointment, err := env.appointmentSvc.AdminUpdate(context.Background(), 1, appointmentID, service.AdminUpdateInput{Status: &s})
		if err != nil {
			t.Fatalf("transition to %s: %v", status, err)
		}
		if appointment.Status != status {
			t.Errorf("expected %s, got %s", status, appointment.Status)
		}
	}
}

func TestAdminUpdateInvalidStatus(t *testing.T) {
	env := newTestEnv(t)
	accountID := registerAccount(t, env, "Alice", "alice@example.com", "pw123456")
	practitionerID := createPractitioner(t, env, "drsharma", "Cardiologist")
	appointmentID := bookAppointment(t, env, accountID, practitionerID)

	bogus := domain.AppointmentStatus("Rescheduled")
	_, err := env.appointmentSvc.AdminUpdate(context.Background(), 1, appointmentID, service.AdminUpdateInput{Status: &bogus})
	if code := errCode(t, err); code != "VALIDATION_FAILED" {
		t.Errorf("expected VALIDATION_FAILED, got %s", code)
	}

	appointment, err := env.appointmentSvc.GetForAccount(context.Background(), accountID, appointmentID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if appointment.Status != domain.AppointmentStatusPending {
		t.Errorf("status changed by rejected update: %s", appointment.Status)
	}
}

func TestListForAccountScoping(t *testing.T) {
	env := newTestEnv(t)
	aliceID := registerAccount(t, env, "Alice", "alice@example.com", "pw123456")
	bobID := registerAccount(t, env, "Bob", "bob@example.com", "pw123456")
	practitionerID := createPractitioner(t, env, "drsharma", "Cardiologist")

	bookAppointment(t, env, aliceID, practitionerID)
	bookAppointment(t, env, aliceID, practitionerID)
	bookAppointment(t, env, bobID, practitionerID)

	mine, err := env.appointmentSvc.ListForAccount(context.Background(), aliceID, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(mine))
	}
	for _, appointment := range mine {
		if appointment.AccountID != aliceID {
			t.Errorf("foreign appointment in listing: %+v", appointment)
		}
	}

	all, err := env.appointmentSvc.ListAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 appointments, got %d", len(all))
	}
}

func TestListForAccountStatusFilter(t *testing.T) {
	env := newTestEnv(t)
	accountID := registerAccount(t, env, "Alice", "alice@example.com", "pw123456")
	practitionerID := createPractitioner(t, env, "drsharma", "Cardiologist")

	first := bookAppointment(t, env, accountID, practitionerID)
	bookAppointment(t, env, accountID, practitionerID)
	setStatus(t, env, first, domain.AppointmentStatusConfirmed)

	confirmed, err := env.appointmentSvc.ListForAccount(context.Background(), accountID, []domain.AppointmentStatus{domain.AppointmentStatusConfirmed})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(confirmed) != 1 || confirmed[0].ID != first {
		t.Errorf("unexpected filtered result: %+v", confirmed)
	}
}

func TestGetForAccountOwnership(t *testing.T) {
	env := newTestEnv(t)
	ownerID := registerAccount(t, env, "Alice", "alice@example.com", "pw123456")
	otherID := registerAccount(t, env, "Bob", "bob@example.com", "pw123456")
	practitionerID := createPractitioner(t, env, "drsharma", "Cardiologist")
	appointmentID := bookAppointment(t, env, ownerID, practitionerID)

	_, err := env.appointmentSvc.GetForAccount(context.Background(), otherID, appointmentID)
	if code := errCode(t, err); code != "FORBIDDEN" {
		t.Errorf("expected FORBIDDEN, got %s", code)
	}
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)
	aliceID := registerAccount(t, env, "Alice", "alice@example.com", "pw123456")
	bobID := registerAccount(t, env, "Bob", "bob@example.com", "pw123456")
	practitionerID := createPractitioner(t, env, "drsharma", "Cardiologist")
	createPractitioner(t, env, "drghimire", "Neurologist")

	first := bookAppointment(t, env, aliceID, practitionerID)
	bookAppointment(t, env, bobID, practitionerID)
	bookAppointment(t, env, bobID, practitionerID)
	setStatus(t, env, first, domain.AppointmentStatusCompleted)

	stats, err := env.appointmentSvc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalPatients != 2 {
		t.Errorf("TotalPatients = %d, want 2", stats.TotalPatients)
	}
	if stats.TotalPractitioners != 2 {
		t.Errorf("TotalPractitioners = %d, want 2", stats.TotalPractitioners)
	}
	if stats.TotalAppointments != 3 {
		t.Errorf("TotalAppointments = %d, want 3", stats.TotalAppointments)
	}
	if stats.PendingAppointments != 2 {
		t.Errorf("PendingAppointments = %d, want 2", stats.PendingAppointments)
	}
	if len(stats.RecentAppointments) != 3 {
		t.Errorf("RecentAppointments = %d entries, want 3", len(stats.RecentAppointments))
	}
}

func TestAppointmentsAreNeverDeleted(t *testing.T) {
	env := newTestEnv(t)
	accountID := registerAccount(t, env, "Alice", "alice@example.com", "pw123456")
	practitionerID := createPractitioner(t, env, "drsharma", "Cardiologist")
	appointmentID := bookAppointment(t, env, accountID, practitionerID)

	if _, err := env.appointmentSvc.Cancel(context.Background(), appointmentID, accountID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// A cancelled appointment remains on record and still blocks
	// practitioner deletion.
	all, err := env.appointmentSvc.ListAll(context.Background(), nil)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 appointment on record, got %d", len(all))
	}
	err = env.practitionerSvc.Delete(context.Background(), practitionerID)
	if code := errCode(t, err); code != "HAS_DEPENDENT_APPOINTMENTS" {
		t.Errorf("expected HAS_DEPENDENT_APPOINTMENTS, got %s", code)
	}
}

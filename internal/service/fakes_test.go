package service_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hospital-booking/internal/domain"
	"github.com/spec-kit/hospital-booking/internal/repository"
)

// In-memory repository fakes mirroring the documented Postgres semantics,
// so service behavior can be exercised without a database.

type fakeAccountRepo struct {
	mu       sync.Mutex
	nextID   int64
	accounts map[int64]domain.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[int64]domain.Account)}
}

func (r *fakeAccountRepo) Create(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return fmt.Errorf("unique violation on accounts.email")
		}
	}
	r.nextID++
	account.ID = r.nextID
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	r.accounts[account.ID] = *account
	return nil
}

func (r *fakeAccountRepo) Update(_ context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[account.ID]; !ok {
		return pgx.ErrNoRows
	}
	account.UpdatedAt = time.Now()
	r.accounts[account.ID] = *account
	return nil
}

func (r *fakeAccountRepo) GetByID(_ context.Context, id int64) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &account, nil
}

func (r *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.accounts {
		if account.Email == email {
			result := account
			return &result, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeAccountRepo) ListPatients(_ context.Context) ([]domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Account
	for _, account := range r.accounts {
		if !account.IsAdmin {
			result = append(result, account)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (r *fakeAccountRepo) CountPatients(ctx context.Context) (int64, error) {
	patients, _ := r.ListPatients(ctx)
	return int64(len(patients)), nil
}

type fakePractitionerRepo struct {
	mu            sync.Mutex
	nextID        int64
	practitioners map[int64]domain.Practitioner
	appointments  *fakeAppointmentRepo
}

func newFakePractitionerRepo(appointments *fakeAppointmentRepo) *fakePractitionerRepo {
	return &fakePractitionerRepo{
		practitioners: make(map[int64]domain.Practitioner),
		appointments:  appointments,
	}
}

func (r *fakePractitionerRepo) Create(_ context.Context, practitioner *domain.Practitioner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	practitioner.ID = r.nextID
	practitioner.CreatedAt = time.Now()
	practitioner.UpdatedAt = practitioner.CreatedAt
	r.practitioners[practitioner.ID] = *practitioner
	return nil
}

func (r *fakePractitionerRepo) Update(_ context.Context, practitioner *domain.Practitioner) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.practitioners[practitioner.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.practitioners[practitioner.ID] = *practitioner
	return nil
}

func (r *fakePractitionerRepo) GetByID(_ context.Context, id int64) (*domain.Practitioner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	practitioner, ok := r.practitioners[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &practitioner, nil
}

func (r *fakePractitionerRepo) GetByEmail(_ context.Context, email string) (*domain.Practitioner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, practitioner := range r.practitioners {
		if practitioner.Email == email {
			result := practitioner
			return &result, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakePractitionerRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.practitioners[id]; !ok {
		return pgx.ErrNoRows
	}
	practitionerID := id
	existing, err := r.appointments.List(ctx, repository.AppointmentFilter{PractitionerID: &practitionerID})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return repository.ErrHasDependentAppointments
	}
	delete(r.practitioners, id)
	return nil
}

func (r *fakePractitionerRepo) List(_ context.Context, filter repository.PractitionerFilter) ([]domain.Practitioner, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Practitioner
	for _, practitioner := range r.practitioners {
		if filter.Search != nil {
			search := strings.ToLower(strings.TrimSpace(*filter.Search))
			if search != "" &&
				!strings.Contains(strings.ToLower(practitioner.Name), search) &&
				!strings.Contains(strings.ToLower(practitioner.Specialty), search) {
				continue
			}
		}
		if filter.Specialty != nil && *filter.Specialty != "" && practitioner.Specialty != *filter.Specialty {
			continue
		}
		result = append(result, practitioner)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *fakePractitionerRepo) ListSpecialties(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[string]struct{}{}
	var result []string
	for _, practitioner := range r.practitioners {
		if _, ok := seen[practitioner.Specialty]; ok {
			continue
		}
		seen[practitioner.Specialty] = struct{}{}
		result = append(result, practitioner.Specialty)
	}
	sort.Strings(result)
	return result, nil
}

func (r *fakePractitionerRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.practitioners)), nil
}

type fakeAppointmentRepo struct {
	mu           sync.Mutex
	nextID       int64
	appointments map[int64]domain.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[int64]domain.Appointment)}
}

func (r *fakeAppointmentRepo) Create(_ context.Context, appointment *domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	appointment.ID = r.nextID
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = appointment.CreatedAt
	r.appointments[appointment.ID] = *appointment
	return nil
}

func (r *fakeAppointmentRepo) Update(_ context.Context, appointment *domain.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[appointment.ID]; !ok {
		return pgx.ErrNoRows
	}
	appointment.UpdatedAt = time.Now()
	r.appointments[appointment.ID] = *appointment
	return nil
}

func (r *fakeAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.appointments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &appointment, nil
}

func (r *fakeAppointmentRepo) List(_ context.Context, filter repository.AppointmentFilter) ([]domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Appointment
	for _, appointment := range r.appointments {
		if filter.AccountID != nil && appointment.AccountID != *filter.AccountID {
			continue
		}
		if filter.PractitionerID != nil && appointment.PractitionerID != *filter.PractitionerID {
			continue
		}
		if len(filter.Statuses) > 0 {
			match := false
			for _, status := range filter.Statuses {
				if appointment.Status == status {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		result = append(result, appointment)
	}
	// newest first, ids are monotonic
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return nil, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (r *fakeAppointmentRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.appointments)), nil
}

func (r *fakeAppointmentRepo) CountByStatus(_ context.Context, status domain.AppointmentStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, appointment := range r.appointments {
		if appointment.Status == status {
			count++
		}
	}
	return count, nil
}

type fakeSessionManager struct {
	mu     sync.Mutex
	nextID int
	live   map[string]int64
}

func newFakeSessionManager() *fakeSessionManager {
	return &fakeSessionManager{live: make(map[string]int64)}
}

func (m *fakeSessionManager) Open(_ context.Context, accountID int64, remember bool) (string, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	sessionID := fmt.Sprintf("sess-%d", m.nextID)
	m.live[sessionID] = accountID
	ttl := time.Hour
	if remember {
		ttl = 30 * 24 * time.Hour
	}
	return sessionID, ttl, nil
}

func (m *fakeSessionManager) Revoke(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.live, sessionID)
	return nil
}

func (m *fakeSessionManager) isLive(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.live[sessionID]
	return ok
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hospital-booking/internal/domain"
)

// ErrHasDependentAppointments blocks deleting a practitioner that still owns
// appointments.
var ErrHasDependentAppointments = errors.New("practitioner has dependent appointments")

// PractitionerFilter captures public listing parameters. Search matches name
// or specialty substrings case-insensitively; Specialty is an exact match.
// Both compose with AND.
type PractitionerFilter struct {
	Search    *string
	Specialty *string
}

// PractitionerRepository encapsulates practitioner persistence.
type PractitionerRepository interface {
	Create(ctx context.Context, practitioner *domain.Practitioner) error
	Update(ctx context.Context, practitioner *domain.Practitioner) error
	GetByID(ctx context.Context, id int64) (*domain.Practitioner, error)
	GetByEmail(ctx context.Context, email string) (*domain.Practitioner, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter PractitionerFilter) ([]domain.Practitioner, error)
	ListSpecialties(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
}

type practitionerRepository struct {
	pool *pgxpool.Pool
}

// NewPractitionerRepository instantiates repository.
func NewPractitionerRepository(pool *pgxpool.Pool) PractitionerRepository {
	return &practitionerRepository{pool: pool}
}

func (r *practitionerRepository) Create(ctx context.Context, practitioner *domain.Practitioner) error {
	const query = `
        INSERT INTO practitioners (name, specialty, email, phone, qualification, experience_years, available_days, available_time)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		practitioner.Name,
		practitioner.Specialty,
		practitioner.Email,
		practitioner.Phone,
		practitioner.Qualification,
		practitioner.ExperienceYears,
		practitioner.AvailableDays,
		practitioner.AvailableTime,
	).Scan(&practitioner.ID, &practitioner.CreatedAt, &practitioner.UpdatedAt)
}

func (r *practitionerRepository) Update(ctx context.Context, practitioner *domain.Practitioner) error {
	const query = `
        UPDATE practitioners SET name=$1, specialty=$2, email=$3, phone=$4, qualification=$5,
            experience_years=$6, available_days=$7, available_time=$8, updated_at=NOW()
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		practitioner.Name,
		practitioner.Specialty,
		practitioner.Email,
		practitioner.Phone,
		practitioner.Qualification,
		practitioner.ExperienceYears,
		practitioner.AvailableDays,
		practitioner.AvailableTime,
		practitioner.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *practitionerRepository) GetByID(ctx context.Context, id int64) (*domain.Practitioner, error) {
	const query = `
        SELECT id, name, specialty, email, phone, qualification, experience_years, available_days, available_time, created_at, updated_at
        FROM practitioners WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *practitionerRepository) GetByEmail(ctx context.Context, email string) (*domain.Practitioner, error) {
	const query = `
        SELECT id, name, specialty, email, phone, qualification, experience_years, available_days, available_time, created_at, updated_at
        FROM practitioners WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *practitionerRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Practitioner, error) {
	var practitioner domain.Practitioner
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&practitioner.ID,
		&practitioner.Name,
		&practitioner.Specialty,
		&practitioner.Email,
		&practitioner.Phone,
		&practitioner.Qualification,
		&practitioner.ExperienceYears,
		&practitioner.AvailableDays,
		&practitioner.AvailableTime,
		&practitioner.CreatedAt,
		&practitioner.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &practitioner, nil
}

// Delete removes a practitioner with no appointment history. The dependency
// check and delete run in one transaction so a concurrent booking cannot
// orphan itself.
func (r *practitionerRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var hasAppointments bool
	const checkQuery = `SELECT EXISTS(SELECT 1 FROM appointments WHERE practitioner_id=$1)`
	if err := tx.QueryRow(ctx, checkQuery, id).Scan(&hasAppointments); err != nil {
		return err
	}
	if hasAppointments {
		return ErrHasDependentAppointments
	}

	cmd, err := tx.Exec(ctx, `DELETE FROM practitioners WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return tx.Commit(ctx)
}

func (r *practitionerRepository) List(ctx context.Context, filter PractitionerFilter) ([]domain.Practitioner, error) {
	base := `SELECT id, name, specialty, email, phone, qualification, experience_years, available_days, available_time, created_at, updated_at
             FROM practitioners`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.Search)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(name) LIKE %s OR LOWER(specialty) LIKE %s)", placeholder, placeholder))
	}
	if filter.Specialty != nil && *filter.Specialty != "" {
		args = append(args, *filter.Specialty)
		clauses = append(clauses, fmt.Sprintf("specialty=$%d", len(args)))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY name ASC`, base, strings.Join(clauses, " AND "))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPractitioners(rows)
}

func (r *practitionerRepository) ListSpecialties(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT specialty FROM practitioners ORDER BY specialty ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var specialty string
		if err := rows.Scan(&specialty); err != nil {
			return nil, err
		}
		result = append(result, specialty)
	}
	return result, rows.Err()
}

func (r *practitionerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM practitioners`).Scan(&count)
	return count, err
}

func scanPractitioners(rows pgx.Rows) ([]domain.Practitioner, error) {
	var result []domain.Practitioner
	for rows.Next() {
		var practitioner domain.Practitioner
		if err := rows.Scan(
			&practitioner.ID,
			&practitioner.Name,
			&practitioner.Specialty,
			&practitioner.Email,
			&practitioner.Phone,
			&practitioner.Qualification,
			&practitioner.ExperienceYears,
			&practitioner.AvailableDays,
			&practitioner.AvailableTime,
			&practitioner.CreatedAt,
			&practitioner.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, practitioner)
	}
	return result, rows.Err()
}

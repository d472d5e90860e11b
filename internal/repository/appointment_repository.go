package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hospital-booking/internal/domain"
)

// AppointmentFilter captures listing parameters. Results are always ordered
// by creation time descending.
type AppointmentFilter struct {
	AccountID      *int64
	PractitionerID *int64
	Statuses       []domain.AppointmentStatus
	Limit          int
	Offset         int
}

// AppointmentRepository encapsulates appointment persistence. There is no
// delete: cancelled appointments stay on record.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) error
	Update(ctx context.Context, appointment *domain.Appointment) error
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	List(ctx context.Context, filter AppointmentFilter) ([]domain.Appointment, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.AppointmentStatus) (int64, error)
}

type appointmentRepository struct {
	pool *pgxpool.Pool
}

// NewAppointmentRepository instantiates repository.
func NewAppointmentRepository(pool *pgxpool.Pool) AppointmentRepository {
	return &appointmentRepository{pool: pool}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *domain.Appointment) error {
	const query = `
        INSERT INTO appointments (account_id, practitioner_id, appointment_date, appointment_time, reason, status, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		appointment.AccountID,
		appointment.PractitionerID,
		appointment.Date,
		appointment.TimeSlot,
		appointment.Reason,
		appointment.Status,
		appointment.Notes,
	).Scan(&appointment.ID, &appointment.CreatedAt, &appointment.UpdatedAt)
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *domain.Appointment) error {
	const query = `
        UPDATE appointments SET appointment_date=$1, appointment_time=$2, reason=$3, status=$4, notes=$5, updated_at=NOW()
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		appointment.Date,
		appointment.TimeSlot,
		appointment.Reason,
		appointment.Status,
		appointment.Notes,
		appointment.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *appointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	const query = `
        SELECT id, account_id, practitioner_id, appointment_date, appointment_time, reason, status, notes, created_at, updated_at
        FROM appointments WHERE id=$1`
	var appointment domain.Appointment
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&appointment.ID,
		&appointment.AccountID,
		&appointment.PractitionerID,
		&appointment.Date,
		&appointment.TimeSlot,
		&appointment.Reason,
		&appointment.Status,
		&appointment.Notes,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) List(ctx context.Context, filter AppointmentFilter) ([]domain.Appointment, error) {
	base := `SELECT id, account_id, practitioner_id, appointment_date, appointment_time, reason, status, notes, created_at, updated_at
             FROM appointments`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		clauses = append(clauses, fmt.Sprintf("account_id=$%d", len(args)))
	}
	if filter.PractitionerID != nil {
		args = append(args, *filter.PractitionerID)
		clauses = append(clauses, fmt.Sprintf("practitioner_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC`, base, strings.Join(clauses, " AND "))
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointments(rows)
}

func (r *appointmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM appointments`).Scan(&count)
	return count, err
}

func (r *appointmentRepository) CountByStatus(ctx context.Context, status domain.AppointmentStatus) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM appointments WHERE status=$1`, status).Scan(&count)
	return count, err
}

func scanAppointments(rows pgx.Rows) ([]domain.Appointment, error) {
	var result []domain.Appointment
	for rows.Next() {
		var appointment domain.Appointment
		if err := rows.Scan(
			&appointment.ID,
			&appointment.AccountID,
			&appointment.PractitionerID,
			&appointment.Date,
			&appointment.TimeSlot,
			&appointment.Reason,
			&appointment.Status,
			&appointment.Notes,
			&appointment.CreatedAt,
			&appointment.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, appointment)
	}
	return result, rows.Err()
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hospital-booking/internal/domain"
)

// AccountRepository defines persistence access for patient accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	Update(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	ListPatients(ctx context.Context) ([]domain.Account, error)
	CountPatients(ctx context.Context) (int64, error)
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (name, email, phone, password_hash, is_admin)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		account.Name,
		account.Email,
		account.Phone,
		account.PasswordHash,
		account.IsAdmin,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
}

func (r *accountRepository) Update(ctx context.Context, account *domain.Account) error {
	const query = `
        UPDATE accounts SET name=$1, email=$2, phone=$3, password_hash=$4, is_admin=$5, updated_at=NOW()
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		account.Name,
		account.Email,
		account.Phone,
		account.PasswordHash,
		account.IsAdmin,
		account.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	const query = `
        SELECT id, name, email, phone, password_hash, is_admin, created_at, updated_at
        FROM accounts WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const query = `
        SELECT id, name, email, phone, password_hash, is_admin, created_at, updated_at
        FROM accounts WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *accountRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var account domain.Account
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.Phone,
		&account.PasswordHash,
		&account.IsAdmin,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) ListPatients(ctx context.Context) ([]domain.Account, error) {
	const query = `
        SELECT id, name, email, phone, password_hash, is_admin, created_at, updated_at
        FROM accounts WHERE is_admin = FALSE
        ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Account
	for rows.Next() {
		var account domain.Account
		if err := rows.Scan(
			&account.ID,
			&account.Name,
			&account.Email,
			&account.Phone,
			&account.PasswordHash,
			&account.IsAdmin,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, account)
	}
	return result, rows.Err()
}

func (r *accountRepository) CountPatients(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM accounts WHERE is_admin = FALSE`
	var count int64
	err := r.pool.QueryRow(ctx, query).Scan(&count)
	return count, err
}

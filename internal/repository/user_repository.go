package repository

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/freight-board/internal/domain"
)

// NormalizeEmail canonicalizes an email for case-insensitive uniqueness.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UserRepository defines persistence access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	TouchLastActive(ctx context.Context, id string, at time.Time) error
	CountActiveSince(ctx context.Context, since time.Time) (int64, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, name, email, password_hash, role, phone, company, address, city, country, last_active_at, created_at, updated_at`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (name, email, password_hash, role, phone, company, address, city, country)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, last_active_at, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.Name,
		NormalizeEmail(user.Email),
		user.PasswordHash,
		user.Role,
		user.Phone,
		user.Company,
		user.Address,
		user.City,
		user.Country,
	).Scan(&user.ID, &user.LastActiveAt, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET name=$1, email=$2, password_hash=$3, role=$4, phone=$5, company=$6,
            address=$7, city=$8, country=$9, updated_at=NOW()
        WHERE id=$10`

	cmd, err := r.pool.Exec(ctx, query,
		user.Name,
		NormalizeEmail(user.Email),
		user.PasswordHash,
		user.Role,
		user.Phone,
		user.Company,
		user.Address,
		user.City,
		user.Country,
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return r.fetchSingle(ctx, query, NormalizeEmail(email))
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Phone,
		&user.Company,
		&user.Address,
		&user.City,
		&user.Country,
		&user.LastActiveAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) TouchLastActive(ctx context.Context, id string, at time.Time) error {
	const query = `UPDATE users SET last_active_at=$1 WHERE id=$2`
	_, err := r.pool.Exec(ctx, query, at, id)
	return err
}

func (r *userRepository) CountActiveSince(ctx context.Context, since time.Time) (int64, error) {
	const query = `SELECT COUNT(*) FROM users WHERE last_active_at >= $1`
	var count int64
	if err := r.pool.QueryRow(ctx, query, since).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/freight-board/internal/domain"
)

// CompanyRepository persists companies.
type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
	GetByEmail(ctx context.Context, email string) (*domain.Company, error)
	List(ctx context.Context) ([]domain.Company, error)
}

type companyRepository struct {
	pool *pgxpool.Pool
}

// NewCompanyRepository instantiates repository.
func NewCompanyRepository(pool *pgxpool.Pool) CompanyRepository {
	return &companyRepository{pool: pool}
}

func (r *companyRepository) Create(ctx context.Context, company *domain.Company) error {
	const query = `
        INSERT INTO companies (name, type, address, phone, email)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		company.Name,
		company.Type,
		company.Address,
		company.Phone,
		NormalizeEmail(company.Email),
	).Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt)
}

func (r *companyRepository) GetByEmail(ctx context.Context, email string) (*domain.Company, error) {
	const query = `
        SELECT id, name, type, address, phone, email, created_at, updated_at
        FROM companies WHERE email=$1`
	var company domain.Company
	if err := r.pool.QueryRow(ctx, query, NormalizeEmail(email)).Scan(
		&company.ID,
		&company.Name,
		&company.Type,
		&company.Address,
		&company.Phone,
		&company.Email,
		&company.CreatedAt,
		&company.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) List(ctx context.Context) ([]domain.Company, error) {
	const query = `
        SELECT id, name, type, address, phone, email, created_at, updated_at
        FROM companies ORDER BY name ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Company
	for rows.Next() {
		var company domain.Company
		if err := rows.Scan(
			&company.ID,
			&company.Name,
			&company.Type,
			&company.Address,
			&company.Phone,
			&company.Email,
			&company.CreatedAt,
			&company.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, company)
	}
	return result, rows.Err()
}

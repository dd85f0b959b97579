package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/freight-board/internal/domain"
	"github.com/spec-kit/freight-board/internal/repository"
	apperrors "github.com/spec-kit/freight-board/pkg/util"
)

// CompanyInput describes company creation.
type CompanyInput struct {
	Name    string
	Type    string
	Address string
	Phone   string
	Email   string
}

// CompanyService manages the loosely integrated company directory.
type CompanyService struct {
	companies repository.CompanyRepository
}

// NewCompanyService constructs the service.
func NewCompanyService(companies repository.CompanyRepository) *CompanyService {
	return &CompanyService{companies: companies}
}

// Create validates and persists a company. Email uniqueness is independent
// of user emails.
func (s *CompanyService) Create(ctx context.Context, input CompanyInput) (*domain.Company, error) {
	details := map[string]any{}
	requireField(details, "name", input.Name)
	requireField(details, "address", input.Address)
	requireField(details, "phone", input.Phone)
	requireField(details, "email", input.Email)
	companyType := domain.CompanyType(strings.TrimSpace(input.Type))
	if !companyType.Valid() {
		details["type"] = "must be LOGISTICS or TRANSPORT"
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid company", details)
	}

	if _, err := s.companies.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("company email already registered", nil)
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	company := &domain.Company{
		Name:    strings.TrimSpace(input.Name),
		Type:    companyType,
		Address: strings.TrimSpace(input.Address),
		Phone:   strings.TrimSpace(input.Phone),
		Email:   repository.NormalizeEmail(input.Email),
	}
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

// List returns all companies ordered by name.
func (s *CompanyService) List(ctx context.Context) ([]domain.Company, error) {
	return s.companies.List(ctx)
}

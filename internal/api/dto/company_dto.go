package dto

import (
	"time"

	"github.com/spec-kit/freight-board/internal/domain"
)

// CreateCompanyRequest payload.
type CreateCompanyRequest struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// CompanyResponse serializes one company.
type CompanyResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Type      domain.CompanyType `json:"type"`
	Address   string             `json:"address"`
	Phone     string             `json:"phone"`
	Email     string             `json:"email"`
	CreatedAt time.Time          `json:"created_at"`
}

// NewCompanyResponse maps a domain company.
func NewCompanyResponse(company *domain.Company) CompanyResponse {
	return CompanyResponse{
		ID:        company.ID,
		Name:      company.Name,
		Type:      company.Type,
		Address:   company.Address,
		Phone:     company.Phone,
		Email:     company.Email,
		CreatedAt: company.CreatedAt,
	}
}

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/freight-board/internal/api/dto"
	"github.com/spec-kit/freight-board/internal/service"
	apperrors "github.com/spec-kit/freight-board/pkg/util"
)

// CompaniesHandler manages the company directory endpoints.
type CompaniesHandler struct {
	companies *service.CompanyService
}

// NewCompaniesHandler constructs handler.
func NewCompaniesHandler(companies *service.CompanyService) *CompaniesHandler {
	return &CompaniesHandler{companies: companies}
}

// Create handles POST /companies.
func (h *CompaniesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	company, err := h.companies.Create(c.Context(), service.CompanyInput{
		Name:    req.Name,
		Type:    req.Type,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCompanyResponse(company)})
}

// List handles GET /companies.
func (h *CompaniesHandler) List(c *fiber.Ctx) error {
	companies, err := h.companies.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		items = append(items, dto.NewCompanyResponse(&companies[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/freight-board/internal/api/dto"
	"github.com/spec-kit/freight-board/internal/auth"
	"github.com/spec-kit/freight-board/internal/domain"
	"github.com/spec-kit/freight-board/internal/service"
	apperrors "github.com/spec-kit/freight-board/pkg/util"
)

// BidsHandler manages bid endpoints.
type BidsHandler struct {
	bids *service.BidService
}

// NewBidsHandler constructs handler.
func NewBidsHandler(bids *service.BidService) *BidsHandler {
	return &BidsHandler{bids: bids}
}

// Place handles POST /cargo-posts/:id/bids.
func (h *BidsHandler) Place(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.PlaceBidRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	bid, err := h.bids.PlaceBid(c.Context(), principal.User, c.Params("id"), service.BidInput{
		Amount:  req.Amount,
		Message: req.Message,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewBidResponse(bid)})
}

// ListForListing handles GET /cargo-posts/:id/bids.
func (h *BidsHandler) ListForListing(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	bids, err := h.bids.ListForListing(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bidResponses(bids)})
}

// ListOwn handles GET /bids.
func (h *BidsHandler) ListOwn(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	bids, err := h.bids.ListOwn(c.Context(), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": bidResponses(bids)})
}

// Accept handles POST /bids/:id/accept.
func (h *BidsHandler) Accept(c *fiber.Ctx) error {
	return h.decide(c, true)
}

// Reject handles POST /bids/:id/reject.
func (h *BidsHandler) Reject(c *fiber.Ctx) error {
	return h.decide(c, false)
}

func (h *BidsHandler) decide(c *fiber.Ctx, accept bool) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	bid, err := h.bids.Decide(c.Context(), principal.User, c.Params("id"), accept)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBidResponse(bid)})
}

func bidResponses(bids []domain.Bid) []dto.BidResponse {
	items := make([]dto.BidResponse, 0, len(bids))
	for i := range bids {
		items = append(items, dto.NewBidResponse(&bids[i]))
	}
	return items
}

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

// TruckPostsHandler manages truck listing endpoints.
type TruckPostsHandler struct {
	listings *service.ListingService
}

// NewTruckPostsHandler constructs handler.
func NewTruckPostsHandler(listings *service.ListingService) *TruckPostsHandler {
	return &TruckPostsHandler{listings: listings}
}

// List handles GET /truck-posts.
func (h *TruckPostsHandler) List(c *fiber.Ctx) error {
	posts, err := h.listings.SearchTruckPosts(c.Context(), parseSearchCriteria(c))
	if err != nil {
		return err
	}
	items := make([]dto.TruckPostResponse, 0, len(posts))
	for i := range posts {
		items = append(items, truckPostResponse(&posts[i], nil))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create handles POST /truck-posts.
func (h *TruckPostsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateTruckPostRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.TruckPostInput{
		Title:           req.Title,
		CurrentLocation: req.CurrentLocation,
		Destination:     req.Destination,
		TruckType:       req.TruckType,
		Capacity:        req.Capacity,
		Price:           req.Price,
		Description:     req.Description,
	}
	details := map[string]any{}
	input.AvailableDate = dateFromRequest(details, "available_date", req.AvailableDate)
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid truck post", details)
	}

	post, err := h.listings.CreateTruckPost(c.Context(), principal.User, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": truckPostResponse(post, nil)})
}

// Get handles GET /truck-posts/:id.
func (h *TruckPostsHandler) Get(c *fiber.Ctx) error {
	post, owner, err := h.listings.GetTruckPost(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": truckPostResponse(post, owner)})
}

// Update handles PUT /truck-posts/:id.
func (h *TruckPostsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateTruckPostRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	patch := service.TruckPostPatch{
		Title:           req.Title,
		CurrentLocation: req.CurrentLocation,
		Destination:     req.Destination,
		TruckType:       req.TruckType,
		Capacity:        req.Capacity,
		Price:           req.Price,
		Description:     req.Description,
		Status:          req.Status,
	}
	details := map[string]any{}
	patch.AvailableDate = datePatchFromRequest(details, "available_date", req.AvailableDate)
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid truck post", details)
	}

	post, err := h.listings.UpdateTruckPost(c.Context(), principal.User, c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": truckPostResponse(post, nil)})
}

// Delete handles DELETE /truck-posts/:id.
func (h *TruckPostsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.listings.DeleteTruckPost(c.Context(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

func truckPostResponse(post *domain.TruckPost, owner *service.OwnerContact) dto.TruckPostResponse {
	resp := dto.TruckPostResponse{
		ID:              post.ID,
		ReferenceKey:    post.ReferenceKey,
		Title:           post.Title,
		CurrentLocation: post.CurrentLocation,
		Destination:     post.Destination,
		TruckType:       post.TruckType,
		Capacity:        post.Capacity,
		Price:           post.Price,
		Description:     post.Description,
		AvailableDate:   post.AvailableDate,
		Status:          post.Status,
		CreatedBy:       post.CreatedBy,
		CreatedAt:       post.CreatedAt,
		UpdatedAt:       post.UpdatedAt,
	}
	if owner != nil {
		resp.Owner = &dto.OwnerContactResponse{Name: owner.Name, Email: owner.Email, Phone: owner.Phone}
	}
	return resp
}

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/freight-board/internal/api/dto"
	"github.com/spec-kit/freight-board/internal/auth"
	"github.com/spec-kit/freight-board/internal/domain"
	"github.com/spec-kit/freight-board/internal/service"
	apperrors "github.com/spec-kit/freight-board/pkg/util"
)

// CargoPostsHandler manages cargo listing endpoints.
type CargoPostsHandler struct {
	listings *service.ListingService
}

// NewCargoPostsHandler constructs handler.
func NewCargoPostsHandler(listings *service.ListingService) *CargoPostsHandler {
	return &CargoPostsHandler{listings: listings}
}

// List handles GET /cargo-posts.
func (h *CargoPostsHandler) List(c *fiber.Ctx) error {
	posts, err := h.listings.SearchCargoPosts(c.Context(), parseSearchCriteria(c))
	if err != nil {
		return err
	}
	items := make([]dto.CargoPostResponse, 0, len(posts))
	for i := range posts {
		items = append(items, cargoPostResponse(&posts[i], nil))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create handles POST /cargo-posts.
func (h *CargoPostsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateCargoPostRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.CargoPostInput{
		LoadingCity:      req.LoadingCity,
		LoadingAddress:   req.LoadingAddress,
		UnloadingCity:    req.UnloadingCity,
		UnloadingAddress: req.UnloadingAddress,
		VehicleType:      req.VehicleType,
		Description:      req.Description,
		Weight:           req.Weight,
		Volume:           req.Volume,
		Price:            req.Price,
		PalletCount:      req.PalletCount,
		PalletType:       req.PalletType,
	}
	details := map[string]any{}
	input.LoadingDate = dateFromRequest(details, "loading_date", req.LoadingDate)
	input.UnloadingDate = dateFromRequest(details, "unloading_date", req.UnloadingDate)
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid cargo post", details)
	}

	post, err := h.listings.CreateCargoPost(c.Context(), principal.User, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": cargoPostResponse(post, nil)})
}

// Get handles GET /cargo-posts/:id.
func (h *CargoPostsHandler) Get(c *fiber.Ctx) error {
	post, owner, err := h.listings.GetCargoPost(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": cargoPostResponse(post, owner)})
}

// Update handles PUT /cargo-posts/:id.
func (h *CargoPostsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateCargoPostRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	patch := service.CargoPostPatch{
		LoadingCity:      req.LoadingCity,
		LoadingAddress:   req.LoadingAddress,
		UnloadingCity:    req.UnloadingCity,
		UnloadingAddress: req.UnloadingAddress,
		VehicleType:      req.VehicleType,
		Description:      req.Description,
		Status:           req.Status,
		Weight:           req.Weight,
		Volume:           req.Volume,
		Price:            req.Price,
		PalletCount:      req.PalletCount,
		PalletType:       req.PalletType,
	}
	details := map[string]any{}
	patch.LoadingDate = datePatchFromRequest(details, "loading_date", req.LoadingDate)
	patch.UnloadingDate = datePatchFromRequest(details, "unloading_date", req.UnloadingDate)
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid cargo post", details)
	}

	post, err := h.listings.UpdateCargoPost(c.Context(), principal.User, c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": cargoPostResponse(post, nil)})
}

// Delete handles DELETE /cargo-posts/:id.
func (h *CargoPostsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.listings.DeleteCargoPost(c.Context(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "deleted"}})
}

func parseSearchCriteria(c *fiber.Ctx) service.SearchCriteria {
	return service.SearchCriteria{
		Search:      c.Query("search"),
		VehicleType: c.Query("vehicleType"),
		Status:      c.Query("status"),
		DateRange:   c.Query("dateRange"),
		Limit:       parseIntQuery(c.Query("limit"), 50),
		Offset:      parseIntQuery(c.Query("offset"), 0),
	}
}

func parseIntQuery(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed < 0 {
		return def
	}
	return parsed
}

// parseDate accepts RFC3339 timestamps and plain dates.
func parseDate(val string) (time.Time, bool) {
	if val == "" {
		return time.Time{}, false
	}
	if at, err := time.Parse(time.RFC3339, val); err == nil {
		return at, true
	}
	if at, err := time.Parse("2006-01-02", val); err == nil {
		return at, true
	}
	return time.Time{}, false
}

// dateFromRequest parses a creation-payload date. An empty value stays the
// zero time so the service can report it as required; garbage is flagged,
// never silently dropped.
func dateFromRequest(details map[string]any, name, raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	at, ok := parseDate(raw)
	if !ok {
		details[name] = "not a date"
	}
	return at
}

// datePatchFromRequest parses an update-payload date. Nil means the field
// was absent and stays unchanged; a present but malformed value is flagged.
func datePatchFromRequest(details map[string]any, name string, raw *string) *time.Time {
	if raw == nil {
		return nil
	}
	at, ok := parseDate(*raw)
	if !ok {
		details[name] = "not a date"
		return nil
	}
	return &at
}

func cargoPostResponse(post *domain.CargoPost, owner *service.OwnerContact) dto.CargoPostResponse {
	resp := dto.CargoPostResponse{
		ID:               post.ID,
		ReferenceKey:     post.ReferenceKey,
		LoadingCity:      post.LoadingCity,
		LoadingAddress:   post.LoadingAddress,
		UnloadingCity:    post.UnloadingCity,
		UnloadingAddress: post.UnloadingAddress,
		LoadingDate:      post.LoadingDate,
		UnloadingDate:    post.UnloadingDate,
		VehicleType:      post.VehicleType,
		Description:      post.Description,
		Status:           post.Status,
		CreatedBy:        post.CreatedBy,
		Weight:           post.Weight,
		Volume:           post.Volume,
		Price:            post.Price,
		PalletCount:      post.PalletCount,
		PalletType:       post.PalletType,
		CreatedAt:        post.CreatedAt,
		UpdatedAt:        post.UpdatedAt,
	}
	if owner != nil {
		resp.Owner = &dto.OwnerContactResponse{Name: owner.Name, Email: owner.Email, Phone: owner.Phone}
	}
	return resp
}

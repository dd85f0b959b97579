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

// ActivitiesHandler exposes the audit trail endpoints.
type ActivitiesHandler struct {
	activities *service.ActivityService
}

// NewActivitiesHandler constructs handler.
func NewActivitiesHandler(activities *service.ActivityService) *ActivitiesHandler {
	return &ActivitiesHandler{activities: activities}
}

// Record handles POST /user/activity. This is the explicit creation path;
// persistence failures surface to the caller.
func (h *ActivitiesHandler) Record(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.RecordActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	activityType := domain.ActivityType(req.Type)
	if req.Type == "" {
		activityType = domain.ActivityTypeUser
	}
	if req.Action == "" {
		req.Action = "heartbeat"
	}

	entry, err := h.activities.Record(c.Context(), principal.User, req.Action, activityType, req.Details)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewActivityResponse(entry)})
}

// Recent handles GET /activities. Admins see the global trail; users see
// their own entries only.
func (h *ActivitiesHandler) Recent(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var userID *string
	if principal.Role != domain.RoleAdmin {
		id := principal.User.ID
		userID = &id
	}
	entries, err := h.activities.Recent(c.Context(), userID, parseIntQuery(c.Query("limit"), 20))
	if err != nil {
		return err
	}

	items := make([]dto.ActivityResponse, 0, len(entries))
	for i := range entries {
		items = append(items, dto.NewActivityResponse(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

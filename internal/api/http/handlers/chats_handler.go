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

// ChatsHandler manages listing chat endpoints.
type ChatsHandler struct {
	chats *service.ChatService
}

// NewChatsHandler constructs handler.
func NewChatsHandler(chats *service.ChatService) *ChatsHandler {
	return &ChatsHandler{chats: chats}
}

// Open handles POST /chats. Idempotent per (listing, initiator): reopening
// an existing thread returns it.
func (h *ChatsHandler) Open(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.OpenChatRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	chat, err := h.chats.Open(c.Context(), principal.User, domain.ListingKind(req.ListingKind), req.ListingID)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewChatResponse(chat)})
}

// List handles GET /chats.
func (h *ChatsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	chats, err := h.chats.List(c.Context(), principal.User)
	if err != nil {
		return err
	}
	items := make([]dto.ChatResponse, 0, len(chats))
	for i := range chats {
		items = append(items, dto.NewChatResponse(&chats[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get handles GET /chats/:id and returns the thread with its messages.
func (h *ChatsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	chat, messages, err := h.chats.Get(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}

	items := make([]dto.ChatMessageResponse, 0, len(messages))
	for i := range messages {
		items = append(items, dto.NewChatMessageResponse(&messages[i]))
	}
	return c.JSON(fiber.Map{"data": fiber.Map{
		"chat":     dto.NewChatResponse(chat),
		"messages": items,
	}})
}

// Send handles POST /chats/:id/messages.
func (h *ChatsHandler) Send(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.SendChatMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	message, err := h.chats.Send(c.Context(), principal.User, c.Params("id"), req.Body)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewChatMessageResponse(message)})
}

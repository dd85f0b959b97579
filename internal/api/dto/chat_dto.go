package dto

import (
	"time"

	"github.com/spec-kit/freight-board/internal/domain"
)

// OpenChatRequest payload.
type OpenChatRequest struct {
	ListingKind string `json:"listing_kind"`
	ListingID   string `json:"listing_id"`
}

// SendChatMessageRequest payload.
type SendChatMessageRequest struct {
	Body string `json:"body"`
}

// ChatResponse serializes one thread.
type ChatResponse struct {
	ID          string             `json:"id"`
	ListingKind domain.ListingKind `json:"listing_kind"`
	ListingID   string             `json:"listing_id"`
	InitiatorID string             `json:"initiator_id"`
	OwnerID     string             `json:"owner_id"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// ChatMessageResponse serializes one message.
type ChatMessageResponse struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	SenderID  string    `json:"sender_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// NewChatResponse maps a domain chat.
func NewChatResponse(chat *domain.Chat) ChatResponse {
	return ChatResponse{
		ID:          chat.ID,
		ListingKind: chat.ListingKind,
		ListingID:   chat.ListingID,
		InitiatorID: chat.InitiatorID,
		OwnerID:     chat.OwnerID,
		CreatedAt:   chat.CreatedAt,
		UpdatedAt:   chat.UpdatedAt,
	}
}

// NewChatMessageResponse maps a domain chat message.
func NewChatMessageResponse(msg *domain.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:        msg.ID,
		ChatID:    msg.ChatID,
		SenderID:  msg.SenderID,
		Body:      msg.Body,
		CreatedAt: msg.CreatedAt,
	}
}

package service

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/freight-board/internal/domain"
	"github.com/spec-kit/freight-board/internal/repository"
	apperrors "github.com/spec-kit/freight-board/pkg/util"
)

// ChatService coordinates listing chat threads.
type ChatService struct {
	chats  repository.ChatRepository
	cargo  repository.CargoPostRepository
	trucks repository.TruckPostRepository
}

// NewChatService constructs the service.
func NewChatService(chats repository.ChatRepository, cargo repository.CargoPostRepository, trucks repository.TruckPostRepository) *ChatService {
	return &ChatService{chats: chats, cargo: cargo, trucks: trucks}
}

// Open returns the caller's thread for a listing, creating it on first
// contact. The thread always binds the initiator and the listing owner.
func (s *ChatService) Open(ctx context.Context, caller *domain.User, kind domain.ListingKind, listingID string) (*domain.Chat, error) {
	if !kind.Valid() {
		return nil, apperrors.NewValidationError("unknown listing kind", map[string]any{"kind": string(kind)})
	}
	if err := validateID(listingID); err != nil {
		return nil, err
	}

	ownerID, err := s.listingOwner(ctx, kind, listingID)
	if err != nil {
		return nil, err
	}
	if ownerID == caller.ID {
		return nil, apperrors.NewValidationError("cannot open a chat on your own listing", nil)
	}

	existing, err := s.chats.FindThread(ctx, kind, listingID, caller.ID)
	if err == nil {
		return existing, nil
	}
	if err != pgx.ErrNoRows {
		return nil, err
	}

	chat := &domain.Chat{
		ListingKind: kind,
		ListingID:   listingID,
		InitiatorID: caller.ID,
		OwnerID:     ownerID,
	}
	if err := s.chats.Create(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

// Get returns a thread and its messages; participants only.
func (s *ChatService) Get(ctx context.Context, caller *domain.User, chatID string) (*domain.Chat, []domain.ChatMessage, error) {
	chat, err := s.loadForParticipant(ctx, caller, chatID)
	if err != nil {
		return nil, nil, err
	}
	messages, err := s.chats.ListMessages(ctx, chat.ID)
	if err != nil {
		return nil, nil, err
	}
	return chat, messages, nil
}

// List returns threads the caller participates in, most recent first.
func (s *ChatService) List(ctx context.Context, caller *domain.User) ([]domain.Chat, error) {
	return s.chats.ListByParticipant(ctx, caller.ID)
}

// Send appends a message to a thread; participants only.
func (s *ChatService) Send(ctx context.Context, caller *domain.User, chatID, body string) (*domain.ChatMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("body required", nil)
	}
	chat, err := s.loadForParticipant(ctx, caller, chatID)
	if err != nil {
		return nil, err
	}

	message := &domain.ChatMessage{
		ChatID:   chat.ID,
		SenderID: caller.ID,
		Body:     body,
	}
	if err := s.chats.AddMessage(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *ChatService) loadForParticipant(ctx context.Context, caller *domain.User, chatID string) (*domain.Chat, error) {
	if err := validateID(chatID); err != nil {
		return nil, err
	}
	chat, err := s.chats.GetByID(ctx, chatID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("chat", nil)
		}
		return nil, err
	}
	if chat.InitiatorID != caller.ID && chat.OwnerID != caller.ID {
		return nil, apperrors.NewForbidden("not a participant of this chat")
	}
	return chat, nil
}

func (s *ChatService) listingOwner(ctx context.Context, kind domain.ListingKind, listingID string) (string, error) {
	switch kind {
	case domain.ListingKindCargo:
		post, err := s.cargo.GetByID(ctx, listingID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return "", apperrors.NewNotFound("cargo post", nil)
			}
			return "", err
		}
		return post.CreatedBy, nil
	default:
		post, err := s.trucks.GetByID(ctx, listingID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return "", apperrors.NewNotFound("truck post", nil)
			}
			return "", err
		}
		return post.CreatedBy, nil
	}
}

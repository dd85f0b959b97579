package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/freight-board/internal/domain"
)

// ChatRepository persists listing chat threads and their messages.
type ChatRepository interface {
	Create(ctx context.Context, chat *domain.Chat) error
	GetByID(ctx context.Context, id string) (*domain.Chat, error)
	FindThread(ctx context.Context, kind domain.ListingKind, listingID, initiatorID string) (*domain.Chat, error)
	ListByParticipant(ctx context.Context, userID string) ([]domain.Chat, error)
	AddMessage(ctx context.Context, message *domain.ChatMessage) error
	ListMessages(ctx context.Context, chatID string) ([]domain.ChatMessage, error)
}

type chatRepository struct {
	pool *pgxpool.Pool
}

// NewChatRepository instantiates repository.
func NewChatRepository(pool *pgxpool.Pool) ChatRepository {
	return &chatRepository{pool: pool}
}

const chatColumns = `id, listing_kind, listing_id, initiator_id, owner_id, created_at, updated_at`

func (r *chatRepository) Create(ctx context.Context, chat *domain.Chat) error {
	const query = `
        INSERT INTO chats (listing_kind, listing_id, initiator_id, owner_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		chat.ListingKind,
		chat.ListingID,
		chat.InitiatorID,
		chat.OwnerID,
	).Scan(&chat.ID, &chat.CreatedAt, &chat.UpdatedAt)
}

func (r *chatRepository) GetByID(ctx context.Context, id string) (*domain.Chat, error) {
	const query = `SELECT ` + chatColumns + ` FROM chats WHERE id=$1`
	var chat domain.Chat
	if err := r.pool.QueryRow(ctx, query, id).Scan(chatScanTargets(&chat)...); err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *chatRepository) FindThread(ctx context.Context, kind domain.ListingKind, listingID, initiatorID string) (*domain.Chat, error) {
	const query = `SELECT ` + chatColumns + ` FROM chats WHERE listing_kind=$1 AND listing_id=$2 AND initiator_id=$3`
	var chat domain.Chat
	if err := r.pool.QueryRow(ctx, query, kind, listingID, initiatorID).Scan(chatScanTargets(&chat)...); err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *chatRepository) ListByParticipant(ctx context.Context, userID string) ([]domain.Chat, error) {
	const query = `SELECT ` + chatColumns + ` FROM chats WHERE initiator_id=$1 OR owner_id=$1 ORDER BY updated_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Chat
	for rows.Next() {
		var chat domain.Chat
		if err := rows.Scan(chatScanTargets(&chat)...); err != nil {
			return nil, err
		}
		result = append(result, chat)
	}
	return result, rows.Err()
}

func (r *chatRepository) AddMessage(ctx context.Context, message *domain.ChatMessage) error {
	const query = `
        INSERT INTO chat_messages (chat_id, sender_id, body)
        VALUES ($1,$2,$3)
        RETURNING id, created_at`
	if err := r.pool.QueryRow(ctx, query,
		message.ChatID,
		message.SenderID,
		message.Body,
	).Scan(&message.ID, &message.CreatedAt); err != nil {
		return err
	}
	_, err := r.pool.Exec(ctx, `UPDATE chats SET updated_at=NOW() WHERE id=$1`, message.ChatID)
	return err
}

func (r *chatRepository) ListMessages(ctx context.Context, chatID string) ([]domain.ChatMessage, error) {
	const query = `
        SELECT id, chat_id, sender_id, body, created_at
        FROM chat_messages WHERE chat_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ChatMessage
	for rows.Next() {
		var msg domain.ChatMessage
		if err := rows.Scan(&msg.ID, &msg.ChatID, &msg.SenderID, &msg.Body, &msg.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}

func chatScanTargets(chat *domain.Chat) []any {
	return []any{
		&chat.ID,
		&chat.ListingKind,
		&chat.ListingID,
		&chat.InitiatorID,
		&chat.OwnerID,
		&chat.CreatedAt,
		&chat.UpdatedAt,
	}
}

package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/freight-board/internal/domain"
)

// ActivityRepository persists the append-only audit trail. Entries are never
// updated or deleted.
type ActivityRepository interface {
	Create(ctx context.Context, activity *domain.Activity) error
	ListRecent(ctx context.Context, userID *string, limit int) ([]domain.Activity, error)
}

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository instantiates repository.
func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) Create(ctx context.Context, activity *domain.Activity) error {
	const query = `
        INSERT INTO activities (user_id, user_name, action, type, details, occurred_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id`
	return r.pool.QueryRow(ctx, query,
		activity.UserID,
		activity.UserName,
		activity.Action,
		activity.Type,
		activity.Details,
		activity.Timestamp,
	).Scan(&activity.ID)
}

func (r *activityRepository) ListRecent(ctx context.Context, userID *string, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, user_id, user_name, action, type, details, occurred_at FROM activities`
	args := []any{}
	if userID != nil {
		args = append(args, *userID)
		query += ` WHERE user_id=$1`
	}
	query += fmt.Sprintf(` ORDER BY occurred_at DESC LIMIT %d`, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Activity
	for rows.Next() {
		var entry domain.Activity
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.UserName,
			&entry.Action,
			&entry.Type,
			&entry.Details,
			&entry.Timestamp,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

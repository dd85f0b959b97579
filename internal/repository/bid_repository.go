package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/freight-board/internal/domain"
)

// BidRepository persists bids placed on cargo posts.
type BidRepository interface {
	Create(ctx context.Context, bid *domain.Bid) error
	GetByID(ctx context.Context, id string) (*domain.Bid, error)
	ListByCargoPost(ctx context.Context, cargoPostID string) ([]domain.Bid, error)
	ListByBidder(ctx context.Context, bidderID string) ([]domain.Bid, error)
	UpdateStatus(ctx context.Context, id string, status domain.BidStatus, decidedAt time.Time) error
}

type bidRepository struct {
	pool *pgxpool.Pool
}

// NewBidRepository instantiates repository.
func NewBidRepository(pool *pgxpool.Pool) BidRepository {
	return &bidRepository{pool: pool}
}

const bidColumns = `id, cargo_post_id, bidder_id, amount, message, status, decided_at, created_at, updated_at`

func (r *bidRepository) Create(ctx context.Context, bid *domain.Bid) error {
	const query = `
        INSERT INTO bids (cargo_post_id, bidder_id, amount, message, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		bid.CargoPostID,
		bid.BidderID,
		bid.Amount,
		bid.Message,
		bid.Status,
	).Scan(&bid.ID, &bid.CreatedAt, &bid.UpdatedAt)
}

func (r *bidRepository) GetByID(ctx context.Context, id string) (*domain.Bid, error) {
	const query = `SELECT ` + bidColumns + ` FROM bids WHERE id=$1`
	var bid domain.Bid
	if err := r.pool.QueryRow(ctx, query, id).Scan(bidScanTargets(&bid)...); err != nil {
		return nil, err
	}
	return &bid, nil
}

func (r *bidRepository) ListByCargoPost(ctx context.Context, cargoPostID string) ([]domain.Bid, error) {
	const query = `SELECT ` + bidColumns + ` FROM bids WHERE cargo_post_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, cargoPostID)
}

func (r *bidRepository) ListByBidder(ctx context.Context, bidderID string) ([]domain.Bid, error) {
	const query = `SELECT ` + bidColumns + ` FROM bids WHERE bidder_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, bidderID)
}

func (r *bidRepository) UpdateStatus(ctx context.Context, id string, status domain.BidStatus, decidedAt time.Time) error {
	const query = `UPDATE bids SET status=$1, decided_at=$2, updated_at=NOW() WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query, status, decidedAt, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bidRepository) list(ctx context.Context, query string, arg any) ([]domain.Bid, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Bid
	for rows.Next() {
		var bid domain.Bid
		if err := rows.Scan(bidScanTargets(&bid)...); err != nil {
			return nil, err
		}
		result = append(result, bid)
	}
	return result, rows.Err()
}

func bidScanTargets(bid *domain.Bid) []any {
	return []any{
		&bid.ID,
		&bid.CargoPostID,
		&bid.BidderID,
		&bid.Amount,
		&bid.Message,
		&bid.Status,
		&bid.DecidedAt,
		&bid.CreatedAt,
		&bid.UpdatedAt,
	}
}

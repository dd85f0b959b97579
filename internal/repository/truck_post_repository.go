package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/freight-board/internal/domain"
)

var truckSearchColumns = []string{"title", "current_location", "destination"}

// TruckPostRepository encapsulates truck listing persistence.
type TruckPostRepository interface {
	Create(ctx context.Context, post *domain.TruckPost) error
	Update(ctx context.Context, post *domain.TruckPost) error
	GetByID(ctx context.Context, id string) (*domain.TruckPost, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListWithFilter(ctx context.Context, filter ListingFilter) ([]domain.TruckPost, error)
	CountOpen(ctx context.Context, ownerID *string) (int64, error)
	MonthlyCounts(ctx context.Context, since time.Time, ownerID *string) ([]MonthCount, error)
}

type truckPostRepository struct {
	pool *pgxpool.Pool
}

// NewTruckPostRepository instantiates repository.
func NewTruckPostRepository(pool *pgxpool.Pool) TruckPostRepository {
	return &truckPostRepository{pool: pool}
}

const truckColumns = `id, reference_key, title, current_location, destination, truck_type, capacity,
               price, description, available_date, status, created_by, created_at, updated_at`

func (r *truckPostRepository) Create(ctx context.Context, post *domain.TruckPost) error {
	const query = `
        INSERT INTO truck_posts (reference_key, title, current_location, destination, truck_type,
            capacity, price, description, available_date, status, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		post.ReferenceKey,
		post.Title,
		post.CurrentLocation,
		post.Destination,
		post.TruckType,
		post.Capacity,
		post.Price,
		post.Description,
		post.AvailableDate,
		post.Status,
		post.CreatedBy,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
}

func (r *truckPostRepository) Update(ctx context.Context, post *domain.TruckPost) error {
	const query = `
        UPDATE truck_posts SET title=$1, current_location=$2, destination=$3, truck_type=$4,
            capacity=$5, price=$6, description=$7, available_date=$8, status=$9, updated_at=NOW()
        WHERE id=$10`
	cmd, err := r.pool.Exec(ctx, query,
		post.Title,
		post.CurrentLocation,
		post.Destination,
		post.TruckType,
		post.Capacity,
		post.Price,
		post.Description,
		post.AvailableDate,
		post.Status,
		post.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *truckPostRepository) GetByID(ctx context.Context, id string) (*domain.TruckPost, error) {
	const query = `SELECT ` + truckColumns + ` FROM truck_posts WHERE id=$1`
	var post domain.TruckPost
	if err := r.pool.QueryRow(ctx, query, id).Scan(truckScanTargets(&post)...); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *truckPostRepository) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM truck_posts WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *truckPostRepository) ListWithFilter(ctx context.Context, filter ListingFilter) ([]domain.TruckPost, error) {
	clauses, args := buildListingClauses(filter, "truck_type", truckSearchColumns)
	limit, offset := limitOffset(filter)

	query := fmt.Sprintf(`SELECT %s FROM truck_posts WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		truckColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TruckPost
	for rows.Next() {
		var post domain.TruckPost
		if err := rows.Scan(truckScanTargets(&post)...); err != nil {
			return nil, err
		}
		result = append(result, post)
	}
	return result, rows.Err()
}

func (r *truckPostRepository) CountOpen(ctx context.Context, ownerID *string) (int64, error) {
	query := `SELECT COUNT(*) FROM truck_posts WHERE status <> 'completed'`
	args := []any{}
	if ownerID != nil {
		args = append(args, *ownerID)
		query += ` AND created_by=$1`
	}
	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *truckPostRepository) MonthlyCounts(ctx context.Context, since time.Time, ownerID *string) ([]MonthCount, error) {
	query := `
        SELECT date_part('year', created_at)::int, date_part('month', created_at)::int, COUNT(*)
        FROM truck_posts
        WHERE created_at >= $1 AND status <> 'completed'`
	args := []any{since}
	if ownerID != nil {
		args = append(args, *ownerID)
		query += fmt.Sprintf(" AND created_by=$%d", len(args))
	}
	query += ` GROUP BY 1, 2`
	return scanMonthCounts(r.pool, ctx, query, args)
}

func truckScanTargets(post *domain.TruckPost) []any {
	return []any{
		&post.ID,
		&post.ReferenceKey,
		&post.Title,
		&post.CurrentLocation,
		&post.Destination,
		&post.TruckType,
		&post.Capacity,
		&post.Price,
		&post.Description,
		&post.AvailableDate,
		&post.Status,
		&post.CreatedBy,
		&post.CreatedAt,
		&post.UpdatedAt,
	}
}

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

var cargoSearchColumns = []string{"loading_city", "loading_address", "unloading_city", "unloading_address"}

// CargoPostRepository encapsulates cargo listing persistence.
type CargoPostRepository interface {
	Create(ctx context.Context, post *domain.CargoPost) error
	Update(ctx context.Context, post *domain.CargoPost) error
	GetByID(ctx context.Context, id string) (*domain.CargoPost, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListWithFilter(ctx context.Context, filter ListingFilter) ([]domain.CargoPost, error)
	CountOpen(ctx context.Context, ownerID *string) (int64, error)
	MonthlyCounts(ctx context.Context, since time.Time, ownerID *string) ([]MonthCount, error)
	CityCounts(ctx context.Context, ownerID *string, limit int) ([]CityCount, error)
}

type cargoPostRepository struct {
	pool *pgxpool.Pool
}

// NewCargoPostRepository instantiates repository.
func NewCargoPostRepository(pool *pgxpool.Pool) CargoPostRepository {
	return &cargoPostRepository{pool: pool}
}

const cargoColumns = `id, reference_key, loading_city, loading_address, unloading_city, unloading_address,
               loading_date, unloading_date, vehicle_type, description, status, created_by,
               weight, volume, price, pallet_count, pallet_type, created_at, updated_at`

func (r *cargoPostRepository) Create(ctx context.Context, post *domain.CargoPost) error {
	const query = `
        INSERT INTO cargo_posts (reference_key, loading_city, loading_address, unloading_city, unloading_address,
            loading_date, unloading_date, vehicle_type, description, status, created_by,
            weight, volume, price, pallet_count, pallet_type)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		post.ReferenceKey,
		post.LoadingCity,
		post.LoadingAddress,
		post.UnloadingCity,
		post.UnloadingAddress,
		post.LoadingDate,
		post.UnloadingDate,
		post.VehicleType,
		post.Description,
		post.Status,
		post.CreatedBy,
		post.Weight,
		post.Volume,
		post.Price,
		post.PalletCount,
		post.PalletType,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
}

func (r *cargoPostRepository) Update(ctx context.Context, post *domain.CargoPost) error {
	const query = `
        UPDATE cargo_posts SET loading_city=$1, loading_address=$2, unloading_city=$3, unloading_address=$4,
            loading_date=$5, unloading_date=$6, vehicle_type=$7, description=$8, status=$9,
            weight=$10, volume=$11, price=$12, pallet_count=$13, pallet_type=$14, updated_at=NOW()
        WHERE id=$15`
	cmd, err := r.pool.Exec(ctx, query,
		post.LoadingCity,
		post.LoadingAddress,
		post.UnloadingCity,
		post.UnloadingAddress,
		post.LoadingDate,
		post.UnloadingDate,
		post.VehicleType,
		post.Description,
		post.Status,
		post.Weight,
		post.Volume,
		post.Price,
		post.PalletCount,
		post.PalletType,
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

func (r *cargoPostRepository) GetByID(ctx context.Context, id string) (*domain.CargoPost, error) {
	const query = `SELECT ` + cargoColumns + ` FROM cargo_posts WHERE id=$1`
	var post domain.CargoPost
	if err := r.pool.QueryRow(ctx, query, id).Scan(cargoScanTargets(&post)...); err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes a row and reports whether one existed. The primitive itself
// is idempotent; callers decide how to treat a miss.
func (r *cargoPostRepository) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM cargo_posts WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *cargoPostRepository) ListWithFilter(ctx context.Context, filter ListingFilter) ([]domain.CargoPost, error) {
	clauses, args := buildListingClauses(filter, "vehicle_type", cargoSearchColumns)
	limit, offset := limitOffset(filter)

	query := fmt.Sprintf(`SELECT %s FROM cargo_posts WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		cargoColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CargoPost
	for rows.Next() {
		var post domain.CargoPost
		if err := rows.Scan(cargoScanTargets(&post)...); err != nil {
			return nil, err
		}
		result = append(result, post)
	}
	return result, rows.Err()
}

func (r *cargoPostRepository) CountOpen(ctx context.Context, ownerID *string) (int64, error) {
	query := `SELECT COUNT(*) FROM cargo_posts WHERE status <> 'completed'`
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

func (r *cargoPostRepository) MonthlyCounts(ctx context.Context, since time.Time, ownerID *string) ([]MonthCount, error) {
	query := `
        SELECT date_part('year', created_at)::int, date_part('month', created_at)::int, COUNT(*)
        FROM cargo_posts
        WHERE created_at >= $1 AND status <> 'completed'`
	args := []any{since}
	if ownerID != nil {
		args = append(args, *ownerID)
		query += fmt.Sprintf(" AND created_by=$%d", len(args))
	}
	query += ` GROUP BY 1, 2`
	return scanMonthCounts(r.pool, ctx, query, args)
}

// CityCounts ranks destination cities; ties are broken by city name so the
// breakdown is deterministic.
func (r *cargoPostRepository) CityCounts(ctx context.Context, ownerID *string, limit int) ([]CityCount, error) {
	query := `SELECT unloading_city, COUNT(*) FROM cargo_posts WHERE 1=1`
	args := []any{}
	if ownerID != nil {
		args = append(args, *ownerID)
		query += fmt.Sprintf(" AND created_by=$%d", len(args))
	}
	if limit <= 0 {
		limit = 5
	}
	query += fmt.Sprintf(` GROUP BY unloading_city ORDER BY COUNT(*) DESC, unloading_city ASC LIMIT %d`, limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []CityCount
	for rows.Next() {
		var entry CityCount
		if err := rows.Scan(&entry.City, &entry.Count); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func cargoScanTargets(post *domain.CargoPost) []any {
	return []any{
		&post.ID,
		&post.ReferenceKey,
		&post.LoadingCity,
		&post.LoadingAddress,
		&post.UnloadingCity,
		&post.UnloadingAddress,
		&post.LoadingDate,
		&post.UnloadingDate,
		&post.VehicleType,
		&post.Description,
		&post.Status,
		&post.CreatedBy,
		&post.Weight,
		&post.Volume,
		&post.Price,
		&post.PalletCount,
		&post.PalletType,
		&post.CreatedAt,
		&post.UpdatedAt,
	}
}

func scanMonthCounts(pool *pgxpool.Pool, ctx context.Context, query string, args []any) ([]MonthCount, error) {
	rows, err := pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []MonthCount
	for rows.Next() {
		var entry MonthCount
		if err := rows.Scan(&entry.Year, &entry.Month, &entry.Count); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

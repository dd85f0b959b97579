package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/freight-board/internal/config"
	"github.com/spec-kit/freight-board/internal/domain"
	"github.com/spec-kit/freight-board/internal/persistence"
	"github.com/spec-kit/freight-board/internal/repository"
)

// MonthlyTrendEntry is one month bucket of the trailing trend. Months with
// no activity are present with zero counts.
type MonthlyTrendEntry struct {
	Year       int   `json:"year"`
	Month      int   `json:"month"`
	CargoCount int64 `json:"cargo_count"`
	TruckCount int64 `json:"truck_count"`
}

// CityBreakdownEntry is one destination-city bucket.
type CityBreakdownEntry struct {
	City  string `json:"city"`
	Count int64  `json:"count"`
}

// DashboardSummary is the merged dashboard payload.
type DashboardSummary struct {
	TotalCargoPosts  int64                `json:"total_cargo_posts"`
	TotalTruckPosts  int64                `json:"total_truck_posts"`
	ActiveUsers      int64                `json:"active_users"`
	MonthlyTrend     []MonthlyTrendEntry  `json:"monthly_trend"`
	CityBreakdown    []CityBreakdownEntry `json:"city_breakdown"`
	RecentActivities []domain.Activity    `json:"recent_activities"`
}

// DashboardService computes role-scoped summary payloads.
type DashboardService struct {
	cargo      repository.CargoPostRepository
	trucks     repository.TruckPostRepository
	users      repository.UserRepository
	activities repository.ActivityRepository
	cache      *persistence.Redis
	cfg        config.DashboardConfig
	logger     *zap.Logger
}

// NewDashboardService constructs the service. cache may be nil; summaries
// are then recomputed on every call.
func NewDashboardService(cargo repository.CargoPostRepository, trucks repository.TruckPostRepository, users repository.UserRepository, activities repository.ActivityRepository, cache *persistence.Redis, cfg config.DashboardConfig, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		cargo:      cargo,
		trucks:     trucks,
		users:      users,
		activities: activities,
		cache:      cache,
		cfg:        cfg,
		logger:     logger,
	}
}

// Summary merges counts, trend, city breakdown and recent activity. Admins
// see global numbers; users see only listings they created. Results are
// cached per identity for a short TTL; Redis outages fall through to SQL.
func (s *DashboardService) Summary(ctx context.Context, user *domain.User) (*DashboardSummary, error) {
	cacheKey := fmt.Sprintf("dashboard:%s:%s", user.ID, user.Role)
	if cached := s.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	var ownerID *string
	if user.Role != domain.RoleAdmin {
		id := user.ID
		ownerID = &id
	}
	now := time.Now()

	totalCargo, err := s.cargo.CountOpen(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	totalTrucks, err := s.trucks.CountOpen(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	activeUsers, err := s.users.CountActiveSince(ctx, now.Add(-s.cfg.ActiveWindow()))
	if err != nil {
		return nil, err
	}

	months := s.cfg.TrendMonths
	if months <= 0 {
		months = 6
	}
	since := monthStart(now.AddDate(0, -(months - 1), 0))
	cargoBuckets, err := s.cargo.MonthlyCounts(ctx, since, ownerID)
	if err != nil {
		return nil, err
	}
	truckBuckets, err := s.trucks.MonthlyCounts(ctx, since, ownerID)
	if err != nil {
		return nil, err
	}

	topCities := s.cfg.TopCities
	if topCities <= 0 {
		topCities = 5
	}
	cities, err := s.cargo.CityCounts(ctx, ownerID, topCities)
	if err != nil {
		return nil, err
	}

	recentLimit := s.cfg.RecentActivities
	if recentLimit <= 0 {
		recentLimit = 5
	}
	recent, err := s.activities.ListRecent(ctx, ownerID, recentLimit)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		TotalCargoPosts:  totalCargo,
		TotalTruckPosts:  totalTrucks,
		ActiveUsers:      activeUsers,
		MonthlyTrend:     mergeMonthlyTrend(now, months, cargoBuckets, truckBuckets),
		CityBreakdown:    cityBreakdown(cities),
		RecentActivities: recent,
	}
	s.toCache(ctx, cacheKey, summary)
	return summary, nil
}

// mergeMonthlyTrend zero-fills the trailing window so every month appears
// exactly once, oldest first.
func mergeMonthlyTrend(now time.Time, months int, cargo, trucks []repository.MonthCount) []MonthlyTrendEntry {
	type bucket struct{ year, month int }
	cargoByBucket := make(map[bucket]int64, len(cargo))
	for _, entry := range cargo {
		cargoByBucket[bucket{entry.Year, entry.Month}] = entry.Count
	}
	truckByBucket := make(map[bucket]int64, len(trucks))
	for _, entry := range trucks {
		truckByBucket[bucket{entry.Year, entry.Month}] = entry.Count
	}

	trend := make([]MonthlyTrendEntry, 0, months)
	start := monthStart(now.AddDate(0, -(months - 1), 0))
	for i := 0; i < months; i++ {
		at := start.AddDate(0, i, 0)
		key := bucket{at.Year(), int(at.Month())}
		trend = append(trend, MonthlyTrendEntry{
			Year:       key.year,
			Month:      key.month,
			CargoCount: cargoByBucket[key],
			TruckCount: truckByBucket[key],
		})
	}
	return trend
}

func cityBreakdown(cities []repository.CityCount) []CityBreakdownEntry {
	result := make([]CityBreakdownEntry, 0, len(cities))
	for _, entry := range cities {
		result = append(result, CityBreakdownEntry{City: entry.City, Count: entry.Count})
	}
	return result
}

func monthStart(at time.Time) time.Time {
	return time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, at.Location())
}

func (s *DashboardService) fromCache(ctx context.Context, key string) *DashboardSummary {
	if s.cache == nil || s.cfg.CacheTTL() <= 0 {
		return nil
	}
	raw, err := s.cache.GetString(ctx, key)
	if err != nil {
		if !persistence.IsCacheMiss(err) {
			s.logger.Warn("dashboard cache read failed", zap.Error(err))
		}
		return nil
	}
	var summary DashboardSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil
	}
	return &summary
}

func (s *DashboardService) toCache(ctx context.Context, key string, summary *DashboardSummary) {
	if s.cache == nil || s.cfg.CacheTTL() <= 0 {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.cache.SetString(ctx, key, string(raw), s.cfg.CacheTTL()); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.Error(err))
	}
}

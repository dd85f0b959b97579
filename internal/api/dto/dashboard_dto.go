package dto

import (
	"time"

	"github.com/spec-kit/freight-board/internal/domain"
	"github.com/spec-kit/freight-board/internal/service"
)

// DashboardResponse is the merged summary payload.
type DashboardResponse struct {
	TotalCargoPosts  int64                        `json:"total_cargo_posts"`
	TotalTruckPosts  int64                        `json:"total_truck_posts"`
	ActiveUsers      int64                        `json:"active_users"`
	MonthlyTrend     []service.MonthlyTrendEntry  `json:"monthly_trend"`
	CityBreakdown    []service.CityBreakdownEntry `json:"city_breakdown"`
	RecentActivities []ActivityResponse           `json:"recent_activities"`
}

// ActivityResponse serializes one audit entry.
type ActivityResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"user_id"`
	UserName  string              `json:"user_name"`
	Action    string              `json:"action"`
	Type      domain.ActivityType `json:"type"`
	Details   map[string]any      `json:"details,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
}

// NewActivityResponse maps a domain activity.
func NewActivityResponse(entry *domain.Activity) ActivityResponse {
	return ActivityResponse{
		ID:        entry.ID,
		UserID:    entry.UserID,
		UserName:  entry.UserName,
		Action:    entry.Action,
		Type:      entry.Type,
		Details:   entry.Details,
		Timestamp: entry.Timestamp,
	}
}

// NewDashboardResponse maps the service summary.
func NewDashboardResponse(summary *service.DashboardSummary) DashboardResponse {
	activities := make([]ActivityResponse, 0, len(summary.RecentActivities))
	for i := range summary.RecentActivities {
		activities = append(activities, NewActivityResponse(&summary.RecentActivities[i]))
	}
	return DashboardResponse{
		TotalCargoPosts:  summary.TotalCargoPosts,
		TotalTruckPosts:  summary.TotalTruckPosts,
		ActiveUsers:      summary.ActiveUsers,
		MonthlyTrend:     summary.MonthlyTrend,
		CityBreakdown:    summary.CityBreakdown,
		RecentActivities: activities,
	}
}

// RecordActivityRequest is the explicit activity-creation payload.
type RecordActivityRequest struct {
	Action  string         `json:"action"`
	Type    string         `json:"type"`
	Details map[string]any `json:"details"`
}

package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/freight-board/internal/domain"
	"github.com/spec-kit/freight-board/internal/repository"
	apperrors "github.com/spec-kit/freight-board/pkg/util"
)

// ActivityService maintains the append-only audit trail.
type ActivityService struct {
	activities repository.ActivityRepository
	logger     *zap.Logger
}

// NewActivityService builds the service.
func NewActivityService(activities repository.ActivityRepository, logger *zap.Logger) *ActivityService {
	return &ActivityService{activities: activities, logger: logger}
}

// Record persists one activity entry with timestamp=now. The userName is a
// snapshot; it is not refreshed if the user later renames.
func (s *ActivityService) Record(ctx context.Context, user *domain.User, action string, activityType domain.ActivityType, details map[string]any) (*domain.Activity, error) {
	if action == "" {
		return nil, apperrors.NewValidationError("action required", nil)
	}
	if !activityType.Valid() {
		return nil, apperrors.NewValidationError("unknown activity type", map[string]any{"type": string(activityType)})
	}

	entry := &domain.Activity{
		UserID:    user.ID,
		UserName:  user.Name,
		Action:    action,
		Type:      activityType,
		Details:   details,
		Timestamp: time.Now(),
	}
	if err := s.activities.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// RecordQuiet logs and swallows persistence failures. Used on paths where
// the surrounding request must not fail because the audit write did.
func (s *ActivityService) RecordQuiet(ctx context.Context, user *domain.User, action string, activityType domain.ActivityType, details map[string]any) {
	if _, err := s.Record(ctx, user, action, activityType, details); err != nil {
		s.logger.Warn("activity write failed",
			zap.String("user_id", user.ID),
			zap.String("action", action),
			zap.Error(err))
	}
}

// Recent returns the newest entries, newest first. A nil userID means the
// global scope (admin); otherwise entries are restricted to that user.
func (s *ActivityService) Recent(ctx context.Context, userID *string, limit int) ([]domain.Activity, error) {
	return s.activities.ListRecent(ctx, userID, limit)
}

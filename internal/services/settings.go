package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/studyos-backend/internal/logger"
  "github.com/yungbote/studyos-backend/internal/repos"
  "github.com/yungbote/studyos-backend/internal/types"
)

const (
  minDailyGoal = 1
  maxDailyGoal = 50
)

type UserSettingsService interface {
  // GetSettings returns stored settings, or defaults when the user has
  // never saved any. The row is created lazily on first write.
  GetSettings(ctx context.Context, userID uuid.UUID) (*types.UserSettings, error)
  UpdateSettings(ctx context.Context, userID uuid.UUID, dailyGoal int) (*types.UserSettings, error)
}

type userSettingsService struct {
  db           *gorm.DB
  log          *logger.Logger
  settingsRepo repos.UserSettingsRepo
  analytics    AnalyticsService
}

func NewUserSettingsService(db *gorm.DB, log *logger.Logger, settingsRepo repos.UserSettingsRepo, analytics AnalyticsService) UserSettingsService {
  serviceLog := log.With("service", "UserSettingsService")
  return &userSettingsService{db: db, log: serviceLog, settingsRepo: settingsRepo, analytics: analytics}
}

func (s *userSettingsService) GetSettings(ctx context.Context, userID uuid.UUID) (*types.UserSettings, error) {
  if userID == uuid.Nil {
    return nil, ErrUnauthorized
  }
  settings, err := s.settingsRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to load settings: %w", err)
  }
  if settings == nil {
    return &types.UserSettings{UserID: userID, DailyGoal: DefaultDailyGoalTarget}, nil
  }
  return settings, nil
}

func (s *userSettingsService) UpdateSettings(ctx context.Context, userID uuid.UUID, dailyGoal int) (*types.UserSettings, error) {
  if userID == uuid.Nil {
    return nil, ErrUnauthorized
  }
  if dailyGoal < minDailyGoal || dailyGoal > maxDailyGoal {
    return nil, fmt.Errorf("%w: dailyGoal must be between %d and %d", ErrInvalid, minDailyGoal, maxDailyGoal)
  }
  row := &types.UserSettings{UserID: userID, DailyGoal: dailyGoal}
  if err := s.settingsRepo.Upsert(ctx, nil, row); err != nil {
    return nil, fmt.Errorf("Failed to save settings: %w", err)
  }
  settings, err := s.settingsRepo.GetByUserID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("Failed to reload settings: %w", err)
  }
  // Cached stats carry the goal, so a change must drop them.
  if s.analytics != nil {
    s.analytics.InvalidateUser(ctx, userID)
  }
  return settings, nil
}

package services

import (
  "context"
  "errors"
  "testing"

  "github.com/google/uuid"
)

func TestGetSettingsDefaults(t *testing.T) {
  svc := NewUserSettingsService(nil, newTestLogger(t), newFakeUserSettingsRepo(), nil)
  settings, err := svc.GetSettings(context.Background(), uuid.New())
  if err != nil {
    t.Fatalf("GetSettings failed: %v", err)
  }
  if settings.DailyGoal != DefaultDailyGoalTarget {
    t.Fatalf("expected default goal %d, got %d", DefaultDailyGoalTarget, settings.DailyGoal)
  }
}

func TestUpdateSettingsPersists(t *testing.T) {
  svc := NewUserSettingsService(nil, newTestLogger(t), newFakeUserSettingsRepo(), nil)
  userID := uuid.New()

  updated, err := svc.UpdateSettings(context.Background(), userID, 12)
  if err != nil {
    t.Fatalf("UpdateSettings failed: %v", err)
  }
  if updated.DailyGoal != 12 {
    t.Fatalf("expected goal 12, got %d", updated.DailyGoal)
  }
  settings, err := svc.GetSettings(context.Background(), userID)
  if err != nil {
    t.Fatalf("GetSettings failed: %v", err)
  }
  if settings.DailyGoal != 12 {
    t.Fatalf("goal did not persist, got %d", settings.DailyGoal)
  }
}

func TestUpdateSettingsValidatesRange(t *testing.T) {
  svc := NewUserSettingsService(nil, newTestLogger(t), newFakeUserSettingsRepo(), nil)
  for _, goal := range []int{0, -3, 51, 1000} {
    if _, err := svc.UpdateSettings(context.Background(), uuid.New(), goal); !errors.Is(err, ErrInvalid) {
      t.Fatalf("goal %d should be invalid, got %v", goal, err)
    }
  }
  for _, goal := range []int{1, 50} {
    if _, err := svc.UpdateSettings(context.Background(), uuid.New(), goal); err != nil {
      t.Fatalf("goal %d should be allowed: %v", goal, err)
    }
  }
}

package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/studyos-backend/internal/logger"
  "github.com/yungbote/studyos-backend/internal/types"
)

type UserSettingsRepo interface {
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserSettings, error)
  // Upsert lazily creates the row on first write, by unique user_id.
  Upsert(ctx context.Context, tx *gorm.DB, row *types.UserSettings) error
}

type userSettingsRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserSettingsRepo(db *gorm.DB, baseLog *logger.Logger) UserSettingsRepo {
  repoLog := baseLog.With("repo", "UserSettingsRepo")
  return &userSettingsRepo{db: db, log: repoLog}
}

func (r *userSettingsRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.UserSettings, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if userID == uuid.Nil {
    return nil, nil
  }

  var results []*types.UserSettings
  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Limit(1).
    Find(&results).Error; err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  return results[0], nil
}

func (r *userSettingsRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.UserSettings) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", row.UserID).
    Assign(map[string]interface{}{"daily_goal": row.DailyGoal}).
    FirstOrCreate(row).Error; err != nil {
    return err
  }
  return nil
}

package repos

import (
  "context"
  "strings"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/studyos-backend/internal/logger"
  "github.com/yungbote/studyos-backend/internal/types"
)

type ApiKeyRepo interface {
  // Create persists the key row. When the storage schema lacks the
  // key_last4 column (older deployments), the insert is retried without
  // that field instead of failing.
  Create(ctx context.Context, tx *gorm.DB, key *types.ApiKey) (*types.ApiKey, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ApiKey, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ApiKey, error)
  GetByHash(ctx context.Context, tx *gorm.DB, keyHash string) (*types.ApiKey, error)
  CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
  UpdateLastUsed(ctx context.Context, tx *gorm.DB, keyID uuid.UUID, when time.Time) error
  FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type apiKeyRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewApiKeyRepo(db *gorm.DB, baseLog *logger.Logger) ApiKeyRepo {
  repoLog := baseLog.With("repo", "ApiKeyRepo")
  return &apiKeyRepo{db: db, log: repoLog}
}

func (r *apiKeyRepo) Create(ctx context.Context, tx *gorm.DB, key *types.ApiKey) (*types.ApiKey, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if key == nil {
    return nil, nil
  }

  err := createKeyRow(r.log, key, func(omitHint bool) error {
    q := transaction.WithContext(ctx)
    if omitHint {
      q = q.Omit("KeyLast4")
    }
    return q.Create(key).Error
  })
  if err != nil {
    return nil, err
  }
  return key, nil
}

// createKeyRow runs the insert, retrying once without the display-hint column
// when the storage schema predates it.
func createKeyRow(log *logger.Logger, key *types.ApiKey, insert func(omitHint bool) error) error {
  err := insert(false)
  if err == nil {
    return nil
  }
  if !isUnknownColumnErr(err) {
    return err
  }
  // Schema drift: retry without the display-hint column.
  log.Warn("key_last4 column rejected by storage schema, retrying without it", "error", err)
  key.KeyLast4 = ""
  return insert(true)
}

// isUnknownColumnErr matches the "unknown attribute" class of storage errors
// (postgres 42703 undefined_column and close cousins).
func isUnknownColumnErr(err error) bool {
  if err == nil {
    return false
  }
  msg := strings.ToLower(err.Error())
  if strings.Contains(msg, "42703") {
    return true
  }
  if strings.Contains(msg, "column") && strings.Contains(msg, "does not exist") {
    return true
  }
  if strings.Contains(msg, "unknown attribute") || strings.Contains(msg, "unknown column") {
    return true
  }
  return false
}

func (r *apiKeyRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ApiKey, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.ApiKey
  if len(ids) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *apiKeyRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.ApiKey, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.ApiKey
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *apiKeyRepo) GetByHash(ctx context.Context, tx *gorm.DB, keyHash string) (*types.ApiKey, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if keyHash == "" {
    return nil, nil
  }

  var results []*types.ApiKey
  if err := transaction.WithContext(ctx).
    Where("key_hash = ?", keyHash).
    Limit(1).
    Find(&results).Error; err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  return results[0], nil
}

func (r *apiKeyRepo) CountByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if userID == uuid.Nil {
    return 0, nil
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.ApiKey{}).
    Where("user_id = ?", userID).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (r *apiKeyRepo) UpdateLastUsed(ctx context.Context, tx *gorm.DB, keyID uuid.UUID, when time.Time) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if keyID == uuid.Nil {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Model(&types.ApiKey{}).
    Where("id = ?", keyID).
    Update("last_used", when).Error; err != nil {
    return err
  }
  return nil
}

func (r *apiKeyRepo) FullDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(ids) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Unscoped().
    Where("id IN ?", ids).
    Delete(&types.ApiKey{}).Error; err != nil {
    return err
  }
  return nil
}

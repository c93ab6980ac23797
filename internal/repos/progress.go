package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/studyos-backend/internal/logger"
  "github.com/yungbote/studyos-backend/internal/types"
)

type ProgressRepo interface {
  Create(ctx context.Context, tx *gorm.DB, rows []*types.Progress) ([]*types.Progress, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Progress, error)
  GetCompletedByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Progress, error)
  GetByUserAndChapterIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, chapterIDs []uuid.UUID) ([]*types.Progress, error)
  Update(ctx context.Context, tx *gorm.DB, row *types.Progress) error
  SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
  SoftDeleteByUserAndChapterIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, chapterIDs []uuid.UUID) error
}

type progressRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
  repoLog := baseLog.With("repo", "ProgressRepo")
  return &progressRepo{db: db, log: repoLog}
}

func (r *progressRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Progress) ([]*types.Progress, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(rows) == 0 {
    return []*types.Progress{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
    return nil, err
  }
  return rows, nil
}

func (r *progressRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Progress, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Progress
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *progressRepo) GetCompletedByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Progress, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Progress
  if userID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND status = ?", userID, types.ProgressStatusCompleted).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *progressRepo) GetByUserAndChapterIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, chapterIDs []uuid.UUID) ([]*types.Progress, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Progress
  if userID == uuid.Nil || len(chapterIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND chapter_id IN ?", userID, chapterIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *progressRepo) Update(ctx context.Context, tx *gorm.DB, row *types.Progress) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if row == nil {
    return nil
  }

  if err := transaction.WithContext(ctx).Save(row).Error; err != nil {
    return err
  }
  return nil
}

func (r *progressRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(ids) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Delete(&types.Progress{}).Error; err != nil {
    return err
  }
  return nil
}

func (r *progressRepo) SoftDeleteByUserAndChapterIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, chapterIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if userID == uuid.Nil || len(chapterIDs) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND chapter_id IN ?", userID, chapterIDs).
    Delete(&types.Progress{}).Error; err != nil {
    return err
  }
  return nil
}

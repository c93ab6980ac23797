package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/studyos-backend/internal/logger"
  "github.com/yungbote/studyos-backend/internal/types"
)

type ResourceRepo interface {
  Create(ctx context.Context, tx *gorm.DB, resources []*types.Resource) ([]*types.Resource, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Resource, error)
  GetByChapterIDs(ctx context.Context, tx *gorm.DB, chapterIDs []uuid.UUID) ([]*types.Resource, error)
  SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
  SoftDeleteByChapterIDs(ctx context.Context, tx *gorm.DB, chapterIDs []uuid.UUID) error
}

type resourceRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewResourceRepo(db *gorm.DB, baseLog *logger.Logger) ResourceRepo {
  repoLog := baseLog.With("repo", "ResourceRepo")
  return &resourceRepo{db: db, log: repoLog}
}

func (r *resourceRepo) Create(ctx context.Context, tx *gorm.DB, resources []*types.Resource) ([]*types.Resource, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(resources) == 0 {
    return []*types.Resource{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&resources).Error; err != nil {
    return nil, err
  }
  return resources, nil
}

func (r *resourceRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Resource, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Resource
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

func (r *resourceRepo) GetByChapterIDs(ctx context.Context, tx *gorm.DB, chapterIDs []uuid.UUID) ([]*types.Resource, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Resource
  if len(chapterIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("chapter_id IN ?", chapterIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *resourceRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(ids) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Delete(&types.Resource{}).Error; err != nil {
    return err
  }
  return nil
}

func (r *resourceRepo) SoftDeleteByChapterIDs(ctx context.Context, tx *gorm.DB, chapterIDs []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(chapterIDs) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("chapter_id IN ?", chapterIDs).
    Delete(&types.Resource{}).Error; err != nil {
    return err
  }
  return nil
}

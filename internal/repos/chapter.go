package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/studyos-backend/internal/logger"
  "github.com/yungbote/studyos-backend/internal/types"
)

type ChapterRepo interface {
  Create(ctx context.Context, tx *gorm.DB, chapters []*types.Chapter) ([]*types.Chapter, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Chapter, error)
  GetByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Chapter, error)
  MaxPositionForCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (int, error)
  Update(ctx context.Context, tx *gorm.DB, chapter *types.Chapter) error
  SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type chapterRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewChapterRepo(db *gorm.DB, baseLog *logger.Logger) ChapterRepo {
  repoLog := baseLog.With("repo", "ChapterRepo")
  return &chapterRepo{db: db, log: repoLog}
}

func (r *chapterRepo) Create(ctx context.Context, tx *gorm.DB, chapters []*types.Chapter) ([]*types.Chapter, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(chapters) == 0 {
    return []*types.Chapter{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&chapters).Error; err != nil {
    return nil, err
  }
  return chapters, nil
}

func (r *chapterRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Chapter, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Chapter
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

func (r *chapterRepo) GetByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Chapter, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Chapter
  if len(courseIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("course_id IN ?", courseIDs).
    Order("position ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *chapterRepo) MaxPositionForCourse(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (int, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if courseID == uuid.Nil {
    return 0, nil
  }

  var max *int
  if err := transaction.WithContext(ctx).
    Model(&types.Chapter{}).
    Where("course_id = ?", courseID).
    Select("MAX(position)").
    Scan(&max).Error; err != nil {
    return 0, err
  }
  if max == nil {
    return 0, nil
  }
  return *max, nil
}

func (r *chapterRepo) Update(ctx context.Context, tx *gorm.DB, chapter *types.Chapter) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if chapter == nil {
    return nil
  }

  if err := transaction.WithContext(ctx).Save(chapter).Error; err != nil {
    return err
  }
  return nil
}

func (r *chapterRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(ids) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Delete(&types.Chapter{}).Error; err != nil {
    return err
  }
  return nil
}

package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/studyos-backend/internal/logger"
  "github.com/yungbote/studyos-backend/internal/types"
)

type ImageNoteRepo interface {
  Create(ctx context.Context, tx *gorm.DB, notes []*types.ImageNote) ([]*types.ImageNote, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ImageNote, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.ImageNote, error)
  GetByUserAndCourseID(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) ([]*types.ImageNote, error)
  SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type imageNoteRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewImageNoteRepo(db *gorm.DB, baseLog *logger.Logger) ImageNoteRepo {
  repoLog := baseLog.With("repo", "ImageNoteRepo")
  return &imageNoteRepo{db: db, log: repoLog}
}

func (r *imageNoteRepo) Create(ctx context.Context, tx *gorm.DB, notes []*types.ImageNote) ([]*types.ImageNote, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(notes) == 0 {
    return []*types.ImageNote{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&notes).Error; err != nil {
    return nil, err
  }
  return notes, nil
}

func (r *imageNoteRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.ImageNote, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.ImageNote
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

func (r *imageNoteRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.ImageNote, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.ImageNote
  if userID == uuid.Nil {
    return results, nil
  }

  query := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at DESC")
  if limit > 0 {
    query = query.Limit(limit)
  }
  if err := query.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *imageNoteRepo) GetByUserAndCourseID(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) ([]*types.ImageNote, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.ImageNote
  if userID == uuid.Nil || courseID == uuid.Nil {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND course_id = ?", userID, courseID).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *imageNoteRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(ids) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Delete(&types.ImageNote{}).Error; err != nil {
    return err
  }
  return nil
}

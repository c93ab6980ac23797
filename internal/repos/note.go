package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/studyos-backend/internal/logger"
  "github.com/yungbote/studyos-backend/internal/types"
)

type NoteFilter struct {
  UserID    uuid.UUID
  CourseID  *uuid.UUID
  ChapterID *uuid.UUID
  Limit     int
}

type NoteRepo interface {
  Create(ctx context.Context, tx *gorm.DB, notes []*types.Note) ([]*types.Note, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Note, error)
  List(ctx context.Context, tx *gorm.DB, filter NoteFilter) ([]*types.Note, error)
  Update(ctx context.Context, tx *gorm.DB, note *types.Note) error
  SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
  SoftDeleteByUserAndCourseID(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) error
}

type noteRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewNoteRepo(db *gorm.DB, baseLog *logger.Logger) NoteRepo {
  repoLog := baseLog.With("repo", "NoteRepo")
  return &noteRepo{db: db, log: repoLog}
}

func (r *noteRepo) Create(ctx context.Context, tx *gorm.DB, notes []*types.Note) ([]*types.Note, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(notes) == 0 {
    return []*types.Note{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&notes).Error; err != nil {
    return nil, err
  }
  return notes, nil
}

func (r *noteRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Note, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Note
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

func (r *noteRepo) List(ctx context.Context, tx *gorm.DB, filter NoteFilter) ([]*types.Note, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.Note
  if filter.UserID == uuid.Nil {
    return results, nil
  }

  query := transaction.WithContext(ctx).
    Where("user_id = ?", filter.UserID).
    Order("created_at DESC")
  if filter.CourseID != nil {
    query = query.Where("course_id = ?", *filter.CourseID)
  }
  if filter.ChapterID != nil {
    query = query.Where("chapter_id = ?", *filter.ChapterID)
  }
  if filter.Limit > 0 {
    query = query.Limit(filter.Limit)
  }
  if err := query.Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *noteRepo) Update(ctx context.Context, tx *gorm.DB, note *types.Note) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if note == nil {
    return nil
  }

  if err := transaction.WithContext(ctx).Save(note).Error; err != nil {
    return err
  }
  return nil
}

func (r *noteRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if len(ids) == 0 {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Delete(&types.Note{}).Error; err != nil {
    return err
  }
  return nil
}

func (r *noteRepo) SoftDeleteByUserAndCourseID(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  if userID == uuid.Nil || courseID == uuid.Nil {
    return nil
  }

  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND course_id = ?", userID, courseID).
    Delete(&types.Note{}).Error; err != nil {
    return err
  }
  return nil
}

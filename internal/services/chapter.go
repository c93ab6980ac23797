package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "golang.org/x/sync/errgroup"
  "gorm.io/gorm"

  "github.com/yungbote/studyos-backend/internal/logger"
  "github.com/yungbote/studyos-backend/internal/normalization"
  "github.com/yungbote/studyos-backend/internal/repos"
  "github.com/yungbote/studyos-backend/internal/types"
)

const maxChapterTitleLen = 255

type UpdateChapterInput struct {
  Title *string `json:"title"`
  Order *int    `json:"order"`
}

type ChapterDetail struct {
  *types.Chapter
  Completed bool              `json:"completed"`
  Resources []*types.Resource `json:"resources"`
}

type ChapterService interface {
  // AddChapters appends titled chapters to a course, continuing from the
  // highest existing position.
  AddChapters(ctx context.Context, userID, courseID uuid.UUID, titles []string) ([]*types.Chapter, error)
  ListChapters(ctx context.Context, userID, courseID uuid.UUID) ([]ChapterWithProgress, error)
  GetChapter(ctx context.Context, userID, chapterID uuid.UUID) (*ChapterDetail, error)
  UpdateChapter(ctx context.Context, userID, chapterID uuid.UUID, input UpdateChapterInput) (*types.Chapter, error)
  DeleteChapter(ctx context.Context, userID, chapterID uuid.UUID) error
  // CompleteChapter marks the chapter done for the user and returns the
  // refreshed course rollup. Completing twice is a no-op for the count.
  CompleteChapter(ctx context.Context, userID, chapterID uuid.UUID) (*CourseStats, error)
  ResetChapter(ctx context.Context, userID, chapterID uuid.UUID) (*CourseStats, error)

  // AuthorizeChapter walks chapter -> course -> author. A chapter the user
  // cannot see is reported as missing.
  AuthorizeChapter(ctx context.Context, tx *gorm.DB, userID, chapterID uuid.UUID) (*types.Chapter, error)
}

type chapterService struct {
  db           *gorm.DB
  log          *logger.Logger
  courseRepo   repos.CourseRepo
  chapterRepo  repos.ChapterRepo
  progressRepo repos.ProgressRepo
  resourceRepo repos.ResourceRepo
  analytics    AnalyticsService
}

func NewChapterService(
  db *gorm.DB,
  log *logger.Logger,
  courseRepo repos.CourseRepo,
  chapterRepo repos.ChapterRepo,
  progressRepo repos.ProgressRepo,
  resourceRepo repos.ResourceRepo,
  analytics AnalyticsService,
) ChapterService {
  serviceLog := log.With("service", "ChapterService")
  return &chapterService{
    db:           db,
    log:          serviceLog,
    courseRepo:   courseRepo,
    chapterRepo:  chapterRepo,
    progressRepo: progressRepo,
    resourceRepo: resourceRepo,
    analytics:    analytics,
  }
}

func (s *chapterService) AuthorizeChapter(ctx context.Context, tx *gorm.DB, userID, chapterID uuid.UUID) (*types.Chapter, error) {
  chapters, err := s.chapterRepo.GetByIDs(ctx, tx, []uuid.UUID{chapterID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load chapter: %w", err)
  }
  if len(chapters) == 0 || chapters[0] == nil {
    return nil, ErrNotFound
  }
  chapter := chapters[0]
  courses, err := s.courseRepo.GetByIDs(ctx, tx, []uuid.UUID{chapter.CourseID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load course: %w", err)
  }
  if len(courses) == 0 || courses[0] == nil || courses[0].AuthorID != userID {
    return nil, ErrNotFound
  }
  return chapter, nil
}

func (s *chapterService) AddChapters(ctx context.Context, userID, courseID uuid.UUID, titles []string) ([]*types.Chapter, error) {
  if userID == uuid.Nil {
    return nil, ErrUnauthorized
  }
  courses, err := s.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{courseID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load course: %w", err)
  }
  if len(courses) == 0 || courses[0] == nil || courses[0].AuthorID != userID {
    return nil, ErrNotFound
  }

  cleaned := make([]string, 0, len(titles))
  for _, title := range titles {
    title = normalization.TrimInputString(title)
    if title == "" {
      continue
    }
    cleaned = append(cleaned, normalization.ClampString(title, maxChapterTitleLen))
  }
  if len(cleaned) == 0 {
    return nil, fmt.Errorf("%w: at least one chapter title is required", ErrInvalid)
  }

  var created []*types.Chapter
  err = runInTransaction(ctx, s.db, func(tx *gorm.DB) error {
    maxPos, err := s.chapterRepo.MaxPositionForCourse(ctx, tx, courseID)
    if err != nil {
      return fmt.Errorf("Failed to read chapter positions: %w", err)
    }
    chapters := make([]*types.Chapter, 0, len(cleaned))
    for i, title := range cleaned {
      chapters = append(chapters, &types.Chapter{
        ID:       uuid.New(),
        CourseID: courseID,
        Title:    title,
        Position: maxPos + i + 1,
      })
    }
    created, err = s.chapterRepo.Create(ctx, tx, chapters)
    if err != nil {
      return fmt.Errorf("Failed to create chapters: %w", err)
    }
    return nil
  })
  if err != nil {
    return nil, err
  }
  return created, nil
}

func (s *chapterService) ListChapters(ctx context.Context, userID, courseID uuid.UUID) ([]ChapterWithProgress, error) {
  if userID == uuid.Nil {
    return nil, ErrUnauthorized
  }
  courses, err := s.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{courseID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load course: %w", err)
  }
  if len(courses) == 0 || courses[0] == nil || courses[0].AuthorID != userID {
    return nil, ErrNotFound
  }

  chapters, err := s.chapterRepo.GetByCourseIDs(ctx, nil, []uuid.UUID{courseID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load chapters: %w", err)
  }
  chapterIDs := make([]uuid.UUID, 0, len(chapters))
  for _, ch := range chapters {
    chapterIDs = append(chapterIDs, ch.ID)
  }
  completed := make(map[uuid.UUID]bool)
  if len(chapterIDs) > 0 {
    progress, err := s.progressRepo.GetByUserAndChapterIDs(ctx, nil, userID, chapterIDs)
    if err != nil {
      return nil, fmt.Errorf("Failed to load progress: %w", err)
    }
    for _, p := range progress {
      if p.Status == types.ProgressStatusCompleted {
        completed[p.ChapterID] = true
      }
    }
  }

  out := make([]ChapterWithProgress, 0, len(chapters))
  for _, ch := range chapters {
    out = append(out, ChapterWithProgress{Chapter: ch, Completed: completed[ch.ID]})
  }
  return out, nil
}

func (s *chapterService) GetChapter(ctx context.Context, userID, chapterID uuid.UUID) (*ChapterDetail, error) {
  if userID == uuid.Nil {
    return nil, ErrUnauthorized
  }
  chapter, err := s.AuthorizeChapter(ctx, nil, userID, chapterID)
  if err != nil {
    return nil, err
  }

  var (
    resources []*types.Resource
    progress  []*types.Progress
  )
  g, gctx := errgroup.WithContext(ctx)
  g.Go(func() error {
    var err error
    resources, err = s.resourceRepo.GetByChapterIDs(gctx, nil, []uuid.UUID{chapterID})
    if err != nil {
      return fmt.Errorf("Failed to load resources: %w", err)
    }
    return nil
  })
  g.Go(func() error {
    var err error
    progress, err = s.progressRepo.GetByUserAndChapterIDs(gctx, nil, userID, []uuid.UUID{chapterID})
    if err != nil {
      return fmt.Errorf("Failed to load progress: %w", err)
    }
    return nil
  })
  if err := g.Wait(); err != nil {
    return nil, err
  }

  completed := false
  for _, p := range progress {
    if p.Status == types.ProgressStatusCompleted {
      completed = true
      break
    }
  }
  if resources == nil {
    resources = []*types.Resource{}
  }
  return &ChapterDetail{Chapter: chapter, Completed: completed, Resources: resources}, nil
}

func (s *chapterService) UpdateChapter(ctx context.Context, userID, chapterID uuid.UUID, input UpdateChapterInput) (*types.Chapter, error) {
  if userID == uuid.Nil {
    return nil, ErrUnauthorized
  }
  chapter, err := s.AuthorizeChapter(ctx, nil, userID, chapterID)
  if err != nil {
    return nil, err
  }
  if input.Title != nil {
    title := normalization.TrimInputString(*input.Title)
    if title == "" {
      return nil, fmt.Errorf("%w: title cannot be empty", ErrInvalid)
    }
    chapter.Title = normalization.ClampString(title, maxChapterTitleLen)
  }
  if input.Order != nil {
    if *input.Order < 1 {
      return nil, fmt.Errorf("%w: order must be at least 1", ErrInvalid)
    }
    chapter.Position = *input.Order
  }
  if err := s.chapterRepo.Update(ctx, nil, chapter); err != nil {
    return nil, fmt.Errorf("Failed to update chapter: %w", err)
  }
  return chapter, nil
}

func (s *chapterService) DeleteChapter(ctx context.Context, userID, chapterID uuid.UUID) error {
  if userID == uuid.Nil {
    return ErrUnauthorized
  }
  chapter, err := s.AuthorizeChapter(ctx, nil, userID, chapterID)
  if err != nil {
    return err
  }

  err = runInTransaction(ctx, s.db, func(tx *gorm.DB) error {
    if err := s.progressRepo.SoftDeleteByUserAndChapterIDs(ctx, tx, userID, []uuid.UUID{chapter.ID}); err != nil {
      return fmt.Errorf("Failed to delete progress: %w", err)
    }
    if err := s.resourceRepo.SoftDeleteByChapterIDs(ctx, tx, []uuid.UUID{chapter.ID}); err != nil {
      return fmt.Errorf("Failed to delete resources: %w", err)
    }
    if err := s.chapterRepo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{chapter.ID}); err != nil {
      return fmt.Errorf("Failed to delete chapter: %w", err)
    }
    return nil
  })
  if err != nil {
    return err
  }

  if s.analytics != nil {
    s.analytics.InvalidateUser(ctx, userID)
  }
  return nil
}

func (s *chapterService) CompleteChapter(ctx context.Context, userID, chapterID uuid.UUID) (*CourseStats, error) {
  if userID == uuid.Nil {
    return nil, ErrUnauthorized
  }
  chapter, err := s.AuthorizeChapter(ctx, nil, userID, chapterID)
  if err != nil {
    return nil, err
  }

  err = runInTransaction(ctx, s.db, func(tx *gorm.DB) error {
    existing, err := s.progressRepo.GetByUserAndChapterIDs(ctx, tx, userID, []uuid.UUID{chapterID})
    if err != nil {
      return fmt.Errorf("Failed to load progress: %w", err)
    }
    now := time.Now()
    if len(existing) > 0 {
      // Duplicates can slip in without a unique constraint; update the
      // first row and leave the rest alone.
      row := existing[0]
      if row.Status == types.ProgressStatusCompleted {
        return nil
      }
      row.Status = types.ProgressStatusCompleted
      row.CompletedAt = &now
      if err := s.progressRepo.Update(ctx, tx, row); err != nil {
        return fmt.Errorf("Failed to update progress: %w", err)
      }
      return nil
    }
    row := &types.Progress{
      ID:          uuid.New(),
      UserID:      userID,
      ChapterID:   chapterID,
      Status:      types.ProgressStatusCompleted,
      CompletedAt: &now,
    }
    if _, err := s.progressRepo.Create(ctx, tx, []*types.Progress{row}); err != nil {
      return fmt.Errorf("Failed to create progress: %w", err)
    }
    return nil
  })
  if err != nil {
    return nil, err
  }

  if s.analytics != nil {
    s.analytics.InvalidateUser(ctx, userID)
  }
  return s.courseRollup(ctx, userID, chapter.CourseID)
}

// ResetChapter removes the user's progress rows for the chapter. Resetting a
// chapter that was never completed changes nothing.
func (s *chapterService) ResetChapter(ctx context.Context, userID, chapterID uuid.UUID) (*CourseStats, error) {
  if userID == uuid.Nil {
    return nil, ErrUnauthorized
  }
  chapter, err := s.AuthorizeChapter(ctx, nil, userID, chapterID)
  if err != nil {
    return nil, err
  }

  err = runInTransaction(ctx, s.db, func(tx *gorm.DB) error {
    existing, err := s.progressRepo.GetByUserAndChapterIDs(ctx, tx, userID, []uuid.UUID{chapterID})
    if err != nil {
      return fmt.Errorf("Failed to load progress: %w", err)
    }
    if len(existing) == 0 {
      return nil
    }
    if err := s.progressRepo.SoftDeleteByUserAndChapterIDs(ctx, tx, userID, []uuid.UUID{chapterID}); err != nil {
      return fmt.Errorf("Failed to delete progress: %w", err)
    }
    return nil
  })
  if err != nil {
    return nil, err
  }

  if s.analytics != nil {
    s.analytics.InvalidateUser(ctx, userID)
  }
  return s.courseRollup(ctx, userID, chapter.CourseID)
}

// courseRollup recomputes the completion figures for a course, counting each
// chapter at most once even if duplicate progress rows exist.
func (s *chapterService) courseRollup(ctx context.Context, userID, courseID uuid.UUID) (*CourseStats, error) {
  chapters, err := s.chapterRepo.GetByCourseIDs(ctx, nil, []uuid.UUID{courseID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load chapters: %w", err)
  }
  chapterIDs := make([]uuid.UUID, 0, len(chapters))
  for _, ch := range chapters {
    chapterIDs = append(chapterIDs, ch.ID)
  }
  completed := make(map[uuid.UUID]bool)
  if len(chapterIDs) > 0 {
    progress, err := s.progressRepo.GetByUserAndChapterIDs(ctx, nil, userID, chapterIDs)
    if err != nil {
      return nil, fmt.Errorf("Failed to load progress: %w", err)
    }
    for _, p := range progress {
      if p.Status == types.ProgressStatusCompleted {
        completed[p.ChapterID] = true
      }
    }
  }
  stats := computeCourseStats(len(chapters), len(completed))
  return &stats, nil
}

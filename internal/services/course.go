package services

import (
  "context"
  "fmt"
  "math"

  "github.com/google/uuid"
  "golang.org/x/sync/errgroup"
  "gorm.io/gorm"

  "github.com/yungbote/studyos-backend/internal/logger"
  "github.com/yungbote/studyos-backend/internal/normalization"
  "github.com/yungbote/studyos-backend/internal/repos"
  "github.com/yungbote/studyos-backend/internal/types"
)

const (
  maxCourseTitleLen       = 255
  maxCourseDescriptionLen = 5000
  defaultCourseListLimit  = 100
)

type CreateCourseInput struct {
  Title       string   `json:"title"`
  Description string   `json:"description"`
  Published   bool     `json:"published"`
  Chapters    []string `json:"chapters"`
}

type UpdateCourseInput struct {
  Title       *string `json:"title"`
  Description *string `json:"description"`
  Published   *bool   `json:"published"`
}

// CourseStats is the per-course progress rollup. Percent counts distinct
// completed chapters against the chapter total.
type CourseStats struct {
  TotalChapters     int `json:"totalChapters"`
  CompletedChapters int `json:"completedChapters"`
  Percent           int `json:"percent"`
}

type ChapterWithProgress struct {
  *types.Chapter
  Completed bool `json:"completed"`
}

type CourseDetail struct {
  *types.Course
  Chapters []ChapterWithProgress `json:"chapters"`
  Stats    CourseStats           `json:"stats"`
}

type CourseListEntry struct {
  *types.Course
  Chapters []*types.Chapter `json:"chapters,omitempty"`
}

type CourseService interface {
  CreateCourse(ctx context.Context, userID uuid.UUID, input CreateCourseInput) (*CourseDetail, error)
  ListCourses(ctx context.Context, userID uuid.UUID, includeChapters bool) ([]CourseListEntry, error)
  GetCourseDetail(ctx context.Context, userID, courseID uuid.UUID) (*CourseDetail, error)
  UpdateCourse(ctx context.Context, userID, courseID uuid.UUID, input UpdateCourseInput) (*types.Course, error)
  // DeleteCourse removes the course and everything hanging off it. Deleting
  // an already-deleted course succeeds; only a course that never existed
  // (or belongs to someone else) is a not-found.
  DeleteCourse(ctx context.Context, userID, courseID uuid.UUID) error

  // AuthorizeCourse resolves a course the user owns. Foreign ownership is
  // indistinguishable from absence.
  AuthorizeCourse(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) (*types.Course, error)
}

type courseService struct {
  db            *gorm.DB
  log           *logger.Logger
  courseRepo    repos.CourseRepo
  chapterRepo   repos.ChapterRepo
  progressRepo  repos.ProgressRepo
  resourceRepo  repos.ResourceRepo
  noteRepo      repos.NoteRepo
  imageNoteRepo repos.ImageNoteRepo
  analytics     AnalyticsService
}

func NewCourseService(
  db *gorm.DB,
  log *logger.Logger,
  courseRepo repos.CourseRepo,
  chapterRepo repos.ChapterRepo,
  progressRepo repos.ProgressRepo,
  resourceRepo repos.ResourceRepo,
  noteRepo repos.NoteRepo,
  imageNoteRepo repos.ImageNoteRepo,
  analytics AnalyticsService,
) CourseService {
  serviceLog := log.With("service", "CourseService")
  return &courseService{
    db:            db,
    log:           serviceLog,
    courseRepo:    courseRepo,
    chapterRepo:   chapterRepo,
    progressRepo:  progressRepo,
    resourceRepo:  resourceRepo,
    noteRepo:      noteRepo,
    imageNoteRepo: imageNoteRepo,
    analytics:     analytics,
  }
}

func (s *courseService) AuthorizeCourse(ctx context.Context, tx *gorm.DB, userID, courseID uuid.UUID) (*types.Course, error) {
  courses, err := s.courseRepo.GetByIDs(ctx, tx, []uuid.UUID{courseID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load course: %w", err)
  }
  if len(courses) == 0 || courses[0] == nil || courses[0].AuthorID != userID {
    return nil, ErrNotFound
  }
  return courses[0], nil
}

func (s *courseService) CreateCourse(ctx context.Context, userID uuid.UUID, input CreateCourseInput) (*CourseDetail, error) {
  if userID == uuid.Nil {
    return nil, ErrUnauthorized
  }
  title := normalization.TrimInputString(input.Title)
  if title == "" {
    return nil, fmt.Errorf("%w: title is required", ErrInvalid)
  }
  title = normalization.ClampString(title, maxCourseTitleLen)
  description := normalization.ClampString(normalization.TrimInputString(input.Description), maxCourseDescriptionLen)

  course := &types.Course{
    ID:          uuid.New(),
    AuthorID:    userID,
    Title:       title,
    Description: description,
    Published:   input.Published,
  }
  chapters := make([]*types.Chapter, 0, len(input.Chapters))
  for i, chapterTitle := range input.Chapters {
    chapterTitle = normalization.TrimInputString(chapterTitle)
    if chapterTitle == "" {
      continue
    }
    chapters = append(chapters, &types.Chapter{
      ID:       uuid.New(),
      CourseID: course.ID,
      Title:    normalization.ClampString(chapterTitle, maxCourseTitleLen),
      Position: i + 1,
    })
  }

  err := runInTransaction(ctx, s.db, func(tx *gorm.DB) error {
    if _, err := s.courseRepo.Create(ctx, tx, []*types.Course{course}); err != nil {
      return fmt.Errorf("Failed to create course: %w", err)
    }
    if len(chapters) > 0 {
      if _, err := s.chapterRepo.Create(ctx, tx, chapters); err != nil {
        return fmt.Errorf("Failed to create chapters: %w", err)
      }
    }
    return nil
  })
  if err != nil {
    return nil, err
  }

  detail := &CourseDetail{
    Course:   course,
    Chapters: make([]ChapterWithProgress, 0, len(chapters)),
    Stats:    CourseStats{TotalChapters: len(chapters)},
  }
  for _, ch := range chapters {
    detail.Chapters = append(detail.Chapters, ChapterWithProgress{Chapter: ch})
  }
  return detail, nil
}

func (s *courseService) ListCourses(ctx context.Context, userID uuid.UUID, includeChapters bool) ([]CourseListEntry, error) {
  if userID == uuid.Nil {
    return nil, ErrUnauthorized
  }
  courses, err := s.courseRepo.GetByAuthorID(ctx, nil, userID, defaultCourseListLimit)
  if err != nil {
    return nil, fmt.Errorf("Failed to list courses: %w", err)
  }
  entries := make([]CourseListEntry, 0, len(courses))
  for _, c := range courses {
    entries = append(entries, CourseListEntry{Course: c})
  }
  if !includeChapters || len(courses) == 0 {
    return entries, nil
  }

  courseIDs := make([]uuid.UUID, 0, len(courses))
  for _, c := range courses {
    courseIDs = append(courseIDs, c.ID)
  }
  chapters, err := s.chapterRepo.GetByCourseIDs(ctx, nil, courseIDs)
  if err != nil {
    return nil, fmt.Errorf("Failed to load chapters: %w", err)
  }
  byCourse := make(map[uuid.UUID][]*types.Chapter)
  for _, ch := range chapters {
    byCourse[ch.CourseID] = append(byCourse[ch.CourseID], ch)
  }
  for i := range entries {
    entries[i].Chapters = byCourse[entries[i].Course.ID]
  }
  return entries, nil
}

func (s *courseService) GetCourseDetail(ctx context.Context, userID, courseID uuid.UUID) (*CourseDetail, error) {
  if userID == uuid.Nil {
    return nil, ErrUnauthorized
  }
  course, err := s.AuthorizeCourse(ctx, nil, userID, courseID)
  if err != nil {
    return nil, err
  }

  var (
    chapters []*types.Chapter
    progress []*types.Progress
  )
  g, gctx := errgroup.WithContext(ctx)
  g.Go(func() error {
    var err error
    chapters, err = s.chapterRepo.GetByCourseIDs(gctx, nil, []uuid.UUID{courseID})
    if err != nil {
      return fmt.Errorf("Failed to load chapters: %w", err)
    }
    return nil
  })
  g.Go(func() error {
    var err error
    progress, err = s.progressRepo.GetByUserID(gctx, nil, userID)
    if err != nil {
      return fmt.Errorf("Failed to load progress: %w", err)
    }
    return nil
  })
  if err := g.Wait(); err != nil {
    return nil, err
  }

  completed := make(map[uuid.UUID]bool)
  for _, p := range progress {
    if p.Status == types.ProgressStatusCompleted {
      completed[p.ChapterID] = true
    }
  }

  detail := &CourseDetail{
    Course:   course,
    Chapters: make([]ChapterWithProgress, 0, len(chapters)),
  }
  completedCount := 0
  for _, ch := range chapters {
    done := completed[ch.ID]
    if done {
      completedCount++
    }
    detail.Chapters = append(detail.Chapters, ChapterWithProgress{Chapter: ch, Completed: done})
  }
  detail.Stats = computeCourseStats(len(chapters), completedCount)
  return detail, nil
}

func computeCourseStats(total, completed int) CourseStats {
  stats := CourseStats{TotalChapters: total, CompletedChapters: completed}
  if total > 0 {
    stats.Percent = int(math.Round(float64(completed) / float64(total) * 100))
  }
  return stats
}

func (s *courseService) UpdateCourse(ctx context.Context, userID, courseID uuid.UUID, input UpdateCourseInput) (*types.Course, error) {
  if userID == uuid.Nil {
    return nil, ErrUnauthorized
  }
  course, err := s.AuthorizeCourse(ctx, nil, userID, courseID)
  if err != nil {
    return nil, err
  }
  if input.Title != nil {
    title := normalization.TrimInputString(*input.Title)
    if title == "" {
      return nil, fmt.Errorf("%w: title cannot be empty", ErrInvalid)
    }
    course.Title = normalization.ClampString(title, maxCourseTitleLen)
  }
  if input.Description != nil {
    course.Description = normalization.ClampString(normalization.TrimInputString(*input.Description), maxCourseDescriptionLen)
  }
  if input.Published != nil {
    course.Published = *input.Published
  }
  if err := s.courseRepo.Update(ctx, nil, course); err != nil {
    return nil, fmt.Errorf("Failed to update course: %w", err)
  }
  return course, nil
}

func (s *courseService) DeleteCourse(ctx context.Context, userID, courseID uuid.UUID) error {
  if userID == uuid.Nil {
    return ErrUnauthorized
  }
  // Deleted-inclusive read so a repeated delete finds the row, re-runs the
  // cascade as a set of no-ops and still reports success.
  courses, err := s.courseRepo.GetByIDsAny(ctx, nil, []uuid.UUID{courseID})
  if err != nil {
    return fmt.Errorf("Failed to load course: %w", err)
  }
  if len(courses) == 0 || courses[0] == nil || courses[0].AuthorID != userID {
    return ErrNotFound
  }

  err = runInTransaction(ctx, s.db, func(tx *gorm.DB) error {
    chapters, err := s.chapterRepo.GetByCourseIDs(ctx, tx, []uuid.UUID{courseID})
    if err != nil {
      return fmt.Errorf("Failed to load chapters: %w", err)
    }
    if len(chapters) > 0 {
      chapterIDs := make([]uuid.UUID, 0, len(chapters))
      for _, ch := range chapters {
        chapterIDs = append(chapterIDs, ch.ID)
      }
      if err := s.progressRepo.SoftDeleteByUserAndChapterIDs(ctx, tx, userID, chapterIDs); err != nil {
        return fmt.Errorf("Failed to delete progress: %w", err)
      }
      if err := s.resourceRepo.SoftDeleteByChapterIDs(ctx, tx, chapterIDs); err != nil {
        return fmt.Errorf("Failed to delete resources: %w", err)
      }
      if err := s.chapterRepo.SoftDeleteByIDs(ctx, tx, chapterIDs); err != nil {
        return fmt.Errorf("Failed to delete chapters: %w", err)
      }
    }
    if err := s.noteRepo.SoftDeleteByUserAndCourseID(ctx, tx, userID, courseID); err != nil {
      return fmt.Errorf("Failed to delete notes: %w", err)
    }
    imageNotes, err := s.imageNoteRepo.GetByUserAndCourseID(ctx, tx, userID, courseID)
    if err != nil {
      return fmt.Errorf("Failed to load image notes: %w", err)
    }
    if len(imageNotes) > 0 {
      imageNoteIDs := make([]uuid.UUID, 0, len(imageNotes))
      for _, n := range imageNotes {
        imageNoteIDs = append(imageNoteIDs, n.ID)
      }
      if err := s.imageNoteRepo.SoftDeleteByIDs(ctx, tx, imageNoteIDs); err != nil {
        return fmt.Errorf("Failed to delete image notes: %w", err)
      }
    }
    if err := s.courseRepo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{courseID}); err != nil {
      return fmt.Errorf("Failed to delete course: %w", err)
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

package services

import (
  "context"
  "errors"
  "testing"
  "time"

  "github.com/google/uuid"

  "github.com/yungbote/studyos-backend/internal/types"
)

type courseEnv struct {
  courseRepo    *fakeCourseRepo
  chapterRepo   *fakeChapterRepo
  progressRepo  *fakeProgressRepo
  resourceRepo  *fakeResourceRepo
  noteRepo      *fakeNoteRepo
  imageNoteRepo *fakeImageNoteRepo
  courses       CourseService
  chapters      ChapterService
  notes         NoteService
}

func newCourseEnv(t *testing.T) *courseEnv {
  t.Helper()
  log := newTestLogger(t)
  env := &courseEnv{
    courseRepo:    newFakeCourseRepo(),
    chapterRepo:   newFakeChapterRepo(),
    progressRepo:  newFakeProgressRepo(),
    resourceRepo:  newFakeResourceRepo(),
    noteRepo:      newFakeNoteRepo(),
    imageNoteRepo: newFakeImageNoteRepo(),
  }
  env.courses = NewCourseService(nil, log, env.courseRepo, env.chapterRepo, env.progressRepo, env.resourceRepo, env.noteRepo, env.imageNoteRepo, nil)
  env.chapters = NewChapterService(nil, log, env.courseRepo, env.chapterRepo, env.progressRepo, env.resourceRepo, nil)
  env.notes = NewNoteService(nil, log, env.noteRepo, env.courseRepo, env.chapterRepo)
  return env
}

func TestCreateCourseWithChapters(t *testing.T) {
  env := newCourseEnv(t)
  userID := uuid.New()

  detail, err := env.courses.CreateCourse(context.Background(), userID, CreateCourseInput{
    Title:    "Linear Algebra",
    Chapters: []string{"Vectors", "", "Matrices", "Determinants"},
  })
  if err != nil {
    t.Fatalf("CreateCourse failed: %v", err)
  }
  if len(detail.Chapters) != 3 {
    t.Fatalf("expected 3 chapters (blank skipped), got %d", len(detail.Chapters))
  }
  for i, ch := range detail.Chapters {
    if ch.Position != i+1 {
      t.Fatalf("chapter %d has position %d", i, ch.Position)
    }
  }
  if detail.Stats.TotalChapters != 3 || detail.Stats.CompletedChapters != 0 {
    t.Fatalf("unexpected initial stats: %+v", detail.Stats)
  }
}

func TestCreateCourseRequiresTitle(t *testing.T) {
  env := newCourseEnv(t)
  if _, err := env.courses.CreateCourse(context.Background(), uuid.New(), CreateCourseInput{Title: "  "}); !errors.Is(err, ErrInvalid) {
    t.Fatalf("blank title should be invalid, got %v", err)
  }
}

func TestGetCourseDetailForeignOwnerIsNotFound(t *testing.T) {
  env := newCourseEnv(t)
  owner := uuid.New()
  detail, err := env.courses.CreateCourse(context.Background(), owner, CreateCourseInput{Title: "Private"})
  if err != nil {
    t.Fatalf("CreateCourse failed: %v", err)
  }
  if _, err := env.courses.GetCourseDetail(context.Background(), uuid.New(), detail.Course.ID); !errors.Is(err, ErrNotFound) {
    t.Fatalf("foreign owner should look like a missing course, got %v", err)
  }
}

func TestDeleteCourseCascades(t *testing.T) {
  env := newCourseEnv(t)
  userID := uuid.New()
  ctx := context.Background()

  detail, err := env.courses.CreateCourse(ctx, userID, CreateCourseInput{
    Title:    "Biology",
    Chapters: []string{"Cells", "Genetics"},
  })
  if err != nil {
    t.Fatalf("CreateCourse failed: %v", err)
  }
  courseID := detail.Course.ID
  chapterID := detail.Chapters[0].ID

  now := time.Now()
  env.progressRepo.rows[uuid.New()] = &types.Progress{
    ID: uuid.New(), UserID: userID, ChapterID: chapterID,
    Status: types.ProgressStatusCompleted, CompletedAt: &now,
  }
  url := "https://example.com"
  env.resourceRepo.resources[uuid.New()] = &types.Resource{
    ID: uuid.New(), ChapterID: chapterID, Name: "Reading", Type: types.ResourceTypeWebpage, URL: &url,
  }
  if _, err := env.notes.CreateNote(ctx, userID, CreateNoteInput{Content: "mitosis", CourseID: &courseID}); err != nil {
    t.Fatalf("CreateNote failed: %v", err)
  }
  env.imageNoteRepo.notes[uuid.New()] = &types.ImageNote{
    ID: uuid.New(), UserID: userID, CourseID: &courseID, ImageIDs: []byte(`["k"]`),
  }

  if err := env.courses.DeleteCourse(ctx, userID, courseID); err != nil {
    t.Fatalf("DeleteCourse failed: %v", err)
  }

  if _, err := env.courses.GetCourseDetail(ctx, userID, courseID); !errors.Is(err, ErrNotFound) {
    t.Fatalf("deleted course should be gone, got %v", err)
  }
  if chapters, _ := env.chapterRepo.GetByCourseIDs(ctx, nil, []uuid.UUID{courseID}); len(chapters) != 0 {
    t.Fatalf("chapters survived the cascade: %d", len(chapters))
  }
  if resources, _ := env.resourceRepo.GetByChapterIDs(ctx, nil, []uuid.UUID{chapterID}); len(resources) != 0 {
    t.Fatalf("resources survived the cascade: %d", len(resources))
  }
  if progress, _ := env.progressRepo.GetByUserID(ctx, nil, userID); len(progress) != 0 {
    t.Fatalf("progress survived the cascade: %d", len(progress))
  }
  if notes, _ := env.noteRepo.List(ctx, nil, noteFilterForUser(userID)); len(notes) != 0 {
    t.Fatalf("notes survived the cascade: %d", len(notes))
  }
  if imageNotes, _ := env.imageNoteRepo.GetByUserAndCourseID(ctx, nil, userID, courseID); len(imageNotes) != 0 {
    t.Fatalf("image notes survived the cascade: %d", len(imageNotes))
  }
}

func TestDeleteCourseIsIdempotent(t *testing.T) {
  env := newCourseEnv(t)
  userID := uuid.New()
  ctx := context.Background()

  detail, err := env.courses.CreateCourse(ctx, userID, CreateCourseInput{Title: "History"})
  if err != nil {
    t.Fatalf("CreateCourse failed: %v", err)
  }
  if err := env.courses.DeleteCourse(ctx, userID, detail.Course.ID); err != nil {
    t.Fatalf("first delete failed: %v", err)
  }
  if err := env.courses.DeleteCourse(ctx, userID, detail.Course.ID); err != nil {
    t.Fatalf("repeat delete should succeed, got %v", err)
  }
  if err := env.courses.DeleteCourse(ctx, userID, uuid.New()); !errors.Is(err, ErrNotFound) {
    t.Fatalf("never-existed course should be not found, got %v", err)
  }
  if err := env.courses.DeleteCourse(ctx, uuid.New(), detail.Course.ID); !errors.Is(err, ErrNotFound) {
    t.Fatalf("foreign delete should be not found, got %v", err)
  }
}

func TestUpdateCoursePartial(t *testing.T) {
  env := newCourseEnv(t)
  userID := uuid.New()
  ctx := context.Background()

  detail, err := env.courses.CreateCourse(ctx, userID, CreateCourseInput{Title: "Draft", Description: "old"})
  if err != nil {
    t.Fatalf("CreateCourse failed: %v", err)
  }
  published := true
  updated, err := env.courses.UpdateCourse(ctx, userID, detail.Course.ID, UpdateCourseInput{Published: &published})
  if err != nil {
    t.Fatalf("UpdateCourse failed: %v", err)
  }
  if !updated.Published {
    t.Fatal("published flag not applied")
  }
  if updated.Title != "Draft" || updated.Description != "old" {
    t.Fatalf("untouched fields changed: %+v", updated)
  }
}

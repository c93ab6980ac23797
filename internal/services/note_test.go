package services

import (
  "context"
  "errors"
  "testing"

  "github.com/google/uuid"
)

func TestCreateQuickNote(t *testing.T) {
  env := newCourseEnv(t)
  userID := uuid.New()

  note, err := env.notes.CreateNote(context.Background(), userID, CreateNoteInput{Content: "remember this"})
  if err != nil {
    t.Fatalf("CreateNote failed: %v", err)
  }
  if note.CourseID != nil || note.ChapterID != nil {
    t.Fatalf("quick note should have no scope, got course=%v chapter=%v", note.CourseID, note.ChapterID)
  }
}

func TestCreateNoteInfersCourseFromChapter(t *testing.T) {
  env := newCourseEnv(t)
  userID := uuid.New()
  ctx := context.Background()

  detail, err := env.courses.CreateCourse(ctx, userID, CreateCourseInput{
    Title:    "Economics",
    Chapters: []string{"Supply"},
  })
  if err != nil {
    t.Fatalf("CreateCourse failed: %v", err)
  }
  chapterID := detail.Chapters[0].ID

  note, err := env.notes.CreateNote(ctx, userID, CreateNoteInput{Content: "curves", ChapterID: &chapterID})
  if err != nil {
    t.Fatalf("CreateNote failed: %v", err)
  }
  if note.CourseID == nil || *note.CourseID != detail.Course.ID {
    t.Fatalf("expected inferred course %s, got %v", detail.Course.ID, note.CourseID)
  }
}

func TestCreateNoteRejectsMismatchedScope(t *testing.T) {
  env := newCourseEnv(t)
  userID := uuid.New()
  ctx := context.Background()

  a, err := env.courses.CreateCourse(ctx, userID, CreateCourseInput{Title: "A", Chapters: []string{"A1"}})
  if err != nil {
    t.Fatalf("CreateCourse failed: %v", err)
  }
  b, err := env.courses.CreateCourse(ctx, userID, CreateCourseInput{Title: "B"})
  if err != nil {
    t.Fatalf("CreateCourse failed: %v", err)
  }
  chapterID := a.Chapters[0].ID
  wrongCourse := b.Course.ID

  if _, err := env.notes.CreateNote(ctx, userID, CreateNoteInput{
    Content: "x", CourseID: &wrongCourse, ChapterID: &chapterID,
  }); !errors.Is(err, ErrInvalid) {
    t.Fatalf("mismatched scope should be invalid, got %v", err)
  }
}

func TestCreateNoteForeignCourseIsNotFound(t *testing.T) {
  env := newCourseEnv(t)
  owner := uuid.New()
  detail, err := env.courses.CreateCourse(context.Background(), owner, CreateCourseInput{Title: "Private"})
  if err != nil {
    t.Fatalf("CreateCourse failed: %v", err)
  }
  courseID := detail.Course.ID
  if _, err := env.notes.CreateNote(context.Background(), uuid.New(), CreateNoteInput{
    Content: "snoop", CourseID: &courseID,
  }); !errors.Is(err, ErrNotFound) {
    t.Fatalf("foreign course scope should be not found, got %v", err)
  }
}

func TestListNotesTitleDecoration(t *testing.T) {
  env := newCourseEnv(t)
  userID := uuid.New()
  ctx := context.Background()

  detail, err := env.courses.CreateCourse(ctx, userID, CreateCourseInput{Title: "Philosophy"})
  if err != nil {
    t.Fatalf("CreateCourse failed: %v", err)
  }
  courseID := detail.Course.ID

  if _, err := env.notes.CreateNote(ctx, userID, CreateNoteInput{Content: "scoped", CourseID: &courseID}); err != nil {
    t.Fatalf("CreateNote failed: %v", err)
  }
  if _, err := env.notes.CreateNote(ctx, userID, CreateNoteInput{Content: "unscoped"}); err != nil {
    t.Fatalf("CreateNote failed: %v", err)
  }

  views, err := env.notes.ListNotes(ctx, userID, ListNotesInput{})
  if err != nil {
    t.Fatalf("ListNotes failed: %v", err)
  }
  if len(views) != 2 {
    t.Fatalf("expected 2 notes, got %d", len(views))
  }
  titles := map[string]string{}
  for _, v := range views {
    titles[v.Content] = v.Title
  }
  if titles["scoped"] != "Philosophy" {
    t.Fatalf("scoped note should carry the course title, got %q", titles["scoped"])
  }
  if titles["unscoped"] != "Quick Note" {
    t.Fatalf("unscoped note should be a quick note, got %q", titles["unscoped"])
  }
}

func TestListNotesScopeFilter(t *testing.T) {
  env := newCourseEnv(t)
  userID := uuid.New()
  ctx := context.Background()

  detail, err := env.courses.CreateCourse(ctx, userID, CreateCourseInput{Title: "Filtered"})
  if err != nil {
    t.Fatalf("CreateCourse failed: %v", err)
  }
  courseID := detail.Course.ID

  if _, err := env.notes.CreateNote(ctx, userID, CreateNoteInput{Content: "in", CourseID: &courseID}); err != nil {
    t.Fatalf("CreateNote failed: %v", err)
  }
  if _, err := env.notes.CreateNote(ctx, userID, CreateNoteInput{Content: "out"}); err != nil {
    t.Fatalf("CreateNote failed: %v", err)
  }

  views, err := env.notes.ListNotes(ctx, userID, ListNotesInput{CourseID: &courseID})
  if err != nil {
    t.Fatalf("ListNotes failed: %v", err)
  }
  if len(views) != 1 || views[0].Content != "in" {
    t.Fatalf("course filter returned wrong notes: %d", len(views))
  }
}

func TestUpdateAndDeleteNoteOwnership(t *testing.T) {
  env := newCourseEnv(t)
  owner := uuid.New()
  ctx := context.Background()

  note, err := env.notes.CreateNote(ctx, owner, CreateNoteInput{Content: "original"})
  if err != nil {
    t.Fatalf("CreateNote failed: %v", err)
  }

  if _, err := env.notes.UpdateNote(ctx, uuid.New(), note.ID, "hijack"); !errors.Is(err, ErrNotFound) {
    t.Fatalf("foreign update should be not found, got %v", err)
  }
  updated, err := env.notes.UpdateNote(ctx, owner, note.ID, "revised")
  if err != nil {
    t.Fatalf("UpdateNote failed: %v", err)
  }
  if updated.Content != "revised" {
    t.Fatalf("content not updated: %q", updated.Content)
  }

  if err := env.notes.DeleteNote(ctx, uuid.New(), note.ID); !errors.Is(err, ErrNotFound) {
    t.Fatalf("foreign delete should be not found, got %v", err)
  }
  if err := env.notes.DeleteNote(ctx, owner, note.ID); err != nil {
    t.Fatalf("DeleteNote failed: %v", err)
  }
  if _, err := env.notes.GetNote(ctx, owner, note.ID); !errors.Is(err, ErrNotFound) {
    t.Fatalf("deleted note should be gone, got %v", err)
  }
}

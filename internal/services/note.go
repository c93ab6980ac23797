package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/studyos-backend/internal/logger"
  "github.com/yungbote/studyos-backend/internal/normalization"
  "github.com/yungbote/studyos-backend/internal/repos"
  "github.com/yungbote/studyos-backend/internal/types"
)

const (
  maxNoteContentLen    = 10000
  defaultNoteListLimit = 50
  maxNoteListLimit     = 100

  quickNoteTitle = "Quick Note"
)

type CreateNoteInput struct {
  Content   string
  CourseID  *uuid.UUID
  ChapterID *uuid.UUID
}

type ListNotesInput struct {
  CourseID  *uuid.UUID
  ChapterID *uuid.UUID
  Limit     int
}

// NoteView decorates a note with a display title: the owning course's title,
// or a fixed label for unscoped quick notes.
type NoteView struct {
  *types.Note
  Title string `json:"title"`
}

type NoteService interface {
  CreateNote(ctx context.Context, userID uuid.UUID, input CreateNoteInput) (*types.Note, error)
  ListNotes(ctx context.Context, userID uuid.UUID, input ListNotesInput) ([]NoteView, error)
  GetNote(ctx context.Context, userID, noteID uuid.UUID) (*types.Note, error)
  UpdateNote(ctx context.Context, userID, noteID uuid.UUID, content string) (*types.Note, error)
  DeleteNote(ctx context.Context, userID, noteID uuid.UUID) error
}

type noteService struct {
  db          *gorm.DB
  log         *logger.Logger
  noteRepo    repos.NoteRepo
  courseRepo  repos.CourseRepo
  chapterRepo repos.ChapterRepo
}

func NewNoteService(db *gorm.DB, log *logger.Logger, noteRepo repos.NoteRepo, courseRepo repos.CourseRepo, chapterRepo repos.ChapterRepo) NoteService {
  serviceLog := log.With("service", "NoteService")
  return &noteService{db: db, log: serviceLog, noteRepo: noteRepo, courseRepo: courseRepo, chapterRepo: chapterRepo}
}

func (s *noteService) CreateNote(ctx context.Context, userID uuid.UUID, input CreateNoteInput) (*types.Note, error) {
  if userID == uuid.Nil {
    return nil, ErrUnauthorized
  }
  content := normalization.TrimInputString(input.Content)
  if content == "" {
    return nil, fmt.Errorf("%w: content is required", ErrInvalid)
  }
  content = normalization.ClampString(content, maxNoteContentLen)

  courseID := input.CourseID
  chapterID := input.ChapterID

  if chapterID != nil {
    chapters, err := s.chapterRepo.GetByIDs(ctx, nil, []uuid.UUID{*chapterID})
    if err != nil {
      return nil, fmt.Errorf("Failed to load chapter: %w", err)
    }
    if len(chapters) == 0 || chapters[0] == nil {
      return nil, ErrNotFound
    }
    chapter := chapters[0]
    if courseID != nil && *courseID != chapter.CourseID {
      return nil, fmt.Errorf("%w: chapter does not belong to the given course", ErrInvalid)
    }
    // A chapter-scoped note always carries its course scope too.
    courseID = &chapter.CourseID
  }
  if courseID != nil {
    courses, err := s.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{*courseID})
    if err != nil {
      return nil, fmt.Errorf("Failed to load course: %w", err)
    }
    if len(courses) == 0 || courses[0] == nil || courses[0].AuthorID != userID {
      return nil, ErrNotFound
    }
  }

  note := &types.Note{
    ID:        uuid.New(),
    UserID:    userID,
    CourseID:  courseID,
    ChapterID: chapterID,
    Content:   content,
  }
  created, err := s.noteRepo.Create(ctx, nil, []*types.Note{note})
  if err != nil {
    return nil, fmt.Errorf("Failed to create note: %w", err)
  }
  return created[0], nil
}

func (s *noteService) ListNotes(ctx context.Context, userID uuid.UUID, input ListNotesInput) ([]NoteView, error) {
  if userID == uuid.Nil {
    return nil, ErrUnauthorized
  }
  limit := input.Limit
  if limit <= 0 {
    limit = defaultNoteListLimit
  }
  if limit > maxNoteListLimit {
    limit = maxNoteListLimit
  }

  notes, err := s.noteRepo.List(ctx, nil, repos.NoteFilter{
    UserID:    userID,
    CourseID:  input.CourseID,
    ChapterID: input.ChapterID,
    Limit:     limit,
  })
  if err != nil {
    return nil, fmt.Errorf("Failed to list notes: %w", err)
  }

  courseIDs := make([]uuid.UUID, 0)
  seen := make(map[uuid.UUID]bool)
  for _, note := range notes {
    if note.CourseID != nil && !seen[*note.CourseID] {
      seen[*note.CourseID] = true
      courseIDs = append(courseIDs, *note.CourseID)
    }
  }
  titles := make(map[uuid.UUID]string)
  if len(courseIDs) > 0 {
    courses, err := s.courseRepo.GetByIDs(ctx, nil, courseIDs)
    if err != nil {
      return nil, fmt.Errorf("Failed to load courses: %w", err)
    }
    for _, c := range courses {
      titles[c.ID] = c.Title
    }
  }

  views := make([]NoteView, 0, len(notes))
  for _, note := range notes {
    title := quickNoteTitle
    if note.CourseID != nil {
      if t, ok := titles[*note.CourseID]; ok {
        title = t
      }
    }
    views = append(views, NoteView{Note: note, Title: title})
  }
  return views, nil
}

func (s *noteService) authorizeNote(ctx context.Context, noteID, userID uuid.UUID) (*types.Note, error) {
  notes, err := s.noteRepo.GetByIDs(ctx, nil, []uuid.UUID{noteID})
  if err != nil {
    return nil, fmt.Errorf("Failed to load note: %w", err)
  }
  if len(notes) == 0 || notes[0] == nil || notes[0].UserID != userID {
    return nil, ErrNotFound
  }
  return notes[0], nil
}

func (s *noteService) GetNote(ctx context.Context, userID, noteID uuid.UUID) (*types.Note, error) {
  if userID == uuid.Nil {
    return nil, ErrUnauthorized
  }
  return s.authorizeNote(ctx, noteID, userID)
}

func (s *noteService) UpdateNote(ctx context.Context, userID, noteID uuid.UUID, content string) (*types.Note, error) {
  if userID == uuid.Nil {
    return nil, ErrUnauthorized
  }
  note, err := s.authorizeNote(ctx, noteID, userID)
  if err != nil {
    return nil, err
  }
  content = normalization.TrimInputString(content)
  if content == "" {
    return nil, fmt.Errorf("%w: content is required", ErrInvalid)
  }
  note.Content = normalization.ClampString(content, maxNoteContentLen)
  if err := s.noteRepo.Update(ctx, nil, note); err != nil {
    return nil, fmt.Errorf("Failed to update note: %w", err)
  }
  return note, nil
}

func (s *noteService) DeleteNote(ctx context.Context, userID, noteID uuid.UUID) error {
  if userID == uuid.Nil {
    return ErrUnauthorized
  }
  note, err := s.authorizeNote(ctx, noteID, userID)
  if err != nil {
    return err
  }
  if err := s.noteRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{note.ID}); err != nil {
    return fmt.Errorf("Failed to delete note: %w", err)
  }
  return nil
}

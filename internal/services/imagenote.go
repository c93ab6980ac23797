package services

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "io"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/studyos-backend/internal/logger"
  "github.com/yungbote/studyos-backend/internal/normalization"
  "github.com/yungbote/studyos-backend/internal/repos"
  "github.com/yungbote/studyos-backend/internal/types"
)

const (
  maxImageNoteCaptionLen   = 1000
  maxImagesPerNote         = 10
  defaultImageNoteListLimit = 50
)

type CreateImageNoteInput struct {
  Images    []io.Reader
  Caption   string
  CourseID  *uuid.UUID
  ChapterID *uuid.UUID
}

// ImageNoteView carries the note row plus resolvable URLs for its blobs.
type ImageNoteView struct {
  *types.ImageNote
  ImageURLs []string `json:"image_urls"`
}

type ImageNoteService interface {
  // CreateImageNote uploads the blobs first and writes the row only after
  // every upload succeeded, so a half-failed create leaves no row behind.
  CreateImageNote(ctx context.Context, userID uuid.UUID, input CreateImageNoteInput) (*ImageNoteView, error)
  ListImageNotes(ctx context.Context, userID uuid.UUID) ([]ImageNoteView, error)
  DeleteImageNote(ctx context.Context, userID, noteID uuid.UUID) error
}

type imageNoteService struct {
  db            *gorm.DB
  log           *logger.Logger
  imageNoteRepo repos.ImageNoteRepo
  bucket        BucketService
}

func NewImageNoteService(db *gorm.DB, log *logger.Logger, imageNoteRepo repos.ImageNoteRepo, bucket BucketService) ImageNoteService {
  serviceLog := log.With("service", "ImageNoteService")
  return &imageNoteService{db: db, log: serviceLog, imageNoteRepo: imageNoteRepo, bucket: bucket}
}

func (s *imageNoteService) view(note *types.ImageNote) ImageNoteView {
  var keys []string
  if err := json.Unmarshal(note.ImageIDs, &keys); err != nil {
    s.log.Warn("Failed to decode image note keys", "error", err, "image_note_id", note.ID)
  }
  urls := make([]string, 0, len(keys))
  if s.bucket != nil {
    for _, key := range keys {
      urls = append(urls, s.bucket.GetPublicURL(key))
    }
  }
  return ImageNoteView{ImageNote: note, ImageURLs: urls}
}

func (s *imageNoteService) CreateImageNote(ctx context.Context, userID uuid.UUID, input CreateImageNoteInput) (*ImageNoteView, error) {
  if userID == uuid.Nil {
    return nil, ErrUnauthorized
  }
  if len(input.Images) == 0 {
    return nil, fmt.Errorf("%w: at least one image is required", ErrInvalid)
  }
  if len(input.Images) > maxImagesPerNote {
    return nil, fmt.Errorf("%w: at most %d images per note", ErrInvalid, maxImagesPerNote)
  }
  if s.bucket == nil {
    return nil, fmt.Errorf("image storage is not configured")
  }

  noteID := uuid.New()
  keys := make([]string, 0, len(input.Images))
  for _, img := range input.Images {
    key := fmt.Sprintf("image_notes/%s/%s", noteID, uuid.New())
    if err := s.bucket.UploadFile(ctx, nil, key, img); err != nil {
      // Roll back blobs uploaded so far.
      for _, uploaded := range keys {
        if delErr := s.bucket.DeleteFile(ctx, nil, uploaded); delErr != nil && !errors.Is(delErr, ErrObjectNotFound) {
          s.log.Warn("Failed to clean up image after aborted create", "error", delErr, "key", uploaded)
        }
      }
      return nil, fmt.Errorf("Failed to upload image: %w", err)
    }
    keys = append(keys, key)
  }

  rawKeys, err := json.Marshal(keys)
  if err != nil {
    return nil, fmt.Errorf("Failed to encode image keys: %w", err)
  }
  note := &types.ImageNote{
    ID:        noteID,
    UserID:    userID,
    CourseID:  input.CourseID,
    ChapterID: input.ChapterID,
    ImageIDs:  rawKeys,
    Caption:   normalization.ClampString(normalization.TrimInputString(input.Caption), maxImageNoteCaptionLen),
  }
  created, err := s.imageNoteRepo.Create(ctx, nil, []*types.ImageNote{note})
  if err != nil {
    for _, uploaded := range keys {
      if delErr := s.bucket.DeleteFile(ctx, nil, uploaded); delErr != nil && !errors.Is(delErr, ErrObjectNotFound) {
        s.log.Warn("Failed to clean up image after aborted create", "error", delErr, "key", uploaded)
      }
    }
    return nil, fmt.Errorf("Failed to create image note: %w", err)
  }
  v := s.view(created[0])
  return &v, nil
}

func (s *imageNoteService) ListImageNotes(ctx context.Context, userID uuid.UUID) ([]ImageNoteView, error) {
  if userID == uuid.Nil {
    return nil, ErrUnauthorized
  }
  notes, err := s.imageNoteRepo.GetByUserID(ctx, nil, userID, defaultImageNoteListLimit)
  if err != nil {
    return nil, fmt.Errorf("Failed to list image notes: %w", err)
  }
  views := make([]ImageNoteView, 0, len(notes))
  for _, note := range notes {
    views = append(views, s.view(note))
  }
  return views, nil
}

func (s *imageNoteService) DeleteImageNote(ctx context.Context, userID, noteID uuid.UUID) error {
  if userID == uuid.Nil {
    return ErrUnauthorized
  }
  notes, err := s.imageNoteRepo.GetByIDs(ctx, nil, []uuid.UUID{noteID})
  if err != nil {
    return fmt.Errorf("Failed to load image note: %w", err)
  }
  if len(notes) == 0 || notes[0] == nil || notes[0].UserID != userID {
    return ErrNotFound
  }
  note := notes[0]

  var keys []string
  if err := json.Unmarshal(note.ImageIDs, &keys); err != nil {
    s.log.Warn("Failed to decode image note keys", "error", err, "image_note_id", note.ID)
  }
  // Blobs go first; a blob that is already gone does not block the delete.
  if s.bucket != nil {
    for _, key := range keys {
      if err := s.bucket.DeleteFile(ctx, nil, key); err != nil && !errors.Is(err, ErrObjectNotFound) {
        return fmt.Errorf("Failed to delete image: %w", err)
      }
    }
  }
  if err := s.imageNoteRepo.SoftDeleteByIDs(ctx, nil, []uuid.UUID{note.ID}); err != nil {
    return fmt.Errorf("Failed to delete image note: %w", err)
  }
  return nil
}

package services

import (
  "context"
  "io"
  "strings"
  "testing"

  "github.com/google/uuid"

  "github.com/yungbote/studyos-backend/internal/types"
)

func TestListImageNotesWithoutBucket(t *testing.T) {
  log := newTestLogger(t)
  repo := newFakeImageNoteRepo()
  userID := uuid.New()
  note := &types.ImageNote{
    ID:       uuid.New(),
    UserID:   userID,
    ImageIDs: []byte(`["image_notes/a/b","image_notes/a/c"]`),
    Caption:  "board photo",
  }
  repo.notes[note.ID] = note

  svc := NewImageNoteService(nil, log, repo, nil)
  views, err := svc.ListImageNotes(context.Background(), userID)
  if err != nil {
    t.Fatalf("ListImageNotes failed: %v", err)
  }
  if len(views) != 1 {
    t.Fatalf("expected 1 note, got %d", len(views))
  }
  // Without storage there is nothing to resolve keys against.
  if len(views[0].ImageURLs) != 0 {
    t.Fatalf("expected no urls without a bucket, got %v", views[0].ImageURLs)
  }
}

func TestCreateImageNoteWithoutBucketFails(t *testing.T) {
  log := newTestLogger(t)
  svc := NewImageNoteService(nil, log, newFakeImageNoteRepo(), nil)
  _, err := svc.CreateImageNote(context.Background(), uuid.New(), CreateImageNoteInput{
    Images: []io.Reader{strings.NewReader("png bytes")},
  })
  if err == nil {
    t.Fatal("create without storage must fail")
  }
}

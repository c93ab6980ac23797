package services

import (
  "testing"

  "github.com/google/uuid"

  "github.com/yungbote/studyos-backend/internal/logger"
  "github.com/yungbote/studyos-backend/internal/repos"
)

func noteFilterForUser(userID uuid.UUID) repos.NoteFilter {
  return repos.NoteFilter{UserID: userID}
}

func newTestLogger(t *testing.T) *logger.Logger {
  t.Helper()
  log, err := logger.New("development")
  if err != nil {
    t.Fatalf("Failed to init logger: %v", err)
  }
  return log
}

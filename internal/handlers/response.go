package handlers

import (
  "errors"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/yungbote/studyos-backend/internal/services"
)

// RespondError maps service errors onto the flat {"error": message} shape
// used across the API.
func RespondError(c *gin.Context, err error) {
  status := http.StatusInternalServerError
  switch {
  case errors.Is(err, services.ErrInvalid), errors.Is(err, services.ErrKeyLimit):
    status = http.StatusBadRequest
  case errors.Is(err, services.ErrUnauthorized):
    status = http.StatusUnauthorized
  case errors.Is(err, services.ErrForbidden):
    status = http.StatusForbidden
  case errors.Is(err, services.ErrNotFound):
    status = http.StatusNotFound
  }
  msg := err.Error()
  if status == http.StatusInternalServerError {
    msg = "internal server error"
  }
  c.JSON(status, gin.H{"error": msg})
}

package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/yungbote/studyos-backend/internal/requestdata"
)

// currentUserID pulls the authenticated principal from the request context.
// It writes the 401 itself so callers can just return on !ok.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
    return uuid.Nil, false
  }
  return rd.UserID, true
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
  id, err := uuid.Parse(c.Param(name))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
    return uuid.Nil, false
  }
  return id, true
}

// parseScopeID maps the wire scope value to the internal form: absent or
// "none" is a nil scope, anything else must be a valid id.
func parseScopeID(raw string) (*uuid.UUID, bool) {
  if raw == "" || raw == "none" {
    return nil, true
  }
  id, err := uuid.Parse(raw)
  if err != nil {
    return nil, false
  }
  return &id, true
}

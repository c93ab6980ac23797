package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/yungbote/studyos-backend/internal/services"
)

type SettingsHandler struct {
  settingsService services.UserSettingsService
}

func NewSettingsHandler(settingsService services.UserSettingsService) *SettingsHandler {
  return &SettingsHandler{settingsService: settingsService}
}

func (sh *SettingsHandler) Get(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  settings, err := sh.settingsService.GetSettings(c.Request.Context(), userID)
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, settings)
}

func (sh *SettingsHandler) Update(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req struct {
    DailyGoal int `json:"dailyGoal"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  settings, err := sh.settingsService.UpdateSettings(c.Request.Context(), userID, req.DailyGoal)
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, settings)
}

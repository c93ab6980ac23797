package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/yungbote/studyos-backend/internal/services"
)

type AnalyticsHandler struct {
  analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService) *AnalyticsHandler {
  return &AnalyticsHandler{analyticsService: analyticsService}
}

func (ah *AnalyticsHandler) GetStats(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  stats, err := ah.analyticsService.GetUserStats(c.Request.Context(), userID)
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, stats)
}

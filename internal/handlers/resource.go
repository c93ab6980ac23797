package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/yungbote/studyos-backend/internal/services"
)

type ResourceHandler struct {
  resourceService services.ResourceService
}

func NewResourceHandler(resourceService services.ResourceService) *ResourceHandler {
  return &ResourceHandler{resourceService: resourceService}
}

func (rh *ResourceHandler) List(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  chapterID, err := uuid.Parse(c.Query("chapterId"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "chapterId is required"})
    return
  }
  resources, svcErr := rh.resourceService.ListResources(c.Request.Context(), userID, chapterID)
  if svcErr != nil {
    RespondError(c, svcErr)
    return
  }
  c.JSON(http.StatusOK, gin.H{"resources": resources})
}

func (rh *ResourceHandler) Create(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req struct {
    ChapterID string  `json:"chapterId"`
    Name      string  `json:"name"`
    Type      string  `json:"type"`
    URL       *string `json:"url"`
    FileID    *string `json:"fileId"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  chapterID, err := uuid.Parse(req.ChapterID)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chapterId"})
    return
  }
  resource, svcErr := rh.resourceService.CreateResource(c.Request.Context(), userID, services.CreateResourceInput{
    ChapterID: chapterID,
    Name:      req.Name,
    Type:      req.Type,
    URL:       req.URL,
    FileID:    req.FileID,
  })
  if svcErr != nil {
    RespondError(c, svcErr)
    return
  }
  c.JSON(http.StatusCreated, resource)
}

func (rh *ResourceHandler) Get(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  resourceID, ok := parseUUIDParam(c, "resourceId")
  if !ok {
    return
  }
  resource, err := rh.resourceService.GetResource(c.Request.Context(), userID, resourceID)
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, resource)
}

func (rh *ResourceHandler) Delete(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  resourceID, ok := parseUUIDParam(c, "resourceId")
  if !ok {
    return
  }
  if err := rh.resourceService.DeleteResource(c.Request.Context(), userID, resourceID); err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": "true"})
}

package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/yungbote/studyos-backend/internal/services"
)

type ChapterHandler struct {
  chapterService services.ChapterService
}

func NewChapterHandler(chapterService services.ChapterService) *ChapterHandler {
  return &ChapterHandler{chapterService: chapterService}
}

func (ch *ChapterHandler) Add(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  courseID, ok := parseUUIDParam(c, "courseId")
  if !ok {
    return
  }
  var req struct {
    Chapters []string `json:"chapters"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  chapters, err := ch.chapterService.AddChapters(c.Request.Context(), userID, courseID, req.Chapters)
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusCreated, gin.H{"chapters": chapters})
}

func (ch *ChapterHandler) List(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  courseID, ok := parseUUIDParam(c, "courseId")
  if !ok {
    return
  }
  chapters, err := ch.chapterService.ListChapters(c.Request.Context(), userID, courseID)
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"chapters": chapters})
}

func (ch *ChapterHandler) Get(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  chapterID, ok := parseUUIDParam(c, "chapterId")
  if !ok {
    return
  }
  detail, err := ch.chapterService.GetChapter(c.Request.Context(), userID, chapterID)
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, detail)
}

func (ch *ChapterHandler) Update(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  chapterID, ok := parseUUIDParam(c, "chapterId")
  if !ok {
    return
  }
  var req services.UpdateChapterInput
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  chapter, err := ch.chapterService.UpdateChapter(c.Request.Context(), userID, chapterID, req)
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, chapter)
}

func (ch *ChapterHandler) Delete(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  chapterID, ok := parseUUIDParam(c, "chapterId")
  if !ok {
    return
  }
  if err := ch.chapterService.DeleteChapter(c.Request.Context(), userID, chapterID); err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": "true"})
}

func (ch *ChapterHandler) Complete(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  chapterID, ok := parseUUIDParam(c, "chapterId")
  if !ok {
    return
  }
  stats, err := ch.chapterService.CompleteChapter(c.Request.Context(), userID, chapterID)
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": "true", "courseProgress": stats})
}

func (ch *ChapterHandler) Reset(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  chapterID, ok := parseUUIDParam(c, "chapterId")
  if !ok {
    return
  }
  stats, err := ch.chapterService.ResetChapter(c.Request.Context(), userID, chapterID)
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": "true", "courseProgress": stats})
}

package handlers

import (
  "io"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/yungbote/studyos-backend/internal/services"
)

const maxImageUploadBytes = 10 << 20

type ImageNoteHandler struct {
  imageNoteService services.ImageNoteService
}

func NewImageNoteHandler(imageNoteService services.ImageNoteService) *ImageNoteHandler {
  return &ImageNoteHandler{imageNoteService: imageNoteService}
}

func (ih *ImageNoteHandler) Create(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  form, err := c.MultipartForm()
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
    return
  }
  courseID, ok := parseScopeID(c.PostForm("courseId"))
  if !ok {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid courseId"})
    return
  }
  chapterID, ok := parseScopeID(c.PostForm("chapterId"))
  if !ok {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chapterId"})
    return
  }

  files := form.File["images"]
  readers := make([]io.Reader, 0, len(files))
  closers := make([]io.Closer, 0, len(files))
  defer func() {
    for _, cl := range closers {
      cl.Close()
    }
  }()
  for _, fh := range files {
    if fh.Size > maxImageUploadBytes {
      c.JSON(http.StatusBadRequest, gin.H{"error": "image too large"})
      return
    }
    f, err := fh.Open()
    if err != nil {
      c.JSON(http.StatusBadRequest, gin.H{"error": "could not read image"})
      return
    }
    closers = append(closers, f)
    readers = append(readers, f)
  }

  view, err := ih.imageNoteService.CreateImageNote(c.Request.Context(), userID, services.CreateImageNoteInput{
    Images:    readers,
    Caption:   c.PostForm("caption"),
    CourseID:  courseID,
    ChapterID: chapterID,
  })
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusCreated, view)
}

func (ih *ImageNoteHandler) List(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  views, err := ih.imageNoteService.ListImageNotes(c.Request.Context(), userID)
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"imageNotes": views})
}

func (ih *ImageNoteHandler) Delete(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  noteID, ok := parseUUIDParam(c, "imageNoteId")
  if !ok {
    return
  }
  if err := ih.imageNoteService.DeleteImageNote(c.Request.Context(), userID, noteID); err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": "true"})
}

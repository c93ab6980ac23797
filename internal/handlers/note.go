package handlers

import (
  "net/http"
  "strconv"

  "github.com/gin-gonic/gin"

  "github.com/yungbote/studyos-backend/internal/services"
)

type NoteHandler struct {
  noteService services.NoteService
}

func NewNoteHandler(noteService services.NoteService) *NoteHandler {
  return &NoteHandler{noteService: noteService}
}

func (nh *NoteHandler) Create(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req struct {
    Content   string `json:"content"`
    CourseID  string `json:"courseId"`
    ChapterID string `json:"chapterId"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  courseID, ok := parseScopeID(req.CourseID)
  if !ok {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid courseId"})
    return
  }
  chapterID, ok := parseScopeID(req.ChapterID)
  if !ok {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chapterId"})
    return
  }
  note, err := nh.noteService.CreateNote(c.Request.Context(), userID, services.CreateNoteInput{
    Content:   req.Content,
    CourseID:  courseID,
    ChapterID: chapterID,
  })
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusCreated, note)
}

func (nh *NoteHandler) List(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  courseID, ok := parseScopeID(c.Query("courseId"))
  if !ok {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid courseId"})
    return
  }
  chapterID, ok := parseScopeID(c.Query("chapterId"))
  if !ok {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid chapterId"})
    return
  }
  limit := 0
  if raw := c.Query("limit"); raw != "" {
    parsed, err := strconv.Atoi(raw)
    if err != nil || parsed < 1 {
      c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
      return
    }
    limit = parsed
  }
  notes, err := nh.noteService.ListNotes(c.Request.Context(), userID, services.ListNotesInput{
    CourseID:  courseID,
    ChapterID: chapterID,
    Limit:     limit,
  })
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"notes": notes})
}

func (nh *NoteHandler) Get(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  noteID, ok := parseUUIDParam(c, "noteId")
  if !ok {
    return
  }
  note, err := nh.noteService.GetNote(c.Request.Context(), userID, noteID)
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, note)
}

func (nh *NoteHandler) Update(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  noteID, ok := parseUUIDParam(c, "noteId")
  if !ok {
    return
  }
  var req struct {
    Content string `json:"content"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  note, err := nh.noteService.UpdateNote(c.Request.Context(), userID, noteID, req.Content)
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, note)
}

func (nh *NoteHandler) Delete(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  noteID, ok := parseUUIDParam(c, "noteId")
  if !ok {
    return
  }
  if err := nh.noteService.DeleteNote(c.Request.Context(), userID, noteID); err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": "true"})
}

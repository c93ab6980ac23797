package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/yungbote/studyos-backend/internal/services"
)

type CourseHandler struct {
  courseService services.CourseService
}

func NewCourseHandler(courseService services.CourseService) *CourseHandler {
  return &CourseHandler{courseService: courseService}
}

func (ch *CourseHandler) Create(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  var req services.CreateCourseInput
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  detail, err := ch.courseService.CreateCourse(c.Request.Context(), userID, req)
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusCreated, detail)
}

func (ch *CourseHandler) List(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  includeChapters := c.Query("includeChapters") == "true"
  entries, err := ch.courseService.ListCourses(c.Request.Context(), userID, includeChapters)
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"courses": entries})
}

func (ch *CourseHandler) Get(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  courseID, ok := parseUUIDParam(c, "courseId")
  if !ok {
    return
  }
  detail, err := ch.courseService.GetCourseDetail(c.Request.Context(), userID, courseID)
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, detail)
}

func (ch *CourseHandler) Update(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  courseID, ok := parseUUIDParam(c, "courseId")
  if !ok {
    return
  }
  var req services.UpdateCourseInput
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  course, err := ch.courseService.UpdateCourse(c.Request.Context(), userID, courseID, req)
  if err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, course)
}

func (ch *CourseHandler) Delete(c *gin.Context) {
  userID, ok := currentUserID(c)
  if !ok {
    return
  }
  courseID, ok := parseUUIDParam(c, "courseId")
  if !ok {
    return
  }
  if err := ch.courseService.DeleteCourse(c.Request.Context(), userID, courseID); err != nil {
    RespondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": "true"})
}

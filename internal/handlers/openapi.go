package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
)

// OpenAPI serves the machine-readable descriptor for the key-authenticated
// surface. The server URL is derived from the incoming request so the same
// deployment works behind any hostname.
func OpenAPI(c *gin.Context) {
  scheme := "https"
  if c.Request.TLS == nil && c.GetHeader("X-Forwarded-Proto") != "https" {
    scheme = "http"
  }
  baseURL := scheme + "://" + c.Request.Host

  doc := gin.H{
    "openapi": "3.1.0",
    "info": gin.H{
      "title":       "StudyOS API",
      "description": "Manage courses, chapters, notes, resources and progress.",
      "version":     "1.0.0",
    },
    "servers": []gin.H{{"url": baseURL}},
    "components": gin.H{
      "securitySchemes": gin.H{
        "ApiKeyAuth": gin.H{"type": "apiKey", "in": "header", "name": "x-api-key"},
      },
    },
    "security": []gin.H{{"ApiKeyAuth": []string{}}},
    "paths": gin.H{
      "/api/gpt/courses": gin.H{
        "get": gin.H{
          "operationId": "listCourses",
          "summary":     "List the user's courses",
          "parameters": []gin.H{
            {"name": "includeChapters", "in": "query", "schema": gin.H{"type": "boolean"}},
          },
        },
        "post": gin.H{
          "operationId": "createCourse",
          "summary":     "Create a course with optional initial chapters",
        },
      },
      "/api/gpt/courses/{courseId}": gin.H{
        "get":    gin.H{"operationId": "getCourse", "summary": "Get a course with chapters and progress"},
        "put":    gin.H{"operationId": "updateCourse", "summary": "Update course fields"},
        "delete": gin.H{"operationId": "deleteCourse", "summary": "Delete a course and its contents"},
      },
      "/api/gpt/courses/{courseId}/chapters": gin.H{
        "get":  gin.H{"operationId": "listChapters", "summary": "List chapters with completion state"},
        "post": gin.H{"operationId": "addChapters", "summary": "Append chapters to a course"},
      },
      "/api/gpt/chapters/{chapterId}": gin.H{
        "get":    gin.H{"operationId": "getChapter", "summary": "Get a chapter with its resources"},
        "put":    gin.H{"operationId": "updateChapter", "summary": "Update chapter title or order"},
        "delete": gin.H{"operationId": "deleteChapter", "summary": "Delete a chapter"},
      },
      "/api/gpt/chapters/{chapterId}/complete": gin.H{
        "post":   gin.H{"operationId": "completeChapter", "summary": "Mark a chapter completed"},
        "delete": gin.H{"operationId": "resetChapter", "summary": "Clear a chapter's completion"},
      },
      "/api/gpt/notes": gin.H{
        "get":  gin.H{"operationId": "listNotes", "summary": "List notes, optionally scoped to a course or chapter"},
        "post": gin.H{"operationId": "createNote", "summary": "Create a note"},
      },
      "/api/gpt/notes/{noteId}": gin.H{
        "get":    gin.H{"operationId": "getNote", "summary": "Get a note"},
        "put":    gin.H{"operationId": "updateNote", "summary": "Update a note's content"},
        "delete": gin.H{"operationId": "deleteNote", "summary": "Delete a note"},
      },
      "/api/gpt/resources": gin.H{
        "get":  gin.H{"operationId": "listResources", "summary": "List a chapter's resources"},
        "post": gin.H{"operationId": "createResource", "summary": "Attach a resource to a chapter"},
      },
      "/api/gpt/resources/{resourceId}": gin.H{
        "get":    gin.H{"operationId": "getResource", "summary": "Get a resource"},
        "delete": gin.H{"operationId": "deleteResource", "summary": "Delete a resource"},
      },
    },
  }
  c.JSON(http.StatusOK, doc)
}

package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

  "github.com/yungbote/studyos-backend/internal/handlers"
  "github.com/yungbote/studyos-backend/internal/middleware"
)

type RouterConfig struct {
  AuthHandler      *handlers.AuthHandler
  AuthMiddleware   *middleware.AuthMiddleware
  UserHandler      *handlers.UserHandler
  CourseHandler    *handlers.CourseHandler
  ChapterHandler   *handlers.ChapterHandler
  NoteHandler      *handlers.NoteHandler
  ResourceHandler  *handlers.ResourceHandler
  ApiKeyHandler    *handlers.ApiKeyHandler
  AnalyticsHandler *handlers.AnalyticsHandler
  ImageNoteHandler *handlers.ImageNoteHandler
  SettingsHandler  *handlers.SettingsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()
  router.Use(otelgin.Middleware("studyos-backend"))

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5174",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "x-api-key"},
    AllowCredentials: true,
  }))

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.Healthcheck)
  router.GET("/api/openapi.json", handlers.OpenAPI)
  api := router.Group("/api")
  {
    api.POST("/auth/register", cfg.AuthHandler.Register)
    api.POST("/auth/login", cfg.AuthHandler.Login)
    api.POST("/auth/refresh", cfg.AuthHandler.Refresh)
  }

// ===============
// || Session   ||
// ===============
  session := router.Group("/api")
  session.Use(cfg.AuthMiddleware.RequireAuth())
  // Auth
  session.POST("/auth/logout", cfg.AuthHandler.Logout)
  // User
  session.GET("/user", cfg.UserHandler.GetMe)
  // API keys
  session.GET("/keys", cfg.ApiKeyHandler.List)
  session.POST("/keys", cfg.ApiKeyHandler.Create)
  session.DELETE("/keys/:keyId", cfg.ApiKeyHandler.Delete)
  // Analytics
  session.GET("/analytics", cfg.AnalyticsHandler.GetStats)
  // Settings
  session.GET("/settings", cfg.SettingsHandler.Get)
  session.PUT("/settings", cfg.SettingsHandler.Update)
  // Image notes
  session.GET("/image-notes", cfg.ImageNoteHandler.List)
  session.POST("/image-notes", cfg.ImageNoteHandler.Create)
  session.DELETE("/image-notes/:imageNoteId", cfg.ImageNoteHandler.Delete)

// ===============
// || API key   ||
// ===============
  gpt := router.Group("/api/gpt")
  gpt.Use(cfg.AuthMiddleware.RequireAPIKey())
  // Courses
  gpt.GET("/courses", cfg.CourseHandler.List)
  gpt.POST("/courses", cfg.CourseHandler.Create)
  gpt.GET("/courses/:courseId", cfg.CourseHandler.Get)
  gpt.PUT("/courses/:courseId", cfg.CourseHandler.Update)
  gpt.DELETE("/courses/:courseId", cfg.CourseHandler.Delete)
  // Chapters
  gpt.GET("/courses/:courseId/chapters", cfg.ChapterHandler.List)
  gpt.POST("/courses/:courseId/chapters", cfg.ChapterHandler.Add)
  gpt.GET("/chapters/:chapterId", cfg.ChapterHandler.Get)
  gpt.PUT("/chapters/:chapterId", cfg.ChapterHandler.Update)
  gpt.DELETE("/chapters/:chapterId", cfg.ChapterHandler.Delete)
  gpt.POST("/chapters/:chapterId/complete", cfg.ChapterHandler.Complete)
  gpt.DELETE("/chapters/:chapterId/complete", cfg.ChapterHandler.Reset)
  // Notes
  gpt.GET("/notes", cfg.NoteHandler.List)
  gpt.POST("/notes", cfg.NoteHandler.Create)
  gpt.GET("/notes/:noteId", cfg.NoteHandler.Get)
  gpt.PUT("/notes/:noteId", cfg.NoteHandler.Update)
  gpt.DELETE("/notes/:noteId", cfg.NoteHandler.Delete)
  // Resources
  gpt.GET("/resources", cfg.ResourceHandler.List)
  gpt.POST("/resources", cfg.ResourceHandler.Create)
  gpt.GET("/resources/:resourceId", cfg.ResourceHandler.Get)
  gpt.DELETE("/resources/:resourceId", cfg.ResourceHandler.Delete)

  return router
}

package main

import (
  "context"
  "fmt"
  "os"
  "time"

  "github.com/redis/go-redis/v9"

  "github.com/yungbote/studyos-backend/internal/db"
  "github.com/yungbote/studyos-backend/internal/handlers"
  "github.com/yungbote/studyos-backend/internal/logger"
  "github.com/yungbote/studyos-backend/internal/middleware"
  "github.com/yungbote/studyos-backend/internal/observability"
  "github.com/yungbote/studyos-backend/internal/repos"
  "github.com/yungbote/studyos-backend/internal/server"
  "github.com/yungbote/studyos-backend/internal/services"
  "github.com/yungbote/studyos-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
  port := utils.GetEnv("PORT", "8080", log)

  // Tracing
  shutdownOTel := observability.InitOTel(context.Background(), log, observability.OtelConfig{
    ServiceName: "studyos-backend",
    Environment: utils.GetEnv("APP_ENV", "development", log),
    Version:     utils.GetEnv("APP_VERSION", "dev", log),
  })
  if shutdownOTel != nil {
    defer func() {
      ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
      defer cancel()
      if err := shutdownOTel(ctx); err != nil {
        log.Warn("otel shutdown failed", "error", err)
      }
    }()
  }

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Redis (optional; stats caching is skipped without it)
  var cache *redis.Client
  if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
    cache = redis.NewClient(&redis.Options{
      Addr:     redisAddr,
      Password: os.Getenv("REDIS_PASSWORD"),
    })
    if err := cache.Ping(context.Background()).Err(); err != nil {
      log.Warn("Redis unreachable, continuing without stats cache", "error", err)
      cache = nil
    }
  }

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  userTokenRepo := repos.NewUserTokenRepo(thePG, log)
  courseRepo := repos.NewCourseRepo(thePG, log)
  chapterRepo := repos.NewChapterRepo(thePG, log)
  progressRepo := repos.NewProgressRepo(thePG, log)
  resourceRepo := repos.NewResourceRepo(thePG, log)
  noteRepo := repos.NewNoteRepo(thePG, log)
  imageNoteRepo := repos.NewImageNoteRepo(thePG, log)
  apiKeyRepo := repos.NewApiKeyRepo(thePG, log)
  settingsRepo := repos.NewUserSettingsRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  bucketService, err := services.NewBucketService(log)
  if err != nil {
    log.Warn("Could not init BucketService", "error", err)
  }
  avatarService, err := services.NewAvatarService(log, bucketService)
  if err != nil {
    log.Warn("Could not init AvatarService", "error", err)
  }
  authService := services.NewAuthService(thePG, log, userRepo, avatarService, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
  userService := services.NewUserService(thePG, log, userRepo)
  apiKeyService := services.NewApiKeyService(thePG, log, apiKeyRepo)
  analyticsService := services.NewAnalyticsService(log, progressRepo, settingsRepo, cache)
  courseService := services.NewCourseService(thePG, log, courseRepo, chapterRepo, progressRepo, resourceRepo, noteRepo, imageNoteRepo, analyticsService)
  chapterService := services.NewChapterService(thePG, log, courseRepo, chapterRepo, progressRepo, resourceRepo, analyticsService)
  noteService := services.NewNoteService(thePG, log, noteRepo, courseRepo, chapterRepo)
  resourceService := services.NewResourceService(thePG, log, resourceRepo, chapterService, bucketService)
  imageNoteService := services.NewImageNoteService(thePG, log, imageNoteRepo, bucketService)
  settingsService := services.NewUserSettingsService(thePG, log, settingsRepo, analyticsService)

  // Handlers
  log.Info("Setting up Handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  userHandler := handlers.NewUserHandler(userService)
  courseHandler := handlers.NewCourseHandler(courseService)
  chapterHandler := handlers.NewChapterHandler(chapterService)
  noteHandler := handlers.NewNoteHandler(noteService)
  resourceHandler := handlers.NewResourceHandler(resourceService)
  apiKeyHandler := handlers.NewApiKeyHandler(apiKeyService)
  analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
  imageNoteHandler := handlers.NewImageNoteHandler(imageNoteService)
  settingsHandler := handlers.NewSettingsHandler(settingsService)

  // Middleware
  authMiddleware := middleware.NewAuthMiddleware(log, authService, apiKeyService)

  // Router
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:      authHandler,
    AuthMiddleware:   authMiddleware,
    UserHandler:      userHandler,
    CourseHandler:    courseHandler,
    ChapterHandler:   chapterHandler,
    NoteHandler:      noteHandler,
    ResourceHandler:  resourceHandler,
    ApiKeyHandler:    apiKeyHandler,
    AnalyticsHandler: analyticsHandler,
    ImageNoteHandler: imageNoteHandler,
    SettingsHandler:  settingsHandler,
  })

  log.Info("Starting server...", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server exited", "error", err)
    os.Exit(1)
  }
}

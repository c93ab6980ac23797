package middleware

import (
  "net/http"
  "strings"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/yungbote/studyos-backend/internal/logger"
  "github.com/yungbote/studyos-backend/internal/requestdata"
  "github.com/yungbote/studyos-backend/internal/services"
)

type AuthMiddleware struct {
  log           *logger.Logger
  authService   services.AuthService
  apiKeyService services.ApiKeyService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService, apiKeyService services.ApiKeyService) *AuthMiddleware {
  middlewareLogger := log.With("Middleware", "AuthMiddleware")
  return &AuthMiddleware{log: middlewareLogger, authService: authService, apiKeyService: apiKeyService}
}

// RequireAuth guards the session surface with a bearer JWT.
func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
  return func(c *gin.Context) {
    tokenString := extractBearerToken(c)
    if tokenString == "" {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
      return
    }
    ctx, err := am.authService.SetContextFromToken(c.Request.Context(), tokenString)
    if err != nil {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
      return
    }
    rd := requestdata.GetRequestData(ctx)
    if rd == nil || rd.UserID == uuid.Nil {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
      return
    }
    c.Request = c.Request.WithContext(ctx)
    c.Next()
  }
}

// RequireAPIKey guards the key-authenticated surface via the x-api-key
// header. Every rejection looks the same to the caller.
func (am *AuthMiddleware) RequireAPIKey() gin.HandlerFunc {
  return func(c *gin.Context) {
    key := strings.TrimSpace(c.GetHeader("x-api-key"))
    if key == "" {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
      return
    }
    userID, keyID, err := am.apiKeyService.ValidateKey(c.Request.Context(), key)
    if err != nil {
      c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
      return
    }
    rd := &requestdata.RequestData{UserID: userID, APIKeyID: keyID}
    ctx := requestdata.WithRequestData(c.Request.Context(), rd)
    c.Request = c.Request.WithContext(ctx)
    c.Next()
  }
}

func extractBearerToken(c *gin.Context) string {
  authHeader := c.GetHeader("Authorization")
  if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
    return authHeader[7:]
  }
  return ""
}
